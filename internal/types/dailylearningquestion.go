package types

import (
	"time"

	"github.com/google/uuid"
)

// DailyLearningQuestion is one answered question inside a session, unique per
// (session, question). Repeat submissions update the row in place and bump
// attempts.
type DailyLearningQuestion struct {
	ID              uuid.UUID             `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	SessionID       uuid.UUID             `gorm:"type:uuid;not null;index:idx_session_question,unique" json:"session_id"`
	Session         *DailyLearningSession `gorm:"constraint:OnDelete:CASCADE;foreignKey:SessionID;references:ID" json:"session,omitempty"`
	QuestionID      uuid.UUID             `gorm:"type:uuid;not null;index:idx_session_question,unique" json:"question_id"`
	Question        *Question             `gorm:"constraint:OnDelete:CASCADE;foreignKey:QuestionID;references:ID" json:"question,omitempty"`
	UserAnswer      string                `gorm:"not null;column:user_answer" json:"user_answer"`
	IsCorrect       bool                  `gorm:"not null;default:false;column:is_correct" json:"is_correct"`
	SimilarityScore float64               `gorm:"not null;default:0;column:similarity_score" json:"similarity_score"`
	TimeTaken       int                   `gorm:"not null;default:0;column:time_taken" json:"time_taken"`
	Attempts        int                   `gorm:"not null;default:1;column:attempts" json:"attempts"`
	CreatedAt       time.Time             `gorm:"not null;default:now()" json:"created_at"`
}

func (DailyLearningQuestion) TableName() string { return "daily_learning_question" }
