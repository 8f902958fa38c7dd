package types

import (
	"time"

	"github.com/google/uuid"
)

// UserAnswer is the append-only log of every graded submission. Rows are
// created once and never mutated.
type UserAnswer struct {
	ID              uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID          *uuid.UUID `gorm:"type:uuid;index" json:"user_id,omitempty"`
	User            *User      `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	QuestionID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"question_id"`
	Question        *Question  `gorm:"constraint:OnDelete:CASCADE;foreignKey:QuestionID;references:ID" json:"question,omitempty"`
	UserAnswer      string     `gorm:"not null;column:user_answer" json:"user_answer"`
	IsCorrect       bool       `gorm:"not null;default:false;column:is_correct" json:"is_correct"`
	SimilarityScore float64    `gorm:"not null;default:0;column:similarity_score" json:"similarity_score"`
	CreatedAt       time.Time  `gorm:"not null;default:now();index" json:"created_at"`
}

func (UserAnswer) TableName() string { return "user_answer" }
