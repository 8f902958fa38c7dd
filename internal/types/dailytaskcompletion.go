package types

import (
	"time"

	"github.com/google/uuid"
)

type DailyTaskCompletion struct {
	ID                uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID            uuid.UUID `gorm:"type:uuid;not null;index:idx_user_completion_date,unique" json:"user_id"`
	User              *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	CompletionDate    time.Time `gorm:"type:date;not null;index:idx_user_completion_date,unique" json:"completion_date"`
	QuestionsAnswered int       `gorm:"not null;default:0;column:questions_answered" json:"questions_answered"`
	CorrectAnswers    int       `gorm:"not null;default:0;column:correct_answers" json:"correct_answers"`
	PointsEarned      int       `gorm:"not null;default:0;column:points_earned" json:"points_earned"`
	CreatedAt         time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (DailyTaskCompletion) TableName() string { return "daily_task_completion" }
