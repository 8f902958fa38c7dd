package types

import (
	"time"

	"github.com/google/uuid"
)

type DailyLearningStreak struct {
	ID               uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID           uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	User             *User      `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	CurrentStreak    int        `gorm:"not null;default:0;column:current_streak" json:"current_streak"`
	LongestStreak    int        `gorm:"not null;default:0;column:longest_streak" json:"longest_streak"`
	LastLearningDate *time.Time `gorm:"type:date;column:last_learning_date" json:"last_learning_date,omitempty"`
	TotalDaysLearned int        `gorm:"not null;default:0;column:total_days_learned" json:"total_days_learned"`
	CreatedAt        time.Time  `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt        time.Time  `gorm:"not null;default:now()" json:"updated_at"`
}

func (DailyLearningStreak) TableName() string { return "daily_learning_streak" }
