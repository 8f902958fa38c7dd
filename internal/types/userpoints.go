package types

import (
	"time"

	"github.com/google/uuid"
)

// UserPoints is the per-user running ledger. weekly_points has no automatic
// week-rollover reset; see DESIGN.md.
type UserPoints struct {
	ID               uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID           uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	User             *User      `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	TotalPoints      int        `gorm:"not null;default:0;column:total_points" json:"total_points"`
	WeeklyPoints     int        `gorm:"not null;default:0;column:weekly_points" json:"weekly_points"`
	CurrentStreak    int        `gorm:"not null;default:0;column:current_streak" json:"current_streak"`
	LongestStreak    int        `gorm:"not null;default:0;column:longest_streak" json:"longest_streak"`
	LastActivityDate *time.Time `gorm:"type:date;column:last_activity_date" json:"last_activity_date,omitempty"`
	CreatedAt        time.Time  `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt        time.Time  `gorm:"not null;default:now()" json:"updated_at"`
}

func (UserPoints) TableName() string { return "user_points" }
