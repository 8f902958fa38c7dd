package types

import (
	"time"

	"github.com/google/uuid"
)

// UserTaskProgress accumulates toward a weekly task target and flips to
// completed exactly once. The (user, task, week_start) triple is unique.
type UserTaskProgress struct {
	ID              uuid.UUID   `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID          uuid.UUID   `gorm:"type:uuid;not null;index:idx_user_task_week,unique" json:"user_id"`
	User            *User       `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	TaskID          uuid.UUID   `gorm:"type:uuid;not null;index:idx_user_task_week,unique" json:"task_id"`
	Task            *WeeklyTask `gorm:"constraint:OnDelete:CASCADE;foreignKey:TaskID;references:ID" json:"task,omitempty"`
	WeekStart       time.Time   `gorm:"type:date;not null;index:idx_user_task_week,unique" json:"week_start"`
	CurrentProgress int         `gorm:"not null;default:0;column:current_progress" json:"current_progress"`
	IsCompleted     bool        `gorm:"not null;default:false;column:is_completed" json:"is_completed"`
	CompletedAt     *time.Time  `gorm:"column:completed_at" json:"completed_at,omitempty"`
	PointsEarned    int         `gorm:"not null;default:0;column:points_earned" json:"points_earned"`
	CreatedAt       time.Time   `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt       time.Time   `gorm:"not null;default:now()" json:"updated_at"`
}

func (UserTaskProgress) TableName() string { return "user_task_progress" }
