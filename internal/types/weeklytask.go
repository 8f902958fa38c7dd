package types

import (
	"time"

	"github.com/google/uuid"
)

const (
	TaskTypeDailyPractice  = "daily_practice"
	TaskTypeCorrectAnswers = "correct_answers"
	TaskTypePerfectWeek    = "perfect_week"
	TaskTypeTopicMaster    = "topic_master"
	TaskTypeStreakMaster   = "streak_master"
)

func ValidTaskType(t string) bool {
	switch t {
	case TaskTypeDailyPractice, TaskTypeCorrectAnswers, TaskTypePerfectWeek,
		TaskTypeTopicMaster, TaskTypeStreakMaster:
		return true
	}
	return false
}

type WeeklyTask struct {
	ID           uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Title        string    `gorm:"not null;column:title" json:"title"`
	Description  string    `gorm:"column:description" json:"description"`
	TaskType     string    `gorm:"not null;column:task_type" json:"task_type"`
	TargetCount  int       `gorm:"not null;default:1;column:target_count" json:"target_count"`
	PointsReward int       `gorm:"not null;default:10;column:points_reward" json:"points_reward"`
	IsActive     bool      `gorm:"not null;default:true;column:is_active" json:"is_active"`
	CreatedAt    time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (WeeklyTask) TableName() string { return "weekly_task" }
