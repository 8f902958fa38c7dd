package types

import (
	"time"

	"github.com/google/uuid"
)

// WeeklyQuestionSet is the fixed question set for one week; unique per
// week_start (always a Monday).
type WeeklyQuestionSet struct {
	ID                uuid.UUID   `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Title             string      `gorm:"not null;column:title" json:"title"`
	Description       string      `gorm:"column:description" json:"description"`
	Questions         []*Question `gorm:"many2many:weekly_set_question" json:"questions,omitempty"`
	WeekStart         time.Time   `gorm:"type:date;not null;uniqueIndex" json:"week_start"`
	WeekEnd           time.Time   `gorm:"type:date;not null" json:"week_end"`
	IsActive          bool        `gorm:"not null;default:true;column:is_active" json:"is_active"`
	PointsPerQuestion int         `gorm:"not null;default:5;column:points_per_question" json:"points_per_question"`
	CreatedAt         time.Time   `gorm:"not null;default:now()" json:"created_at"`
}

func (WeeklyQuestionSet) TableName() string { return "weekly_question_set" }
