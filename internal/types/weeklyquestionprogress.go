package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// WeeklyQuestionProgress tracks one user's completion of one weekly set.
// Completed question IDs keep insertion order; the first remaining question
// in set order is served as "next".
type WeeklyQuestionProgress struct {
	ID                   uuid.UUID                      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID               uuid.UUID                      `gorm:"type:uuid;not null;index:idx_user_question_set,unique" json:"user_id"`
	User                 *User                          `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	QuestionSetID        uuid.UUID                      `gorm:"type:uuid;not null;index:idx_user_question_set,unique" json:"question_set_id"`
	QuestionSet          *WeeklyQuestionSet             `gorm:"constraint:OnDelete:CASCADE;foreignKey:QuestionSetID;references:ID" json:"question_set,omitempty"`
	CompletedQuestionIDs datatypes.JSONSlice[uuid.UUID] `gorm:"column:completed_question_ids" json:"completed_question_ids"`
	TotalPoints          int                            `gorm:"not null;default:0;column:total_points" json:"total_points"`
	IsCompleted          bool                           `gorm:"not null;default:false;column:is_completed" json:"is_completed"`
	CompletedAt          *time.Time                     `gorm:"column:completed_at" json:"completed_at,omitempty"`
	CreatedAt            time.Time                      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt            time.Time                      `gorm:"not null;default:now()" json:"updated_at"`
}

func (WeeklyQuestionProgress) TableName() string { return "weekly_question_progress" }

func (p *WeeklyQuestionProgress) HasCompleted(questionID uuid.UUID) bool {
	for _, id := range p.CompletedQuestionIDs {
		if id == questionID {
			return true
		}
	}
	return false
}
