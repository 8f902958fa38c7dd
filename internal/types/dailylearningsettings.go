package types

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type DailyLearningSettings struct {
	ID                  uuid.UUID                      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID              uuid.UUID                      `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	User                *User                          `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	DailyTarget         int                            `gorm:"not null;default:10;column:daily_target" json:"daily_target"`
	PreferredDifficulty string                         `gorm:"not null;default:'medium';column:preferred_difficulty" json:"preferred_difficulty"`
	PreferredTopicIDs   datatypes.JSONSlice[uuid.UUID] `gorm:"column:preferred_topic_ids" json:"preferred_topic_ids"`
	ExerciseTypes       string                         `gorm:"not null;default:'translation,listening';column:exercise_types" json:"exercise_types"`
	ReminderEnabled     bool                           `gorm:"not null;default:true;column:reminder_enabled" json:"reminder_enabled"`
	ReminderTime        string                         `gorm:"not null;default:'09:00:00';column:reminder_time" json:"reminder_time"`
	AutoPlayAudio       bool                           `gorm:"not null;default:true;column:auto_play_audio" json:"auto_play_audio"`
	SpeechRate          float64                        `gorm:"not null;default:1.0;column:speech_rate" json:"speech_rate"`
	CreatedAt           time.Time                      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt           time.Time                      `gorm:"not null;default:now()" json:"updated_at"`
}

func (DailyLearningSettings) TableName() string { return "daily_learning_settings" }

func (s *DailyLearningSettings) ExerciseTypesList() []string {
	var out []string
	for _, t := range strings.Split(s.ExerciseTypes, ",") {
		t = strings.TrimSpace(t)
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}

func (s *DailyLearningSettings) SetExerciseTypesList(list []string) {
	s.ExerciseTypes = strings.Join(list, ",")
}
