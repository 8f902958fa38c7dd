package types

import (
	"time"

	"github.com/google/uuid"
)

const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

func ValidDifficulty(d string) bool {
	return d == DifficultyEasy || d == DifficultyMedium || d == DifficultyHard
}

type Question struct {
	ID             uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	TopicID        *uuid.UUID `gorm:"type:uuid;index" json:"topic_id,omitempty"`
	Topic          *Topic     `gorm:"constraint:OnDelete:CASCADE;foreignKey:TopicID;references:ID" json:"topic,omitempty"`
	VietnameseText string     `gorm:"not null;column:vietnamese_text" json:"vietnamese_text"`
	EnglishText    string     `gorm:"not null;column:english_text" json:"english_text"`
	Difficulty     string     `gorm:"not null;default:'medium';column:difficulty" json:"difficulty"`
	CreatedAt      time.Time  `gorm:"not null;default:now();index" json:"created_at"`
}

func (Question) TableName() string { return "question" }
