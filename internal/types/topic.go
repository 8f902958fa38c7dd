package types

import (
	"time"

	"github.com/google/uuid"
)

type Topic struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name        string    `gorm:"uniqueIndex;not null;column:name" json:"name"`
	Description string    `gorm:"column:description" json:"description"`
	Icon        string    `gorm:"column:icon" json:"icon"`
	CreatedAt   time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (Topic) TableName() string { return "topic" }
