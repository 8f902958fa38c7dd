package types

import (
	"time"

	"github.com/google/uuid"
)

const (
	ExerciseTypeTranslation = "translation"
	ExerciseTypeListening   = "listening"
	ExerciseTypeMixed       = "mixed"
)

func ValidExerciseType(t string) bool {
	return t == ExerciseTypeTranslation || t == ExerciseTypeListening || t == ExerciseTypeMixed
}

// DailyLearningSession is unique per (user, session_date, exercise_type).
type DailyLearningSession struct {
	ID                 uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID             uuid.UUID  `gorm:"type:uuid;not null;index:idx_user_session_day,unique" json:"user_id"`
	User               *User      `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	SessionDate        time.Time  `gorm:"type:date;not null;index:idx_user_session_day,unique" json:"session_date"`
	ExerciseType       string     `gorm:"not null;default:'mixed';column:exercise_type;index:idx_user_session_day,unique" json:"exercise_type"`
	TargetQuestions    int        `gorm:"not null;default:10;column:target_questions" json:"target_questions"`
	CompletedQuestions int        `gorm:"not null;default:0;column:completed_questions" json:"completed_questions"`
	CorrectAnswers     int        `gorm:"not null;default:0;column:correct_answers" json:"correct_answers"`
	PointsEarned       int        `gorm:"not null;default:0;column:points_earned" json:"points_earned"`
	IsCompleted        bool       `gorm:"not null;default:false;column:is_completed" json:"is_completed"`
	CompletedAt        *time.Time `gorm:"column:completed_at" json:"completed_at,omitempty"`
	CreatedAt          time.Time  `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt          time.Time  `gorm:"not null;default:now()" json:"updated_at"`
}

func (DailyLearningSession) TableName() string { return "daily_learning_session" }

func (s *DailyLearningSession) ProgressPercentage() float64 {
	if s.TargetQuestions == 0 {
		return 0
	}
	return float64(s.CompletedQuestions) / float64(s.TargetQuestions) * 100
}

func (s *DailyLearningSession) AccuracyRate() float64 {
	if s.CompletedQuestions == 0 {
		return 0
	}
	return float64(s.CorrectAnswers) / float64(s.CompletedQuestions) * 100
}
