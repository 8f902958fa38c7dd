package repos

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vietlingo/vietlingo-backend/internal/logger"
	"github.com/vietlingo/vietlingo-backend/internal/types"
)

// SessionStats aggregates a user's daily learning sessions over all time.
type SessionStats struct {
	TotalSessions     int `json:"total_sessions"`
	CompletedSessions int `json:"completed_sessions"`
	TotalQuestions    int `json:"total_questions"`
	TotalCorrect      int `json:"total_correct"`
	TotalPoints       int `json:"total_points"`
	DaysActive        int `json:"days_active"`
}

type DailyLearningSessionRepo interface {
	GetForDay(ctx context.Context, tx *gorm.DB, userID uuid.UUID, date time.Time, exerciseType string) (*types.DailyLearningSession, error)
	GetByIDForUser(ctx context.Context, tx *gorm.DB, id, userID uuid.UUID) (*types.DailyLearningSession, error)
	ListForDay(ctx context.Context, tx *gorm.DB, userID uuid.UUID, date time.Time) ([]*types.DailyLearningSession, error)
	ListRange(ctx context.Context, tx *gorm.DB, userID uuid.UUID, from, to time.Time, page, pageSize int) ([]*types.DailyLearningSession, int64, error)
	Create(ctx context.Context, tx *gorm.DB, session *types.DailyLearningSession) error
	Save(ctx context.Context, tx *gorm.DB, session *types.DailyLearningSession) error
	SummarizeSince(ctx context.Context, tx *gorm.DB, userID uuid.UUID, since time.Time) (*SessionStats, error)
}

type dailyLearningSessionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewDailyLearningSessionRepo(db *gorm.DB, baseLog *logger.Logger) DailyLearningSessionRepo {
	repoLog := baseLog.With("repo", "DailyLearningSessionRepo")
	return &dailyLearningSessionRepo{db: db, log: repoLog}
}

func (dlsr *dailyLearningSessionRepo) GetForDay(ctx context.Context, tx *gorm.DB, userID uuid.UUID, date time.Time, exerciseType string) (*types.DailyLearningSession, error) {
	transaction := tx
	if transaction == nil {
		transaction = dlsr.db
	}

	var result types.DailyLearningSession
	if err := transaction.WithContext(ctx).
		Where("user_id = ? AND session_date = ? AND exercise_type = ?", userID, date, exerciseType).
		First(&result).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}

func (dlsr *dailyLearningSessionRepo) GetByIDForUser(ctx context.Context, tx *gorm.DB, id, userID uuid.UUID) (*types.DailyLearningSession, error) {
	transaction := tx
	if transaction == nil {
		transaction = dlsr.db
	}

	var result types.DailyLearningSession
	if err := transaction.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&result).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}

func (dlsr *dailyLearningSessionRepo) ListForDay(ctx context.Context, tx *gorm.DB, userID uuid.UUID, date time.Time) ([]*types.DailyLearningSession, error) {
	transaction := tx
	if transaction == nil {
		transaction = dlsr.db
	}

	var results []*types.DailyLearningSession
	if err := transaction.WithContext(ctx).
		Where("user_id = ? AND session_date = ?", userID, date).
		Order("created_at asc").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (dlsr *dailyLearningSessionRepo) ListRange(ctx context.Context, tx *gorm.DB, userID uuid.UUID, from, to time.Time, page, pageSize int) ([]*types.DailyLearningSession, int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = dlsr.db
	}

	query := transaction.WithContext(ctx).
		Model(&types.DailyLearningSession{}).
		Where("user_id = ? AND session_date >= ? AND session_date <= ?", userID, from, to)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var results []*types.DailyLearningSession
	if err := query.
		Order("session_date desc, created_at desc").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&results).Error; err != nil {
		return nil, 0, err
	}
	return results, total, nil
}

func (dlsr *dailyLearningSessionRepo) Create(ctx context.Context, tx *gorm.DB, session *types.DailyLearningSession) error {
	transaction := tx
	if transaction == nil {
		transaction = dlsr.db
	}
	return transaction.WithContext(ctx).Create(session).Error
}

func (dlsr *dailyLearningSessionRepo) Save(ctx context.Context, tx *gorm.DB, session *types.DailyLearningSession) error {
	transaction := tx
	if transaction == nil {
		transaction = dlsr.db
	}
	return transaction.WithContext(ctx).Save(session).Error
}

func (dlsr *dailyLearningSessionRepo) SummarizeSince(ctx context.Context, tx *gorm.DB, userID uuid.UUID, since time.Time) (*SessionStats, error) {
	transaction := tx
	if transaction == nil {
		transaction = dlsr.db
	}

	var row struct {
		TotalSessions     int
		CompletedSessions int
		TotalQuestions    int
		TotalCorrect      int
		TotalPoints       int
		DaysActive        int
	}
	if err := transaction.WithContext(ctx).
		Model(&types.DailyLearningSession{}).
		Select(`COUNT(*) AS total_sessions,
			COALESCE(SUM(CASE WHEN is_completed THEN 1 ELSE 0 END), 0) AS completed_sessions,
			COALESCE(SUM(completed_questions), 0) AS total_questions,
			COALESCE(SUM(correct_answers), 0) AS total_correct,
			COALESCE(SUM(points_earned), 0) AS total_points,
			COUNT(DISTINCT session_date) AS days_active`).
		Where("user_id = ? AND session_date >= ?", userID, since).
		Scan(&row).Error; err != nil {
		return nil, err
	}
	return &SessionStats{
		TotalSessions:     row.TotalSessions,
		CompletedSessions: row.CompletedSessions,
		TotalQuestions:    row.TotalQuestions,
		TotalCorrect:      row.TotalCorrect,
		TotalPoints:       row.TotalPoints,
		DaysActive:        row.DaysActive,
	}, nil
}
