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

// DailyActivitySummary aggregates a user's daily completions over a window.
type DailyActivitySummary struct {
	TotalQuestions int `json:"total_questions"`
	CorrectAnswers int `json:"correct_answers"`
	PointsEarned   int `json:"points_earned"`
	DaysActive     int `json:"days_active"`
}

type DailyTaskCompletionRepo interface {
	GetOrCreate(ctx context.Context, tx *gorm.DB, userID uuid.UUID, date time.Time) (*types.DailyTaskCompletion, error)
	GetByDate(ctx context.Context, tx *gorm.DB, userID uuid.UUID, date time.Time) (*types.DailyTaskCompletion, error)
	Save(ctx context.Context, tx *gorm.DB, completion *types.DailyTaskCompletion) error
	SummarizeSince(ctx context.Context, tx *gorm.DB, userID uuid.UUID, since time.Time) (*DailyActivitySummary, error)
}

type dailyTaskCompletionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewDailyTaskCompletionRepo(db *gorm.DB, baseLog *logger.Logger) DailyTaskCompletionRepo {
	repoLog := baseLog.With("repo", "DailyTaskCompletionRepo")
	return &dailyTaskCompletionRepo{db: db, log: repoLog}
}

func (dtcr *dailyTaskCompletionRepo) GetOrCreate(ctx context.Context, tx *gorm.DB, userID uuid.UUID, date time.Time) (*types.DailyTaskCompletion, error) {
	transaction := tx
	if transaction == nil {
		transaction = dtcr.db
	}

	var result types.DailyTaskCompletion
	if err := transaction.WithContext(ctx).
		Where("user_id = ? AND completion_date = ?", userID, date).
		Attrs(types.DailyTaskCompletion{
			ID:             uuid.New(),
			UserID:         userID,
			CompletionDate: date,
		}).
		FirstOrCreate(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (dtcr *dailyTaskCompletionRepo) GetByDate(ctx context.Context, tx *gorm.DB, userID uuid.UUID, date time.Time) (*types.DailyTaskCompletion, error) {
	transaction := tx
	if transaction == nil {
		transaction = dtcr.db
	}

	var result types.DailyTaskCompletion
	if err := transaction.WithContext(ctx).
		Where("user_id = ? AND completion_date = ?", userID, date).
		First(&result).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}

func (dtcr *dailyTaskCompletionRepo) Save(ctx context.Context, tx *gorm.DB, completion *types.DailyTaskCompletion) error {
	transaction := tx
	if transaction == nil {
		transaction = dtcr.db
	}
	return transaction.WithContext(ctx).Save(completion).Error
}

func (dtcr *dailyTaskCompletionRepo) SummarizeSince(ctx context.Context, tx *gorm.DB, userID uuid.UUID, since time.Time) (*DailyActivitySummary, error) {
	transaction := tx
	if transaction == nil {
		transaction = dtcr.db
	}

	var row struct {
		TotalQuestions int
		CorrectAnswers int
		PointsEarned   int
		DaysActive     int
	}
	if err := transaction.WithContext(ctx).
		Model(&types.DailyTaskCompletion{}).
		Select(`COALESCE(SUM(questions_answered), 0) AS total_questions,
			COALESCE(SUM(correct_answers), 0) AS correct_answers,
			COALESCE(SUM(points_earned), 0) AS points_earned,
			COUNT(*) AS days_active`).
		Where("user_id = ? AND completion_date >= ?", userID, since).
		Scan(&row).Error; err != nil {
		return nil, err
	}
	return &DailyActivitySummary{
		TotalQuestions: row.TotalQuestions,
		CorrectAnswers: row.CorrectAnswers,
		PointsEarned:   row.PointsEarned,
		DaysActive:     row.DaysActive,
	}, nil
}
