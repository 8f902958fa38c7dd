package repos

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/vietlingo/vietlingo-backend/internal/logger"
	"github.com/vietlingo/vietlingo-backend/internal/types"
)

type WeeklyQuestionSetRepo interface {
	List(ctx context.Context, tx *gorm.DB) ([]*types.WeeklyQuestionSet, error)
	GetActiveByWeekStart(ctx context.Context, tx *gorm.DB, weekStart time.Time) (*types.WeeklyQuestionSet, error)
	ExistsForWeek(ctx context.Context, tx *gorm.DB, weekStart time.Time) (bool, error)
	Create(ctx context.Context, tx *gorm.DB, set *types.WeeklyQuestionSet) error
}

type weeklyQuestionSetRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewWeeklyQuestionSetRepo(db *gorm.DB, baseLog *logger.Logger) WeeklyQuestionSetRepo {
	repoLog := baseLog.With("repo", "WeeklyQuestionSetRepo")
	return &weeklyQuestionSetRepo{db: db, log: repoLog}
}

func (wqsr *weeklyQuestionSetRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.WeeklyQuestionSet, error) {
	transaction := tx
	if transaction == nil {
		transaction = wqsr.db
	}

	var results []*types.WeeklyQuestionSet
	if err := transaction.WithContext(ctx).
		Preload("Questions").
		Order("week_start desc").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (wqsr *weeklyQuestionSetRepo) GetActiveByWeekStart(ctx context.Context, tx *gorm.DB, weekStart time.Time) (*types.WeeklyQuestionSet, error) {
	transaction := tx
	if transaction == nil {
		transaction = wqsr.db
	}

	var result types.WeeklyQuestionSet
	if err := transaction.WithContext(ctx).
		Preload("Questions").
		Where("week_start = ? AND is_active = ?", weekStart, true).
		First(&result).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}

func (wqsr *weeklyQuestionSetRepo) ExistsForWeek(ctx context.Context, tx *gorm.DB, weekStart time.Time) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = wqsr.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.WeeklyQuestionSet{}).
		Where("week_start = ?", weekStart).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (wqsr *weeklyQuestionSetRepo) Create(ctx context.Context, tx *gorm.DB, set *types.WeeklyQuestionSet) error {
	transaction := tx
	if transaction == nil {
		transaction = wqsr.db
	}
	return transaction.WithContext(ctx).Create(set).Error
}
