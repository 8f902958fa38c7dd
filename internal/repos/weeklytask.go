package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vietlingo/vietlingo-backend/internal/logger"
	"github.com/vietlingo/vietlingo-backend/internal/types"
)

type WeeklyTaskRepo interface {
	ListActive(ctx context.Context, tx *gorm.DB) ([]*types.WeeklyTask, error)
	GetByID(ctx context.Context, tx *gorm.DB, taskID uuid.UUID) (*types.WeeklyTask, error)
	FirstActiveByType(ctx context.Context, tx *gorm.DB, taskType string) (*types.WeeklyTask, error)
	Create(ctx context.Context, tx *gorm.DB, task *types.WeeklyTask) error
}

type weeklyTaskRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewWeeklyTaskRepo(db *gorm.DB, baseLog *logger.Logger) WeeklyTaskRepo {
	repoLog := baseLog.With("repo", "WeeklyTaskRepo")
	return &weeklyTaskRepo{db: db, log: repoLog}
}

func (wtr *weeklyTaskRepo) ListActive(ctx context.Context, tx *gorm.DB) ([]*types.WeeklyTask, error) {
	transaction := tx
	if transaction == nil {
		transaction = wtr.db
	}

	var results []*types.WeeklyTask
	if err := transaction.WithContext(ctx).
		Where("is_active = ?", true).
		Order("created_at asc").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (wtr *weeklyTaskRepo) GetByID(ctx context.Context, tx *gorm.DB, taskID uuid.UUID) (*types.WeeklyTask, error) {
	transaction := tx
	if transaction == nil {
		transaction = wtr.db
	}

	var result types.WeeklyTask
	if err := transaction.WithContext(ctx).
		Where("id = ?", taskID).
		First(&result).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}

func (wtr *weeklyTaskRepo) FirstActiveByType(ctx context.Context, tx *gorm.DB, taskType string) (*types.WeeklyTask, error) {
	transaction := tx
	if transaction == nil {
		transaction = wtr.db
	}

	var result types.WeeklyTask
	if err := transaction.WithContext(ctx).
		Where("task_type = ? AND is_active = ?", taskType, true).
		Order("created_at asc").
		First(&result).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}

func (wtr *weeklyTaskRepo) Create(ctx context.Context, tx *gorm.DB, task *types.WeeklyTask) error {
	transaction := tx
	if transaction == nil {
		transaction = wtr.db
	}
	return transaction.WithContext(ctx).Create(task).Error
}
