package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vietlingo/vietlingo-backend/internal/logger"
	"github.com/vietlingo/vietlingo-backend/internal/types"
)

type UserTaskProgressRepo interface {
	GetOrCreate(ctx context.Context, tx *gorm.DB, userID, taskID uuid.UUID, weekStart time.Time) (*types.UserTaskProgress, error)
	Save(ctx context.Context, tx *gorm.DB, progress *types.UserTaskProgress) error
	CountCompletedForWeek(ctx context.Context, tx *gorm.DB, userID uuid.UUID, weekStart time.Time) (int64, error)
}

type userTaskProgressRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserTaskProgressRepo(db *gorm.DB, baseLog *logger.Logger) UserTaskProgressRepo {
	repoLog := baseLog.With("repo", "UserTaskProgressRepo")
	return &userTaskProgressRepo{db: db, log: repoLog}
}

func (utpr *userTaskProgressRepo) GetOrCreate(ctx context.Context, tx *gorm.DB, userID, taskID uuid.UUID, weekStart time.Time) (*types.UserTaskProgress, error) {
	transaction := tx
	if transaction == nil {
		transaction = utpr.db
	}

	var result types.UserTaskProgress
	if err := transaction.WithContext(ctx).
		Where("user_id = ? AND task_id = ? AND week_start = ?", userID, taskID, weekStart).
		Attrs(types.UserTaskProgress{
			ID:        uuid.New(),
			UserID:    userID,
			TaskID:    taskID,
			WeekStart: weekStart,
		}).
		FirstOrCreate(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (utpr *userTaskProgressRepo) Save(ctx context.Context, tx *gorm.DB, progress *types.UserTaskProgress) error {
	transaction := tx
	if transaction == nil {
		transaction = utpr.db
	}
	return transaction.WithContext(ctx).Save(progress).Error
}

func (utpr *userTaskProgressRepo) CountCompletedForWeek(ctx context.Context, tx *gorm.DB, userID uuid.UUID, weekStart time.Time) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = utpr.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.UserTaskProgress{}).
		Where("user_id = ? AND week_start = ? AND is_completed = ?", userID, weekStart, true).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
