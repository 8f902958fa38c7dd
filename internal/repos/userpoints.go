package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vietlingo/vietlingo-backend/internal/logger"
	"github.com/vietlingo/vietlingo-backend/internal/types"
)

type UserPointsRepo interface {
	GetOrCreate(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.UserPoints, error)
	Save(ctx context.Context, tx *gorm.DB, points *types.UserPoints) error
	ListTopByTotal(ctx context.Context, tx *gorm.DB, limit int) ([]*types.UserPoints, error)
	ListTopByWeekly(ctx context.Context, tx *gorm.DB, limit int) ([]*types.UserPoints, error)
	Count(ctx context.Context, tx *gorm.DB) (int64, error)
}

type userPointsRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserPointsRepo(db *gorm.DB, baseLog *logger.Logger) UserPointsRepo {
	repoLog := baseLog.With("repo", "UserPointsRepo")
	return &userPointsRepo{db: db, log: repoLog}
}

func (upr *userPointsRepo) GetOrCreate(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.UserPoints, error) {
	transaction := tx
	if transaction == nil {
		transaction = upr.db
	}

	var result types.UserPoints
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Attrs(types.UserPoints{
			ID:     uuid.New(),
			UserID: userID,
		}).
		FirstOrCreate(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (upr *userPointsRepo) Save(ctx context.Context, tx *gorm.DB, points *types.UserPoints) error {
	transaction := tx
	if transaction == nil {
		transaction = upr.db
	}
	return transaction.WithContext(ctx).Save(points).Error
}

func (upr *userPointsRepo) ListTopByTotal(ctx context.Context, tx *gorm.DB, limit int) ([]*types.UserPoints, error) {
	transaction := tx
	if transaction == nil {
		transaction = upr.db
	}

	var results []*types.UserPoints
	if err := transaction.WithContext(ctx).
		Preload("User").
		Order("total_points desc, longest_streak desc").
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (upr *userPointsRepo) ListTopByWeekly(ctx context.Context, tx *gorm.DB, limit int) ([]*types.UserPoints, error) {
	transaction := tx
	if transaction == nil {
		transaction = upr.db
	}

	var results []*types.UserPoints
	if err := transaction.WithContext(ctx).
		Preload("User").
		Order("weekly_points desc, current_streak desc").
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (upr *userPointsRepo) Count(ctx context.Context, tx *gorm.DB) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = upr.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.UserPoints{}).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
