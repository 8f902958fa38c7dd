package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vietlingo/vietlingo-backend/internal/logger"
	"github.com/vietlingo/vietlingo-backend/internal/types"
)

type DailyLearningStreakRepo interface {
	GetOrCreate(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.DailyLearningStreak, error)
	Save(ctx context.Context, tx *gorm.DB, streak *types.DailyLearningStreak) error
}

type dailyLearningStreakRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewDailyLearningStreakRepo(db *gorm.DB, baseLog *logger.Logger) DailyLearningStreakRepo {
	repoLog := baseLog.With("repo", "DailyLearningStreakRepo")
	return &dailyLearningStreakRepo{db: db, log: repoLog}
}

func (dlstr *dailyLearningStreakRepo) GetOrCreate(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.DailyLearningStreak, error) {
	transaction := tx
	if transaction == nil {
		transaction = dlstr.db
	}

	var result types.DailyLearningStreak
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Attrs(types.DailyLearningStreak{
			ID:     uuid.New(),
			UserID: userID,
		}).
		FirstOrCreate(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (dlstr *dailyLearningStreakRepo) Save(ctx context.Context, tx *gorm.DB, streak *types.DailyLearningStreak) error {
	transaction := tx
	if transaction == nil {
		transaction = dlstr.db
	}
	return transaction.WithContext(ctx).Save(streak).Error
}
