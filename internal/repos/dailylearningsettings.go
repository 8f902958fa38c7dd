package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vietlingo/vietlingo-backend/internal/logger"
	"github.com/vietlingo/vietlingo-backend/internal/types"
)

type DailyLearningSettingsRepo interface {
	GetByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.DailyLearningSettings, error)
	GetOrCreate(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.DailyLearningSettings, error)
	Save(ctx context.Context, tx *gorm.DB, settings *types.DailyLearningSettings) error
}

type dailyLearningSettingsRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewDailyLearningSettingsRepo(db *gorm.DB, baseLog *logger.Logger) DailyLearningSettingsRepo {
	repoLog := baseLog.With("repo", "DailyLearningSettingsRepo")
	return &dailyLearningSettingsRepo{db: db, log: repoLog}
}

func (dlser *dailyLearningSettingsRepo) GetByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.DailyLearningSettings, error) {
	transaction := tx
	if transaction == nil {
		transaction = dlser.db
	}

	var result types.DailyLearningSettings
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&result).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}

func (dlser *dailyLearningSettingsRepo) GetOrCreate(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.DailyLearningSettings, error) {
	transaction := tx
	if transaction == nil {
		transaction = dlser.db
	}

	var result types.DailyLearningSettings
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Attrs(types.DailyLearningSettings{
			ID:                  uuid.New(),
			UserID:              userID,
			DailyTarget:         10,
			PreferredDifficulty: types.DifficultyMedium,
			ExerciseTypes:       types.ExerciseTypeTranslation + "," + types.ExerciseTypeListening,
			ReminderEnabled:     true,
			ReminderTime:        "09:00:00",
			AutoPlayAudio:       true,
			SpeechRate:          1.0,
		}).
		FirstOrCreate(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (dlser *dailyLearningSettingsRepo) Save(ctx context.Context, tx *gorm.DB, settings *types.DailyLearningSettings) error {
	transaction := tx
	if transaction == nil {
		transaction = dlser.db
	}
	return transaction.WithContext(ctx).Save(settings).Error
}
