package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vietlingo/vietlingo-backend/internal/logger"
	"github.com/vietlingo/vietlingo-backend/internal/types"
)

type WeeklyQuestionProgressRepo interface {
	GetOrCreate(ctx context.Context, tx *gorm.DB, userID, questionSetID uuid.UUID) (*types.WeeklyQuestionProgress, error)
	Save(ctx context.Context, tx *gorm.DB, progress *types.WeeklyQuestionProgress) error
}

type weeklyQuestionProgressRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewWeeklyQuestionProgressRepo(db *gorm.DB, baseLog *logger.Logger) WeeklyQuestionProgressRepo {
	repoLog := baseLog.With("repo", "WeeklyQuestionProgressRepo")
	return &weeklyQuestionProgressRepo{db: db, log: repoLog}
}

func (wqpr *weeklyQuestionProgressRepo) GetOrCreate(ctx context.Context, tx *gorm.DB, userID, questionSetID uuid.UUID) (*types.WeeklyQuestionProgress, error) {
	transaction := tx
	if transaction == nil {
		transaction = wqpr.db
	}

	var result types.WeeklyQuestionProgress
	if err := transaction.WithContext(ctx).
		Where("user_id = ? AND question_set_id = ?", userID, questionSetID).
		Attrs(types.WeeklyQuestionProgress{
			ID:            uuid.New(),
			UserID:        userID,
			QuestionSetID: questionSetID,
		}).
		FirstOrCreate(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (wqpr *weeklyQuestionProgressRepo) Save(ctx context.Context, tx *gorm.DB, progress *types.WeeklyQuestionProgress) error {
	transaction := tx
	if transaction == nil {
		transaction = wqpr.db
	}
	return transaction.WithContext(ctx).Save(progress).Error
}
