package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vietlingo/vietlingo-backend/internal/logger"
	"github.com/vietlingo/vietlingo-backend/internal/types"
)

type DailyLearningQuestionRepo interface {
	GetBySessionAndQuestion(ctx context.Context, tx *gorm.DB, sessionID, questionID uuid.UUID) (*types.DailyLearningQuestion, error)
	ListBySession(ctx context.Context, tx *gorm.DB, sessionID uuid.UUID) ([]*types.DailyLearningQuestion, error)
	Create(ctx context.Context, tx *gorm.DB, record *types.DailyLearningQuestion) error
	Save(ctx context.Context, tx *gorm.DB, record *types.DailyLearningQuestion) error
	DeleteBySession(ctx context.Context, tx *gorm.DB, sessionID uuid.UUID) error
}

type dailyLearningQuestionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewDailyLearningQuestionRepo(db *gorm.DB, baseLog *logger.Logger) DailyLearningQuestionRepo {
	repoLog := baseLog.With("repo", "DailyLearningQuestionRepo")
	return &dailyLearningQuestionRepo{db: db, log: repoLog}
}

func (dlqr *dailyLearningQuestionRepo) GetBySessionAndQuestion(ctx context.Context, tx *gorm.DB, sessionID, questionID uuid.UUID) (*types.DailyLearningQuestion, error) {
	transaction := tx
	if transaction == nil {
		transaction = dlqr.db
	}

	var result types.DailyLearningQuestion
	if err := transaction.WithContext(ctx).
		Where("session_id = ? AND question_id = ?", sessionID, questionID).
		First(&result).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}

func (dlqr *dailyLearningQuestionRepo) ListBySession(ctx context.Context, tx *gorm.DB, sessionID uuid.UUID) ([]*types.DailyLearningQuestion, error) {
	transaction := tx
	if transaction == nil {
		transaction = dlqr.db
	}

	var results []*types.DailyLearningQuestion
	if err := transaction.WithContext(ctx).
		Preload("Question").
		Preload("Question.Topic").
		Where("session_id = ?", sessionID).
		Order("created_at asc").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (dlqr *dailyLearningQuestionRepo) Create(ctx context.Context, tx *gorm.DB, record *types.DailyLearningQuestion) error {
	transaction := tx
	if transaction == nil {
		transaction = dlqr.db
	}
	return transaction.WithContext(ctx).Create(record).Error
}

func (dlqr *dailyLearningQuestionRepo) Save(ctx context.Context, tx *gorm.DB, record *types.DailyLearningQuestion) error {
	transaction := tx
	if transaction == nil {
		transaction = dlqr.db
	}
	return transaction.WithContext(ctx).Save(record).Error
}

func (dlqr *dailyLearningQuestionRepo) DeleteBySession(ctx context.Context, tx *gorm.DB, sessionID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = dlqr.db
	}
	return transaction.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Delete(&types.DailyLearningQuestion{}).Error
}
