package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/vietlingo/vietlingo-backend/internal/logger"
	"github.com/vietlingo/vietlingo-backend/internal/types"
)

type UserAnswerRepo interface {
	Create(ctx context.Context, tx *gorm.DB, answer *types.UserAnswer) error
	ListHistory(ctx context.Context, tx *gorm.DB, username string, page, pageSize int) ([]*types.UserAnswer, int64, error)
}

type userAnswerRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserAnswerRepo(db *gorm.DB, baseLog *logger.Logger) UserAnswerRepo {
	repoLog := baseLog.With("repo", "UserAnswerRepo")
	return &userAnswerRepo{db: db, log: repoLog}
}

func (uar *userAnswerRepo) Create(ctx context.Context, tx *gorm.DB, answer *types.UserAnswer) error {
	transaction := tx
	if transaction == nil {
		transaction = uar.db
	}
	return transaction.WithContext(ctx).Create(answer).Error
}

func (uar *userAnswerRepo) ListHistory(ctx context.Context, tx *gorm.DB, username string, page, pageSize int) ([]*types.UserAnswer, int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = uar.db
	}

	query := transaction.WithContext(ctx).Model(&types.UserAnswer{})
	if username != "" {
		query = query.
			Joins(`JOIN "user" ON "user".id = user_answer.user_id`).
			Where(`"user".username = ?`, username)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}

	var results []*types.UserAnswer
	if err := query.
		Preload("User").
		Preload("Question").
		Order("user_answer.created_at desc").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&results).Error; err != nil {
		return nil, 0, err
	}
	return results, total, nil
}
