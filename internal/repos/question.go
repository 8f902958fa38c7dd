package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vietlingo/vietlingo-backend/internal/logger"
	"github.com/vietlingo/vietlingo-backend/internal/types"
)

// QuestionFilter holds the list-endpoint filters; zero values mean "no
// filter". Page and PageSize are 1-based pagination.
type QuestionFilter struct {
	TopicID    *uuid.UUID
	Difficulty string
	Search     string
	Page       int
	PageSize   int
}

type QuestionRepo interface {
	List(ctx context.Context, tx *gorm.DB, filter QuestionFilter) ([]*types.Question, int64, error)
	ListCandidates(ctx context.Context, tx *gorm.DB, difficulty string, topicID *uuid.UUID) ([]*types.Question, error)
	ListAll(ctx context.Context, tx *gorm.DB) ([]*types.Question, error)
	GetByID(ctx context.Context, tx *gorm.DB, questionID uuid.UUID) (*types.Question, error)
	Create(ctx context.Context, tx *gorm.DB, question *types.Question) error
	Save(ctx context.Context, tx *gorm.DB, question *types.Question) error
	Delete(ctx context.Context, tx *gorm.DB, questionID uuid.UUID) error
	GetOrCreateByTexts(ctx context.Context, tx *gorm.DB, question *types.Question) (*types.Question, error)
}

type questionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewQuestionRepo(db *gorm.DB, baseLog *logger.Logger) QuestionRepo {
	repoLog := baseLog.With("repo", "QuestionRepo")
	return &questionRepo{db: db, log: repoLog}
}

func (qr *questionRepo) List(ctx context.Context, tx *gorm.DB, filter QuestionFilter) ([]*types.Question, int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = qr.db
	}

	query := transaction.WithContext(ctx).Model(&types.Question{})
	if filter.TopicID != nil {
		query = query.Where("topic_id = ?", *filter.TopicID)
	}
	if filter.Difficulty != "" {
		query = query.Where("difficulty = ?", filter.Difficulty)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("vietnamese_text ILIKE ? OR english_text ILIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 {
		pageSize = 20
	}

	var results []*types.Question
	if err := query.
		Preload("Topic").
		Order("created_at desc").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&results).Error; err != nil {
		return nil, 0, err
	}
	return results, total, nil
}

func (qr *questionRepo) ListCandidates(ctx context.Context, tx *gorm.DB, difficulty string, topicID *uuid.UUID) ([]*types.Question, error) {
	transaction := tx
	if transaction == nil {
		transaction = qr.db
	}

	query := transaction.WithContext(ctx).Where("difficulty = ?", difficulty)
	if topicID != nil {
		query = query.Where("topic_id = ?", *topicID)
	}

	var results []*types.Question
	if err := query.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (qr *questionRepo) ListAll(ctx context.Context, tx *gorm.DB) ([]*types.Question, error) {
	transaction := tx
	if transaction == nil {
		transaction = qr.db
	}

	var results []*types.Question
	if err := transaction.WithContext(ctx).Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (qr *questionRepo) GetByID(ctx context.Context, tx *gorm.DB, questionID uuid.UUID) (*types.Question, error) {
	transaction := tx
	if transaction == nil {
		transaction = qr.db
	}

	var result types.Question
	if err := transaction.WithContext(ctx).
		Preload("Topic").
		Where("id = ?", questionID).
		First(&result).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}

func (qr *questionRepo) Create(ctx context.Context, tx *gorm.DB, question *types.Question) error {
	transaction := tx
	if transaction == nil {
		transaction = qr.db
	}
	return transaction.WithContext(ctx).Create(question).Error
}

func (qr *questionRepo) Save(ctx context.Context, tx *gorm.DB, question *types.Question) error {
	transaction := tx
	if transaction == nil {
		transaction = qr.db
	}
	return transaction.WithContext(ctx).Save(question).Error
}

func (qr *questionRepo) Delete(ctx context.Context, tx *gorm.DB, questionID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = qr.db
	}
	return transaction.WithContext(ctx).
		Where("id = ?", questionID).
		Delete(&types.Question{}).Error
}

func (qr *questionRepo) GetOrCreateByTexts(ctx context.Context, tx *gorm.DB, question *types.Question) (*types.Question, error) {
	transaction := tx
	if transaction == nil {
		transaction = qr.db
	}

	var result types.Question
	if err := transaction.WithContext(ctx).
		Where(types.Question{
			VietnameseText: question.VietnameseText,
			EnglishText:    question.EnglishText,
		}).
		Attrs(types.Question{
			ID:         uuid.New(),
			TopicID:    question.TopicID,
			Difficulty: question.Difficulty,
		}).
		FirstOrCreate(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}
