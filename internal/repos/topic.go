package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vietlingo/vietlingo-backend/internal/logger"
	"github.com/vietlingo/vietlingo-backend/internal/types"
)

type TopicRepo interface {
	List(ctx context.Context, tx *gorm.DB) ([]*types.Topic, error)
	GetByID(ctx context.Context, tx *gorm.DB, topicID uuid.UUID) (*types.Topic, error)
	Create(ctx context.Context, tx *gorm.DB, topic *types.Topic) error
	Save(ctx context.Context, tx *gorm.DB, topic *types.Topic) error
	Delete(ctx context.Context, tx *gorm.DB, topicID uuid.UUID) error
	GetOrCreateByName(ctx context.Context, tx *gorm.DB, name, description string) (*types.Topic, error)
}

type topicRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTopicRepo(db *gorm.DB, baseLog *logger.Logger) TopicRepo {
	repoLog := baseLog.With("repo", "TopicRepo")
	return &topicRepo{db: db, log: repoLog}
}

func (tr *topicRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Topic, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}

	var results []*types.Topic
	if err := transaction.WithContext(ctx).
		Order("name asc").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (tr *topicRepo) GetByID(ctx context.Context, tx *gorm.DB, topicID uuid.UUID) (*types.Topic, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}

	var result types.Topic
	if err := transaction.WithContext(ctx).
		Where("id = ?", topicID).
		First(&result).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}

func (tr *topicRepo) Create(ctx context.Context, tx *gorm.DB, topic *types.Topic) error {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	return transaction.WithContext(ctx).Create(topic).Error
}

func (tr *topicRepo) Save(ctx context.Context, tx *gorm.DB, topic *types.Topic) error {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	return transaction.WithContext(ctx).Save(topic).Error
}

func (tr *topicRepo) Delete(ctx context.Context, tx *gorm.DB, topicID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	return transaction.WithContext(ctx).
		Where("id = ?", topicID).
		Delete(&types.Topic{}).Error
}

func (tr *topicRepo) GetOrCreateByName(ctx context.Context, tx *gorm.DB, name, description string) (*types.Topic, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}

	var result types.Topic
	if err := transaction.WithContext(ctx).
		Where(types.Topic{Name: name}).
		Attrs(types.Topic{ID: uuid.New(), Description: description}).
		FirstOrCreate(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}
