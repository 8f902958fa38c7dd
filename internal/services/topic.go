package services

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vietlingo/vietlingo-backend/internal/apierr"
	"github.com/vietlingo/vietlingo-backend/internal/logger"
	"github.com/vietlingo/vietlingo-backend/internal/normalization"
	"github.com/vietlingo/vietlingo-backend/internal/repos"
	"github.com/vietlingo/vietlingo-backend/internal/types"
)

type TopicInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type TopicUpdate struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Icon        *string `json:"icon"`
}

type TopicService interface {
	List(ctx context.Context) ([]*types.Topic, error)
	Get(ctx context.Context, topicID uuid.UUID) (*types.Topic, error)
	Create(ctx context.Context, input TopicInput) (*types.Topic, error)
	Update(ctx context.Context, topicID uuid.UUID, update TopicUpdate) (*types.Topic, error)
	Delete(ctx context.Context, topicID uuid.UUID) error
}

type topicService struct {
	db        *gorm.DB
	topicRepo repos.TopicRepo
	log       *logger.Logger
}

func NewTopicService(db *gorm.DB, topicRepo repos.TopicRepo, baseLog *logger.Logger) TopicService {
	serviceLog := baseLog.With("service", "TopicService")
	return &topicService{db: db, topicRepo: topicRepo, log: serviceLog}
}

func (ts *topicService) List(ctx context.Context) ([]*types.Topic, error) {
	return ts.topicRepo.List(ctx, nil)
}

func (ts *topicService) Get(ctx context.Context, topicID uuid.UUID) (*types.Topic, error) {
	topic, err := ts.topicRepo.GetByID(ctx, nil, topicID)
	if err != nil {
		return nil, err
	}
	if topic == nil {
		return nil, apierr.NotFound("topic %s not found", topicID)
	}
	return topic, nil
}

func (ts *topicService) Create(ctx context.Context, input TopicInput) (*types.Topic, error) {
	name := normalization.TrimInputString(input.Name)
	if name == "" {
		return nil, apierr.InvalidInput("name is required")
	}

	topic := &types.Topic{
		ID:          uuid.New(),
		Name:        name,
		Description: input.Description,
		Icon:        input.Icon,
	}
	if err := ts.topicRepo.Create(ctx, nil, topic); err != nil {
		return nil, err
	}
	ts.log.Info("topic created", "topic_id", topic.ID)
	return topic, nil
}

func (ts *topicService) Update(ctx context.Context, topicID uuid.UUID, update TopicUpdate) (*types.Topic, error) {
	topic, err := ts.topicRepo.GetByID(ctx, nil, topicID)
	if err != nil {
		return nil, err
	}
	if topic == nil {
		return nil, apierr.NotFound("topic %s not found", topicID)
	}

	if update.Name != nil {
		name := normalization.TrimInputString(*update.Name)
		if name == "" {
			return nil, apierr.InvalidInput("name cannot be empty")
		}
		topic.Name = name
	}
	if update.Description != nil {
		topic.Description = *update.Description
	}
	if update.Icon != nil {
		topic.Icon = *update.Icon
	}

	if err := ts.topicRepo.Save(ctx, nil, topic); err != nil {
		return nil, err
	}
	return topic, nil
}

func (ts *topicService) Delete(ctx context.Context, topicID uuid.UUID) error {
	topic, err := ts.topicRepo.GetByID(ctx, nil, topicID)
	if err != nil {
		return err
	}
	if topic == nil {
		return apierr.NotFound("topic %s not found", topicID)
	}
	if err := ts.topicRepo.Delete(ctx, nil, topicID); err != nil {
		return err
	}
	ts.log.Info("topic deleted", "topic_id", topicID)
	return nil
}
