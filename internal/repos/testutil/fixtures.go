package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vietlingo/vietlingo-backend/internal/types"
)

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, username string) *types.User {
	tb.Helper()
	u := &types.User{
		ID:       uuid.New(),
		Username: username,
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedTopic(tb testing.TB, ctx context.Context, tx *gorm.DB, name string) *types.Topic {
	tb.Helper()
	topic := &types.Topic{
		ID:          uuid.New(),
		Name:        name,
		Description: "desc",
	}
	if err := tx.WithContext(ctx).Create(topic).Error; err != nil {
		tb.Fatalf("seed topic: %v", err)
	}
	return topic
}

func SeedQuestion(tb testing.TB, ctx context.Context, tx *gorm.DB, topicID *uuid.UUID, vietnamese, english, difficulty string) *types.Question {
	tb.Helper()
	q := &types.Question{
		ID:             uuid.New(),
		TopicID:        topicID,
		VietnameseText: vietnamese,
		EnglishText:    english,
		Difficulty:     difficulty,
	}
	if err := tx.WithContext(ctx).Create(q).Error; err != nil {
		tb.Fatalf("seed question: %v", err)
	}
	return q
}

func SeedWeeklyTask(tb testing.TB, ctx context.Context, tx *gorm.DB, taskType string, targetCount, pointsReward int) *types.WeeklyTask {
	tb.Helper()
	task := &types.WeeklyTask{
		ID:           uuid.New(),
		Title:        "task " + taskType,
		TaskType:     taskType,
		TargetCount:  targetCount,
		PointsReward: pointsReward,
		IsActive:     true,
	}
	if err := tx.WithContext(ctx).Create(task).Error; err != nil {
		tb.Fatalf("seed weekly task: %v", err)
	}
	return task
}

func SeedWeeklySet(tb testing.TB, ctx context.Context, tx *gorm.DB, weekStart time.Time, pointsPerQuestion int, questions []*types.Question) *types.WeeklyQuestionSet {
	tb.Helper()
	set := &types.WeeklyQuestionSet{
		ID:                uuid.New(),
		Title:             "set " + weekStart.Format("2006-01-02"),
		Questions:         questions,
		WeekStart:         weekStart,
		WeekEnd:           weekStart.AddDate(0, 0, 6),
		IsActive:          true,
		PointsPerQuestion: pointsPerQuestion,
	}
	if err := tx.WithContext(ctx).Create(set).Error; err != nil {
		tb.Fatalf("seed weekly set: %v", err)
	}
	return set
}

func SeedSession(tb testing.TB, ctx context.Context, tx *gorm.DB, userID uuid.UUID, date time.Time, exerciseType string, target int) *types.DailyLearningSession {
	tb.Helper()
	s := &types.DailyLearningSession{
		ID:              uuid.New(),
		UserID:          userID,
		SessionDate:     date,
		ExerciseType:    exerciseType,
		TargetQuestions: target,
	}
	if err := tx.WithContext(ctx).Create(s).Error; err != nil {
		tb.Fatalf("seed session: %v", err)
	}
	return s
}
