package repos

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/vietlingo/vietlingo-backend/internal/repos/testutil"
	"github.com/vietlingo/vietlingo-backend/internal/types"
)

func TestQuestionRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := testutil.Logger(t)
	ctx := context.Background()

	repo := NewQuestionRepo(tx, log)
	topic := testutil.SeedTopic(t, ctx, tx, "Trường học")

	q1 := testutil.SeedQuestion(t, ctx, tx, &topic.ID, "Tôi đi học", "I go to school", types.DifficultyEasy)
	testutil.SeedQuestion(t, ctx, tx, &topic.ID, "Cô ấy đang nấu ăn", "She is cooking", types.DifficultyMedium)
	testutil.SeedQuestion(t, ctx, tx, nil, "Xin chào", "Hello", types.DifficultyMedium)

	if got, err := repo.GetByID(ctx, tx, q1.ID); err != nil || got == nil {
		t.Fatalf("GetByID: err=%v got=%v", err, got)
	}
	if got, err := repo.GetByID(ctx, tx, uuid.New()); err != nil || got != nil {
		t.Fatalf("GetByID missing: err=%v got=%v", err, got)
	}

	results, total, err := repo.List(ctx, tx, QuestionFilter{Difficulty: types.DifficultyMedium})
	if err != nil {
		t.Fatalf("List by difficulty: %v", err)
	}
	if total != 2 || len(results) != 2 {
		t.Fatalf("List by difficulty: total=%d len=%d", total, len(results))
	}

	results, total, err = repo.List(ctx, tx, QuestionFilter{TopicID: &topic.ID})
	if err != nil {
		t.Fatalf("List by topic: %v", err)
	}
	if total != 2 {
		t.Fatalf("List by topic: total=%d", total)
	}
	for _, q := range results {
		if q.Topic == nil || q.Topic.ID != topic.ID {
			t.Fatalf("topic not preloaded: %+v", q)
		}
	}

	// Search is case-insensitive on both text columns.
	results, total, err = repo.List(ctx, tx, QuestionFilter{Search: "COOKING"})
	if err != nil {
		t.Fatalf("List by search: %v", err)
	}
	if total != 1 || results[0].EnglishText != "She is cooking" {
		t.Fatalf("List by search: total=%d results=%+v", total, results)
	}
	if _, total, err = repo.List(ctx, tx, QuestionFilter{Search: "tôi đi"}); err != nil || total != 1 {
		t.Fatalf("List by vietnamese search: err=%v total=%d", err, total)
	}

	results, total, err = repo.List(ctx, tx, QuestionFilter{Page: 2, PageSize: 2})
	if err != nil {
		t.Fatalf("List page 2: %v", err)
	}
	if total != 3 || len(results) != 1 {
		t.Fatalf("List page 2: total=%d len=%d", total, len(results))
	}

	candidates, err := repo.ListCandidates(ctx, tx, types.DifficultyEasy, nil)
	if err != nil {
		t.Fatalf("ListCandidates: %v", err)
	}
	if len(candidates) != 1 || candidates[0].ID != q1.ID {
		t.Fatalf("ListCandidates: %+v", candidates)
	}

	// GetOrCreateByTexts is idempotent on the text pair.
	created, err := repo.GetOrCreateByTexts(ctx, tx, &types.Question{
		VietnameseText: "Một",
		EnglishText:    "One",
		Difficulty:     types.DifficultyEasy,
	})
	if err != nil {
		t.Fatalf("GetOrCreateByTexts: %v", err)
	}
	again, err := repo.GetOrCreateByTexts(ctx, tx, &types.Question{
		VietnameseText: "Một",
		EnglishText:    "One",
		Difficulty:     types.DifficultyHard,
	})
	if err != nil {
		t.Fatalf("GetOrCreateByTexts repeat: %v", err)
	}
	if again.ID != created.ID {
		t.Fatalf("GetOrCreateByTexts created a duplicate: %s vs %s", again.ID, created.ID)
	}

	if err := repo.Delete(ctx, tx, q1.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if got, err := repo.GetByID(ctx, tx, q1.ID); err != nil || got != nil {
		t.Fatalf("GetByID after delete: err=%v got=%v", err, got)
	}
}

func TestTopicRepoGetOrCreateByName(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := testutil.Logger(t)
	ctx := context.Background()

	repo := NewTopicRepo(tx, log)

	topic, err := repo.GetOrCreateByName(ctx, tx, "Gia đình", "Chủ đề Gia đình")
	if err != nil {
		t.Fatalf("GetOrCreateByName: %v", err)
	}
	if topic.Name != "Gia đình" || topic.Description != "Chủ đề Gia đình" {
		t.Fatalf("unexpected topic: %+v", topic)
	}

	again, err := repo.GetOrCreateByName(ctx, tx, "Gia đình", "different description")
	if err != nil {
		t.Fatalf("GetOrCreateByName repeat: %v", err)
	}
	if again.ID != topic.ID {
		t.Fatalf("duplicate topic created: %s vs %s", again.ID, topic.ID)
	}
	if again.Description != "Chủ đề Gia đình" {
		t.Fatalf("existing topic mutated: %+v", again)
	}
}
