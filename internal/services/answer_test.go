package services

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/vietlingo/vietlingo-backend/internal/repos"
	"github.com/vietlingo/vietlingo-backend/internal/repos/testutil"
	"github.com/vietlingo/vietlingo-backend/internal/types"
)

func newAnswerServiceForTest(t *testing.T) (AnswerService, *testDeps) {
	t.Helper()
	deps := newTestDeps(t)
	svc := NewAnswerService(
		deps.tx,
		repos.NewQuestionRepo(deps.tx, deps.log),
		repos.NewUserRepo(deps.tx, deps.log),
		repos.NewUserAnswerRepo(deps.tx, deps.log),
		deps.log,
	)
	return svc, deps
}

func TestCheckAnswer(t *testing.T) {
	svc, deps := newAnswerServiceForTest(t)
	ctx := context.Background()

	q := testutil.SeedQuestion(t, ctx, deps.tx, nil, "Tôi đi học", "I go to school", types.DifficultyMedium)

	result, err := svc.CheckAnswer(ctx, q.ID, "I go to school", "")
	if err != nil {
		t.Fatalf("CheckAnswer: %v", err)
	}
	if !result.IsCorrect {
		t.Fatalf("exact answer graded incorrect: %+v", result)
	}
	if result.CorrectAnswer != "I go to school" {
		t.Fatalf("correct_answer = %q", result.CorrectAnswer)
	}

	result, err = svc.CheckAnswer(ctx, q.ID, "something else entirely", "")
	if err != nil {
		t.Fatalf("CheckAnswer wrong: %v", err)
	}
	if result.IsCorrect {
		t.Fatal("wrong answer graded correct")
	}
	if result.Message == "" {
		t.Fatal("expected a feedback message")
	}

	if _, err := svc.CheckAnswer(ctx, uuid.New(), "Hello", ""); err == nil {
		t.Fatal("expected error for unknown question")
	}
	if _, err := svc.CheckAnswer(ctx, q.ID, "   ", ""); err == nil {
		t.Fatal("expected error for blank answer")
	}
}

func TestCheckAnswerRecordsHistory(t *testing.T) {
	svc, deps := newAnswerServiceForTest(t)
	ctx := context.Background()

	q := testutil.SeedQuestion(t, ctx, deps.tx, nil, "Xin chào", "Hello", types.DifficultyEasy)

	// An unknown username is created on the fly; every graded submission
	// appends one history row.
	for _, answer := range []string{"Hello", "Helo", "wrong"} {
		if _, err := svc.CheckAnswer(ctx, q.ID, answer, "history-user"); err != nil {
			t.Fatalf("CheckAnswer(%q): %v", answer, err)
		}
	}

	page, err := svc.History(ctx, "history-user", 1, 20)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if page.Count != 3 {
		t.Fatalf("count = %d, want 3", page.Count)
	}
	if len(page.Results) != 3 {
		t.Fatalf("results = %d, want 3", len(page.Results))
	}

	userRepo := repos.NewUserRepo(deps.tx, deps.log)
	user, err := userRepo.GetByUsername(ctx, deps.tx, "history-user")
	if err != nil {
		t.Fatalf("GetByUsername: %v", err)
	}
	if user == nil {
		t.Fatal("user was not created by the graded submission")
	}

	// Pagination slices the same set.
	page, err = svc.History(ctx, "history-user", 2, 2)
	if err != nil {
		t.Fatalf("History page 2: %v", err)
	}
	if len(page.Results) != 1 {
		t.Fatalf("page 2 results = %d, want 1", len(page.Results))
	}
	if page.TotalPages != 2 {
		t.Fatalf("total pages = %d, want 2", page.TotalPages)
	}
}
