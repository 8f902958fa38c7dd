package repos

import (
	"context"
	"testing"
	"time"

	"github.com/vietlingo/vietlingo-backend/internal/repos/testutil"
)

func TestDailyTaskCompletionRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := testutil.Logger(t)
	ctx := context.Background()

	repo := NewDailyTaskCompletionRepo(tx, log)
	user := testutil.SeedUser(t, ctx, tx, "completion-repo")

	day1 := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	day2 := day1.AddDate(0, 0, 1)

	if got, err := repo.GetByDate(ctx, tx, user.ID, day1); err != nil || got != nil {
		t.Fatalf("GetByDate before create: err=%v got=%v", err, got)
	}

	completion, err := repo.GetOrCreate(ctx, tx, user.ID, day1)
	if err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}
	completion.QuestionsAnswered = 5
	completion.CorrectAnswers = 4
	completion.PointsEarned = 12
	if err := repo.Save(ctx, tx, completion); err != nil {
		t.Fatalf("Save: %v", err)
	}

	again, err := repo.GetOrCreate(ctx, tx, user.ID, day1)
	if err != nil {
		t.Fatalf("GetOrCreate repeat: %v", err)
	}
	if again.ID != completion.ID || again.QuestionsAnswered != 5 {
		t.Fatalf("GetOrCreate did not return the existing row: %+v", again)
	}

	second, err := repo.GetOrCreate(ctx, tx, user.ID, day2)
	if err != nil {
		t.Fatalf("GetOrCreate day2: %v", err)
	}
	second.QuestionsAnswered = 2
	second.CorrectAnswers = 1
	second.PointsEarned = 3
	if err := repo.Save(ctx, tx, second); err != nil {
		t.Fatalf("Save day2: %v", err)
	}

	summary, err := repo.SummarizeSince(ctx, tx, user.ID, day1)
	if err != nil {
		t.Fatalf("SummarizeSince: %v", err)
	}
	if summary.TotalQuestions != 7 || summary.CorrectAnswers != 5 || summary.PointsEarned != 15 {
		t.Fatalf("summary totals: %+v", summary)
	}
	if summary.DaysActive != 2 {
		t.Fatalf("days active = %d, want 2", summary.DaysActive)
	}

	summary, err = repo.SummarizeSince(ctx, tx, user.ID, day2)
	if err != nil {
		t.Fatalf("SummarizeSince cutoff: %v", err)
	}
	if summary.TotalQuestions != 2 || summary.DaysActive != 1 {
		t.Fatalf("summary after cutoff: %+v", summary)
	}
}
