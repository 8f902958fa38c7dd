package repos

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/vietlingo/vietlingo-backend/internal/repos/testutil"
	"github.com/vietlingo/vietlingo-backend/internal/types"
)

func TestDailyLearningSessionRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := testutil.Logger(t)
	ctx := context.Background()

	repo := NewDailyLearningSessionRepo(tx, log)
	user := testutil.SeedUser(t, ctx, tx, "session-repo")

	day1 := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	day2 := day1.AddDate(0, 0, 1)

	s1 := testutil.SeedSession(t, ctx, tx, user.ID, day1, types.ExerciseTypeTranslation, 10)
	testutil.SeedSession(t, ctx, tx, user.ID, day1, types.ExerciseTypeListening, 10)
	s3 := testutil.SeedSession(t, ctx, tx, user.ID, day2, types.ExerciseTypeTranslation, 10)

	got, err := repo.GetForDay(ctx, tx, user.ID, day1, types.ExerciseTypeTranslation)
	if err != nil {
		t.Fatalf("GetForDay: %v", err)
	}
	if got == nil || got.ID != s1.ID {
		t.Fatalf("GetForDay: got %+v, want %s", got, s1.ID)
	}
	if got, err := repo.GetForDay(ctx, tx, user.ID, day2, types.ExerciseTypeListening); err != nil || got != nil {
		t.Fatalf("GetForDay missing: err=%v got=%v", err, got)
	}

	sessions, err := repo.ListForDay(ctx, tx, user.ID, day1)
	if err != nil {
		t.Fatalf("ListForDay: %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("ListForDay: len=%d, want 2", len(sessions))
	}

	if got, err := repo.GetByIDForUser(ctx, tx, s3.ID, user.ID); err != nil || got == nil {
		t.Fatalf("GetByIDForUser: err=%v got=%v", err, got)
	}
	if got, err := repo.GetByIDForUser(ctx, tx, s3.ID, uuid.New()); err != nil || got != nil {
		t.Fatalf("GetByIDForUser wrong user: err=%v got=%v", err, got)
	}

	results, total, err := repo.ListRange(ctx, tx, user.ID, day1, day2, 1, 2)
	if err != nil {
		t.Fatalf("ListRange: %v", err)
	}
	if total != 3 || len(results) != 2 {
		t.Fatalf("ListRange: total=%d len=%d", total, len(results))
	}
	if !results[0].SessionDate.Equal(day2) {
		t.Fatalf("ListRange order: first session date %v, want %v", results[0].SessionDate, day2)
	}

	// Summaries only cover sessions on or after the cutoff.
	s1.CompletedQuestions = 4
	s1.CorrectAnswers = 3
	s1.PointsEarned = 25
	s1.IsCompleted = true
	if err := repo.Save(ctx, tx, s1); err != nil {
		t.Fatalf("Save: %v", err)
	}
	s3.CompletedQuestions = 2
	s3.CorrectAnswers = 1
	s3.PointsEarned = 8
	if err := repo.Save(ctx, tx, s3); err != nil {
		t.Fatalf("Save: %v", err)
	}

	stats, err := repo.SummarizeSince(ctx, tx, user.ID, day1)
	if err != nil {
		t.Fatalf("SummarizeSince: %v", err)
	}
	if stats.TotalSessions != 3 || stats.CompletedSessions != 1 {
		t.Fatalf("stats sessions: %+v", stats)
	}
	if stats.TotalQuestions != 6 || stats.TotalCorrect != 4 || stats.TotalPoints != 33 {
		t.Fatalf("stats totals: %+v", stats)
	}
	if stats.DaysActive != 2 {
		t.Fatalf("stats days active: %d, want 2", stats.DaysActive)
	}

	stats, err = repo.SummarizeSince(ctx, tx, user.ID, day2)
	if err != nil {
		t.Fatalf("SummarizeSince cutoff: %v", err)
	}
	if stats.TotalSessions != 1 || stats.TotalPoints != 8 {
		t.Fatalf("stats after cutoff: %+v", stats)
	}
}
