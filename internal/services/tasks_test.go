package services

import (
	"context"
	"testing"

	"github.com/vietlingo/vietlingo-backend/internal/repos"
	"github.com/vietlingo/vietlingo-backend/internal/repos/testutil"
	"github.com/vietlingo/vietlingo-backend/internal/types"
)

func newTaskServiceForTest(t *testing.T) (TaskService, PointsService, *testDeps) {
	t.Helper()
	deps := newTestDeps(t)
	points := NewPointsService(repos.NewUserPointsRepo(deps.tx, deps.log), deps.log)
	svc := NewTaskService(
		deps.tx,
		repos.NewUserRepo(deps.tx, deps.log),
		repos.NewWeeklyTaskRepo(deps.tx, deps.log),
		repos.NewUserTaskProgressRepo(deps.tx, deps.log),
		repos.NewDailyTaskCompletionRepo(deps.tx, deps.log),
		points,
		deps.log,
	)
	return svc, points, deps
}

func TestTaskServiceIncrementProgressCompletesOnce(t *testing.T) {
	svc, points, deps := newTaskServiceForTest(t)
	ctx := context.Background()

	user := testutil.SeedUser(t, ctx, deps.tx, "task-increment")
	task := testutil.SeedWeeklyTask(t, ctx, deps.tx, types.TaskTypePerfectWeek, 3, 50)

	progress, err := svc.IncrementProgress(ctx, user.Username, task.ID, 2)
	if err != nil {
		t.Fatalf("IncrementProgress: %v", err)
	}
	if progress.CurrentProgress != 2 || progress.IsCompleted {
		t.Fatalf("after first increment: progress=%d completed=%v", progress.CurrentProgress, progress.IsCompleted)
	}

	progress, err = svc.IncrementProgress(ctx, user.Username, task.ID, 2)
	if err != nil {
		t.Fatalf("IncrementProgress: %v", err)
	}
	if !progress.IsCompleted {
		t.Fatal("expected tracker to complete")
	}
	if progress.PointsEarned != 50 {
		t.Fatalf("points_earned = %d, want 50", progress.PointsEarned)
	}
	if progress.CompletedAt == nil {
		t.Fatal("completed_at not set")
	}

	ledger, err := points.GetOrCreate(ctx, deps.tx, user.ID)
	if err != nil {
		t.Fatalf("GetOrCreate points: %v", err)
	}
	if ledger.TotalPoints != 50 {
		t.Fatalf("ledger total = %d, want 50", ledger.TotalPoints)
	}

	// Further increments leave a completed tracker untouched and do not
	// credit again.
	progress, err = svc.IncrementProgress(ctx, user.Username, task.ID, 5)
	if err != nil {
		t.Fatalf("IncrementProgress after completion: %v", err)
	}
	if progress.CurrentProgress != 4 {
		t.Fatalf("completed tracker moved: progress=%d", progress.CurrentProgress)
	}
	ledger, err = points.GetOrCreate(ctx, deps.tx, user.ID)
	if err != nil {
		t.Fatalf("GetOrCreate points: %v", err)
	}
	if ledger.TotalPoints != 50 {
		t.Fatalf("reward credited twice: total=%d", ledger.TotalPoints)
	}
}

func TestTaskServiceRecordDailyActivity(t *testing.T) {
	svc, points, deps := newTaskServiceForTest(t)
	ctx := context.Background()

	user := testutil.SeedUser(t, ctx, deps.tx, "task-activity")
	testutil.SeedWeeklyTask(t, ctx, deps.tx, types.TaskTypeDailyPractice, 2, 20)
	testutil.SeedWeeklyTask(t, ctx, deps.tx, types.TaskTypeCorrectAnswers, 5, 30)

	result, err := svc.RecordDailyActivity(ctx, user.Username, 3, 2, 7)
	if err != nil {
		t.Fatalf("RecordDailyActivity: %v", err)
	}
	if result.DailyCompletion.QuestionsAnswered != 3 ||
		result.DailyCompletion.CorrectAnswers != 2 ||
		result.DailyCompletion.PointsEarned != 7 {
		t.Fatalf("unexpected completion row: %+v", result.DailyCompletion)
	}
	if result.UserPoints.CurrentStreak != 1 {
		t.Fatalf("streak = %d, want 1", result.UserPoints.CurrentStreak)
	}
	if result.UserPoints.TotalPoints != 7 {
		t.Fatalf("total points = %d, want 7", result.UserPoints.TotalPoints)
	}

	// The second report on the same day accumulates counters, leaves the
	// streak alone, and completes the daily practice task (one clamped step
	// per report).
	result, err = svc.RecordDailyActivity(ctx, user.Username, 2, 4, 3)
	if err != nil {
		t.Fatalf("RecordDailyActivity: %v", err)
	}
	if result.DailyCompletion.QuestionsAnswered != 5 || result.DailyCompletion.CorrectAnswers != 6 {
		t.Fatalf("counters did not accumulate: %+v", result.DailyCompletion)
	}
	if result.UserPoints.CurrentStreak != 1 {
		t.Fatalf("same-day streak changed: %d", result.UserPoints.CurrentStreak)
	}

	ledger, err := points.GetOrCreate(ctx, deps.tx, user.ID)
	if err != nil {
		t.Fatalf("GetOrCreate points: %v", err)
	}
	// 7 + 3 activity points, 20 for completing daily practice, 30 for the
	// correct answers task reaching its target of 5 (2 + 4 clamped).
	if ledger.TotalPoints != 60 {
		t.Fatalf("ledger total = %d, want 60", ledger.TotalPoints)
	}
}

func TestTaskServiceCreateValidation(t *testing.T) {
	svc, _, _ := newTaskServiceForTest(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, WeeklyTaskInput{Title: "", TaskType: types.TaskTypeDailyPractice}); err == nil {
		t.Fatal("expected error for missing title")
	}
	if _, err := svc.Create(ctx, WeeklyTaskInput{Title: "x", TaskType: "bogus"}); err == nil {
		t.Fatal("expected error for invalid task type")
	}

	task, err := svc.Create(ctx, WeeklyTaskInput{
		Title:        "Luyện tập hàng ngày",
		TaskType:     types.TaskTypeDailyPractice,
		TargetCount:  0,
		PointsReward: 25,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if task.TargetCount != 1 {
		t.Fatalf("target count not normalized: %d", task.TargetCount)
	}
	if !task.IsActive {
		t.Fatal("new task should be active")
	}
}
