package services

import (
	"context"
	"testing"
	"time"

	"github.com/vietlingo/vietlingo-backend/internal/repos"
	"github.com/vietlingo/vietlingo-backend/internal/repos/testutil"
)

func TestPointsServiceCredit(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := testutil.Logger(t)
	ctx := context.Background()

	user := testutil.SeedUser(t, ctx, tx, "points-credit")
	svc := NewPointsService(repos.NewUserPointsRepo(tx, log), log)

	points, err := svc.Credit(ctx, tx, user.ID, 15)
	if err != nil {
		t.Fatalf("Credit: %v", err)
	}
	if points.TotalPoints != 15 || points.WeeklyPoints != 15 {
		t.Fatalf("after first credit: total=%d weekly=%d", points.TotalPoints, points.WeeklyPoints)
	}

	points, err = svc.Credit(ctx, tx, user.ID, 5)
	if err != nil {
		t.Fatalf("Credit: %v", err)
	}
	if points.TotalPoints != 20 || points.WeeklyPoints != 20 {
		t.Fatalf("after second credit: total=%d weekly=%d", points.TotalPoints, points.WeeklyPoints)
	}
}

func TestPointsServiceUpdateStreak(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := testutil.Logger(t)
	ctx := context.Background()

	user := testutil.SeedUser(t, ctx, tx, "points-streak")
	svc := NewPointsService(repos.NewUserPointsRepo(tx, log), log)

	day1 := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	points, err := svc.UpdateStreak(ctx, tx, user.ID, day1)
	if err != nil {
		t.Fatalf("UpdateStreak day1: %v", err)
	}
	if points.CurrentStreak != 1 || points.LongestStreak != 1 {
		t.Fatalf("day1: current=%d longest=%d", points.CurrentStreak, points.LongestStreak)
	}

	// Same day again is a no-op.
	points, err = svc.UpdateStreak(ctx, tx, user.ID, day1)
	if err != nil {
		t.Fatalf("UpdateStreak day1 repeat: %v", err)
	}
	if points.CurrentStreak != 1 {
		t.Fatalf("same-day repeat changed streak: current=%d", points.CurrentStreak)
	}

	// Consecutive days extend the streak.
	for i := 1; i <= 2; i++ {
		points, err = svc.UpdateStreak(ctx, tx, user.ID, day1.AddDate(0, 0, i))
		if err != nil {
			t.Fatalf("UpdateStreak day%d: %v", i+1, err)
		}
	}
	if points.CurrentStreak != 3 || points.LongestStreak != 3 {
		t.Fatalf("after three consecutive days: current=%d longest=%d", points.CurrentStreak, points.LongestStreak)
	}

	// A gap resets the current streak but keeps the longest.
	points, err = svc.UpdateStreak(ctx, tx, user.ID, day1.AddDate(0, 0, 10))
	if err != nil {
		t.Fatalf("UpdateStreak after gap: %v", err)
	}
	if points.CurrentStreak != 1 {
		t.Fatalf("after gap: current=%d, want 1", points.CurrentStreak)
	}
	if points.LongestStreak != 3 {
		t.Fatalf("after gap: longest=%d, want 3", points.LongestStreak)
	}
}

func TestPointsServiceLeaderboard(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := testutil.Logger(t)
	ctx := context.Background()

	first := testutil.SeedUser(t, ctx, tx, "board-first")
	second := testutil.SeedUser(t, ctx, tx, "board-second")

	svc := NewPointsService(repos.NewUserPointsRepo(tx, log), log)
	if _, err := svc.Credit(ctx, tx, first.ID, 100); err != nil {
		t.Fatalf("Credit: %v", err)
	}
	if _, err := svc.Credit(ctx, tx, second.ID, 40); err != nil {
		t.Fatalf("Credit: %v", err)
	}

	result, err := svc.Leaderboard(ctx, LeaderboardTotal, 10)
	if err != nil {
		t.Fatalf("Leaderboard: %v", err)
	}
	if result.Type != LeaderboardTotal {
		t.Fatalf("type = %q", result.Type)
	}
	if len(result.Leaderboard) < 2 {
		t.Fatalf("expected at least 2 entries, got %d", len(result.Leaderboard))
	}
	if result.Leaderboard[0].Rank != 1 || result.Leaderboard[1].Rank != 2 {
		t.Fatalf("ranks not sequential: %+v", result.Leaderboard[:2])
	}
	if result.Leaderboard[0].TotalPoints < result.Leaderboard[1].TotalPoints {
		t.Fatalf("leaderboard not ordered by total points: %+v", result.Leaderboard[:2])
	}

	// Unknown board types fall back to the total board.
	result, err = svc.Leaderboard(ctx, "bogus", 10)
	if err != nil {
		t.Fatalf("Leaderboard fallback: %v", err)
	}
	if result.Type != LeaderboardTotal {
		t.Fatalf("fallback type = %q", result.Type)
	}
}
