package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vietlingo/vietlingo-backend/internal/logger"
	"github.com/vietlingo/vietlingo-backend/internal/repos"
	"github.com/vietlingo/vietlingo-backend/internal/types"
	"github.com/vietlingo/vietlingo-backend/internal/utils"
)

const (
	LeaderboardTotal  = "total"
	LeaderboardWeekly = "weekly"
)

type LeaderboardEntry struct {
	Rank          int       `json:"rank"`
	UserID        uuid.UUID `json:"user_id"`
	Username      string    `json:"username"`
	TotalPoints   int       `json:"total_points"`
	WeeklyPoints  int       `json:"weekly_points"`
	CurrentStreak int       `json:"current_streak"`
	LongestStreak int       `json:"longest_streak"`
}

type LeaderboardResult struct {
	Leaderboard []LeaderboardEntry `json:"leaderboard"`
	Type        string             `json:"type"`
	TotalUsers  int64              `json:"total_users"`
}

// PointsService is the single path for ledger credits and streak updates.
// Callers pass the enclosing transaction so a credit commits or rolls back
// together with the tracker transition that earned it.
type PointsService interface {
	GetOrCreate(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.UserPoints, error)
	Credit(ctx context.Context, tx *gorm.DB, userID uuid.UUID, delta int) (*types.UserPoints, error)
	UpdateStreak(ctx context.Context, tx *gorm.DB, userID uuid.UUID, today time.Time) (*types.UserPoints, error)
	Leaderboard(ctx context.Context, boardType string, limit int) (*LeaderboardResult, error)
}

type pointsService struct {
	userPointsRepo repos.UserPointsRepo
	log            *logger.Logger
}

func NewPointsService(userPointsRepo repos.UserPointsRepo, baseLog *logger.Logger) PointsService {
	serviceLog := baseLog.With("service", "PointsService")
	return &pointsService{userPointsRepo: userPointsRepo, log: serviceLog}
}

func (ps *pointsService) GetOrCreate(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.UserPoints, error) {
	return ps.userPointsRepo.GetOrCreate(ctx, tx, userID)
}

func (ps *pointsService) Credit(ctx context.Context, tx *gorm.DB, userID uuid.UUID, delta int) (*types.UserPoints, error) {
	points, err := ps.userPointsRepo.GetOrCreate(ctx, tx, userID)
	if err != nil {
		return nil, err
	}
	points.TotalPoints += delta
	points.WeeklyPoints += delta
	if err := ps.userPointsRepo.Save(ctx, tx, points); err != nil {
		return nil, err
	}
	ps.log.Debug("credited points", "user_id", userID, "delta", delta)
	return points, nil
}

func (ps *pointsService) UpdateStreak(ctx context.Context, tx *gorm.DB, userID uuid.UUID, today time.Time) (*types.UserPoints, error) {
	today = utils.DateOnly(today)
	points, err := ps.userPointsRepo.GetOrCreate(ctx, tx, userID)
	if err != nil {
		return nil, err
	}

	if points.LastActivityDate != nil && points.LastActivityDate.Equal(today) {
		return points, nil
	}

	yesterday := today.AddDate(0, 0, -1)
	if points.LastActivityDate != nil && points.LastActivityDate.Equal(yesterday) {
		points.CurrentStreak++
	} else {
		points.CurrentStreak = 1
	}
	if points.CurrentStreak > points.LongestStreak {
		points.LongestStreak = points.CurrentStreak
	}
	points.LastActivityDate = &today

	if err := ps.userPointsRepo.Save(ctx, tx, points); err != nil {
		return nil, err
	}
	return points, nil
}

func (ps *pointsService) Leaderboard(ctx context.Context, boardType string, limit int) (*LeaderboardResult, error) {
	if boardType != LeaderboardWeekly {
		boardType = LeaderboardTotal
	}
	if limit < 1 {
		limit = 10
	}

	var (
		rows []*types.UserPoints
		err  error
	)
	if boardType == LeaderboardWeekly {
		rows, err = ps.userPointsRepo.ListTopByWeekly(ctx, nil, limit)
	} else {
		rows, err = ps.userPointsRepo.ListTopByTotal(ctx, nil, limit)
	}
	if err != nil {
		return nil, err
	}

	totalUsers, err := ps.userPointsRepo.Count(ctx, nil)
	if err != nil {
		return nil, err
	}

	entries := make([]LeaderboardEntry, 0, len(rows))
	for i, row := range rows {
		entry := LeaderboardEntry{
			Rank:          i + 1,
			UserID:        row.UserID,
			TotalPoints:   row.TotalPoints,
			WeeklyPoints:  row.WeeklyPoints,
			CurrentStreak: row.CurrentStreak,
			LongestStreak: row.LongestStreak,
		}
		if row.User != nil {
			entry.Username = row.User.Username
		}
		entries = append(entries, entry)
	}

	return &LeaderboardResult{
		Leaderboard: entries,
		Type:        boardType,
		TotalUsers:  totalUsers,
	}, nil
}
