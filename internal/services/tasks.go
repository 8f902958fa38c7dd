package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vietlingo/vietlingo-backend/internal/apierr"
	"github.com/vietlingo/vietlingo-backend/internal/logger"
	"github.com/vietlingo/vietlingo-backend/internal/normalization"
	"github.com/vietlingo/vietlingo-backend/internal/repos"
	"github.com/vietlingo/vietlingo-backend/internal/types"
	"github.com/vietlingo/vietlingo-backend/internal/utils"
)

type WeeklyTaskInput struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	TaskType     string `json:"task_type"`
	TargetCount  int    `json:"target_count"`
	PointsReward int    `json:"points_reward"`
}

type WeeklySummary struct {
	TotalQuestions int   `json:"total_questions"`
	CorrectAnswers int   `json:"correct_answers"`
	PointsEarned   int   `json:"points_earned"`
	DaysActive     int   `json:"days_active"`
	TasksCompleted int64 `json:"tasks_completed"`
}

type TaskDashboard struct {
	WeeklyTasks     []*types.WeeklyTask        `json:"weekly_tasks"`
	UserProgress    []*types.UserTaskProgress  `json:"user_progress"`
	UserPoints      *types.UserPoints          `json:"user_points"`
	DailyCompletion *types.DailyTaskCompletion `json:"daily_completion"`
	WeeklySummary   WeeklySummary              `json:"weekly_summary"`
}

type DailyActivityResult struct {
	UserPoints      *types.UserPoints          `json:"user_points"`
	DailyCompletion *types.DailyTaskCompletion `json:"daily_completion"`
}

// TaskService drives the weekly task trackers. A tracker flips to completed
// exactly once, credits the reward through the points ledger in the same
// transaction, and ignores further increments.
type TaskService interface {
	ListActive(ctx context.Context) ([]*types.WeeklyTask, error)
	Create(ctx context.Context, input WeeklyTaskInput) (*types.WeeklyTask, error)
	Dashboard(ctx context.Context, username string) (*TaskDashboard, error)
	IncrementProgress(ctx context.Context, username string, taskID uuid.UUID, increment int) (*types.UserTaskProgress, error)
	RecordDailyActivity(ctx context.Context, username string, questionsAnswered, correctAnswers, pointsEarned int) (*DailyActivityResult, error)
}

type taskService struct {
	db             *gorm.DB
	userRepo       repos.UserRepo
	taskRepo       repos.WeeklyTaskRepo
	progressRepo   repos.UserTaskProgressRepo
	completionRepo repos.DailyTaskCompletionRepo
	points         PointsService
	log            *logger.Logger
}

func NewTaskService(
	db *gorm.DB,
	userRepo repos.UserRepo,
	taskRepo repos.WeeklyTaskRepo,
	progressRepo repos.UserTaskProgressRepo,
	completionRepo repos.DailyTaskCompletionRepo,
	points PointsService,
	baseLog *logger.Logger,
) TaskService {
	serviceLog := baseLog.With("service", "TaskService")
	return &taskService{
		db:             db,
		userRepo:       userRepo,
		taskRepo:       taskRepo,
		progressRepo:   progressRepo,
		completionRepo: completionRepo,
		points:         points,
		log:            serviceLog,
	}
}

func (ts *taskService) ListActive(ctx context.Context) ([]*types.WeeklyTask, error) {
	return ts.taskRepo.ListActive(ctx, nil)
}

func (ts *taskService) Create(ctx context.Context, input WeeklyTaskInput) (*types.WeeklyTask, error) {
	title := normalization.TrimInputString(input.Title)
	if title == "" {
		return nil, apierr.InvalidInput("title is required")
	}
	if !types.ValidTaskType(input.TaskType) {
		return nil, apierr.InvalidInput("invalid task_type %q", input.TaskType)
	}
	targetCount := input.TargetCount
	if targetCount < 1 {
		targetCount = 1
	}
	pointsReward := input.PointsReward
	if pointsReward < 0 {
		return nil, apierr.InvalidInput("points_reward cannot be negative")
	}

	task := &types.WeeklyTask{
		ID:           uuid.New(),
		Title:        title,
		Description:  input.Description,
		TaskType:     input.TaskType,
		TargetCount:  targetCount,
		PointsReward: pointsReward,
		IsActive:     true,
	}
	if err := ts.taskRepo.Create(ctx, nil, task); err != nil {
		return nil, err
	}
	ts.log.Info("weekly task created", "task_id", task.ID, "task_type", task.TaskType)
	return task, nil
}

func (ts *taskService) Dashboard(ctx context.Context, username string) (*TaskDashboard, error) {
	if username == "" {
		return nil, apierr.InvalidInput("username is required")
	}
	user, err := ts.userRepo.GetByUsername(ctx, nil, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apierr.NotFound("user %s not found", username)
	}

	today := utils.DateOnly(time.Now())
	weekStart := utils.WeekStart(today)

	var dashboard *TaskDashboard
	err = ts.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		points, err := ts.points.GetOrCreate(ctx, tx, user.ID)
		if err != nil {
			return err
		}

		tasks, err := ts.taskRepo.ListActive(ctx, tx)
		if err != nil {
			return err
		}

		progressList := make([]*types.UserTaskProgress, 0, len(tasks))
		for _, task := range tasks {
			progress, err := ts.progressRepo.GetOrCreate(ctx, tx, user.ID, task.ID, weekStart)
			if err != nil {
				return err
			}
			progressList = append(progressList, progress)
		}

		dailyCompletion, err := ts.completionRepo.GetByDate(ctx, tx, user.ID, today)
		if err != nil {
			return err
		}

		activity, err := ts.completionRepo.SummarizeSince(ctx, tx, user.ID, weekStart)
		if err != nil {
			return err
		}
		tasksCompleted, err := ts.progressRepo.CountCompletedForWeek(ctx, tx, user.ID, weekStart)
		if err != nil {
			return err
		}

		dashboard = &TaskDashboard{
			WeeklyTasks:     tasks,
			UserProgress:    progressList,
			UserPoints:      points,
			DailyCompletion: dailyCompletion,
			WeeklySummary: WeeklySummary{
				TotalQuestions: activity.TotalQuestions,
				CorrectAnswers: activity.CorrectAnswers,
				PointsEarned:   activity.PointsEarned,
				DaysActive:     activity.DaysActive,
				TasksCompleted: tasksCompleted,
			},
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dashboard, nil
}

func (ts *taskService) IncrementProgress(ctx context.Context, username string, taskID uuid.UUID, increment int) (*types.UserTaskProgress, error) {
	if username == "" {
		return nil, apierr.InvalidInput("username is required")
	}
	if increment < 1 {
		increment = 1
	}

	user, err := ts.userRepo.GetByUsername(ctx, nil, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apierr.NotFound("user %s not found", username)
	}
	task, err := ts.taskRepo.GetByID(ctx, nil, taskID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, apierr.NotFound("task %s not found", taskID)
	}

	weekStart := utils.WeekStart(time.Now())

	var progress *types.UserTaskProgress
	err = ts.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		progress, err = ts.advance(ctx, tx, user.ID, task, weekStart, increment, false)
		return err
	})
	if err != nil {
		return nil, err
	}
	return progress, nil
}

func (ts *taskService) RecordDailyActivity(ctx context.Context, username string, questionsAnswered, correctAnswers, pointsEarned int) (*DailyActivityResult, error) {
	if username == "" {
		return nil, apierr.InvalidInput("username is required")
	}
	if questionsAnswered < 0 || correctAnswers < 0 || pointsEarned < 0 {
		return nil, apierr.InvalidInput("activity counters cannot be negative")
	}

	user, err := ts.userRepo.GetByUsername(ctx, nil, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apierr.NotFound("user %s not found", username)
	}

	today := utils.DateOnly(time.Now())
	weekStart := utils.WeekStart(today)

	var result *DailyActivityResult
	err = ts.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := ts.points.UpdateStreak(ctx, tx, user.ID, today); err != nil {
			return err
		}

		completion, err := ts.completionRepo.GetOrCreate(ctx, tx, user.ID, today)
		if err != nil {
			return err
		}
		completion.QuestionsAnswered += questionsAnswered
		completion.CorrectAnswers += correctAnswers
		completion.PointsEarned += pointsEarned
		if err := ts.completionRepo.Save(ctx, tx, completion); err != nil {
			return err
		}

		points, err := ts.points.Credit(ctx, tx, user.ID, pointsEarned)
		if err != nil {
			return err
		}

		if err := ts.advanceActivityTasks(ctx, tx, user.ID, weekStart, correctAnswers); err != nil {
			return err
		}

		result = &DailyActivityResult{UserPoints: points, DailyCompletion: completion}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// advanceActivityTasks moves the automatic trackers: one clamped step of
// daily_practice per activity report, and correct_answers by the number of
// correct answers reported.
func (ts *taskService) advanceActivityTasks(ctx context.Context, tx *gorm.DB, userID uuid.UUID, weekStart time.Time, correctAnswers int) error {
	dailyPractice, err := ts.taskRepo.FirstActiveByType(ctx, tx, types.TaskTypeDailyPractice)
	if err != nil {
		return err
	}
	if dailyPractice != nil {
		if _, err := ts.advance(ctx, tx, userID, dailyPractice, weekStart, 1, true); err != nil {
			return err
		}
	}

	if correctAnswers > 0 {
		correctTask, err := ts.taskRepo.FirstActiveByType(ctx, tx, types.TaskTypeCorrectAnswers)
		if err != nil {
			return err
		}
		if correctTask != nil {
			if _, err := ts.advance(ctx, tx, userID, correctTask, weekStart, correctAnswers, true); err != nil {
				return err
			}
		}
	}
	return nil
}

// advance applies an increment to one tracker. Completed trackers are left
// untouched. The completion transition fires at most once and credits the
// reward inside the caller's transaction.
func (ts *taskService) advance(ctx context.Context, tx *gorm.DB, userID uuid.UUID, task *types.WeeklyTask, weekStart time.Time, increment int, clamp bool) (*types.UserTaskProgress, error) {
	progress, err := ts.progressRepo.GetOrCreate(ctx, tx, userID, task.ID, weekStart)
	if err != nil {
		return nil, err
	}
	if progress.IsCompleted {
		return progress, nil
	}

	progress.CurrentProgress += increment
	if clamp && progress.CurrentProgress > task.TargetCount {
		progress.CurrentProgress = task.TargetCount
	}

	if progress.CurrentProgress >= task.TargetCount {
		now := time.Now()
		progress.IsCompleted = true
		progress.CompletedAt = &now
		progress.PointsEarned = task.PointsReward
		if _, err := ts.points.Credit(ctx, tx, userID, task.PointsReward); err != nil {
			return nil, err
		}
		ts.log.Info("weekly task completed", "user_id", userID, "task_id", task.ID)
	}

	if err := ts.progressRepo.Save(ctx, tx, progress); err != nil {
		return nil, err
	}
	return progress, nil
}
