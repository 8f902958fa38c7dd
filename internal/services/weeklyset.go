package services

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vietlingo/vietlingo-backend/internal/apierr"
	"github.com/vietlingo/vietlingo-backend/internal/logger"
	"github.com/vietlingo/vietlingo-backend/internal/normalization"
	"github.com/vietlingo/vietlingo-backend/internal/repos"
	"github.com/vietlingo/vietlingo-backend/internal/similarity"
	"github.com/vietlingo/vietlingo-backend/internal/types"
	"github.com/vietlingo/vietlingo-backend/internal/utils"
)

const (
	weeklySetSize           = 10
	weeklyPointsPerQuestion = 10
)

type WeeklySetInput struct {
	Title             string      `json:"title"`
	Description       string      `json:"description"`
	WeekStart         time.Time   `json:"week_start"`
	PointsPerQuestion int         `json:"points_per_question"`
	QuestionIDs       []uuid.UUID `json:"question_ids"`
}

type WeeklyProgressDetail struct {
	QuestionSet          *types.WeeklyQuestionSet `json:"question_set"`
	CompletedQuestionIDs []uuid.UUID              `json:"completed_question_ids"`
	TotalPoints          int                      `json:"total_points"`
	IsCompleted          bool                     `json:"is_completed"`
	CompletedAt          *time.Time               `json:"completed_at,omitempty"`
	CompletedCount       int                      `json:"completed_count"`
	TotalQuestions       int                      `json:"total_questions"`
	ProgressPercentage   float64                  `json:"progress_percentage"`
}

type WeeklySubmitResult struct {
	Message         string                `json:"message"`
	IsCorrect       bool                  `json:"is_correct"`
	SimilarityScore float64               `json:"similarity_score"`
	CorrectAnswer   string                `json:"correct_answer"`
	Feedback        string                `json:"feedback,omitempty"`
	Progress        *WeeklyProgressDetail `json:"progress"`
}

type WeeklyQuestionsResult struct {
	QuestionSet        *types.WeeklyQuestionSet `json:"question_set"`
	RemainingQuestions []*types.Question        `json:"remaining_questions"`
	CompletedCount     int                      `json:"completed_count"`
	TotalQuestions     int                      `json:"total_questions"`
	ProgressPercentage float64                  `json:"progress_percentage"`
	IsCompleted        bool                     `json:"is_completed"`
}

// WeeklySetService manages the fixed per-week question sets and each user's
// progress through them. Only sufficiently similar answers mark a question
// completed; the ledger credit happens in the same transaction as the mark.
type WeeklySetService interface {
	ListSets(ctx context.Context) ([]*types.WeeklyQuestionSet, error)
	CreateSet(ctx context.Context, input WeeklySetInput) (*types.WeeklyQuestionSet, error)
	Progress(ctx context.Context, username string) (*WeeklyProgressDetail, error)
	SubmitAnswer(ctx context.Context, username string, questionID uuid.UUID, userAnswer string) (*WeeklySubmitResult, error)
	Questions(ctx context.Context, username string) (*WeeklyQuestionsResult, error)
	EnsureCurrentWeekSet(ctx context.Context) (*types.WeeklyQuestionSet, bool, error)
}

type weeklySetService struct {
	db           *gorm.DB
	userRepo     repos.UserRepo
	questionRepo repos.QuestionRepo
	setRepo      repos.WeeklyQuestionSetRepo
	progressRepo repos.WeeklyQuestionProgressRepo
	points       PointsService
	log          *logger.Logger
}

func NewWeeklySetService(
	db *gorm.DB,
	userRepo repos.UserRepo,
	questionRepo repos.QuestionRepo,
	setRepo repos.WeeklyQuestionSetRepo,
	progressRepo repos.WeeklyQuestionProgressRepo,
	points PointsService,
	baseLog *logger.Logger,
) WeeklySetService {
	serviceLog := baseLog.With("service", "WeeklySetService")
	return &weeklySetService{
		db:           db,
		userRepo:     userRepo,
		questionRepo: questionRepo,
		setRepo:      setRepo,
		progressRepo: progressRepo,
		points:       points,
		log:          serviceLog,
	}
}

func (wss *weeklySetService) ListSets(ctx context.Context) ([]*types.WeeklyQuestionSet, error) {
	return wss.setRepo.List(ctx, nil)
}

func (wss *weeklySetService) CreateSet(ctx context.Context, input WeeklySetInput) (*types.WeeklyQuestionSet, error) {
	title := normalization.TrimInputString(input.Title)
	if title == "" {
		return nil, apierr.InvalidInput("title is required")
	}
	if input.WeekStart.IsZero() {
		return nil, apierr.InvalidInput("week_start is required")
	}
	weekStart := utils.WeekStart(input.WeekStart)
	pointsPerQuestion := input.PointsPerQuestion
	if pointsPerQuestion < 1 {
		pointsPerQuestion = weeklyPointsPerQuestion
	}

	var set *types.WeeklyQuestionSet
	err := wss.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		exists, err := wss.setRepo.ExistsForWeek(ctx, tx, weekStart)
		if err != nil {
			return err
		}
		if exists {
			return apierr.InvalidInput("a question set already exists for week %s", weekStart.Format("2006-01-02"))
		}

		questions := make([]*types.Question, 0, len(input.QuestionIDs))
		for _, id := range input.QuestionIDs {
			question, err := wss.questionRepo.GetByID(ctx, tx, id)
			if err != nil {
				return err
			}
			if question == nil {
				return apierr.NotFound("question %s not found", id)
			}
			questions = append(questions, question)
		}

		set = &types.WeeklyQuestionSet{
			ID:                uuid.New(),
			Title:             title,
			Description:       input.Description,
			Questions:         questions,
			WeekStart:         weekStart,
			WeekEnd:           weekStart.AddDate(0, 0, 6),
			IsActive:          true,
			PointsPerQuestion: pointsPerQuestion,
		}
		return wss.setRepo.Create(ctx, tx, set)
	})
	if err != nil {
		return nil, err
	}
	wss.log.Info("weekly question set created", "week_start", set.WeekStart.Format("2006-01-02"))
	return set, nil
}

func (wss *weeklySetService) Progress(ctx context.Context, username string) (*WeeklyProgressDetail, error) {
	user, set, err := wss.currentWeekContext(ctx, username)
	if err != nil {
		return nil, err
	}

	var detail *WeeklyProgressDetail
	err = wss.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		progress, err := wss.progressRepo.GetOrCreate(ctx, tx, user.ID, set.ID)
		if err != nil {
			return err
		}
		detail = buildProgressDetail(set, progress)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return detail, nil
}

func (wss *weeklySetService) SubmitAnswer(ctx context.Context, username string, questionID uuid.UUID, userAnswer string) (*WeeklySubmitResult, error) {
	if normalization.TrimInputString(userAnswer) == "" {
		return nil, apierr.InvalidInput("user_answer is required")
	}

	user, set, err := wss.currentWeekContext(ctx, username)
	if err != nil {
		return nil, err
	}

	var question *types.Question
	for _, q := range set.Questions {
		if q.ID == questionID {
			question = q
			break
		}
	}
	if question == nil {
		return nil, apierr.InvalidInput("question is not part of this week's set")
	}

	score := similarity.Ratio(userAnswer, question.EnglishText)
	isCorrect := similarity.IsCorrect(score)
	roundedScore := math.Round(score*100) / 100

	var result *WeeklySubmitResult
	err = wss.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		progress, err := wss.progressRepo.GetOrCreate(ctx, tx, user.ID, set.ID)
		if err != nil {
			return err
		}

		if isCorrect && !progress.HasCompleted(questionID) {
			progress.CompletedQuestionIDs = append(progress.CompletedQuestionIDs, questionID)
			progress.TotalPoints += set.PointsPerQuestion
			if len(progress.CompletedQuestionIDs) >= len(set.Questions) {
				now := time.Now()
				progress.IsCompleted = true
				progress.CompletedAt = &now
			}
			if err := wss.progressRepo.Save(ctx, tx, progress); err != nil {
				return err
			}
			if _, err := wss.points.Credit(ctx, tx, user.ID, set.PointsPerQuestion); err != nil {
				return err
			}
		}

		if isCorrect {
			result = &WeeklySubmitResult{
				Message:         "Câu trả lời chính xác! Cập nhật tiến trình thành công.",
				IsCorrect:       true,
				SimilarityScore: roundedScore,
				CorrectAnswer:   question.EnglishText,
				Progress:        buildProgressDetail(set, progress),
			}
		} else {
			result = &WeeklySubmitResult{
				Message: fmt.Sprintf(
					"Câu trả lời chưa đủ chính xác (độ chính xác: %d%%). Vui lòng thử lại.",
					int(math.Round(score*100))),
				IsCorrect:       false,
				SimilarityScore: roundedScore,
				CorrectAnswer:   question.EnglishText,
				Feedback:        similarity.Feedback(score),
				Progress:        buildProgressDetail(set, progress),
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (wss *weeklySetService) Questions(ctx context.Context, username string) (*WeeklyQuestionsResult, error) {
	user, set, err := wss.currentWeekContext(ctx, username)
	if err != nil {
		return nil, err
	}

	var result *WeeklyQuestionsResult
	err = wss.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		progress, err := wss.progressRepo.GetOrCreate(ctx, tx, user.ID, set.ID)
		if err != nil {
			return err
		}

		remaining := make([]*types.Question, 0, len(set.Questions))
		for _, q := range set.Questions {
			if !progress.HasCompleted(q.ID) {
				remaining = append(remaining, q)
			}
		}

		detail := buildProgressDetail(set, progress)
		result = &WeeklyQuestionsResult{
			QuestionSet:        set,
			RemainingQuestions: remaining,
			CompletedCount:     detail.CompletedCount,
			TotalQuestions:     detail.TotalQuestions,
			ProgressPercentage: detail.ProgressPercentage,
			IsCompleted:        progress.IsCompleted,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// EnsureCurrentWeekSet creates this week's set from random questions when it
// is missing and seeds progress rows for every known user. It is safe to run
// repeatedly; the second call finds the existing set and does nothing.
func (wss *weeklySetService) EnsureCurrentWeekSet(ctx context.Context) (*types.WeeklyQuestionSet, bool, error) {
	weekStart := utils.WeekStart(time.Now())
	weekEnd := weekStart.AddDate(0, 0, 6)

	existing, err := wss.setRepo.GetActiveByWeekStart(ctx, nil, weekStart)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing, false, nil
	}

	var set *types.WeeklyQuestionSet
	err = wss.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		exists, err := wss.setRepo.ExistsForWeek(ctx, tx, weekStart)
		if err != nil {
			return err
		}
		if exists {
			return nil
		}

		questions, err := wss.questionRepo.ListAll(ctx, tx)
		if err != nil {
			return err
		}
		if len(questions) == 0 {
			wss.log.Warn("no questions available for weekly set creation")
			return nil
		}

		rand.Shuffle(len(questions), func(i, j int) {
			questions[i], questions[j] = questions[j], questions[i]
		})
		selected := questions
		if len(selected) > weeklySetSize {
			selected = selected[:weeklySetSize]
		}

		set = &types.WeeklyQuestionSet{
			ID: uuid.New(),
			Title: fmt.Sprintf("Câu hỏi tuần %s - %s",
				weekStart.Format("02/01/2006"), weekEnd.Format("02/01/2006")),
			Description: fmt.Sprintf("Bộ câu hỏi cho tuần từ %s đến %s",
				weekStart.Format("02/01/2006"), weekEnd.Format("02/01/2006")),
			Questions:         selected,
			WeekStart:         weekStart,
			WeekEnd:           weekEnd,
			IsActive:          true,
			PointsPerQuestion: weeklyPointsPerQuestion,
		}
		if err := wss.setRepo.Create(ctx, tx, set); err != nil {
			return err
		}

		users, err := wss.userRepo.ListAll(ctx, tx)
		if err != nil {
			return err
		}
		for _, user := range users {
			if _, err := wss.progressRepo.GetOrCreate(ctx, tx, user.ID, set.ID); err != nil {
				return err
			}
		}

		wss.log.Info("weekly question set created",
			"week_start", weekStart.Format("2006-01-02"),
			"questions", len(selected),
			"seeded_users", len(users))
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return set, set != nil, nil
}

func (wss *weeklySetService) currentWeekContext(ctx context.Context, username string) (*types.User, *types.WeeklyQuestionSet, error) {
	if username == "" {
		return nil, nil, apierr.InvalidInput("username is required")
	}
	user, err := wss.userRepo.GetByUsername(ctx, nil, username)
	if err != nil {
		return nil, nil, err
	}
	if user == nil {
		return nil, nil, apierr.NotFound("user %s not found", username)
	}

	weekStart := utils.WeekStart(time.Now())
	set, err := wss.setRepo.GetActiveByWeekStart(ctx, nil, weekStart)
	if err != nil {
		return nil, nil, err
	}
	if set == nil {
		return nil, nil, apierr.NotFound("no question set for this week yet")
	}
	return user, set, nil
}

func buildProgressDetail(set *types.WeeklyQuestionSet, progress *types.WeeklyQuestionProgress) *WeeklyProgressDetail {
	total := len(set.Questions)
	completed := len(progress.CompletedQuestionIDs)
	percentage := 0.0
	if total > 0 {
		percentage = float64(completed) / float64(total) * 100
	}
	return &WeeklyProgressDetail{
		QuestionSet:          set,
		CompletedQuestionIDs: progress.CompletedQuestionIDs,
		TotalPoints:          progress.TotalPoints,
		IsCompleted:          progress.IsCompleted,
		CompletedAt:          progress.CompletedAt,
		CompletedCount:       completed,
		TotalQuestions:       total,
		ProgressPercentage:   percentage,
	}
}
