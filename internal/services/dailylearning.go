package services

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/vietlingo/vietlingo-backend/internal/apierr"
	"github.com/vietlingo/vietlingo-backend/internal/logger"
	"github.com/vietlingo/vietlingo-backend/internal/normalization"
	"github.com/vietlingo/vietlingo-backend/internal/repos"
	"github.com/vietlingo/vietlingo-backend/internal/similarity"
	"github.com/vietlingo/vietlingo-backend/internal/types"
	"github.com/vietlingo/vietlingo-backend/internal/utils"
)

type Achievement struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Earned      bool   `json:"earned"`
}

type SessionDetail struct {
	*types.DailyLearningSession
	Questions          []*types.DailyLearningQuestion `json:"questions"`
	ProgressPercentage float64                        `json:"progress_percentage"`
	AccuracyRate       float64                        `json:"accuracy_rate"`
}

type LearningDashboard struct {
	TodaySessions  []*types.DailyLearningSession `json:"today_sessions"`
	LearningStreak *types.DailyLearningStreak    `json:"learning_streak"`
	UserSettings   *types.DailyLearningSettings  `json:"user_settings"`
	WeeklyStats    *repos.SessionStats           `json:"weekly_stats"`
	MonthlyStats   *repos.SessionStats           `json:"monthly_stats"`
	Achievements   []Achievement                 `json:"achievements"`
}

type SubmitSessionAnswerInput struct {
	Username   string    `json:"username"`
	SessionID  uuid.UUID `json:"session_id"`
	QuestionID uuid.UUID `json:"question_id"`
	UserAnswer string    `json:"user_answer"`
	TimeTaken  int       `json:"time_taken"`
}

type SessionProgress struct {
	CompletedQuestions int     `json:"completed_questions"`
	TargetQuestions    int     `json:"target_questions"`
	CorrectAnswers     int     `json:"correct_answers"`
	PointsEarned       int     `json:"points_earned"`
	IsCompleted        bool    `json:"is_completed"`
	ProgressPercentage float64 `json:"progress_percentage"`
	AccuracyRate       float64 `json:"accuracy_rate"`
}

type SubmitSessionAnswerResult struct {
	IsCorrect       bool            `json:"is_correct"`
	SimilarityScore float64         `json:"similarity_score"`
	CorrectAnswer   string          `json:"correct_answer"`
	Feedback        string          `json:"feedback"`
	SessionProgress SessionProgress `json:"session_progress"`
}

type SettingsUpdate struct {
	DailyTarget         *int         `json:"daily_target"`
	PreferredDifficulty *string      `json:"preferred_difficulty"`
	PreferredTopics     *[]uuid.UUID `json:"preferred_topics"`
	ExerciseTypes       *[]string    `json:"exercise_types"`
	ReminderEnabled     *bool        `json:"reminder_enabled"`
	ReminderTime        *string      `json:"reminder_time"`
	AutoPlayAudio       *bool        `json:"auto_play_audio"`
	SpeechRate          *float64     `json:"speech_rate"`
}

type DateRange struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Days      int    `json:"days"`
}

type LearningHistoryPage struct {
	Results []*SessionDetail `json:"results"`
	PageInfo
	DateRange DateRange `json:"date_range"`
}

// DailyLearningService manages one practice session per user, day, and
// exercise type, the per-session answer rows, the learning streak, and the
// user's learning settings.
type DailyLearningService interface {
	Dashboard(ctx context.Context, username string) (*LearningDashboard, error)
	StartSession(ctx context.Context, username, exerciseType string, targetQuestions int) (*SessionDetail, bool, error)
	Sessions(ctx context.Context, username, exerciseType string) ([]*SessionDetail, error)
	SubmitAnswer(ctx context.Context, input SubmitSessionAnswerInput) (*SubmitSessionAnswerResult, error)
	GetSettings(ctx context.Context, username string) (*types.DailyLearningSettings, error)
	UpdateSettings(ctx context.Context, username string, update SettingsUpdate) (*types.DailyLearningSettings, error)
	ResetSession(ctx context.Context, username string, sessionID uuid.UUID) (*SessionDetail, error)
	History(ctx context.Context, username string, page, pageSize, days int) (*LearningHistoryPage, error)
}

type dailyLearningService struct {
	db           *gorm.DB
	userRepo     repos.UserRepo
	questionRepo repos.QuestionRepo
	sessionRepo  repos.DailyLearningSessionRepo
	answerRepo   repos.DailyLearningQuestionRepo
	streakRepo   repos.DailyLearningStreakRepo
	settingsRepo repos.DailyLearningSettingsRepo
	points       PointsService
	log          *logger.Logger
}

func NewDailyLearningService(
	db *gorm.DB,
	userRepo repos.UserRepo,
	questionRepo repos.QuestionRepo,
	sessionRepo repos.DailyLearningSessionRepo,
	answerRepo repos.DailyLearningQuestionRepo,
	streakRepo repos.DailyLearningStreakRepo,
	settingsRepo repos.DailyLearningSettingsRepo,
	points PointsService,
	baseLog *logger.Logger,
) DailyLearningService {
	serviceLog := baseLog.With("service", "DailyLearningService")
	return &dailyLearningService{
		db:           db,
		userRepo:     userRepo,
		questionRepo: questionRepo,
		sessionRepo:  sessionRepo,
		answerRepo:   answerRepo,
		streakRepo:   streakRepo,
		settingsRepo: settingsRepo,
		points:       points,
		log:          serviceLog,
	}
}

func (dls *dailyLearningService) Dashboard(ctx context.Context, username string) (*LearningDashboard, error) {
	user, err := dls.requireUser(ctx, username)
	if err != nil {
		return nil, err
	}

	today := utils.DateOnly(time.Now())
	weekStart := utils.WeekStart(today)
	monthStart := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)

	var dashboard *LearningDashboard
	err = dls.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		settings, err := dls.settingsRepo.GetOrCreate(ctx, tx, user.ID)
		if err != nil {
			return err
		}
		streak, err := dls.streakRepo.GetOrCreate(ctx, tx, user.ID)
		if err != nil {
			return err
		}
		todaySessions, err := dls.sessionRepo.ListForDay(ctx, tx, user.ID, today)
		if err != nil {
			return err
		}
		weeklyStats, err := dls.sessionRepo.SummarizeSince(ctx, tx, user.ID, weekStart)
		if err != nil {
			return err
		}
		monthlyStats, err := dls.sessionRepo.SummarizeSince(ctx, tx, user.ID, monthStart)
		if err != nil {
			return err
		}

		dashboard = &LearningDashboard{
			TodaySessions:  todaySessions,
			LearningStreak: streak,
			UserSettings:   settings,
			WeeklyStats:    weeklyStats,
			MonthlyStats:   monthlyStats,
			Achievements:   buildAchievements(streak),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dashboard, nil
}

func buildAchievements(streak *types.DailyLearningStreak) []Achievement {
	achievements := []Achievement{}

	switch {
	case streak.CurrentStreak >= 30:
		achievements = append(achievements, Achievement{
			ID:          "streak_30",
			Title:       ":fire::fire::fire: Huyền thoại",
			Description: "Học tập liên tục 30 ngày",
			Earned:      true,
		})
	case streak.CurrentStreak >= 14:
		achievements = append(achievements, Achievement{
			ID:          "streak_14",
			Title:       ":fire::fire: Bậc thầy",
			Description: "Học tập liên tục 14 ngày",
			Earned:      true,
		})
	case streak.CurrentStreak >= 7:
		achievements = append(achievements, Achievement{
			ID:          "streak_7",
			Title:       ":fire: Kiên trì",
			Description: "Học tập liên tục 7 ngày",
			Earned:      true,
		})
	}

	switch {
	case streak.TotalDaysLearned >= 100:
		achievements = append(achievements, Achievement{
			ID:          "days_100",
			Title:       ":100: Trăm ngày",
			Description: "Học tập tổng cộng 100 ngày",
			Earned:      true,
		})
	case streak.TotalDaysLearned >= 50:
		achievements = append(achievements, Achievement{
			ID:          "days_50",
			Title:       ":star2: Nửa chặng đường",
			Description: "Học tập tổng cộng 50 ngày",
			Earned:      true,
		})
	}

	return achievements
}

func (dls *dailyLearningService) StartSession(ctx context.Context, username, exerciseType string, targetQuestions int) (*SessionDetail, bool, error) {
	user, err := dls.requireUser(ctx, username)
	if err != nil {
		return nil, false, err
	}
	if exerciseType == "" {
		exerciseType = types.ExerciseTypeMixed
	}
	if !types.ValidExerciseType(exerciseType) {
		return nil, false, apierr.InvalidInput("invalid exercise_type %q", exerciseType)
	}

	today := utils.DateOnly(time.Now())

	existing, err := dls.sessionRepo.GetForDay(ctx, nil, user.ID, today, exerciseType)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		detail, err := dls.buildDetail(ctx, nil, existing)
		if err != nil {
			return nil, false, err
		}
		return detail, true, nil
	}

	settings, err := dls.settingsRepo.GetByUser(ctx, nil, user.ID)
	if err != nil {
		return nil, false, err
	}
	if settings != nil {
		targetQuestions = settings.DailyTarget
	}
	if targetQuestions < 1 {
		targetQuestions = 10
	}

	var session *types.DailyLearningSession
	err = dls.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		session = &types.DailyLearningSession{
			ID:              uuid.New(),
			UserID:          user.ID,
			SessionDate:     today,
			ExerciseType:    exerciseType,
			TargetQuestions: targetQuestions,
		}
		if err := dls.sessionRepo.Create(ctx, tx, session); err != nil {
			return err
		}
		return dls.updateLearningStreak(ctx, tx, user.ID, today)
	})
	if err != nil {
		return nil, false, err
	}

	dls.log.Info("learning session started",
		"user_id", user.ID, "exercise_type", exerciseType)
	return &SessionDetail{
		DailyLearningSession: session,
		Questions:            []*types.DailyLearningQuestion{},
	}, false, nil
}

// updateLearningStreak mirrors the points-ledger streak rule keyed by
// learning dates, plus a total-days counter behind the same-day guard.
func (dls *dailyLearningService) updateLearningStreak(ctx context.Context, tx *gorm.DB, userID uuid.UUID, date time.Time) error {
	streak, err := dls.streakRepo.GetOrCreate(ctx, tx, userID)
	if err != nil {
		return err
	}

	if streak.LastLearningDate != nil && streak.LastLearningDate.Equal(date) {
		return nil
	}

	yesterday := date.AddDate(0, 0, -1)
	if streak.LastLearningDate != nil && streak.LastLearningDate.Equal(yesterday) {
		streak.CurrentStreak++
	} else {
		streak.CurrentStreak = 1
	}
	if streak.CurrentStreak > streak.LongestStreak {
		streak.LongestStreak = streak.CurrentStreak
	}
	streak.LastLearningDate = &date
	streak.TotalDaysLearned++

	return dls.streakRepo.Save(ctx, tx, streak)
}

func (dls *dailyLearningService) Sessions(ctx context.Context, username, exerciseType string) ([]*SessionDetail, error) {
	user, err := dls.requireUser(ctx, username)
	if err != nil {
		return nil, err
	}

	today := utils.DateOnly(time.Now())
	sessions, err := dls.sessionRepo.ListForDay(ctx, nil, user.ID, today)
	if err != nil {
		return nil, err
	}

	details := make([]*SessionDetail, 0, len(sessions))
	for _, session := range sessions {
		if exerciseType != "" && session.ExerciseType != exerciseType {
			continue
		}
		detail, err := dls.buildDetail(ctx, nil, session)
		if err != nil {
			return nil, err
		}
		details = append(details, detail)
	}
	return details, nil
}

func (dls *dailyLearningService) SubmitAnswer(ctx context.Context, input SubmitSessionAnswerInput) (*SubmitSessionAnswerResult, error) {
	if normalization.TrimInputString(input.UserAnswer) == "" {
		return nil, apierr.InvalidInput("user_answer is required")
	}
	user, err := dls.requireUser(ctx, input.Username)
	if err != nil {
		return nil, err
	}

	session, err := dls.sessionRepo.GetByIDForUser(ctx, nil, input.SessionID, user.ID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, apierr.NotFound("session %s not found", input.SessionID)
	}
	if session.IsCompleted {
		return nil, apierr.InvalidInput("session is already completed")
	}

	question, err := dls.questionRepo.GetByID(ctx, nil, input.QuestionID)
	if err != nil {
		return nil, err
	}
	if question == nil {
		return nil, apierr.NotFound("question %s not found", input.QuestionID)
	}

	score := similarity.Ratio(input.UserAnswer, question.EnglishText)
	isCorrect := similarity.IsCorrect(score)
	answerPoints := int(score * 10)
	if answerPoints < 1 {
		answerPoints = 1
	}

	var result *SubmitSessionAnswerResult
	err = dls.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		record, err := dls.answerRepo.GetBySessionAndQuestion(ctx, tx, session.ID, question.ID)
		if err != nil {
			return err
		}

		firstAttempt := record == nil
		if firstAttempt {
			record = &types.DailyLearningQuestion{
				ID:         uuid.New(),
				SessionID:  session.ID,
				QuestionID: question.ID,
				UserAnswer: input.UserAnswer,
				TimeTaken:  input.TimeTaken,
				Attempts:   1,
			}
		} else {
			record.UserAnswer = input.UserAnswer
			record.Attempts++
			record.TimeTaken += input.TimeTaken
		}
		record.IsCorrect = isCorrect
		record.SimilarityScore = score

		if firstAttempt {
			if err := dls.answerRepo.Create(ctx, tx, record); err != nil {
				return err
			}
			session.CompletedQuestions++
		} else {
			if err := dls.answerRepo.Save(ctx, tx, record); err != nil {
				return err
			}
		}

		if isCorrect {
			session.CorrectAnswers++
		}
		session.PointsEarned += answerPoints

		if session.CompletedQuestions >= session.TargetQuestions && !session.IsCompleted {
			now := time.Now()
			session.IsCompleted = true
			session.CompletedAt = &now
		}
		if err := dls.sessionRepo.Save(ctx, tx, session); err != nil {
			return err
		}

		if _, err := dls.points.Credit(ctx, tx, user.ID, answerPoints); err != nil {
			return err
		}

		result = &SubmitSessionAnswerResult{
			IsCorrect:       isCorrect,
			SimilarityScore: math.Round(score*100) / 100,
			CorrectAnswer:   question.EnglishText,
			Feedback:        similarity.Feedback(score),
			SessionProgress: SessionProgress{
				CompletedQuestions: session.CompletedQuestions,
				TargetQuestions:    session.TargetQuestions,
				CorrectAnswers:     session.CorrectAnswers,
				PointsEarned:       session.PointsEarned,
				IsCompleted:        session.IsCompleted,
				ProgressPercentage: session.ProgressPercentage(),
				AccuracyRate:       session.AccuracyRate(),
			},
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (dls *dailyLearningService) GetSettings(ctx context.Context, username string) (*types.DailyLearningSettings, error) {
	user, err := dls.requireUser(ctx, username)
	if err != nil {
		return nil, err
	}
	return dls.settingsRepo.GetOrCreate(ctx, nil, user.ID)
}

func (dls *dailyLearningService) UpdateSettings(ctx context.Context, username string, update SettingsUpdate) (*types.DailyLearningSettings, error) {
	user, err := dls.requireUser(ctx, username)
	if err != nil {
		return nil, err
	}

	var settings *types.DailyLearningSettings
	err = dls.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		settings, err = dls.settingsRepo.GetOrCreate(ctx, tx, user.ID)
		if err != nil {
			return err
		}

		if update.DailyTarget != nil {
			if *update.DailyTarget < 1 {
				return apierr.InvalidInput("daily_target must be positive")
			}
			settings.DailyTarget = *update.DailyTarget
		}
		if update.PreferredDifficulty != nil {
			if !types.ValidDifficulty(*update.PreferredDifficulty) {
				return apierr.InvalidInput("invalid preferred_difficulty %q", *update.PreferredDifficulty)
			}
			settings.PreferredDifficulty = *update.PreferredDifficulty
		}
		if update.PreferredTopics != nil {
			settings.PreferredTopicIDs = datatypes.NewJSONSlice(*update.PreferredTopics)
		}
		if update.ExerciseTypes != nil {
			for _, t := range *update.ExerciseTypes {
				if !types.ValidExerciseType(t) {
					return apierr.InvalidInput("invalid exercise type %q", t)
				}
			}
			settings.SetExerciseTypesList(*update.ExerciseTypes)
		}
		if update.ReminderEnabled != nil {
			settings.ReminderEnabled = *update.ReminderEnabled
		}
		if update.ReminderTime != nil {
			settings.ReminderTime = *update.ReminderTime
		}
		if update.AutoPlayAudio != nil {
			settings.AutoPlayAudio = *update.AutoPlayAudio
		}
		if update.SpeechRate != nil {
			settings.SpeechRate = *update.SpeechRate
		}

		return dls.settingsRepo.Save(ctx, tx, settings)
	})
	if err != nil {
		return nil, err
	}
	return settings, nil
}

func (dls *dailyLearningService) ResetSession(ctx context.Context, username string, sessionID uuid.UUID) (*SessionDetail, error) {
	user, err := dls.requireUser(ctx, username)
	if err != nil {
		return nil, err
	}

	session, err := dls.sessionRepo.GetByIDForUser(ctx, nil, sessionID, user.ID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, apierr.NotFound("session %s not found", sessionID)
	}

	err = dls.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := dls.answerRepo.DeleteBySession(ctx, tx, session.ID); err != nil {
			return err
		}
		session.CompletedQuestions = 0
		session.CorrectAnswers = 0
		session.PointsEarned = 0
		session.IsCompleted = false
		session.CompletedAt = nil
		return dls.sessionRepo.Save(ctx, tx, session)
	})
	if err != nil {
		return nil, err
	}

	dls.log.Info("learning session reset", "user_id", user.ID, "session_id", sessionID)
	return &SessionDetail{
		DailyLearningSession: session,
		Questions:            []*types.DailyLearningQuestion{},
	}, nil
}

func (dls *dailyLearningService) History(ctx context.Context, username string, page, pageSize, days int) (*LearningHistoryPage, error) {
	user, err := dls.requireUser(ctx, username)
	if err != nil {
		return nil, err
	}
	page, pageSize = normalizePage(page, pageSize)
	if days < 1 {
		days = 30
	}

	endDate := utils.DateOnly(time.Now())
	startDate := endDate.AddDate(0, 0, -days)

	sessions, total, err := dls.sessionRepo.ListRange(ctx, nil, user.ID, startDate, endDate, page, pageSize)
	if err != nil {
		return nil, err
	}

	details := make([]*SessionDetail, 0, len(sessions))
	for _, session := range sessions {
		detail, err := dls.buildDetail(ctx, nil, session)
		if err != nil {
			return nil, err
		}
		details = append(details, detail)
	}

	return &LearningHistoryPage{
		Results:  details,
		PageInfo: NewPageInfo(total, page, pageSize),
		DateRange: DateRange{
			StartDate: startDate.Format("2006-01-02"),
			EndDate:   endDate.Format("2006-01-02"),
			Days:      days,
		},
	}, nil
}

func (dls *dailyLearningService) buildDetail(ctx context.Context, tx *gorm.DB, session *types.DailyLearningSession) (*SessionDetail, error) {
	questions, err := dls.answerRepo.ListBySession(ctx, tx, session.ID)
	if err != nil {
		return nil, err
	}
	return &SessionDetail{
		DailyLearningSession: session,
		Questions:            questions,
		ProgressPercentage:   session.ProgressPercentage(),
		AccuracyRate:         session.AccuracyRate(),
	}, nil
}

func (dls *dailyLearningService) requireUser(ctx context.Context, username string) (*types.User, error) {
	if username == "" {
		return nil, apierr.InvalidInput("username is required")
	}
	user, err := dls.userRepo.GetByUsername(ctx, nil, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apierr.NotFound("user %s not found", username)
	}
	return user, nil
}
