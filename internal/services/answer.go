package services

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vietlingo/vietlingo-backend/internal/apierr"
	"github.com/vietlingo/vietlingo-backend/internal/logger"
	"github.com/vietlingo/vietlingo-backend/internal/normalization"
	"github.com/vietlingo/vietlingo-backend/internal/repos"
	"github.com/vietlingo/vietlingo-backend/internal/similarity"
	"github.com/vietlingo/vietlingo-backend/internal/types"
)

type CheckAnswerResult struct {
	IsCorrect       bool    `json:"is_correct"`
	SimilarityScore float64 `json:"similarity_score"`
	CorrectAnswer   string  `json:"correct_answer"`
	UserAnswer      string  `json:"user_answer"`
	Message         string  `json:"message"`
}

type AnswerHistoryPage struct {
	Results []*types.UserAnswer `json:"results"`
	PageInfo
}

// AnswerService grades free-text answers and keeps the append-only answer
// log. Grading never mutates an existing row.
type AnswerService interface {
	CheckAnswer(ctx context.Context, questionID uuid.UUID, userAnswer, username string) (*CheckAnswerResult, error)
	History(ctx context.Context, username string, page, pageSize int) (*AnswerHistoryPage, error)
}

type answerService struct {
	db             *gorm.DB
	questionRepo   repos.QuestionRepo
	userRepo       repos.UserRepo
	userAnswerRepo repos.UserAnswerRepo
	log            *logger.Logger
}

func NewAnswerService(
	db *gorm.DB,
	questionRepo repos.QuestionRepo,
	userRepo repos.UserRepo,
	userAnswerRepo repos.UserAnswerRepo,
	baseLog *logger.Logger,
) AnswerService {
	serviceLog := baseLog.With("service", "AnswerService")
	return &answerService{
		db:             db,
		questionRepo:   questionRepo,
		userRepo:       userRepo,
		userAnswerRepo: userAnswerRepo,
		log:            serviceLog,
	}
}

func (ans *answerService) CheckAnswer(ctx context.Context, questionID uuid.UUID, userAnswer, username string) (*CheckAnswerResult, error) {
	if normalization.TrimInputString(userAnswer) == "" {
		return nil, apierr.InvalidInput("user_answer is required")
	}

	question, err := ans.questionRepo.GetByID(ctx, nil, questionID)
	if err != nil {
		return nil, err
	}
	if question == nil {
		return nil, apierr.NotFound("question %s not found", questionID)
	}

	score := similarity.Ratio(userAnswer, question.EnglishText)
	isCorrect := similarity.IsCorrect(score)

	err = ans.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var userID *uuid.UUID
		if username != "" {
			user, _, err := ans.userRepo.GetOrCreateByUsername(ctx, tx, username)
			if err != nil {
				return err
			}
			userID = &user.ID
		}

		return ans.userAnswerRepo.Create(ctx, tx, &types.UserAnswer{
			ID:              uuid.New(),
			UserID:          userID,
			QuestionID:      question.ID,
			UserAnswer:      userAnswer,
			IsCorrect:       isCorrect,
			SimilarityScore: score,
		})
	})
	if err != nil {
		return nil, err
	}

	return &CheckAnswerResult{
		IsCorrect:       isCorrect,
		SimilarityScore: score,
		CorrectAnswer:   question.EnglishText,
		UserAnswer:      userAnswer,
		Message:         similarity.Feedback(score),
	}, nil
}

func (ans *answerService) History(ctx context.Context, username string, page, pageSize int) (*AnswerHistoryPage, error) {
	page, pageSize = normalizePage(page, pageSize)
	results, total, err := ans.userAnswerRepo.ListHistory(ctx, nil, username, page, pageSize)
	if err != nil {
		return nil, err
	}
	return &AnswerHistoryPage{
		Results:  results,
		PageInfo: NewPageInfo(total, page, pageSize),
	}, nil
}
