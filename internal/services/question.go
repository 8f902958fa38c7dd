package services

import (
	"context"
	"math/rand"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vietlingo/vietlingo-backend/internal/apierr"
	"github.com/vietlingo/vietlingo-backend/internal/logger"
	"github.com/vietlingo/vietlingo-backend/internal/normalization"
	"github.com/vietlingo/vietlingo-backend/internal/repos"
	"github.com/vietlingo/vietlingo-backend/internal/types"
)

type QuestionInput struct {
	TopicID        *uuid.UUID `json:"topic_id"`
	VietnameseText string     `json:"vietnamese_text"`
	EnglishText    string     `json:"english_text"`
	Difficulty     string     `json:"difficulty"`
}

type QuestionUpdate struct {
	TopicID        *uuid.UUID `json:"topic_id"`
	VietnameseText *string    `json:"vietnamese_text"`
	EnglishText    *string    `json:"english_text"`
	Difficulty     *string    `json:"difficulty"`
}

type QuestionPage struct {
	Results []*types.Question `json:"results"`
	PageInfo
}

type ImportResult struct {
	CreatedCount int      `json:"created_count"`
	ErrorCount   int      `json:"error_count"`
	Errors       []string `json:"errors"`
}

type QuestionService interface {
	List(ctx context.Context, filter repos.QuestionFilter) (*QuestionPage, error)
	Get(ctx context.Context, questionID uuid.UUID) (*types.Question, error)
	Create(ctx context.Context, input QuestionInput) (*types.Question, error)
	Update(ctx context.Context, questionID uuid.UUID, update QuestionUpdate) (*types.Question, error)
	Delete(ctx context.Context, questionID uuid.UUID) error
	Random(ctx context.Context, difficulty string, topicID *uuid.UUID) (*types.Question, error)
	Import(ctx context.Context, filename, content string) (*ImportResult, error)
}

type questionService struct {
	db           *gorm.DB
	questionRepo repos.QuestionRepo
	topicRepo    repos.TopicRepo
	log          *logger.Logger
}

func NewQuestionService(
	db *gorm.DB,
	questionRepo repos.QuestionRepo,
	topicRepo repos.TopicRepo,
	baseLog *logger.Logger,
) QuestionService {
	serviceLog := baseLog.With("service", "QuestionService")
	return &questionService{
		db:           db,
		questionRepo: questionRepo,
		topicRepo:    topicRepo,
		log:          serviceLog,
	}
}

func (qs *questionService) List(ctx context.Context, filter repos.QuestionFilter) (*QuestionPage, error) {
	filter.Page, filter.PageSize = normalizePage(filter.Page, filter.PageSize)
	results, total, err := qs.questionRepo.List(ctx, nil, filter)
	if err != nil {
		return nil, err
	}
	return &QuestionPage{
		Results:  results,
		PageInfo: NewPageInfo(total, filter.Page, filter.PageSize),
	}, nil
}

func (qs *questionService) Get(ctx context.Context, questionID uuid.UUID) (*types.Question, error) {
	question, err := qs.questionRepo.GetByID(ctx, nil, questionID)
	if err != nil {
		return nil, err
	}
	if question == nil {
		return nil, apierr.NotFound("question %s not found", questionID)
	}
	return question, nil
}

func (qs *questionService) Create(ctx context.Context, input QuestionInput) (*types.Question, error) {
	vietnamese := normalization.TrimInputString(input.VietnameseText)
	english := normalization.TrimInputString(input.EnglishText)
	if vietnamese == "" || english == "" {
		return nil, apierr.InvalidInput("vietnamese_text and english_text are required")
	}
	difficulty := input.Difficulty
	if difficulty == "" {
		difficulty = types.DifficultyMedium
	}
	if !types.ValidDifficulty(difficulty) {
		return nil, apierr.InvalidInput("invalid difficulty %q", difficulty)
	}

	question := &types.Question{
		ID:             uuid.New(),
		TopicID:        input.TopicID,
		VietnameseText: vietnamese,
		EnglishText:    english,
		Difficulty:     difficulty,
	}
	if err := qs.questionRepo.Create(ctx, nil, question); err != nil {
		return nil, err
	}
	qs.log.Info("question created", "question_id", question.ID)
	return question, nil
}

func (qs *questionService) Update(ctx context.Context, questionID uuid.UUID, update QuestionUpdate) (*types.Question, error) {
	question, err := qs.questionRepo.GetByID(ctx, nil, questionID)
	if err != nil {
		return nil, err
	}
	if question == nil {
		return nil, apierr.NotFound("question %s not found", questionID)
	}

	if update.VietnameseText != nil {
		text := normalization.TrimInputString(*update.VietnameseText)
		if text == "" {
			return nil, apierr.InvalidInput("vietnamese_text cannot be empty")
		}
		question.VietnameseText = text
	}
	if update.EnglishText != nil {
		text := normalization.TrimInputString(*update.EnglishText)
		if text == "" {
			return nil, apierr.InvalidInput("english_text cannot be empty")
		}
		question.EnglishText = text
	}
	if update.Difficulty != nil {
		if !types.ValidDifficulty(*update.Difficulty) {
			return nil, apierr.InvalidInput("invalid difficulty %q", *update.Difficulty)
		}
		question.Difficulty = *update.Difficulty
	}
	if update.TopicID != nil {
		question.TopicID = update.TopicID
	}

	if err := qs.questionRepo.Save(ctx, nil, question); err != nil {
		return nil, err
	}
	return question, nil
}

func (qs *questionService) Delete(ctx context.Context, questionID uuid.UUID) error {
	question, err := qs.questionRepo.GetByID(ctx, nil, questionID)
	if err != nil {
		return err
	}
	if question == nil {
		return apierr.NotFound("question %s not found", questionID)
	}
	if err := qs.questionRepo.Delete(ctx, nil, questionID); err != nil {
		return err
	}
	qs.log.Info("question deleted", "question_id", questionID)
	return nil
}

func (qs *questionService) Random(ctx context.Context, difficulty string, topicID *uuid.UUID) (*types.Question, error) {
	if difficulty == "" {
		difficulty = types.DifficultyMedium
	}
	if !types.ValidDifficulty(difficulty) {
		return nil, apierr.InvalidInput("invalid difficulty %q", difficulty)
	}

	candidates, err := qs.questionRepo.ListCandidates(ctx, nil, difficulty, topicID)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, apierr.NotFound("no questions match the given filter")
	}
	return candidates[rand.Intn(len(candidates))], nil
}

var blockSeparator = regexp.MustCompile(`\n\s*\n`)

type importedQuestion struct {
	vietnamese string
	english    string
	topic      string
	difficulty string
}

func (qs *questionService) Import(ctx context.Context, filename, content string) (*ImportResult, error) {
	if !strings.HasSuffix(filename, ".txt") {
		return nil, apierr.InvalidInput("only .txt files are supported")
	}

	parsed := parseQuestionsFile(content)
	if len(parsed) == 0 {
		return nil, apierr.InvalidInput("no valid questions found in file")
	}

	result := &ImportResult{Errors: []string{}}
	err := qs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, q := range parsed {
			var topicID *uuid.UUID
			if q.topic != "" {
				topic, err := qs.topicRepo.GetOrCreateByName(ctx, tx, q.topic, "Chủ đề "+q.topic)
				if err != nil {
					result.ErrorCount++
					if len(result.Errors) < 10 {
						result.Errors = append(result.Errors, "Lỗi với câu hỏi: "+q.vietnamese+" - "+err.Error())
					}
					continue
				}
				topicID = &topic.ID
			}

			if _, err := qs.questionRepo.GetOrCreateByTexts(ctx, tx, &types.Question{
				TopicID:        topicID,
				VietnameseText: q.vietnamese,
				EnglishText:    q.english,
				Difficulty:     q.difficulty,
			}); err != nil {
				result.ErrorCount++
				if len(result.Errors) < 10 {
					result.Errors = append(result.Errors, "Lỗi với câu hỏi: "+q.vietnamese+" - "+err.Error())
				}
				continue
			}
			result.CreatedCount++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	qs.log.Info("imported questions", "created", result.CreatedCount, "errors", result.ErrorCount)
	return result, nil
}

// parseQuestionsFile reads blank-line-separated blocks of
// "Question:" / "Answer:" / "Topic:" / "Status:" lines. Difficulty accepts
// Vietnamese or English words and falls back to medium.
func parseQuestionsFile(content string) []importedQuestion {
	var questions []importedQuestion

	for _, block := range blockSeparator.Split(strings.TrimSpace(content), -1) {
		if strings.TrimSpace(block) == "" {
			continue
		}

		q := importedQuestion{difficulty: types.DifficultyMedium}
		for _, line := range strings.Split(block, "\n") {
			line = strings.TrimSpace(line)
			switch {
			case strings.HasPrefix(line, "Question:"):
				q.vietnamese = strings.TrimSpace(strings.TrimPrefix(line, "Question:"))
			case strings.HasPrefix(line, "Answer:"):
				q.english = strings.TrimSpace(strings.TrimPrefix(line, "Answer:"))
			case strings.HasPrefix(line, "Topic:"):
				q.topic = strings.TrimSpace(strings.TrimPrefix(line, "Topic:"))
			case strings.HasPrefix(line, "Status:"):
				status := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(line, "Status:")))
				switch {
				case strings.Contains(status, "dễ") || strings.Contains(status, "easy"):
					q.difficulty = types.DifficultyEasy
				case strings.Contains(status, "khó") || strings.Contains(status, "hard"):
					q.difficulty = types.DifficultyHard
				default:
					q.difficulty = types.DifficultyMedium
				}
			}
		}

		if q.vietnamese != "" && q.english != "" {
			questions = append(questions, q)
		}
	}
	return questions
}
