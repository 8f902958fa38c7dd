package handlers

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/vietlingo/vietlingo-backend/internal/apierr"
	"github.com/vietlingo/vietlingo-backend/internal/logger"
	"github.com/vietlingo/vietlingo-backend/internal/repos"
	"github.com/vietlingo/vietlingo-backend/internal/services"
)

type QuestionHandler struct {
	questionService services.QuestionService
	log             *logger.Logger
}

func NewQuestionHandler(questionService services.QuestionService, baseLog *logger.Logger) *QuestionHandler {
	handlerLog := baseLog.With("handler", "QuestionHandler")
	return &QuestionHandler{questionService: questionService, log: handlerLog}
}

func (h *QuestionHandler) List(c *gin.Context) {
	filter := repos.QuestionFilter{
		Difficulty: c.Query("difficulty"),
		Search:     c.Query("search"),
		Page:       queryInt(c, "page", 1),
		PageSize:   queryInt(c, "page_size", 20),
	}
	if raw := c.Query("topic_id"); raw != "" {
		topicID, err := uuid.Parse(raw)
		if err != nil {
			RespondError(c, h.log, apierr.InvalidInput("invalid topic_id"))
			return
		}
		filter.TopicID = &topicID
	}

	page, err := h.questionService.List(c.Request.Context(), filter)
	if err != nil {
		RespondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *QuestionHandler) Create(c *gin.Context) {
	var input services.QuestionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, h.log, apierr.InvalidInput("invalid request body: %v", err))
		return
	}

	question, err := h.questionService.Create(c.Request.Context(), input)
	if err != nil {
		RespondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"question": question,
		"message":  "Thêm câu hỏi thành công",
	})
}

func (h *QuestionHandler) Get(c *gin.Context) {
	questionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, h.log, apierr.InvalidInput("invalid question id"))
		return
	}

	question, err := h.questionService.Get(c.Request.Context(), questionID)
	if err != nil {
		RespondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, question)
}

func (h *QuestionHandler) Update(c *gin.Context) {
	questionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, h.log, apierr.InvalidInput("invalid question id"))
		return
	}

	var update services.QuestionUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		RespondError(c, h.log, apierr.InvalidInput("invalid request body: %v", err))
		return
	}

	question, err := h.questionService.Update(c.Request.Context(), questionID, update)
	if err != nil {
		RespondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"question": question,
		"message":  "Cập nhật câu hỏi thành công",
	})
}

func (h *QuestionHandler) Delete(c *gin.Context) {
	questionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, h.log, apierr.InvalidInput("invalid question id"))
		return
	}

	if err := h.questionService.Delete(c.Request.Context(), questionID); err != nil {
		RespondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Xóa câu hỏi thành công"})
}

func (h *QuestionHandler) Random(c *gin.Context) {
	var topicID *uuid.UUID
	if raw := c.Query("topic_id"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			RespondError(c, h.log, apierr.InvalidInput("invalid topic_id"))
			return
		}
		topicID = &parsed
	}

	question, err := h.questionService.Random(c.Request.Context(), c.Query("difficulty"), topicID)
	if err != nil {
		RespondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, question)
}

func (h *QuestionHandler) Import(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		RespondError(c, h.log, apierr.InvalidInput("file upload is required"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		RespondError(c, h.log, err)
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		RespondError(c, h.log, err)
		return
	}

	result, err := h.questionService.Import(c.Request.Context(), fileHeader.Filename, string(content))
	if err != nil {
		RespondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":       "Import thành công " + strconv.Itoa(result.CreatedCount) + " câu hỏi",
		"created_count": result.CreatedCount,
		"error_count":   result.ErrorCount,
		"errors":        result.Errors,
	})
}

func queryInt(c *gin.Context, key string, fallback int) int {
	raw := c.Query(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}
