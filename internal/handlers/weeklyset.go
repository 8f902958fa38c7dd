package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/vietlingo/vietlingo-backend/internal/apierr"
	"github.com/vietlingo/vietlingo-backend/internal/logger"
	"github.com/vietlingo/vietlingo-backend/internal/services"
)

type WeeklySetHandler struct {
	weeklySetService services.WeeklySetService
	log              *logger.Logger
}

func NewWeeklySetHandler(weeklySetService services.WeeklySetService, baseLog *logger.Logger) *WeeklySetHandler {
	handlerLog := baseLog.With("handler", "WeeklySetHandler")
	return &WeeklySetHandler{weeklySetService: weeklySetService, log: handlerLog}
}

func (h *WeeklySetHandler) ListSets(c *gin.Context) {
	sets, err := h.weeklySetService.ListSets(c.Request.Context())
	if err != nil {
		RespondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, sets)
}

func (h *WeeklySetHandler) CreateSet(c *gin.Context) {
	var input services.WeeklySetInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, h.log, apierr.InvalidInput("invalid request body: %v", err))
		return
	}

	set, err := h.weeklySetService.CreateSet(c.Request.Context(), input)
	if err != nil {
		RespondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"question_set": set,
		"message":      "Tạo bộ câu hỏi hàng tuần thành công",
	})
}

func (h *WeeklySetHandler) Progress(c *gin.Context) {
	detail, err := h.weeklySetService.Progress(c.Request.Context(), c.Query("username"))
	if err != nil {
		RespondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

type weeklyAnswerRequest struct {
	Username   string    `json:"username" binding:"required"`
	QuestionID uuid.UUID `json:"question_id" binding:"required"`
	UserAnswer string    `json:"user_answer" binding:"required"`
}

func (h *WeeklySetHandler) SubmitAnswer(c *gin.Context) {
	var req weeklyAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, h.log, apierr.InvalidInput("invalid request body: %v", err))
		return
	}

	result, err := h.weeklySetService.SubmitAnswer(c.Request.Context(), req.Username, req.QuestionID, req.UserAnswer)
	if err != nil {
		RespondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *WeeklySetHandler) Questions(c *gin.Context) {
	result, err := h.weeklySetService.Questions(c.Request.Context(), c.Query("username"))
	if err != nil {
		RespondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
