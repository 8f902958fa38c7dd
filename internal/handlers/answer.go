package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/vietlingo/vietlingo-backend/internal/apierr"
	"github.com/vietlingo/vietlingo-backend/internal/logger"
	"github.com/vietlingo/vietlingo-backend/internal/services"
)

type AnswerHandler struct {
	answerService services.AnswerService
	log           *logger.Logger
}

func NewAnswerHandler(answerService services.AnswerService, baseLog *logger.Logger) *AnswerHandler {
	handlerLog := baseLog.With("handler", "AnswerHandler")
	return &AnswerHandler{answerService: answerService, log: handlerLog}
}

type checkAnswerRequest struct {
	QuestionID uuid.UUID `json:"question_id" binding:"required"`
	UserAnswer string    `json:"user_answer" binding:"required"`
	Username   string    `json:"username"`
}

func (h *AnswerHandler) CheckAnswer(c *gin.Context) {
	var req checkAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, h.log, apierr.InvalidInput("invalid request body: %v", err))
		return
	}

	result, err := h.answerService.CheckAnswer(c.Request.Context(), req.QuestionID, req.UserAnswer, req.Username)
	if err != nil {
		RespondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *AnswerHandler) History(c *gin.Context) {
	page, err := h.answerService.History(
		c.Request.Context(),
		c.Query("username"),
		queryInt(c, "page", 1),
		queryInt(c, "page_size", 20),
	)
	if err != nil {
		RespondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, page)
}
