package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/vietlingo/vietlingo-backend/internal/apierr"
	"github.com/vietlingo/vietlingo-backend/internal/logger"
	"github.com/vietlingo/vietlingo-backend/internal/services"
)

type DailyLearningHandler struct {
	learningService services.DailyLearningService
	log             *logger.Logger
}

func NewDailyLearningHandler(learningService services.DailyLearningService, baseLog *logger.Logger) *DailyLearningHandler {
	handlerLog := baseLog.With("handler", "DailyLearningHandler")
	return &DailyLearningHandler{learningService: learningService, log: handlerLog}
}

func (h *DailyLearningHandler) Dashboard(c *gin.Context) {
	dashboard, err := h.learningService.Dashboard(c.Request.Context(), c.Query("username"))
	if err != nil {
		RespondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dashboard)
}

type startSessionRequest struct {
	Username        string `json:"username" binding:"required"`
	ExerciseType    string `json:"exercise_type"`
	TargetQuestions int    `json:"target_questions"`
}

func (h *DailyLearningHandler) StartSession(c *gin.Context) {
	var req startSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, h.log, apierr.InvalidInput("invalid request body: %v", err))
		return
	}

	session, existing, err := h.learningService.StartSession(
		c.Request.Context(), req.Username, req.ExerciseType, req.TargetQuestions)
	if err != nil {
		RespondError(c, h.log, err)
		return
	}

	message := "Bắt đầu buổi học thành công!"
	if existing {
		message = "Bạn đã có buổi học hôm nay cho loại bài tập này"
	}
	c.JSON(http.StatusOK, gin.H{
		"message": message,
		"session": session,
	})
}

func (h *DailyLearningHandler) Sessions(c *gin.Context) {
	sessions, err := h.learningService.Sessions(
		c.Request.Context(), c.Query("username"), c.Query("exercise_type"))
	if err != nil {
		RespondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"sessions":       sessions,
		"total_sessions": len(sessions),
	})
}

type sessionAnswerRequest struct {
	Username   string    `json:"username" binding:"required"`
	SessionID  uuid.UUID `json:"session_id" binding:"required"`
	QuestionID uuid.UUID `json:"question_id" binding:"required"`
	UserAnswer string    `json:"user_answer" binding:"required"`
	TimeTaken  int       `json:"time_taken"`
}

func (h *DailyLearningHandler) SubmitAnswer(c *gin.Context) {
	var req sessionAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, h.log, apierr.InvalidInput("invalid request body: %v", err))
		return
	}

	result, err := h.learningService.SubmitAnswer(c.Request.Context(), services.SubmitSessionAnswerInput{
		Username:   req.Username,
		SessionID:  req.SessionID,
		QuestionID: req.QuestionID,
		UserAnswer: req.UserAnswer,
		TimeTaken:  req.TimeTaken,
	})
	if err != nil {
		RespondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":          "Nộp bài thành công!",
		"is_correct":       result.IsCorrect,
		"similarity_score": result.SimilarityScore,
		"correct_answer":   result.CorrectAnswer,
		"feedback":         result.Feedback,
		"session_progress": result.SessionProgress,
	})
}

func (h *DailyLearningHandler) GetSettings(c *gin.Context) {
	settings, err := h.learningService.GetSettings(c.Request.Context(), c.Query("username"))
	if err != nil {
		RespondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

type updateSettingsRequest struct {
	Username string `json:"username" binding:"required"`
	services.SettingsUpdate
}

func (h *DailyLearningHandler) UpdateSettings(c *gin.Context) {
	var req updateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, h.log, apierr.InvalidInput("invalid request body: %v", err))
		return
	}

	settings, err := h.learningService.UpdateSettings(c.Request.Context(), req.Username, req.SettingsUpdate)
	if err != nil {
		RespondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":  "Cập nhật cài đặt thành công",
		"settings": settings,
	})
}

type resetSessionRequest struct {
	Username  string    `json:"username" binding:"required"`
	SessionID uuid.UUID `json:"session_id" binding:"required"`
}

func (h *DailyLearningHandler) ResetSession(c *gin.Context) {
	var req resetSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, h.log, apierr.InvalidInput("invalid request body: %v", err))
		return
	}

	session, err := h.learningService.ResetSession(c.Request.Context(), req.Username, req.SessionID)
	if err != nil {
		RespondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Làm lại buổi học thành công!",
		"session": session,
	})
}

func (h *DailyLearningHandler) History(c *gin.Context) {
	page, err := h.learningService.History(
		c.Request.Context(),
		c.Query("username"),
		queryInt(c, "page", 1),
		queryInt(c, "page_size", 20),
		queryInt(c, "days", 30),
	)
	if err != nil {
		RespondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, page)
}
