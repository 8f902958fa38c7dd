package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/vietlingo/vietlingo-backend/internal/apierr"
	"github.com/vietlingo/vietlingo-backend/internal/logger"
	"github.com/vietlingo/vietlingo-backend/internal/services"
)

type TaskHandler struct {
	taskService   services.TaskService
	pointsService services.PointsService
	log           *logger.Logger
}

func NewTaskHandler(taskService services.TaskService, pointsService services.PointsService, baseLog *logger.Logger) *TaskHandler {
	handlerLog := baseLog.With("handler", "TaskHandler")
	return &TaskHandler{taskService: taskService, pointsService: pointsService, log: handlerLog}
}

func (h *TaskHandler) ListWeekly(c *gin.Context) {
	tasks, err := h.taskService.ListActive(c.Request.Context())
	if err != nil {
		RespondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, tasks)
}

func (h *TaskHandler) CreateWeekly(c *gin.Context) {
	var input services.WeeklyTaskInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, h.log, apierr.InvalidInput("invalid request body: %v", err))
		return
	}

	task, err := h.taskService.Create(c.Request.Context(), input)
	if err != nil {
		RespondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"task":    task,
		"message": "Tạo nhiệm vụ hàng tuần thành công",
	})
}

func (h *TaskHandler) Dashboard(c *gin.Context) {
	dashboard, err := h.taskService.Dashboard(c.Request.Context(), c.Query("username"))
	if err != nil {
		RespondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dashboard)
}

type updateProgressRequest struct {
	Username  string    `json:"username" binding:"required"`
	TaskID    uuid.UUID `json:"task_id" binding:"required"`
	Increment int       `json:"increment"`
}

func (h *TaskHandler) UpdateProgress(c *gin.Context) {
	var req updateProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, h.log, apierr.InvalidInput("invalid request body: %v", err))
		return
	}
	if req.Increment == 0 {
		req.Increment = 1
	}

	progress, err := h.taskService.IncrementProgress(c.Request.Context(), req.Username, req.TaskID, req.Increment)
	if err != nil {
		RespondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":  "Cập nhật tiến trình thành công",
		"progress": progress,
	})
}

type dailyActivityRequest struct {
	Username          string `json:"username" binding:"required"`
	QuestionsAnswered *int   `json:"questions_answered"`
	CorrectAnswers    int    `json:"correct_answers"`
	PointsEarned      int    `json:"points_earned"`
}

func (h *TaskHandler) DailyActivity(c *gin.Context) {
	var req dailyActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, h.log, apierr.InvalidInput("invalid request body: %v", err))
		return
	}
	questionsAnswered := 1
	if req.QuestionsAnswered != nil {
		questionsAnswered = *req.QuestionsAnswered
	}

	result, err := h.taskService.RecordDailyActivity(
		c.Request.Context(), req.Username, questionsAnswered, req.CorrectAnswers, req.PointsEarned)
	if err != nil {
		RespondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":          "Cập nhật hoạt động hàng ngày thành công",
		"user_points":      result.UserPoints,
		"daily_completion": result.DailyCompletion,
	})
}

func (h *TaskHandler) Leaderboard(c *gin.Context) {
	result, err := h.pointsService.Leaderboard(
		c.Request.Context(),
		c.DefaultQuery("type", services.LeaderboardTotal),
		queryInt(c, "limit", 10),
	)
	if err != nil {
		RespondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
