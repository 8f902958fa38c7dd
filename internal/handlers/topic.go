package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/vietlingo/vietlingo-backend/internal/apierr"
	"github.com/vietlingo/vietlingo-backend/internal/logger"
	"github.com/vietlingo/vietlingo-backend/internal/services"
)

type TopicHandler struct {
	topicService services.TopicService
	log          *logger.Logger
}

func NewTopicHandler(topicService services.TopicService, baseLog *logger.Logger) *TopicHandler {
	handlerLog := baseLog.With("handler", "TopicHandler")
	return &TopicHandler{topicService: topicService, log: handlerLog}
}

func (h *TopicHandler) List(c *gin.Context) {
	topics, err := h.topicService.List(c.Request.Context())
	if err != nil {
		RespondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, topics)
}

func (h *TopicHandler) Create(c *gin.Context) {
	var input services.TopicInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, h.log, apierr.InvalidInput("invalid request body: %v", err))
		return
	}

	topic, err := h.topicService.Create(c.Request.Context(), input)
	if err != nil {
		RespondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"topic":   topic,
		"message": "Thêm chủ đề thành công",
	})
}

func (h *TopicHandler) Get(c *gin.Context) {
	topicID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, h.log, apierr.InvalidInput("invalid topic id"))
		return
	}

	topic, err := h.topicService.Get(c.Request.Context(), topicID)
	if err != nil {
		RespondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, topic)
}

func (h *TopicHandler) Update(c *gin.Context) {
	topicID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, h.log, apierr.InvalidInput("invalid topic id"))
		return
	}

	var update services.TopicUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		RespondError(c, h.log, apierr.InvalidInput("invalid request body: %v", err))
		return
	}

	topic, err := h.topicService.Update(c.Request.Context(), topicID, update)
	if err != nil {
		RespondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"topic":   topic,
		"message": "Cập nhật chủ đề thành công",
	})
}

func (h *TopicHandler) Delete(c *gin.Context) {
	topicID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, h.log, apierr.InvalidInput("invalid topic id"))
		return
	}

	if err := h.topicService.Delete(c.Request.Context(), topicID); err != nil {
		RespondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Xóa chủ đề thành công"})
}
