package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vietlingo/vietlingo-backend/internal/apierr"
	"github.com/vietlingo/vietlingo-backend/internal/logger"
	"github.com/vietlingo/vietlingo-backend/internal/requestdata"
	"github.com/vietlingo/vietlingo-backend/internal/services"
)

type AuthHandler struct {
	authService services.AuthService
	log         *logger.Logger
}

func NewAuthHandler(authService services.AuthService, baseLog *logger.Logger) *AuthHandler {
	handlerLog := baseLog.With("handler", "AuthHandler")
	return &AuthHandler{authService: authService, log: handlerLog}
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, h.log, apierr.InvalidInput("invalid request body: %v", err))
		return
	}

	result, err := h.authService.Login(c.Request.Context(), req.Username)
	if err != nil {
		RespondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Đăng nhập thành công",
		"user":        result.User,
		"token":       result.Token,
		"is_new_user": result.IsNewUser,
	})
}

func (h *AuthHandler) GetToken(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.TokenString == "" {
		RespondError(c, h.log, apierr.Unauthorized("missing bearer token"))
		return
	}

	user, err := h.authService.GetUserFromToken(c.Request.Context(), rd.TokenString)
	if err != nil {
		RespondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": rd.TokenString,
		"user":  user,
	})
}
