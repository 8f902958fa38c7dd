package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/vietlingo/vietlingo-backend/internal/apierr"
	"github.com/vietlingo/vietlingo-backend/internal/logger"
)

// RespondError writes the shared error envelope. Unclassified errors are
// logged and surface as a bare 500.
func RespondError(c *gin.Context, log *logger.Logger, err error) {
	status, code := apierr.StatusOf(err)
	if status >= 500 {
		log.Error("request failed", "path", c.FullPath(), "error", err)
		c.JSON(status, gin.H{"error": gin.H{"message": "internal server error", "code": code}})
		return
	}
	c.JSON(status, gin.H{"error": gin.H{"message": err.Error(), "code": code}})
}
