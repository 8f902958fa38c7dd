package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/vietlingo/vietlingo-backend/internal/requestdata"
)

// RequestContext extracts the bearer token from the Authorization header and
// stores it on the request context for downstream handlers. Requests without
// a token pass through; endpoints that need one reject later.
func RequestContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")

		var token string
		switch {
		case strings.HasPrefix(authHeader, "Bearer "):
			token = strings.TrimPrefix(authHeader, "Bearer ")
		case strings.HasPrefix(authHeader, "Token "):
			token = strings.TrimPrefix(authHeader, "Token ")
		}

		rd := &requestdata.RequestData{TokenString: strings.TrimSpace(token)}
		ctx := requestdata.WithRequestData(c.Request.Context(), rd)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
