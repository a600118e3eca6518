package middleware

import (
	"errors"
	"net/http"
	"strings"

	"estate-chat/internal/services"
	"estate-chat/internal/transport/httpdto"
	chat_errors "estate-chat/pkg/errors"

	"github.com/gin-gonic/gin"
)

func AuthMiddleware(service *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractBearer(c)
		claims, err := service.ParseAccessToken(token)
		if err != nil {
			if errors.Is(err, chat_errors.ErrTokenExpired) {
				c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("token expired", "TOKEN_EXPIRED"))
			} else {
				c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("unauthorized", "UNAUTHORIZED"))
			}
			c.Abort()
			return
		}

		ctx := services.WithUserContext(c.Request.Context(), claims.UserID)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func extractBearer(c *gin.Context) string {
	value := c.GetHeader("Authorization")
	parts := strings.SplitN(value, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
