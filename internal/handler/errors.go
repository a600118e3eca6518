package handler

import (
	"errors"
	"net/http"

	"estate-chat/internal/transport/httpdto"
	chat_errors "estate-chat/pkg/errors"

	"github.com/gin-gonic/gin"
)

func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, chat_errors.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse(err.Error(), "INVALID_REQUEST"))
	case errors.Is(err, chat_errors.ErrNotFound):
		c.JSON(http.StatusNotFound, httpdto.NewErrorResponse("chat not found", "NOT_FOUND"))
	case errors.Is(err, chat_errors.ErrForbidden):
		c.JSON(http.StatusForbidden, httpdto.NewErrorResponse("forbidden", "FORBIDDEN"))
	case errors.Is(err, chat_errors.ErrTokenExpired):
		c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("token expired", "TOKEN_EXPIRED"))
	case errors.Is(err, chat_errors.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("unauthorized", "UNAUTHORIZED"))
	case errors.Is(err, chat_errors.ErrStorage):
		c.JSON(http.StatusServiceUnavailable, httpdto.NewErrorResponse("storage unavailable", "STORAGE_FAILURE"))
	default:
		c.JSON(http.StatusInternalServerError, httpdto.NewErrorResponse(err.Error(), "INTERNAL_ERROR"))
	}
}
