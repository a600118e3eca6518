package handler

import (
	"net/http"

	"estate-chat/internal/services"
	"estate-chat/internal/transport/httpdto"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	chats *services.ChatService
}

func NewUserHandler(chats *services.ChatService) *UserHandler {
	return &UserHandler{chats: chats}
}

// NotificationCount returns how many chats the caller has not yet seen.
func (h *UserHandler) NotificationCount(c *gin.Context) {
	userID, ok := services.UserIDFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("unauthorized", "UNAUTHORIZED"))
		return
	}

	count, err := h.chats.CountUnseen(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(gin.H{"count": count}))
}
