package websocket

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"estate-chat/internal/presence"
	"estate-chat/internal/services"
	"estate-chat/internal/transport/httpdto"
	chat_errors "estate-chat/pkg/errors"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const readTimeout = 60 * time.Second

// Handler upgrades authenticated HTTP requests to live connections and runs
// the per-connection read loop. Each connection is an independent handler
// goroutine; they share state only through the presence registry.
type Handler struct {
	auth     *services.AuthService
	registry *presence.Registry
	router   *Router
}

func NewHandler(auth *services.AuthService, registry *presence.Registry, router *Router) *Handler {
	return &Handler{auth: auth, registry: registry, router: router}
}

func (h *Handler) Connect(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("unauthorized", "UNAUTHORIZED"))
		return
	}

	claims, err := h.auth.ParseAccessToken(token)
	if err != nil {
		if errors.Is(err, chat_errors.ErrTokenExpired) {
			c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("token expired", "TOKEN_EXPIRED"))
		} else {
			c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("unauthorized", "UNAUTHORIZED"))
		}
		return
	}

	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool { return true },
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	userID := strings.TrimSpace(claims.UserID)
	client := NewClient(conn, userID)
	ctx := c.Request.Context()

	go client.WriteLoop(ctx)
	defer func() {
		h.registry.Unregister(client)
		client.Close()
	}()

	_ = conn.SetReadDeadline(time.Now().Add(readTimeout))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(readTimeout))
	})

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			return
		}
		_ = conn.SetReadDeadline(time.Now().Add(readTimeout))
		h.handleFrame(client, raw)
	}
}

func (h *Handler) handleFrame(client *Client, raw []byte) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		h.reject(client, "malformed frame")
		return
	}

	switch env.Type {
	case EventAnnounce:
		var payload AnnouncePayload
		if err := json.Unmarshal(env.Data, &payload); err != nil {
			h.reject(client, "malformed announce payload")
			return
		}
		// The event carries a user id for protocol symmetry, but presence is
		// bound to the token identity; a mismatch is rejected outright.
		if payload.UserID != "" && payload.UserID != client.UserID {
			h.reject(client, "announce identity mismatch")
			return
		}
		h.registry.Register(client.UserID, client)

	case EventSend:
		var payload SendPayload
		if err := json.Unmarshal(env.Data, &payload); err != nil {
			h.reject(client, "malformed send payload")
			return
		}
		if payload.ReceiverID == "" {
			h.reject(client, "missing receiver id")
			return
		}
		h.router.Route(client.UserID, payload.ReceiverID, payload)

	default:
		h.reject(client, "unknown event type")
	}
}

func (h *Handler) reject(client *Client, reason string) {
	if msg, err := NewEnvelope(EventError, ErrorPayload{Message: reason}); err == nil {
		client.SendMessage(msg)
	}
}
