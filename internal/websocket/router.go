package websocket

import (
	"estate-chat/internal/presence"
	"estate-chat/pkg/logger"

	"go.uber.org/zap"
)

// Router bridges live connections to the presence registry.
//
// Routing is best-effort: when the receiver has no live connection the payload
// is dropped without error. Durable history is the REST surface's separate
// responsibility; the router never touches the chat store.
type Router struct {
	registry *presence.Registry
	log      *logger.Logger
}

func NewRouter(registry *presence.Registry, log *logger.Logger) *Router {
	return &Router{registry: registry, log: log}
}

// Route forwards payload to receiverID's live connection, if any. A miss is
// expected steady-state behavior, not a fault; the sender is never told.
func (r *Router) Route(senderID, receiverID string, payload SendPayload) {
	conn, ok := r.registry.Lookup(receiverID)
	if !ok {
		if r.log != nil {
			r.log.Debugf("route miss: receiver %s offline, message dropped", receiverID)
		}
		return
	}

	msg, err := NewEnvelope(EventDeliver, DeliverPayload{
		SenderID: senderID,
		ChatID:   payload.ChatID,
		Text:     payload.Text,
	})
	if err != nil {
		if r.log != nil {
			r.log.Logger.Error("encode deliver frame", zap.Error(err))
		}
		return
	}

	conn.SendMessage(msg)
}
