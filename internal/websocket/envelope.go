package websocket

import "encoding/json"

// Event types carried over a live connection.
const (
	EventAnnounce = "announce" // inbound: bind this connection to a user id
	EventSend     = "send"     // inbound: forward a payload to another user
	EventDeliver  = "deliver"  // outbound: payload forwarded to this user
	EventError    = "error"    // outbound: protocol-level rejection
)

type Envelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

type AnnouncePayload struct {
	UserID string `json:"user_id"`
}

type SendPayload struct {
	ReceiverID string `json:"receiver_id"`
	ChatID     string `json:"chat_id,omitempty"`
	Text       string `json:"text"`
}

type DeliverPayload struct {
	SenderID string `json:"sender_id"`
	ChatID   string `json:"chat_id,omitempty"`
	Text     string `json:"text"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}

func NewEnvelope(eventType string, payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Envelope{Type: eventType, Data: data})
}
