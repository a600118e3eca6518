package websocket

import (
	"encoding/json"
	"testing"

	"estate-chat/internal/presence"

	"github.com/stretchr/testify/require"
)

func newTestClient(userID string) *Client {
	return &Client{
		ID:     "test-" + userID,
		UserID: userID,
		Send:   make(chan []byte, 16),
	}
}

func drain(c *Client) [][]byte {
	var frames [][]byte
	for {
		select {
		case msg := <-c.Send:
			frames = append(frames, msg)
		default:
			return frames
		}
	}
}

func frame(t *testing.T, eventType string, payload any) []byte {
	t.Helper()
	raw, err := NewEnvelope(eventType, payload)
	require.NoError(t, err)
	return raw
}

func TestHandleFrame_AnnounceRegistersPresence(t *testing.T) {
	req := require.New(t)
	registry := presence.NewRegistry()
	h := NewHandler(nil, registry, NewRouter(registry, nil))

	alice := newTestClient("alice")
	h.handleFrame(alice, frame(t, EventAnnounce, AnnouncePayload{UserID: "alice"}))

	conn, ok := registry.Lookup("alice")
	req.True(ok)
	req.Same(alice, conn)
	req.Empty(drain(alice))
}

func TestHandleFrame_AnnounceIdentityMismatchRejected(t *testing.T) {
	req := require.New(t)
	registry := presence.NewRegistry()
	h := NewHandler(nil, registry, NewRouter(registry, nil))

	alice := newTestClient("alice")
	h.handleFrame(alice, frame(t, EventAnnounce, AnnouncePayload{UserID: "mallory"}))

	_, ok := registry.Lookup("mallory")
	req.False(ok)
	_, ok = registry.Lookup("alice")
	req.False(ok)

	frames := drain(alice)
	req.Len(frames, 1)
	var env Envelope
	req.NoError(json.Unmarshal(frames[0], &env))
	req.Equal(EventError, env.Type)
}

func TestHandleFrame_SendReachesAnnouncedReceiver(t *testing.T) {
	req := require.New(t)
	registry := presence.NewRegistry()
	h := NewHandler(nil, registry, NewRouter(registry, nil))

	alice := newTestClient("alice")
	bob := newTestClient("bob")
	h.handleFrame(alice, frame(t, EventAnnounce, AnnouncePayload{UserID: "alice"}))
	h.handleFrame(bob, frame(t, EventAnnounce, AnnouncePayload{UserID: "bob"}))

	h.handleFrame(alice, frame(t, EventSend, SendPayload{ReceiverID: "bob", Text: "hello"}))

	frames := drain(bob)
	req.Len(frames, 1)

	var env Envelope
	req.NoError(json.Unmarshal(frames[0], &env))
	req.Equal(EventDeliver, env.Type)

	var payload DeliverPayload
	req.NoError(json.Unmarshal(env.Data, &payload))
	req.Equal("alice", payload.SenderID)
	req.Equal("hello", payload.Text)

	// The sender got nothing back: no ack, no error.
	req.Empty(drain(alice))
}

func TestHandleFrame_SendToOfflineUserIsSilent(t *testing.T) {
	req := require.New(t)
	registry := presence.NewRegistry()
	h := NewHandler(nil, registry, NewRouter(registry, nil))

	alice := newTestClient("alice")
	h.handleFrame(alice, frame(t, EventAnnounce, AnnouncePayload{UserID: "alice"}))
	h.handleFrame(alice, frame(t, EventSend, SendPayload{ReceiverID: "bob", Text: "hello"}))

	req.Empty(drain(alice))
}

func TestHandleFrame_MalformedAndUnknownFrames(t *testing.T) {
	req := require.New(t)
	registry := presence.NewRegistry()
	h := NewHandler(nil, registry, NewRouter(registry, nil))

	alice := newTestClient("alice")

	h.handleFrame(alice, []byte("{not json"))
	h.handleFrame(alice, frame(t, "typing", map[string]string{}))
	h.handleFrame(alice, frame(t, EventSend, SendPayload{Text: "no receiver"}))

	frames := drain(alice)
	req.Len(frames, 3)
	for _, raw := range frames {
		var env Envelope
		req.NoError(json.Unmarshal(raw, &env))
		req.Equal(EventError, env.Type)
	}
}
