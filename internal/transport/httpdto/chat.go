package httpdto

import (
	"time"

	"estate-chat/internal/domain"
	"estate-chat/internal/services"
)

type CreateChatRequest struct {
	ReceiverID string `json:"receiver_id"`
}

type SendMessageRequest struct {
	Text string `json:"text"`
}

type MessageResponse struct {
	ID        string    `json:"id"`
	ChatID    string    `json:"chat_id"`
	SenderID  string    `json:"sender_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type ChatResponse struct {
	ID          string            `json:"id"`
	UserIDs     []string          `json:"user_ids"`
	SeenBy      []string          `json:"seen_by"`
	LastMessage *string           `json:"last_message,omitempty"`
	Messages    []MessageResponse `json:"messages,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

type ChatSummaryResponse struct {
	ID          string          `json:"id"`
	UserIDs     []string        `json:"user_ids"`
	SeenBy      []string        `json:"seen_by"`
	LastMessage *string         `json:"last_message,omitempty"`
	Receiver    *domain.Profile `json:"receiver,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

type ListChatsResponse struct {
	Chats []ChatSummaryResponse `json:"chats"`
	Total int                   `json:"total"`
}

func FromMessage(m domain.Message) MessageResponse {
	return MessageResponse{
		ID:        m.ID,
		ChatID:    m.ChatID,
		SenderID:  m.SenderID,
		Content:   m.Content,
		CreatedAt: m.CreatedAt,
	}
}

func FromChat(c domain.Chat) ChatResponse {
	messages := make([]MessageResponse, 0, len(c.Messages))
	for _, m := range c.Messages {
		messages = append(messages, FromMessage(m))
	}
	return ChatResponse{
		ID:          c.ID,
		UserIDs:     c.UserIDs,
		SeenBy:      c.SeenBy,
		LastMessage: c.LastMessage,
		Messages:    messages,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func FromChatSummary(s services.ChatSummary) ChatSummaryResponse {
	return ChatSummaryResponse{
		ID:          s.Chat.ID,
		UserIDs:     s.Chat.UserIDs,
		SeenBy:      s.Chat.SeenBy,
		LastMessage: s.Chat.LastMessage,
		Receiver:    s.Receiver,
		CreatedAt:   s.Chat.CreatedAt,
		UpdatedAt:   s.Chat.UpdatedAt,
	}
}

func FromChatSummarySlice(items []services.ChatSummary) []ChatSummaryResponse {
	out := make([]ChatSummaryResponse, 0, len(items))
	for _, item := range items {
		out = append(out, FromChatSummary(item))
	}
	return out
}
