package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"estate-chat/internal/domain"
	chat_errors "estate-chat/pkg/errors"
)

// MemoryChatRepository is an in-memory ChatRepository used by tests and local
// development. It mirrors the postgres implementation's observable semantics,
// including the pair-key unique constraint, so the get-or-create race contract
// holds without a database.
type MemoryChatRepository struct {
	mu      sync.Mutex
	chats   map[string]*domain.Chat
	byPair  map[string]string
	nextSeq int64
}

func NewMemoryChatRepository() *MemoryChatRepository {
	return &MemoryChatRepository{
		chats:  make(map[string]*domain.Chat),
		byPair: make(map[string]string),
	}
}

func cloneChat(c *domain.Chat) domain.Chat {
	out := *c
	out.UserIDs = append([]string(nil), c.UserIDs...)
	out.SeenBy = append([]string(nil), c.SeenBy...)
	out.Messages = append([]domain.Message(nil), c.Messages...)
	return out
}

func (r *MemoryChatRepository) Create(ctx context.Context, chat *domain.Chat) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byPair[chat.PairKey]; exists {
		return chat_errors.ErrAlreadyExists
	}
	stored := cloneChat(chat)
	r.chats[chat.ID] = &stored
	r.byPair[chat.PairKey] = chat.ID
	return nil
}

func (r *MemoryChatRepository) GetByID(ctx context.Context, id string) (domain.Chat, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	chat, ok := r.chats[id]
	if !ok {
		return domain.Chat{}, chat_errors.ErrNotFound
	}
	return cloneChat(chat), nil
}

func (r *MemoryChatRepository) GetByPairKey(ctx context.Context, pairKey string) (domain.Chat, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id, ok := r.byPair[pairKey]
	if !ok {
		return domain.Chat{}, chat_errors.ErrNotFound
	}
	return cloneChat(r.chats[id]), nil
}

func (r *MemoryChatRepository) ListByUser(ctx context.Context, userID string) ([]domain.Chat, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Chat
	for _, chat := range r.chats {
		if chat.HasParticipant(userID) {
			out = append(out, cloneChat(chat))
		}
	}
	// Most recently active first, matching the postgres ordering.
	sort.Slice(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out, nil
}

func (r *MemoryChatRepository) AddSeen(ctx context.Context, chatID, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	chat, ok := r.chats[chatID]
	if !ok {
		return nil
	}
	if !chat.SeenByUser(userID) {
		chat.SeenBy = append(chat.SeenBy, userID)
	}
	return nil
}

func (r *MemoryChatRepository) ReplaceSeen(ctx context.Context, chatID string, seenBy []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	chat, ok := r.chats[chatID]
	if !ok {
		return chat_errors.ErrNotFound
	}
	chat.SeenBy = append([]string(nil), seenBy...)
	return nil
}

func (r *MemoryChatRepository) AppendMessage(ctx context.Context, msg *domain.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	chat, ok := r.chats[msg.ChatID]
	if !ok {
		return chat_errors.ErrNotFound
	}
	r.nextSeq++
	msg.Seq = r.nextSeq
	chat.Messages = append(chat.Messages, *msg)
	chat.SeenBy = []string{msg.SenderID}
	content := msg.Content
	chat.LastMessage = &content
	chat.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *MemoryChatRepository) CountUnseen(ctx context.Context, userID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, chat := range r.chats {
		if chat.HasParticipant(userID) && !chat.SeenByUser(userID) {
			count++
		}
	}
	return count, nil
}

// MemoryUserRepository is the in-memory directory counterpart.
type MemoryUserRepository struct {
	mu    sync.Mutex
	users map[string]domain.User
}

func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{users: make(map[string]domain.User)}
}

func (r *MemoryUserRepository) Put(user domain.User) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.ID] = user
}

func (r *MemoryUserRepository) GetByID(ctx context.Context, id string) (domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return domain.User{}, chat_errors.ErrNotFound
	}
	return user, nil
}
