package repository

import (
	"context"

	"estate-chat/internal/domain"
)

type ChatRepository interface {
	// Create inserts a new chat. A racing insert for the same unordered pair
	// loses to the pair-key unique index and returns ErrAlreadyExists.
	Create(ctx context.Context, chat *domain.Chat) error
	GetByID(ctx context.Context, id string) (domain.Chat, error)
	GetByPairKey(ctx context.Context, pairKey string) (domain.Chat, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Chat, error)

	// AddSeen appends userID to the chat's seen set if absent.
	AddSeen(ctx context.Context, chatID, userID string) error
	// ReplaceSeen overwrites the chat's seen set wholesale.
	ReplaceSeen(ctx context.Context, chatID string, seenBy []string) error

	// AppendMessage inserts msg and, in the same transaction, resets the
	// chat's seen set to the sender and refreshes its preview and recency.
	AppendMessage(ctx context.Context, msg *domain.Message) error

	CountUnseen(ctx context.Context, userID string) (int64, error)
}

type UserRepository interface {
	GetByID(ctx context.Context, id string) (domain.User, error)
}
