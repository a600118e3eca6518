package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"estate-chat/internal/domain"
	"estate-chat/internal/repository"
	chat_errors "estate-chat/pkg/errors"
	"estate-chat/pkg/logger"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

// ChatSummary is a chat enriched for list views: the peer's display profile
// plus the stored last-message preview.
type ChatSummary struct {
	Chat     domain.Chat
	Receiver *domain.Profile
}

type ChatService struct {
	repo      repository.ChatRepository
	directory Directory
	log       *logger.Logger
}

func NewChatService(repo repository.ChatRepository, directory Directory, log *logger.Logger) *ChatService {
	return &ChatService{repo: repo, directory: directory, log: log}
}

// ListChats returns the caller's chats, most recently active first, each
// enriched with the other participant's profile. A profile that cannot be
// resolved leaves the receiver empty rather than failing the listing.
func (s *ChatService) ListChats(ctx context.Context, userID string) ([]ChatSummary, error) {
	chats, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	return lo.Map(chats, func(chat domain.Chat, _ int) ChatSummary {
		summary := ChatSummary{Chat: chat}
		receiverID, ok := chat.OtherParticipant(userID)
		if !ok {
			return summary
		}
		profile, err := s.directory.Resolve(ctx, receiverID)
		if err != nil {
			if s.log != nil {
				s.log.Debugf("resolve receiver %s: %s", receiverID, err)
			}
			return summary
		}
		summary.Receiver = &profile
		return summary
	}), nil
}

// GetOrCreateChat returns the chat for the unordered pair {userID, otherID},
// creating it on first contact. The pair-key unique index is the serialization
// point: a racing insert surfaces as ErrAlreadyExists and is answered with a
// re-fetch, so at most one chat per pair ever persists.
func (s *ChatService) GetOrCreateChat(ctx context.Context, userID, otherID string) (domain.Chat, error) {
	otherID = strings.TrimSpace(otherID)
	if otherID == "" || otherID == userID {
		return domain.Chat{}, chat_errors.ErrInvalidInput
	}

	pairKey := domain.PairKey(userID, otherID)
	existing, err := s.repo.GetByPairKey(ctx, pairKey)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, chat_errors.ErrNotFound) {
		return domain.Chat{}, err
	}

	now := time.Now().UTC()
	chat := domain.Chat{
		ID:        uuid.New().String(),
		PairKey:   pairKey,
		UserIDs:   []string{userID, otherID},
		SeenBy:    []string{userID},
		CreatedAt: now,
		UpdatedAt: now,
	}
	err = s.repo.Create(ctx, &chat)
	if err == nil {
		return chat, nil
	}
	if errors.Is(err, chat_errors.ErrAlreadyExists) {
		// Lost the insert race; the winner's chat is the chat.
		return s.repo.GetByPairKey(ctx, pairKey)
	}
	return domain.Chat{}, err
}

// GetChat returns the full chat with its messages in ascending order and, as
// a side effect of viewing, marks it seen by the caller. An unknown id and a
// chat the caller does not participate in are both ErrNotFound, so existence
// is never disclosed to outsiders.
func (s *ChatService) GetChat(ctx context.Context, chatID, callerID string) (domain.Chat, error) {
	chat, err := s.repo.GetByID(ctx, chatID)
	if err != nil {
		return domain.Chat{}, err
	}
	if !chat.HasParticipant(callerID) {
		return domain.Chat{}, chat_errors.ErrNotFound
	}

	if !chat.SeenByUser(callerID) {
		if err := s.repo.AddSeen(ctx, chatID, callerID); err != nil {
			return domain.Chat{}, err
		}
		chat.SeenBy = append(chat.SeenBy, callerID)
	}
	return chat, nil
}

// MarkRead replaces the chat's seen set with exactly {callerID}. This is a
// replacement, not an addition: the other participant's prior seen state is
// discarded.
func (s *ChatService) MarkRead(ctx context.Context, chatID, callerID string) (domain.Chat, error) {
	chat, err := s.repo.GetByID(ctx, chatID)
	if err != nil {
		return domain.Chat{}, err
	}
	if !chat.HasParticipant(callerID) {
		return domain.Chat{}, chat_errors.ErrNotFound
	}

	if err := s.repo.ReplaceSeen(ctx, chatID, []string{callerID}); err != nil {
		return domain.Chat{}, err
	}
	chat.SeenBy = []string{callerID}
	return chat, nil
}

// AppendMessage appends a message for senderID, who must be a participant.
// The chat's seen set resets to the sender so the peer counts as unseen until
// they view or mark the chat again.
func (s *ChatService) AppendMessage(ctx context.Context, chatID, senderID, content string) (domain.Message, error) {
	if strings.TrimSpace(content) == "" {
		return domain.Message{}, chat_errors.ErrInvalidInput
	}

	chat, err := s.repo.GetByID(ctx, chatID)
	if err != nil {
		return domain.Message{}, err
	}
	if !chat.HasParticipant(senderID) {
		return domain.Message{}, chat_errors.ErrForbidden
	}

	msg := domain.Message{
		ID:        uuid.New().String(),
		ChatID:    chatID,
		SenderID:  senderID,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.AppendMessage(ctx, &msg); err != nil {
		return domain.Message{}, err
	}
	return msg, nil
}

// CountUnseen counts the chats where userID participates but has not seen the
// latest state. Pure derived read.
func (s *ChatService) CountUnseen(ctx context.Context, userID string) (int64, error) {
	return s.repo.CountUnseen(ctx, userID)
}
