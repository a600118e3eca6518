package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"estate-chat/internal/domain"

	"github.com/stretchr/testify/require"
)

func TestAppendMessage_EqualTimestampsKeepInsertionOrder(t *testing.T) {
	req := require.New(t)
	repo := NewMemoryChatRepository()
	ctx := context.Background()

	chat := domain.Chat{
		ID:      "chat-1",
		PairKey: domain.PairKey("alice", "bob"),
		UserIDs: []string{"alice", "bob"},
		SeenBy:  []string{"alice"},
	}
	req.NoError(repo.Create(ctx, &chat))

	// Given three messages landing inside the same clock tick
	now := time.Now().UTC()
	for i := 0; i < 3; i++ {
		msg := domain.Message{
			ID:        fmt.Sprintf("msg-%d", i),
			ChatID:    chat.ID,
			SenderID:  "alice",
			Content:   fmt.Sprintf("line %d", i),
			CreatedAt: now,
		}
		req.NoError(repo.AppendMessage(ctx, &msg))
	}

	// Then reads return them in insertion order, pinned by the sequence
	got, err := repo.GetByID(ctx, chat.ID)
	req.NoError(err)
	req.Len(got.Messages, 3)
	for i, msg := range got.Messages {
		req.Equal(fmt.Sprintf("line %d", i), msg.Content)
		if i > 0 {
			req.Greater(msg.Seq, got.Messages[i-1].Seq)
		}
	}
}
