package services

import (
	"context"
	"sync"
	"testing"

	"estate-chat/internal/repository"
	chat_errors "estate-chat/pkg/errors"

	"github.com/stretchr/testify/require"
)

func newTestChatService() (*ChatService, *repository.MemoryChatRepository) {
	repo := repository.NewMemoryChatRepository()
	return NewChatService(repo, &stubDirectory{}, nil), repo
}

func TestGetOrCreateChat_Validation(t *testing.T) {
	req := require.New(t)
	svc, _ := newTestChatService()
	ctx := context.Background()

	_, err := svc.GetOrCreateChat(ctx, "alice", "")
	req.ErrorIs(err, chat_errors.ErrInvalidInput)

	_, err = svc.GetOrCreateChat(ctx, "alice", "   ")
	req.ErrorIs(err, chat_errors.ErrInvalidInput)

	_, err = svc.GetOrCreateChat(ctx, "alice", "alice")
	req.ErrorIs(err, chat_errors.ErrInvalidInput)
}

func TestGetOrCreateChat_FirstContact(t *testing.T) {
	req := require.New(t)
	svc, _ := newTestChatService()
	ctx := context.Background()

	chat, err := svc.GetOrCreateChat(ctx, "alice", "bob")
	req.NoError(err)
	req.NotEmpty(chat.ID)
	req.ElementsMatch([]string{"alice", "bob"}, chat.UserIDs)
	req.Equal([]string{"alice"}, chat.SeenBy)
	req.Empty(chat.Messages)
}

func TestGetOrCreateChat_PairIsUnordered(t *testing.T) {
	req := require.New(t)
	svc, _ := newTestChatService()
	ctx := context.Background()

	first, err := svc.GetOrCreateChat(ctx, "alice", "bob")
	req.NoError(err)

	second, err := svc.GetOrCreateChat(ctx, "bob", "alice")
	req.NoError(err)
	req.Equal(first.ID, second.ID)
}

func TestGetOrCreateChat_ConcurrentCallersYieldOneChat(t *testing.T) {
	req := require.New(t)
	svc, repo := newTestChatService()
	ctx := context.Background()

	const n = 32
	ids := make([]string, n)
	errs := make([]error, n)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			caller, other := "alice", "bob"
			if i%2 == 1 {
				caller, other = "bob", "alice"
			}
			chat, err := svc.GetOrCreateChat(ctx, caller, other)
			ids[i], errs[i] = chat.ID, err
		}(i)
	}
	wg.Wait()

	for i := 0; i < n; i++ {
		req.NoError(errs[i])
		req.Equal(ids[0], ids[i])
	}

	chats, err := repo.ListByUser(ctx, "alice")
	req.NoError(err)
	req.Len(chats, 1)
}

func TestGetChat_MarksSeenByCaller(t *testing.T) {
	req := require.New(t)
	svc, _ := newTestChatService()
	ctx := context.Background()

	created, err := svc.GetOrCreateChat(ctx, "alice", "bob")
	req.NoError(err)

	chat, err := svc.GetChat(ctx, created.ID, "bob")
	req.NoError(err)
	req.ElementsMatch([]string{"alice", "bob"}, chat.SeenBy)

	// Idempotent: a second view does not duplicate the entry.
	chat, err = svc.GetChat(ctx, created.ID, "bob")
	req.NoError(err)
	req.ElementsMatch([]string{"alice", "bob"}, chat.SeenBy)
}

func TestGetChat_NonParticipantGetsNotFound(t *testing.T) {
	req := require.New(t)
	svc, _ := newTestChatService()
	ctx := context.Background()

	created, err := svc.GetOrCreateChat(ctx, "alice", "bob")
	req.NoError(err)

	// Unknown id and existing-but-foreign chat are indistinguishable.
	_, err = svc.GetChat(ctx, "no-such-chat", "carol")
	req.ErrorIs(err, chat_errors.ErrNotFound)

	_, err = svc.GetChat(ctx, created.ID, "carol")
	req.ErrorIs(err, chat_errors.ErrNotFound)
	req.NotErrorIs(err, chat_errors.ErrForbidden)
}

func TestMarkRead_ReplacesSeenSet(t *testing.T) {
	req := require.New(t)
	svc, _ := newTestChatService()
	ctx := context.Background()

	created, err := svc.GetOrCreateChat(ctx, "alice", "bob")
	req.NoError(err)
	req.Equal([]string{"alice"}, created.SeenBy)

	// markRead is a replacement, not a union: alice's prior membership is
	// dropped when bob marks the chat read.
	chat, err := svc.MarkRead(ctx, created.ID, "bob")
	req.NoError(err)
	req.Equal([]string{"bob"}, chat.SeenBy)

	_, err = svc.MarkRead(ctx, created.ID, "carol")
	req.ErrorIs(err, chat_errors.ErrNotFound)
}

func TestAppendMessage_ParticipantOnly(t *testing.T) {
	req := require.New(t)
	svc, _ := newTestChatService()
	ctx := context.Background()

	created, err := svc.GetOrCreateChat(ctx, "alice", "bob")
	req.NoError(err)

	_, err = svc.AppendMessage(ctx, created.ID, "carol", "let me in")
	req.ErrorIs(err, chat_errors.ErrForbidden)

	_, err = svc.AppendMessage(ctx, created.ID, "alice", "  ")
	req.ErrorIs(err, chat_errors.ErrInvalidInput)

	_, err = svc.AppendMessage(ctx, "no-such-chat", "alice", "hi")
	req.ErrorIs(err, chat_errors.ErrNotFound)
}

func TestAppendMessage_ResetsSeenAndOrdersMessages(t *testing.T) {
	req := require.New(t)
	svc, _ := newTestChatService()
	ctx := context.Background()

	created, err := svc.GetOrCreateChat(ctx, "alice", "bob")
	req.NoError(err)

	// Bob views the chat, then alice posts: bob's seen state resets.
	_, err = svc.GetChat(ctx, created.ID, "bob")
	req.NoError(err)

	first, err := svc.AppendMessage(ctx, created.ID, "alice", "hello")
	req.NoError(err)
	second, err := svc.AppendMessage(ctx, created.ID, "alice", "you there?")
	req.NoError(err)

	chat, err := svc.GetChat(ctx, created.ID, "alice")
	req.NoError(err)
	req.Equal([]string{"alice"}, chat.SeenBy)
	req.Len(chat.Messages, 2)
	req.Equal(first.ID, chat.Messages[0].ID)
	req.Equal(second.ID, chat.Messages[1].ID)
	req.NotNil(chat.LastMessage)
	req.Equal("you there?", *chat.LastMessage)
}

func TestCountUnseen_TracksSeenTransitions(t *testing.T) {
	req := require.New(t)
	svc, _ := newTestChatService()
	ctx := context.Background()

	chat, err := svc.GetOrCreateChat(ctx, "alice", "bob")
	req.NoError(err)

	// Creation marks the creator seen, the peer unseen.
	count, err := svc.CountUnseen(ctx, "bob")
	req.NoError(err)
	req.Equal(int64(1), count)

	count, err = svc.CountUnseen(ctx, "alice")
	req.NoError(err)
	req.Equal(int64(0), count)

	// Viewing clears the peer's unseen count.
	_, err = svc.GetChat(ctx, chat.ID, "bob")
	req.NoError(err)
	count, err = svc.CountUnseen(ctx, "bob")
	req.NoError(err)
	req.Equal(int64(0), count)

	// A new message from alice makes the chat unseen for bob again, and the
	// count rises by exactly one even across several messages.
	_, err = svc.AppendMessage(ctx, chat.ID, "alice", "hello")
	req.NoError(err)
	_, err = svc.AppendMessage(ctx, chat.ID, "alice", "still me")
	req.NoError(err)

	count, err = svc.CountUnseen(ctx, "bob")
	req.NoError(err)
	req.Equal(int64(1), count)
}

func TestListChats_EnrichesWithReceiverProfile(t *testing.T) {
	req := require.New(t)
	repo := repository.NewMemoryChatRepository()
	svc := NewChatService(repo, &stubDirectory{missing: map[string]bool{"ghost": true}}, nil)
	ctx := context.Background()

	_, err := svc.GetOrCreateChat(ctx, "alice", "bob")
	req.NoError(err)
	_, err = svc.GetOrCreateChat(ctx, "alice", "ghost")
	req.NoError(err)

	items, err := svc.ListChats(ctx, "alice")
	req.NoError(err)
	req.Len(items, 2)

	byReceiver := map[string]ChatSummary{}
	for _, item := range items {
		other, ok := item.Chat.OtherParticipant("alice")
		req.True(ok)
		byReceiver[other] = item
	}

	req.NotNil(byReceiver["bob"].Receiver)
	req.Equal("user-bob", byReceiver["bob"].Receiver.Username)

	// A directory miss degrades to an unenriched summary, not an error.
	req.Nil(byReceiver["ghost"].Receiver)
}
