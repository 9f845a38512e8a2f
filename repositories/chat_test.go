package repositories

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"
	"whispr/domain"
	apperrors "whispr/errors"

	"github.com/stretchr/testify/require"
)

func TestChatRepository_EnsureChatIsIdempotent(t *testing.T) {
	req := require.New(t)
	repo := NewChatRepository(setupTestDB(t), testLogger())
	ctx := context.Background()

	first, err := repo.EnsureChat(ctx, "bob", "alice")
	req.NoError(err)
	req.Equal("alice_bob", first.ID)
	req.Equal([]string{"alice", "bob"}, first.Participants)

	// A message lands, then someone connects again.
	req.NoError(repo.UpdateSummary(ctx, first.ID, first.Participants, "hello", domain.Now()))

	second, err := repo.EnsureChat(ctx, "alice", "bob")
	req.NoError(err)
	req.Equal(first.ID, second.ID)
	req.Equal("hello", second.LastMessage)
}

func TestChatRepository_UpdateSummaryPreservesCreatedAt(t *testing.T) {
	req := require.New(t)
	repo := NewChatRepository(setupTestDB(t), testLogger())
	ctx := context.Background()

	chat, err := repo.EnsureChat(ctx, "alice", "bob")
	req.NoError(err)

	req.NoError(repo.UpdateSummary(ctx, chat.ID, chat.Participants, "hi", "2026-08-31T10:00:00Z"))

	got, err := repo.GetChat(ctx, chat.ID)
	req.NoError(err)
	req.Equal(chat.CreatedAt, got.CreatedAt)
	req.Equal("hi", got.LastMessage)
	req.Equal("2026-08-31T10:00:00Z", got.LastMessageTime)
}

func TestChatRepository_MessagesComeBackInChronologicalOrder(t *testing.T) {
	req := require.New(t)
	repo := NewChatRepository(setupTestDB(t), testLogger())
	ctx := context.Background()

	chat, err := repo.EnsureChat(ctx, "alice", "bob")
	req.NoError(err)

	// Written out of order on purpose. The middle pair lands 130ms and
	// 134ms into the same second: millisecond spacing must not reorder.
	base := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)
	instants := []time.Duration{
		2 * time.Second,
		134 * time.Millisecond,
		130 * time.Millisecond,
		1 * time.Second,
	}
	for _, offset := range instants {
		ts := domain.Timestamp(base.Add(offset))
		req.NoError(repo.AppendMessage(ctx, chat.ID, domain.Message{
			Text: ts, Sender: "alice", Receiver: "bob", Timestamp: ts,
		}))
	}

	messages, err := repo.Messages(ctx, chat.ID)
	req.NoError(err)
	req.Len(messages, 4)
	req.Equal(domain.Timestamp(base.Add(130*time.Millisecond)), messages[0].Timestamp)
	req.Equal(domain.Timestamp(base.Add(134*time.Millisecond)), messages[1].Timestamp)
	for i := 1; i < len(messages); i++ {
		req.Less(messages[i-1].Timestamp, messages[i].Timestamp)
	}
	req.NotEmpty(messages[0].ID)
}

func TestChatRepository_MessagesDoNotLeakAcrossConversations(t *testing.T) {
	req := require.New(t)
	repo := NewChatRepository(setupTestDB(t), testLogger())
	ctx := context.Background()

	ts := domain.Now()
	req.NoError(repo.AppendMessage(ctx, "alice_bob", domain.Message{Text: "for bob", Timestamp: ts}))
	req.NoError(repo.AppendMessage(ctx, "alice_carol", domain.Message{Text: "for carol", Timestamp: ts}))

	messages, err := repo.Messages(ctx, "alice_bob")
	req.NoError(err)
	req.Len(messages, 1)
	req.Equal("for bob", messages[0].Text)
}

func TestChatRepository_ChatsForFiltersByParticipant(t *testing.T) {
	req := require.New(t)
	repo := NewChatRepository(setupTestDB(t), testLogger())
	ctx := context.Background()

	_, err := repo.EnsureChat(ctx, "alice", "bob")
	req.NoError(err)
	_, err = repo.EnsureChat(ctx, "alice", "carol")
	req.NoError(err)
	_, err = repo.EnsureChat(ctx, "bob", "carol")
	req.NoError(err)

	chats, err := repo.ChatsFor(ctx, "alice")
	req.NoError(err)
	req.Len(chats, 2)
	for _, chat := range chats {
		req.True(chat.HasParticipant("alice"))
		req.NotEmpty(chat.ID)
	}
}

func TestChatRepository_DeleteChatRemovesSummaryAndHistory(t *testing.T) {
	req := require.New(t)
	repo := NewChatRepository(setupTestDB(t), testLogger())
	ctx := context.Background()

	chat, err := repo.EnsureChat(ctx, "alice", "bob")
	req.NoError(err)
	for i := 0; i < 10; i++ {
		req.NoError(repo.AppendMessage(ctx, chat.ID, domain.Message{
			Text: fmt.Sprintf("msg %d", i), Timestamp: domain.Now(),
		}))
	}
	keep, err := repo.EnsureChat(ctx, "alice", "carol")
	req.NoError(err)
	req.NoError(repo.AppendMessage(ctx, keep.ID, domain.Message{Text: "stays", Timestamp: domain.Now()}))

	req.NoError(repo.DeleteChat(ctx, chat.ID))

	_, err = repo.GetChat(ctx, chat.ID)
	req.ErrorIs(err, apperrors.ErrNotFound)

	messages, err := repo.Messages(ctx, chat.ID)
	req.NoError(err)
	req.Empty(messages)

	// The neighbour conversation is untouched.
	messages, err = repo.Messages(ctx, keep.ID)
	req.NoError(err)
	req.Len(messages, 1)
}

func TestChatRepository_WatchMessages(t *testing.T) {
	req := require.New(t)
	repo := NewChatRepository(setupTestDB(t), testLogger())
	ctx := context.Background()

	chat, err := repo.EnsureChat(ctx, "alice", "bob")
	req.NoError(err)

	var mu sync.Mutex
	var last []domain.Message
	cancel, err := repo.WatchMessages(ctx, chat.ID, func(messages []domain.Message, err error) {
		req.NoError(err)
		mu.Lock()
		last = messages
		mu.Unlock()
	})
	req.NoError(err)
	defer cancel()

	req.NoError(repo.AppendMessage(ctx, chat.ID, domain.Message{Text: "hello", Timestamp: domain.Now()}))

	req.Eventually(func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(last) == 1 && last[0].Text == "hello"
	}, 2*time.Second, 10*time.Millisecond)
}

func TestChatRepository_WatchSeesWriteRacingAttachment(t *testing.T) {
	req := require.New(t)
	repo := NewChatRepository(setupTestDB(t), testLogger())
	ctx := context.Background()

	chat, err := repo.EnsureChat(ctx, "alice", "bob")
	req.NoError(err)

	// A message appended right after the watch returns must surface on
	// its own, with no later write to flush it out. Repeated to give a
	// subscriber racing its own registration a chance to lose.
	for i := 0; i < 20; i++ {
		var mu sync.Mutex
		var last []domain.Message
		cancel, err := repo.WatchMessages(ctx, chat.ID, func(messages []domain.Message, err error) {
			req.NoError(err)
			mu.Lock()
			last = messages
			mu.Unlock()
		})
		req.NoError(err)

		text := fmt.Sprintf("burst %d", i)
		req.NoError(repo.AppendMessage(ctx, chat.ID, domain.Message{Text: text, Timestamp: domain.Now()}))

		req.Eventually(func() bool {
			mu.Lock()
			defer mu.Unlock()
			return len(last) == i+1 && last[len(last)-1].Text == text
		}, 2*time.Second, time.Millisecond)

		cancel()
	}
}

func TestChatRepository_WatchSummariesSeesDeletions(t *testing.T) {
	req := require.New(t)
	repo := NewChatRepository(setupTestDB(t), testLogger())
	ctx := context.Background()

	chat, err := repo.EnsureChat(ctx, "alice", "bob")
	req.NoError(err)

	var mu sync.Mutex
	var last []domain.Conversation
	cancel, err := repo.WatchSummaries(ctx, "alice", func(chats []domain.Conversation, err error) {
		req.NoError(err)
		mu.Lock()
		last = chats
		mu.Unlock()
	})
	req.NoError(err)
	defer cancel()

	mu.Lock()
	req.Len(last, 1)
	mu.Unlock()

	req.NoError(repo.DeleteChat(ctx, chat.ID))

	req.Eventually(func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(last) == 0
	}, 2*time.Second, 10*time.Millisecond)
}
