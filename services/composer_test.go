package services

import (
	"context"
	"testing"
	"whispr/domain"
	"whispr/errors"
	"whispr/mocks"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestComposerService_SendDirect(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockChats := mocks.NewMockIChatRepository(ctrl)
	mockGroups := mocks.NewMockIGroupRepository(ctrl)
	svc := NewComposerService(mockChats, mockGroups, testLogger())

	conversationID := domain.ConversationID("alice", "bob")

	t.Run("should write summary first then the message", func(t *testing.T) {
		req := require.New(t)

		gomock.InOrder(
			mockChats.EXPECT().
				UpdateSummary(gomock.Any(), conversationID, domain.SortedPair("alice", "bob"), "hello", gomock.Any()).
				Return(nil),
			mockChats.EXPECT().
				AppendMessage(gomock.Any(), conversationID, gomock.Any()).
				DoAndReturn(func(_ context.Context, _ string, msg domain.Message) error {
					require.Equal(t, "hello", msg.Text)
					require.Equal(t, "alice", msg.Sender)
					require.Equal(t, "bob", msg.Receiver)
					require.NotEmpty(t, msg.Timestamp)
					return nil
				}),
		)

		req.NoError(svc.SendDirect(context.Background(), "alice", "bob", "  hello  "))
	})

	t.Run("should reject whitespace-only input without touching the store", func(t *testing.T) {
		req := require.New(t)

		mockChats.EXPECT().UpdateSummary(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
		mockChats.EXPECT().AppendMessage(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		req.ErrorIs(svc.SendDirect(context.Background(), "alice", "bob", "   "), errors.ErrEmptyMessage)
	})

	t.Run("should stop when the summary write fails", func(t *testing.T) {
		req := require.New(t)

		mockChats.EXPECT().
			UpdateSummary(gomock.Any(), conversationID, gomock.Any(), "hello", gomock.Any()).
			Return(errors.ErrOffline)
		mockChats.EXPECT().AppendMessage(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		req.ErrorIs(svc.SendDirect(context.Background(), "alice", "bob", "hello"), errors.ErrOffline)
	})

	t.Run("should report a partial failure when only the append fails", func(t *testing.T) {
		req := require.New(t)

		mockChats.EXPECT().
			UpdateSummary(gomock.Any(), conversationID, gomock.Any(), "hello", gomock.Any()).
			Return(nil)
		mockChats.EXPECT().
			AppendMessage(gomock.Any(), conversationID, gomock.Any()).
			Return(errors.ErrOffline)

		req.ErrorIs(svc.SendDirect(context.Background(), "alice", "bob", "hello"), errors.ErrPartialFailure)
	})
}

func TestComposerService_SendGroup(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockChats := mocks.NewMockIChatRepository(ctrl)
	mockGroups := mocks.NewMockIGroupRepository(ctrl)
	svc := NewComposerService(mockChats, mockGroups, testLogger())

	t.Run("should carry the sender display name", func(t *testing.T) {
		req := require.New(t)

		gomock.InOrder(
			mockGroups.EXPECT().
				UpdateSummary(gomock.Any(), "group-1", "yo", gomock.Any()).
				Return(nil),
			mockGroups.EXPECT().
				AppendMessage(gomock.Any(), "group-1", gomock.Any()).
				DoAndReturn(func(_ context.Context, _ string, msg domain.Message) error {
					require.Equal(t, "Alice", msg.SenderName)
					require.Equal(t, "alice", msg.Sender)
					return nil
				}),
		)

		req.NoError(svc.SendGroup(context.Background(), "group-1", "alice", "Alice", "yo"))
	})

	t.Run("should report a partial failure when only the append fails", func(t *testing.T) {
		req := require.New(t)

		mockGroups.EXPECT().
			UpdateSummary(gomock.Any(), "group-1", "yo", gomock.Any()).
			Return(nil)
		mockGroups.EXPECT().
			AppendMessage(gomock.Any(), "group-1", gomock.Any()).
			Return(errors.ErrOffline)

		req.ErrorIs(svc.SendGroup(context.Background(), "group-1", "alice", "Alice", "yo"), errors.ErrPartialFailure)
	})
}
