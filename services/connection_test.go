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

func TestConnectionService_Connect(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUsers := mocks.NewMockIUserRepository(ctrl)
	mockChats := mocks.NewMockIChatRepository(ctrl)
	mockIdentity := mocks.NewMockIIdentityService(ctrl)
	svc := NewConnectionService(mockUsers, mockChats, mockIdentity, NewQuotaService(), testLogger())

	alice := domain.User{UID: "alice-uid", ShortID: "AAAAAA", Tier: domain.TierStandard}
	bob := domain.User{UID: "bob-uid", ShortID: "BBBBBB", DisplayName: "Bob"}

	t.Run("should link up and report the conversation id", func(t *testing.T) {
		req := require.New(t)
		conversationID := domain.ConversationID(alice.UID, bob.UID)

		mockIdentity.EXPECT().
			VerifyRecipient(gomock.Any(), "BBBBBB").
			Return(bob, nil).
			Times(1)
		mockUsers.EXPECT().
			GetUser(gomock.Any(), alice.UID).
			Return(alice, nil).
			Times(1)
		mockChats.EXPECT().
			EnsureChat(gomock.Any(), alice.UID, bob.UID).
			Return(domain.Conversation{ID: conversationID, Participants: domain.SortedPair(alice.UID, bob.UID)}, nil).
			Times(1)
		mockUsers.EXPECT().
			SaveConnection(gomock.Any(), alice.UID, bob.UID, gomock.Any()).
			DoAndReturn(func(_ context.Context, _, _ string, conn domain.Connection) error {
				require.Equal(t, "BBBBBB", conn.ShortID)
				require.NotEmpty(t, conn.Timestamp)
				return nil
			}).
			Times(1)

		result, err := svc.Connect(context.Background(), alice.UID, "BBBBBB")

		req.NoError(err)
		req.Equal(conversationID, result.ConversationID)
		req.Equal(bob, result.Recipient)
	})

	t.Run("should reject connecting to yourself before any write", func(t *testing.T) {
		req := require.New(t)

		mockIdentity.EXPECT().
			VerifyRecipient(gomock.Any(), "AAAAAA").
			Return(alice, nil).
			Times(1)
		mockChats.EXPECT().EnsureChat(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
		mockUsers.EXPECT().SaveConnection(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		_, err := svc.Connect(context.Background(), alice.UID, "AAAAAA")

		req.ErrorIs(err, errors.ErrSelfConnection)
	})

	t.Run("should surface an unknown short id", func(t *testing.T) {
		req := require.New(t)

		mockIdentity.EXPECT().
			VerifyRecipient(gomock.Any(), "ZZZZZZ").
			Return(domain.User{}, errors.ErrRecipientNotFound).
			Times(1)
		mockUsers.EXPECT().GetUser(gomock.Any(), gomock.Any()).Times(0)

		_, err := svc.Connect(context.Background(), alice.UID, "ZZZZZZ")

		req.ErrorIs(err, errors.ErrRecipientNotFound)
	})

	t.Run("should deny a guest at the cap without writing anything", func(t *testing.T) {
		req := require.New(t)
		guest := domain.User{UID: "guest-uid", Tier: domain.TierGuest, Connections: map[string]domain.Connection{
			"p1": {}, "p2": {}, "p3": {}, "p4": {}, "p5": {},
		}}

		mockIdentity.EXPECT().
			VerifyRecipient(gomock.Any(), "BBBBBB").
			Return(bob, nil).
			Times(1)
		mockUsers.EXPECT().
			GetUser(gomock.Any(), guest.UID).
			Return(guest, nil).
			Times(1)
		mockChats.EXPECT().EnsureChat(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
		mockUsers.EXPECT().SaveConnection(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		_, err := svc.Connect(context.Background(), guest.UID, "BBBBBB")

		req.ErrorIs(err, errors.ErrQuotaExceeded)
	})
}

func TestConnectionService_DeleteConversation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUsers := mocks.NewMockIUserRepository(ctrl)
	mockChats := mocks.NewMockIChatRepository(ctrl)
	mockIdentity := mocks.NewMockIIdentityService(ctrl)
	svc := NewConnectionService(mockUsers, mockChats, mockIdentity, NewQuotaService(), testLogger())

	conversationID := domain.ConversationID("alice-uid", "bob-uid")

	t.Run("should delete the batch then prune the connection", func(t *testing.T) {
		req := require.New(t)

		gomock.InOrder(
			mockChats.EXPECT().DeleteChat(gomock.Any(), conversationID).Return(nil),
			mockUsers.EXPECT().RemoveConnection(gomock.Any(), "alice-uid", "bob-uid").Return(nil),
		)

		req.NoError(svc.DeleteConversation(context.Background(), "alice-uid", conversationID, "bob-uid"))
	})

	t.Run("should swallow a failed connection prune", func(t *testing.T) {
		req := require.New(t)

		mockChats.EXPECT().DeleteChat(gomock.Any(), conversationID).Return(nil)
		mockUsers.EXPECT().
			RemoveConnection(gomock.Any(), "alice-uid", "bob-uid").
			Return(errors.ErrNotFound)

		req.NoError(svc.DeleteConversation(context.Background(), "alice-uid", conversationID, "bob-uid"))
	})

	t.Run("should fail when the batch fails", func(t *testing.T) {
		req := require.New(t)

		mockChats.EXPECT().DeleteChat(gomock.Any(), conversationID).Return(errors.ErrOffline)
		mockUsers.EXPECT().RemoveConnection(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		req.ErrorIs(svc.DeleteConversation(context.Background(), "alice-uid", conversationID, "bob-uid"), errors.ErrOffline)
	})
}
