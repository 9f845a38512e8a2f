package services

import (
	"context"
	"log/slog"
	"whispr/domain"
	"whispr/errors"
	"whispr/repositories"
)

// ConnectResult carries what the session needs to open the new
// conversation: its deterministic id and the resolved peer profile.
type ConnectResult struct {
	ConversationID string
	Recipient      domain.User
}

type IConnectionService interface {
	Connect(ctx context.Context, selfUID, recipientShortID string) (ConnectResult, error)
	DeleteConversation(ctx context.Context, selfUID, conversationID, peerUID string) error
}

// ConnectionService establishes direct links between two users.
type ConnectionService struct {
	users    repositories.IUserRepository
	chats    repositories.IChatRepository
	identity IIdentityService
	quota    IQuotaService
	log      *slog.Logger
}

func NewConnectionService(
	users repositories.IUserRepository,
	chats repositories.IChatRepository,
	identity IIdentityService,
	quota IQuotaService,
	log *slog.Logger,
) *ConnectionService {
	return &ConnectionService{users: users, chats: chats, identity: identity, quota: quota, log: log}
}

// Connect resolves the recipient, enforces the quota, and upserts both
// the conversation document and the caller's connection entry.
// Re-invoking it with the same recipient converges to the same state.
// Attaching the message subscription is the session's job once this
// returns.
func (s *ConnectionService) Connect(ctx context.Context, selfUID, recipientShortID string) (ConnectResult, error) {
	// 1. Resolve the short id before touching anything else.
	recipient, err := s.identity.VerifyRecipient(ctx, recipientShortID)
	if err != nil {
		return ConnectResult{}, err
	}

	// 2. A user cannot chat with themselves.
	if recipient.UID == selfUID {
		return ConnectResult{}, errors.ErrSelfConnection
	}

	// 3. Quota gate, against a fresh read of the caller's document.
	self, err := s.users.GetUser(ctx, selfUID)
	if err != nil {
		return ConnectResult{}, err
	}
	if err := s.quota.Check(self); err != nil {
		return ConnectResult{}, err
	}

	// 4-5. Deterministic id, idempotent conversation upsert.
	chat, err := s.chats.EnsureChat(ctx, selfUID, recipient.UID)
	if err != nil {
		return ConnectResult{}, err
	}

	// 6. Record the standing connection on the caller's side.
	conn := domain.Connection{ShortID: recipient.ShortID, Timestamp: domain.Now()}
	if err := s.users.SaveConnection(ctx, selfUID, recipient.UID, conn); err != nil {
		return ConnectResult{}, err
	}

	return ConnectResult{ConversationID: chat.ID, Recipient: recipient}, nil
}

// DeleteConversation removes the conversation and all its messages as
// one batch; that batch is the source of truth for "deleted". The
// connection-set prune that follows is best-effort and never retried.
func (s *ConnectionService) DeleteConversation(ctx context.Context, selfUID, conversationID, peerUID string) error {
	if err := s.chats.DeleteChat(ctx, conversationID); err != nil {
		return err
	}
	if err := s.users.RemoveConnection(ctx, selfUID, peerUID); err != nil {
		s.log.Warn("connection entry not pruned after delete",
			"conversation", conversationID, "peer", peerUID, "error", err)
	}
	return nil
}
