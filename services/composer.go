package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"whispr/domain"
	"whispr/errors"
	"whispr/repositories"
)

type IComposerService interface {
	SendDirect(ctx context.Context, selfUID, peerUID, text string) error
	SendGroup(ctx context.Context, groupID, selfUID, senderName, text string) error
}

// ComposerService appends messages. Each send is two sequential writes:
// the parent's summary first, then the message document. They are not
// one atomic operation; a failure of the second write is the operation's
// failure even though the summary already committed, and callers must
// restore the user's input for retry. The retry is safe because the
// summary write is an overwrite, not an append.
type ComposerService struct {
	chats  repositories.IChatRepository
	groups repositories.IGroupRepository
	log    *slog.Logger
}

func NewComposerService(chats repositories.IChatRepository, groups repositories.IGroupRepository, log *slog.Logger) *ComposerService {
	return &ComposerService{chats: chats, groups: groups, log: log}
}

func (s *ComposerService) SendDirect(ctx context.Context, selfUID, peerUID, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return errors.ErrEmptyMessage
	}
	timestamp := domain.Now()
	conversationID := domain.ConversationID(selfUID, peerUID)

	if err := s.chats.UpdateSummary(ctx, conversationID, domain.SortedPair(selfUID, peerUID), text, timestamp); err != nil {
		return err
	}

	msg := domain.Message{Text: text, Sender: selfUID, Receiver: peerUID, Timestamp: timestamp}
	if err := s.chats.AppendMessage(ctx, conversationID, msg); err != nil {
		s.log.Error("summary updated but message append failed", "conversation", conversationID, "error", err)
		return fmt.Errorf("%w: message append failed: %v", errors.ErrPartialFailure, err)
	}
	return nil
}

func (s *ComposerService) SendGroup(ctx context.Context, groupID, selfUID, senderName, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return errors.ErrEmptyMessage
	}
	timestamp := domain.Now()

	if err := s.groups.UpdateSummary(ctx, groupID, text, timestamp); err != nil {
		return err
	}

	msg := domain.Message{Text: text, Sender: selfUID, SenderName: senderName, Timestamp: timestamp}
	if err := s.groups.AppendMessage(ctx, groupID, msg); err != nil {
		s.log.Error("summary updated but message append failed", "group", groupID, "error", err)
		return fmt.Errorf("%w: message append failed: %v", errors.ErrPartialFailure, err)
	}
	return nil
}
