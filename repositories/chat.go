//go:generate go run go.uber.org/mock/mockgen -source=chat.go -destination=../mocks/mock_chat_repository.go -package=mocks
package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"whispr/contract"
	"whispr/domain"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
)

type IChatRepository interface {
	EnsureChat(ctx context.Context, a, b string) (domain.Conversation, error)
	GetChat(ctx context.Context, conversationID string) (domain.Conversation, error)
	UpdateSummary(ctx context.Context, conversationID string, participants []string, lastMessage, timestamp string) error
	AppendMessage(ctx context.Context, conversationID string, msg domain.Message) error
	Messages(ctx context.Context, conversationID string) ([]domain.Message, error)
	ChatsFor(ctx context.Context, uid string) ([]domain.Conversation, error)
	DeleteChat(ctx context.Context, conversationID string) error
	WatchMessages(ctx context.Context, conversationID string, sink MessagesSink) (contract.CancelFunc, error)
	WatchSummaries(ctx context.Context, uid string, sink SummariesSink) (contract.CancelFunc, error)
}

type ChatRepository struct {
	db  *badger.DB
	log *slog.Logger
}

func NewChatRepository(db *badger.DB, log *slog.Logger) *ChatRepository {
	return &ChatRepository{db: db, log: log}
}

// EnsureChat upserts the conversation document for the pair. Re-invoking
// it for an existing conversation refreshes the activity timestamps but
// preserves the last message, so connecting twice converges to the same
// state.
func (r *ChatRepository) EnsureChat(ctx context.Context, a, b string) (domain.Conversation, error) {
	id := domain.ConversationID(a, b)
	now := domain.Now()
	chat := domain.Conversation{
		ID:              id,
		Participants:    domain.SortedPair(a, b),
		CreatedAt:       now,
		LastMessageTime: now,
	}
	err := r.db.Update(func(txn *badger.Txn) error {
		item, err := txn.Get(chatKey(id))
		if err == nil {
			var existing domain.Conversation
			if err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, &existing)
			}); err != nil {
				return err
			}
			chat.LastMessage = existing.LastMessage
		} else if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		data, err := json.Marshal(chat)
		if err != nil {
			return err
		}
		return txn.Set(chatKey(id), data)
	})
	if err != nil {
		return domain.Conversation{}, translate(err)
	}
	return chat, nil
}

func (r *ChatRepository) GetChat(ctx context.Context, conversationID string) (domain.Conversation, error) {
	var chat domain.Conversation
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(chatKey(conversationID))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &chat)
		})
	})
	if err != nil {
		return domain.Conversation{}, translate(err)
	}
	chat.ID = conversationID
	return chat, nil
}

// UpdateSummary is step (a) of a send: an overwrite of the summary
// fields, never an append, which is what makes a retried send idempotent.
// The creation timestamp of an existing document is preserved.
func (r *ChatRepository) UpdateSummary(ctx context.Context, conversationID string, participants []string, lastMessage, timestamp string) error {
	return translate(r.db.Update(func(txn *badger.Txn) error {
		chat := domain.Conversation{
			ID:              conversationID,
			Participants:    participants,
			CreatedAt:       timestamp,
			LastMessage:     lastMessage,
			LastMessageTime: timestamp,
		}
		item, err := txn.Get(chatKey(conversationID))
		if err == nil {
			var existing domain.Conversation
			if err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, &existing)
			}); err != nil {
				return err
			}
			chat.CreatedAt = existing.CreatedAt
		} else if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		data, err := json.Marshal(chat)
		if err != nil {
			return err
		}
		return txn.Set(chatKey(conversationID), data)
	}))
}

func (r *ChatRepository) AppendMessage(ctx context.Context, conversationID string, msg domain.Message) error {
	if msg.ID == "" {
		msg.ID = uuid.New().String()
	}
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	key := append(chatMsgPrefix(conversationID), []byte(msg.Timestamp+":"+msg.ID)...)
	return translate(r.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, data)
	}))
}

// Messages returns the full conversation history sorted ascending by
// timestamp. Ordering falls out of the key layout; ties keep whatever
// relative order the uuid suffix yields.
func (r *ChatRepository) Messages(ctx context.Context, conversationID string) ([]domain.Message, error) {
	var messages []domain.Message
	prefix := chatMsgPrefix(conversationID)
	err := r.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			id := messageID(item.Key())
			err := item.Value(func(val []byte) error {
				var msg domain.Message
				if err := json.Unmarshal(val, &msg); err != nil {
					return err
				}
				msg.ID = id
				messages = append(messages, msg)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, translate(err)
	}
	return messages, nil
}

// ChatsFor scans the chats collection and keeps the conversations the
// user takes part in, the client-side rendition of an array-contains
// query.
func (r *ChatRepository) ChatsFor(ctx context.Context, uid string) ([]domain.Conversation, error) {
	var chats []domain.Conversation
	prefix := []byte(chatKeyPrefix)
	err := r.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			id := string(item.Key()[len(prefix):])
			err := item.Value(func(val []byte) error {
				var chat domain.Conversation
				if err := json.Unmarshal(val, &chat); err != nil {
					return err
				}
				if !chat.HasParticipant(uid) {
					return nil
				}
				chat.ID = id
				chats = append(chats, chat)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, translate(err)
	}
	return chats, nil
}

// DeleteChat removes every message of the conversation plus the summary
// document in one store transaction; a reader either sees the whole
// conversation or none of it.
func (r *ChatRepository) DeleteChat(ctx context.Context, conversationID string) error {
	prefix := chatMsgPrefix(conversationID)
	return translate(r.db.Update(func(txn *badger.Txn) error {
		options := badger.DefaultIteratorOptions
		options.PrefetchValues = false
		it := txn.NewIterator(options)
		var keys [][]byte
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			keys = append(keys, it.Item().KeyCopy(nil))
		}
		it.Close()
		for _, key := range keys {
			if err := txn.Delete(key); err != nil {
				return err
			}
		}
		return txn.Delete(chatKey(conversationID))
	}))
}

func (r *ChatRepository) WatchMessages(ctx context.Context, conversationID string, sink MessagesSink) (contract.CancelFunc, error) {
	reload := func() {
		messages, err := r.Messages(ctx, conversationID)
		sink(messages, err)
	}
	return watchPrefix(ctx, r.db, r.log, chatMsgPrefix(conversationID), reload), nil
}

// WatchSummaries observes the whole chats collection and re-filters for
// the user on every change. Deletions also fire it, so a removed
// conversation disappears from the next snapshot.
func (r *ChatRepository) WatchSummaries(ctx context.Context, uid string, sink SummariesSink) (contract.CancelFunc, error) {
	reload := func() {
		chats, err := r.ChatsFor(ctx, uid)
		sink(chats, err)
	}
	return watchPrefix(ctx, r.db, r.log, []byte(chatKeyPrefix), reload), nil
}
