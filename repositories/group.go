//go:generate go run go.uber.org/mock/mockgen -source=group.go -destination=../mocks/mock_group_repository.go -package=mocks
package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"whispr/contract"
	"whispr/domain"
	apperrors "whispr/errors"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
)

type IGroupRepository interface {
	CreateGroup(ctx context.Context, group domain.Group) (string, error)
	GetGroup(ctx context.Context, groupID string) (domain.Group, error)
	GetGroups(ctx context.Context, groupIDs []string) ([]domain.Group, error)
	UpdateSummary(ctx context.Context, groupID, lastMessage, timestamp string) error
	AppendMessage(ctx context.Context, groupID string, msg domain.Message) error
	Messages(ctx context.Context, groupID string) ([]domain.Message, error)
	RemoveMember(ctx context.Context, groupID, uid string) error
	DeleteGroup(ctx context.Context, groupID string) error
	WatchMessages(ctx context.Context, groupID string, sink MessagesSink) (contract.CancelFunc, error)
}

type GroupRepository struct {
	db  *badger.DB
	log *slog.Logger
}

func NewGroupRepository(db *badger.DB, log *slog.Logger) *GroupRepository {
	return &GroupRepository{db: db, log: log}
}

// CreateGroup persists a new group document under a store-assigned id.
func (r *GroupRepository) CreateGroup(ctx context.Context, group domain.Group) (string, error) {
	id := uuid.New().String()
	group.ID = id
	data, err := json.Marshal(group)
	if err != nil {
		return "", err
	}
	err = r.db.Update(func(txn *badger.Txn) error {
		return txn.Set(groupKey(id), data)
	})
	if err != nil {
		return "", translate(err)
	}
	return id, nil
}

func (r *GroupRepository) GetGroup(ctx context.Context, groupID string) (domain.Group, error) {
	var group domain.Group
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(groupKey(groupID))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &group)
		})
	})
	if err != nil {
		return domain.Group{}, translate(err)
	}
	group.ID = groupID
	return group, nil
}

// GetGroups resolves a membership set into group documents. Ids whose
// document is gone (deleted by the creator, membership not yet pruned)
// are skipped, not errors.
func (r *GroupRepository) GetGroups(ctx context.Context, groupIDs []string) ([]domain.Group, error) {
	groups := make([]domain.Group, 0, len(groupIDs))
	for _, id := range groupIDs {
		group, err := r.GetGroup(ctx, id)
		if errors.Is(err, apperrors.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		groups = append(groups, group)
	}
	return groups, nil
}

func (r *GroupRepository) UpdateSummary(ctx context.Context, groupID, lastMessage, timestamp string) error {
	return r.mutateGroup(groupID, func(g *domain.Group) {
		g.LastMessage = lastMessage
		g.LastMessageTime = timestamp
	})
}

func (r *GroupRepository) AppendMessage(ctx context.Context, groupID string, msg domain.Message) error {
	if msg.ID == "" {
		msg.ID = uuid.New().String()
	}
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	key := append(groupMsgPrefix(groupID), []byte(msg.Timestamp+":"+msg.ID)...)
	return translate(r.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, data)
	}))
}

func (r *GroupRepository) Messages(ctx context.Context, groupID string) ([]domain.Message, error) {
	var messages []domain.Message
	prefix := groupMsgPrefix(groupID)
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

// RemoveMember shrinks the member list; the group document and its
// history stay in place for the remaining members.
func (r *GroupRepository) RemoveMember(ctx context.Context, groupID, uid string) error {
	return r.mutateGroup(groupID, func(g *domain.Group) {
		g.Members = g.Without(uid)
	})
}

// DeleteGroup removes every group message plus the group document in one
// store transaction. Creator-only; the caller enforces that.
func (r *GroupRepository) DeleteGroup(ctx context.Context, groupID string) error {
	prefix := groupMsgPrefix(groupID)
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
		return txn.Delete(groupKey(groupID))
	}))
}

func (r *GroupRepository) WatchMessages(ctx context.Context, groupID string, sink MessagesSink) (contract.CancelFunc, error) {
	reload := func() {
		messages, err := r.Messages(ctx, groupID)
		sink(messages, err)
	}
	return watchPrefix(ctx, r.db, r.log, groupMsgPrefix(groupID), reload), nil
}

func (r *GroupRepository) mutateGroup(groupID string, mutate func(*domain.Group)) error {
	return translate(r.db.Update(func(txn *badger.Txn) error {
		item, err := txn.Get(groupKey(groupID))
		if err != nil {
			return err
		}
		var group domain.Group
		if err := item.Value(func(val []byte) error {
			return json.Unmarshal(val, &group)
		}); err != nil {
			return err
		}
		group.ID = groupID
		mutate(&group)
		data, err := json.Marshal(group)
		if err != nil {
			return err
		}
		return txn.Set(groupKey(groupID), data)
	}))
}
