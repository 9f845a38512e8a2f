//go:generate go run go.uber.org/mock/mockgen -source=user.go -destination=../mocks/mock_user_repository.go -package=mocks
package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"whispr/contract"
	"whispr/domain"

	"github.com/dgraph-io/badger/v4"
)

type IUserRepository interface {
	GetUser(ctx context.Context, uid string) (domain.User, error)
	UpsertUser(ctx context.Context, user domain.User) error
	UpdatePresence(ctx context.Context, uid string, online bool, lastSeen string) error
	ShortIDTaken(ctx context.Context, shortID string) (bool, error)
	FindByShortID(ctx context.Context, shortID string) (domain.User, error)
	SaveConnection(ctx context.Context, uid, peerUID string, conn domain.Connection) error
	RemoveConnection(ctx context.Context, uid, peerUID string) error
	SaveMembership(ctx context.Context, uid, groupID string, m domain.Membership) error
	RemoveMembership(ctx context.Context, uid, groupID string) error
	WatchUser(ctx context.Context, uid string, sink UserSink) (contract.CancelFunc, error)
}

type UserRepository struct {
	db  *badger.DB
	log *slog.Logger
}

func NewUserRepository(db *badger.DB, log *slog.Logger) *UserRepository {
	return &UserRepository{db: db, log: log}
}

func (r *UserRepository) GetUser(ctx context.Context, uid string) (domain.User, error) {
	var user domain.User
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(userKey(uid))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &user)
		})
	})
	if err != nil {
		return domain.User{}, translate(err)
	}
	user.UID = uid
	return user, nil
}

// UpsertUser writes the full user document and keeps the short-id index
// key in step with it.
func (r *UserRepository) UpsertUser(ctx context.Context, user domain.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}
	return translate(r.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set(userKey(user.UID), data); err != nil {
			return err
		}
		if user.ShortID != "" {
			return txn.Set(shortIDKey(user.ShortID), []byte(user.UID))
		}
		return nil
	}))
}

func (r *UserRepository) UpdatePresence(ctx context.Context, uid string, online bool, lastSeen string) error {
	return r.mutateUser(uid, func(u *domain.User) {
		u.Online = online
		u.LastSeen = lastSeen
	})
}

func (r *UserRepository) ShortIDTaken(ctx context.Context, shortID string) (bool, error) {
	err := r.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get(shortIDKey(shortID))
		return err
	})
	if err == nil {
		return true, nil
	}
	if errors.Is(err, badger.ErrKeyNotFound) {
		return false, nil
	}
	return false, translate(err)
}

// FindByShortID is the equality lookup behind recipient verification.
// Uniqueness is trusted from mint time; the index holds a single owner.
func (r *UserRepository) FindByShortID(ctx context.Context, shortID string) (domain.User, error) {
	var uid string
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(shortIDKey(shortID))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			uid = string(val)
			return nil
		})
	})
	if err != nil {
		return domain.User{}, translate(err)
	}
	return r.GetUser(ctx, uid)
}

func (r *UserRepository) SaveConnection(ctx context.Context, uid, peerUID string, conn domain.Connection) error {
	return r.mutateUser(uid, func(u *domain.User) {
		if u.Connections == nil {
			u.Connections = make(map[string]domain.Connection)
		}
		u.Connections[peerUID] = conn
	})
}

func (r *UserRepository) RemoveConnection(ctx context.Context, uid, peerUID string) error {
	return r.mutateUser(uid, func(u *domain.User) {
		delete(u.Connections, peerUID)
	})
}

func (r *UserRepository) SaveMembership(ctx context.Context, uid, groupID string, m domain.Membership) error {
	return r.mutateUser(uid, func(u *domain.User) {
		if u.Groups == nil {
			u.Groups = make(map[string]domain.Membership)
		}
		u.Groups[groupID] = m
	})
}

func (r *UserRepository) RemoveMembership(ctx context.Context, uid, groupID string) error {
	return r.mutateUser(uid, func(u *domain.User) {
		delete(u.Groups, groupID)
	})
}

// WatchUser re-reads the user document on every committed change to it.
// The user document carries both the connection set and the group
// membership set, so one watch backs both downstream concerns.
func (r *UserRepository) WatchUser(ctx context.Context, uid string, sink UserSink) (contract.CancelFunc, error) {
	reload := func() {
		user, err := r.GetUser(ctx, uid)
		sink(user, err)
	}
	return watchPrefix(ctx, r.db, r.log, userKey(uid), reload), nil
}

// mutateUser performs a read-modify-write of one user document inside a
// single store transaction.
func (r *UserRepository) mutateUser(uid string, mutate func(*domain.User)) error {
	return translate(r.db.Update(func(txn *badger.Txn) error {
		item, err := txn.Get(userKey(uid))
		if err != nil {
			return err
		}
		var user domain.User
		if err := item.Value(func(val []byte) error {
			return json.Unmarshal(val, &user)
		}); err != nil {
			return err
		}
		user.UID = uid
		mutate(&user)
		data, err := json.Marshal(user)
		if err != nil {
			return err
		}
		return txn.Set(userKey(uid), data)
	}))
}
