package repositories

import (
	"context"
	"sync"
	"testing"
	"time"
	"whispr/domain"
	apperrors "whispr/errors"

	"github.com/stretchr/testify/require"
)

func TestUserRepository_UpsertAndGet(t *testing.T) {
	req := require.New(t)
	repo := NewUserRepository(setupTestDB(t), testLogger())
	ctx := context.Background()

	alice := domain.User{
		UID:         "alice-uid",
		ShortID:     "AAAAAA",
		DisplayName: "Alice",
		Online:      true,
		Tier:        domain.TierStandard,
		CreatedAt:   domain.Now(),
	}
	req.NoError(repo.UpsertUser(ctx, alice))

	got, err := repo.GetUser(ctx, "alice-uid")
	req.NoError(err)
	req.Equal(alice, got)

	_, err = repo.GetUser(ctx, "nobody")
	req.ErrorIs(err, apperrors.ErrNotFound)
}

func TestUserRepository_ShortIDIndex(t *testing.T) {
	req := require.New(t)
	repo := NewUserRepository(setupTestDB(t), testLogger())
	ctx := context.Background()

	taken, err := repo.ShortIDTaken(ctx, "AAAAAA")
	req.NoError(err)
	req.False(taken)

	req.NoError(repo.UpsertUser(ctx, domain.User{UID: "alice-uid", ShortID: "AAAAAA", DisplayName: "Alice"}))

	taken, err = repo.ShortIDTaken(ctx, "AAAAAA")
	req.NoError(err)
	req.True(taken)

	found, err := repo.FindByShortID(ctx, "AAAAAA")
	req.NoError(err)
	req.Equal("alice-uid", found.UID)

	_, err = repo.FindByShortID(ctx, "ZZZZZZ")
	req.ErrorIs(err, apperrors.ErrNotFound)
}

func TestUserRepository_Presence(t *testing.T) {
	req := require.New(t)
	repo := NewUserRepository(setupTestDB(t), testLogger())
	ctx := context.Background()

	req.NoError(repo.UpsertUser(ctx, domain.User{UID: "alice-uid", Online: true, LastSeen: "t0"}))
	req.NoError(repo.UpdatePresence(ctx, "alice-uid", false, "t1"))

	got, err := repo.GetUser(ctx, "alice-uid")
	req.NoError(err)
	req.False(got.Online)
	req.Equal("t1", got.LastSeen)

	req.ErrorIs(repo.UpdatePresence(ctx, "nobody", true, "t2"), apperrors.ErrNotFound)
}

func TestUserRepository_ConnectionsAndMemberships(t *testing.T) {
	req := require.New(t)
	repo := NewUserRepository(setupTestDB(t), testLogger())
	ctx := context.Background()

	req.NoError(repo.UpsertUser(ctx, domain.User{UID: "alice-uid"}))

	conn := domain.Connection{ShortID: "BBBBBB", Timestamp: domain.Now()}
	req.NoError(repo.SaveConnection(ctx, "alice-uid", "bob-uid", conn))
	req.NoError(repo.SaveMembership(ctx, "alice-uid", "group-1", domain.Membership{JoinedAt: domain.Now()}))

	got, err := repo.GetUser(ctx, "alice-uid")
	req.NoError(err)
	req.Equal(conn, got.Connections["bob-uid"])
	req.Contains(got.Groups, "group-1")
	req.Equal(2, got.ConversationCount())

	req.NoError(repo.RemoveConnection(ctx, "alice-uid", "bob-uid"))
	req.NoError(repo.RemoveMembership(ctx, "alice-uid", "group-1"))

	got, err = repo.GetUser(ctx, "alice-uid")
	req.NoError(err)
	req.Empty(got.Connections)
	req.Empty(got.Groups)
}

func TestUserRepository_WatchUser(t *testing.T) {
	req := require.New(t)
	repo := NewUserRepository(setupTestDB(t), testLogger())
	ctx := context.Background()

	req.NoError(repo.UpsertUser(ctx, domain.User{UID: "alice-uid", DisplayName: "Alice"}))

	var mu sync.Mutex
	var snapshots []domain.User
	cancel, err := repo.WatchUser(ctx, "alice-uid", func(u domain.User, err error) {
		req.NoError(err)
		mu.Lock()
		snapshots = append(snapshots, u)
		mu.Unlock()
	})
	req.NoError(err)
	defer cancel()

	// Initial snapshot is synchronous.
	mu.Lock()
	req.Len(snapshots, 1)
	req.Equal("Alice", snapshots[0].DisplayName)
	mu.Unlock()

	req.NoError(repo.SaveConnection(ctx, "alice-uid", "bob-uid", domain.Connection{ShortID: "BBBBBB"}))

	req.Eventually(func() bool {
		mu.Lock()
		defer mu.Unlock()
		last := snapshots[len(snapshots)-1]
		_, ok := last.Connections["bob-uid"]
		return ok
	}, 2*time.Second, 10*time.Millisecond)

	// After cancel, further writes deliver nothing new.
	cancel()
	mu.Lock()
	seen := len(snapshots)
	mu.Unlock()

	req.NoError(repo.UpdatePresence(ctx, "alice-uid", false, domain.Now()))
	time.Sleep(100 * time.Millisecond)

	mu.Lock()
	req.Equal(seen, len(snapshots))
	mu.Unlock()
}
