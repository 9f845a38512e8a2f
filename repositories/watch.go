package repositories

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"
	"whispr/contract"
	"whispr/domain"

	"github.com/dgraph-io/badger/v4"
	bpb "github.com/dgraph-io/badger/v4/pb"
	"github.com/google/uuid"
)

// Sinks receive full snapshots, never deltas. The error argument carries
// translated store errors; the policy for them (degrade, keep last state,
// surface a notice) belongs to the caller, not to this layer.
type (
	UserSink      func(domain.User, error)
	MessagesSink  func([]domain.Message, error)
	SummariesSink func([]domain.Conversation, error)
)

const barrierTimeout = 10 * time.Millisecond

// watchPrefix delivers one snapshot, then again after every committed
// change under prefix. The subscriber registers asynchronously, so the
// first snapshot is gated on a barrier handshake: a unique throwaway key
// is written until the subscription echoes it back, proving the
// subscriber is live. A write racing the attachment therefore lands
// either before the snapshot read or after registration; it cannot fall
// between the two and stay invisible.
//
// The returned cancel function stops the underlying subscription and
// blocks until the delivery goroutine has exited, so a released watch
// can never mutate downstream state again.
func watchPrefix(ctx context.Context, db *badger.DB, log *slog.Logger, prefix []byte, reload func()) contract.CancelFunc {
	wctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	ready := make(chan struct{})

	barrier := barrierKey(uuid.New().String())
	var once sync.Once

	go func() {
		defer close(done)
		err := db.Subscribe(wctx, func(list *badger.KVList) error {
			updated := false
			for _, kv := range list.Kv {
				if bytes.Equal(kv.Key, barrier) {
					once.Do(func() { close(ready) })
					continue
				}
				updated = true
			}
			if updated {
				reload()
			}
			return nil
		}, []bpb.Match{{Prefix: prefix}, {Prefix: barrier}})
		if err != nil && !errors.Is(err, context.Canceled) {
			log.Warn("watch terminated", "prefix", string(prefix), "error", err)
		}
	}()

	// A barrier write committed before the subscriber registered is
	// simply not echoed, hence the retry until one comes back.
	for registered := false; !registered; {
		if err := db.Update(func(txn *badger.Txn) error {
			return txn.Set(barrier, nil)
		}); err != nil {
			log.Warn("watch barrier write failed", "prefix", string(prefix), "error", err)
			break
		}
		select {
		case <-ready:
			registered = true
		case <-wctx.Done():
			registered = true
		case <-time.After(barrierTimeout):
		}
	}
	if err := db.Update(func(txn *badger.Txn) error {
		return txn.Delete(barrier)
	}); err != nil {
		log.Warn("watch barrier cleanup failed", "prefix", string(prefix), "error", err)
	}

	reload()

	return func() {
		cancel()
		<-done
	}
}
