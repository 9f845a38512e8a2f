package runtime

import (
	"log/slog"
	"sync"
	"whispr/contract"
)

// Slot names one logical purpose a live subscription can serve. The
// engine owns exactly three.
type Slot string

const (
	SlotMessages    Slot = "active-conversation-messages"
	SlotSummaries   Slot = "chat-summaries"
	SlotMemberships Slot = "group-memberships"
)

// Multiplexer owns the set of live subscriptions. Each slot holds at
// most one; attaching to an occupied slot cancels the prior occupant
// synchronously before the replacement is requested, so two listeners
// never write into the same downstream state concurrently.
type Multiplexer struct {
	log *slog.Logger

	mu    sync.Mutex
	slots map[Slot]contract.CancelFunc
}

func NewMultiplexer(log *slog.Logger) *Multiplexer {
	return &Multiplexer{log: log, slots: make(map[Slot]contract.CancelFunc)}
}

// Attach replaces the slot's occupant. When the attach function fails,
// the slot is left empty: the previous subscription is already gone and
// must not be resurrected.
func (m *Multiplexer) Attach(slot Slot, attach contract.AttachFunc) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if cancel, ok := m.slots[slot]; ok {
		cancel()
		delete(m.slots, slot)
		m.log.Debug("subscription replaced", "slot", slot)
	}

	cancel, err := attach()
	if err != nil {
		return err
	}
	m.slots[slot] = cancel
	return nil
}

// Release cancels the slot's subscription, if any.
func (m *Multiplexer) Release(slot Slot) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if cancel, ok := m.slots[slot]; ok {
		cancel()
		delete(m.slots, slot)
	}
}

// ReleaseAll cancels every held subscription. Used on sign-out and
// teardown.
func (m *Multiplexer) ReleaseAll() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for slot, cancel := range m.slots {
		cancel()
		delete(m.slots, slot)
	}
}

// Active reports whether the slot currently holds a live subscription.
func (m *Multiplexer) Active(slot Slot) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.slots[slot]
	return ok
}
