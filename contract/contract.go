package contract

// CancelFunc releases exactly one live subscription. Calling it stops
// delivery synchronously: once it returns, no further snapshot reaches
// the sink that was attached alongside it.
type CancelFunc func()

// AttachFunc requests a new live subscription from the store and hands
// back the cancel function owning it. The listener multiplexer cancels
// the previous occupant of a slot before invoking the replacement's
// AttachFunc, so two listeners never feed the same downstream state.
type AttachFunc func() (CancelFunc, error)
