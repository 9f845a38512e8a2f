package domain

// EntryKind distinguishes the two row flavors of the chat list.
type EntryKind string

const (
	KindDirect EntryKind = "direct"
	KindGroup  EntryKind = "group"
)

// ChatListEntry is the transient, renderable row unifying a direct
// conversation, a standing connection without messages yet, and a group.
// Never persisted.
type ChatListEntry struct {
	Key         string
	Kind        EntryKind
	PeerUID     string
	PeerShortID string
	DisplayName string
	PhotoURL    string
	Online      bool
	LastMessage string
	Timestamp   string
}
