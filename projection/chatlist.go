// Package projection builds the renderable chat list from observed
// store snapshots. Output is recomputed in full on every update, never
// patched incrementally. Does not subscribe to anything itself.
package projection

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"whispr/domain"

	"github.com/samber/lo"
)

// ProfileResolver looks up peer display profiles during recomputation.
// Lookups are not cached here; a read-through document cache belongs to
// the store client.
type ProfileResolver interface {
	GetUser(ctx context.Context, uid string) (domain.User, error)
}

// ChatList holds the latest snapshot of each of the three inputs:
// conversation summaries, the standing connection set, and group
// memberships. The inputs arrive independently and in any relative
// order; Recompute always works from whatever is latest.
type ChatList struct {
	owner    string
	resolver ProfileResolver
	log      *slog.Logger

	mu          sync.Mutex
	summaries   []domain.Conversation
	connections map[string]domain.Connection
	groups      []domain.Group
}

func NewChatList(owner string, resolver ProfileResolver, log *slog.Logger) *ChatList {
	return &ChatList{owner: owner, resolver: resolver, log: log}
}

func (l *ChatList) SetSummaries(summaries []domain.Conversation) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.summaries = summaries
}

func (l *ChatList) SetConnections(connections map[string]domain.Connection) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.connections = connections
}

func (l *ChatList) SetGroups(groups []domain.Group) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.groups = groups
}

// Recompute merges the three snapshots into one ordered list:
//  1. every summary with a non-empty last message becomes a direct row,
//  2. every standing connection not covered by step 1 becomes a direct
//     row with no message text and the link-established timestamp,
//  3. every group membership becomes a group row,
// sorted descending by timestamp string. Empty timestamps compare
// smallest and therefore sort last. A peer whose profile cannot be
// resolved is skipped for this pass and reappears once it resolves.
func (l *ChatList) Recompute(ctx context.Context) []domain.ChatListEntry {
	l.mu.Lock()
	summaries := l.summaries
	connections := l.connections
	groups := l.groups
	l.mu.Unlock()

	var entries []domain.ChatListEntry
	covered := make(map[string]bool)

	for _, chat := range summaries {
		if chat.LastMessage == "" {
			continue
		}
		peer := chat.OtherParticipant(l.owner)
		if peer == "" {
			continue
		}
		profile, err := l.resolver.GetUser(ctx, peer)
		if err != nil {
			l.log.Warn("peer profile lookup failed", "peer", peer, "error", err)
			continue
		}
		covered[peer] = true
		entries = append(entries, domain.ChatListEntry{
			Key:         chat.ID,
			Kind:        domain.KindDirect,
			PeerUID:     peer,
			PeerShortID: profile.ShortID,
			DisplayName: displayName(profile),
			PhotoURL:    profile.PhotoURL,
			Online:      profile.Online,
			LastMessage: chat.LastMessage,
			Timestamp:   chat.LastMessageTime,
		})
	}

	peers := lo.Keys(connections)
	sort.Strings(peers)
	for _, peer := range peers {
		if covered[peer] {
			continue
		}
		profile, err := l.resolver.GetUser(ctx, peer)
		if err != nil {
			l.log.Warn("connection profile lookup failed", "peer", peer, "error", err)
			continue
		}
		entries = append(entries, domain.ChatListEntry{
			Key:         domain.ConversationID(l.owner, peer),
			Kind:        domain.KindDirect,
			PeerUID:     peer,
			PeerShortID: profile.ShortID,
			DisplayName: displayName(profile),
			PhotoURL:    profile.PhotoURL,
			Online:      profile.Online,
			LastMessage: "",
			Timestamp:   connections[peer].Timestamp,
		})
	}

	for _, group := range groups {
		entries = append(entries, domain.ChatListEntry{
			Key:         group.ID,
			Kind:        domain.KindGroup,
			DisplayName: group.Name,
			LastMessage: group.LastMessage,
			Timestamp:   group.LastMessageTime,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Timestamp > entries[j].Timestamp
	})
	return entries
}

func displayName(profile domain.User) string {
	if profile.DisplayName == "" {
		return "Unknown User"
	}
	return profile.DisplayName
}
