package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConversationIDIsSymmetric(t *testing.T) {
	req := require.New(t)

	req.Equal(ConversationID("alice", "bob"), ConversationID("bob", "alice"))
	req.Equal("alice_bob", ConversationID("bob", "alice"))
}

func TestParticipantsOfRoundTrips(t *testing.T) {
	req := require.New(t)

	id := ConversationID("uid-b", "uid-a")
	req.Equal([]string{"uid-a", "uid-b"}, ParticipantsOf(id))
	req.Equal(SortedPair("uid-b", "uid-a"), ParticipantsOf(id))
}

func TestOtherParticipant(t *testing.T) {
	req := require.New(t)
	chat := Conversation{Participants: []string{"alice", "bob"}}

	req.Equal("bob", chat.OtherParticipant("alice"))
	req.Equal("alice", chat.OtherParticipant("bob"))
	req.True(chat.HasParticipant("alice"))
	req.False(chat.HasParticipant("charlie"))
}

func TestQuotaFallsBackToDefault(t *testing.T) {
	req := require.New(t)

	u := User{Tier: TierGuest}
	req.Equal(DefaultGuestQuota, u.Quota())

	limit := 2
	u.MaxConnections = &limit
	req.Equal(2, u.Quota())
}

func TestConversationCountSpansConnectionsAndGroups(t *testing.T) {
	req := require.New(t)

	u := User{
		Connections: map[string]Connection{"peer1": {}, "peer2": {}},
		Groups:      map[string]Membership{"group1": {}},
	}
	req.Equal(3, u.ConversationCount())
}

func TestGroupWithoutPreservesOrder(t *testing.T) {
	req := require.New(t)
	g := Group{CreatedBy: "alice", Members: []string{"alice", "bob", "carol"}}

	req.True(g.IsCreator("alice"))
	req.False(g.IsCreator("bob"))
	req.Equal([]string{"alice", "carol"}, g.Without("bob"))
	req.Equal([]string{"alice", "bob", "carol"}, g.Members)
}
