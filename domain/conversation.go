package domain

import "strings"

// ConversationID derives the deterministic identifier of a direct
// conversation from the unordered pair of participant keys. Both
// participants compute the same value independently.
func ConversationID(a, b string) string {
	if a > b {
		a, b = b, a
	}
	return a + "_" + b
}

// Conversation mirrors the chats collection document.
type Conversation struct {
	ID              string   `json:"-"`
	Participants    []string `json:"participants"`
	CreatedAt       string   `json:"createdAt"`
	LastMessage     string   `json:"lastMessage,omitempty"`
	LastMessageTime string   `json:"lastMessageTime,omitempty"`
}

// OtherParticipant returns the participant that is not uid, or "" when
// uid is not part of the conversation.
func (c Conversation) OtherParticipant(uid string) string {
	for _, p := range c.Participants {
		if p != uid {
			return p
		}
	}
	return ""
}

// HasParticipant reports whether uid takes part in the conversation.
// This is the client-side equivalent of an array-contains query.
func (c Conversation) HasParticipant(uid string) bool {
	for _, p := range c.Participants {
		if p == uid {
			return true
		}
	}
	return false
}

// SortedPair returns the two keys in the order the store persists them.
func SortedPair(a, b string) []string {
	if a > b {
		a, b = b, a
	}
	return []string{a, b}
}

// ParticipantsOf splits a deterministic conversation id back into its pair.
func ParticipantsOf(conversationID string) []string {
	return strings.SplitN(conversationID, "_", 2)
}
