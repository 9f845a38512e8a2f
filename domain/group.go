package domain

// MaxGroupNameLength bounds the user-facing group name.
const MaxGroupNameLength = 30

// Group mirrors the groups collection document. The creator is always
// the first member.
type Group struct {
	ID              string   `json:"-"`
	Name            string   `json:"name"`
	CreatedBy       string   `json:"createdBy"`
	CreatedAt       string   `json:"createdAt"`
	Members         []string `json:"members"`
	LastMessage     string   `json:"lastMessage,omitempty"`
	LastMessageTime string   `json:"lastMessageTime,omitempty"`
}

// IsCreator reports whether uid created the group and therefore holds
// delete rights over it.
func (g Group) IsCreator(uid string) bool {
	return g.CreatedBy == uid
}

// HasMember reports whether uid is currently part of the group.
func (g Group) HasMember(uid string) bool {
	for _, m := range g.Members {
		if m == uid {
			return true
		}
	}
	return false
}

// Without returns the member list with uid removed, preserving order.
func (g Group) Without(uid string) []string {
	remaining := make([]string, 0, len(g.Members))
	for _, m := range g.Members {
		if m != uid {
			remaining = append(remaining, m)
		}
	}
	return remaining
}
