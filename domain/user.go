package domain

// Tier classifies an account. Guests carry a bounded conversation quota.
type Tier string

const (
	TierStandard Tier = "standard"
	TierGuest    Tier = "guest"
)

// DefaultGuestQuota caps direct connections plus groups for guest accounts
// that carry no explicit MaxConnections value.
const DefaultGuestQuota = 5

// Identity is what the external sign-in flow hands the engine: the
// provider-assigned key plus the display profile baked into the token.
type Identity struct {
	UID         string
	DisplayName string
	PhotoURL    string
	Guest       bool
}

// Connection is one entry of a user's standing connection set, keyed by
// the peer's identity key in the user document.
type Connection struct {
	ShortID   string `json:"shortId"`
	Timestamp string `json:"timestamp"`
}

// Membership is one entry of a user's group membership set, keyed by
// group id in the user document.
type Membership struct {
	JoinedAt string `json:"joinedAt"`
	AddedBy  string `json:"addedBy,omitempty"`
}

// User mirrors the users collection document.
type User struct {
	UID            string                `json:"uid"`
	ShortID        string                `json:"shortId"`
	DisplayName    string                `json:"displayName"`
	PhotoURL       string                `json:"photoURL,omitempty"`
	Online         bool                  `json:"online"`
	LastSeen       string                `json:"lastSeen"`
	CreatedAt      string                `json:"createdAt"`
	Tier           Tier                  `json:"tier"`
	MaxConnections *int                  `json:"maxConnections,omitempty"`
	Connections    map[string]Connection `json:"connections,omitempty"`
	Groups         map[string]Membership `json:"groups,omitempty"`
}

// ConversationCount is the resource the quota counts: standing direct
// connections plus group memberships.
func (u User) ConversationCount() int {
	return len(u.Connections) + len(u.Groups)
}

// Quota returns the guest cap, falling back to DefaultGuestQuota when the
// document carries none. Meaningless for standard accounts.
func (u User) Quota() int {
	if u.MaxConnections != nil {
		return *u.MaxConnections
	}
	return DefaultGuestQuota
}
