package runtime

import (
	"context"
	stderrors "errors"
	"log/slog"
	"sort"
	"sync"
	"whispr/contract"
	"whispr/domain"
	"whispr/errors"
	"whispr/projection"
	"whispr/repositories"
	"whispr/services"

	"github.com/samber/lo"
)

// Sinks are the session's outputs toward whatever renders it. Nil
// members are allowed and ignored.
type Sinks struct {
	OnMessages func([]domain.Message)
	OnChatList func([]domain.ChatListEntry)
	OnNotice   func(text string)
}

type activeConversation struct {
	kind    domain.EntryKind
	id      string
	peerUID string
	title   string
}

// Session is the engine's orchestrator for one authenticated identity.
// It bootstraps the user document at sign-in, owns the connectivity
// flag and the currently open conversation, and guarantees that every
// held subscription is released on every exit path.
type Session struct {
	log         *slog.Logger
	users       repositories.IUserRepository
	chats       repositories.IChatRepository
	groups      repositories.IGroupRepository
	connections services.IConnectionService
	groupSvc    services.IGroupService
	composer    services.IComposerService
	identity    services.IIdentityService
	mux         *Multiplexer
	sinks       Sinks

	mu     sync.Mutex
	ctx    context.Context
	self   domain.User
	online bool
	active *activeConversation
	list   *projection.ChatList
}

func NewSession(
	log *slog.Logger,
	users repositories.IUserRepository,
	chats repositories.IChatRepository,
	groups repositories.IGroupRepository,
	connections services.IConnectionService,
	groupSvc services.IGroupService,
	composer services.IComposerService,
	identity services.IIdentityService,
	sinks Sinks,
) *Session {
	return &Session{
		log:         log,
		users:       users,
		chats:       chats,
		groups:      groups,
		connections: connections,
		groupSvc:    groupSvc,
		composer:    composer,
		identity:    identity,
		mux:         NewMultiplexer(log),
		sinks:       sinks,
	}
}

// Start bootstraps the user document for the signed-in identity and
// attaches the chat-summaries and group-memberships subscriptions. A
// first-time user gets a freshly minted short id; a returning one gets
// a presence refresh. ctx outlives Start and scopes every subscription
// of this session.
func (s *Session) Start(ctx context.Context, ident domain.Identity) error {
	now := domain.Now()
	user, err := s.users.GetUser(ctx, ident.UID)
	switch {
	case stderrors.Is(err, errors.ErrNotFound):
		shortID, mintErr := s.identity.MintShortID(ctx)
		if mintErr != nil {
			return mintErr
		}
		tier := domain.TierStandard
		var maxConnections *int
		if ident.Guest {
			tier = domain.TierGuest
			maxConnections = lo.ToPtr(domain.DefaultGuestQuota)
		}
		user = domain.User{
			UID:            ident.UID,
			ShortID:        shortID,
			DisplayName:    displayNameOf(ident),
			PhotoURL:       ident.PhotoURL,
			Online:         true,
			LastSeen:       now,
			CreatedAt:      now,
			Tier:           tier,
			MaxConnections: maxConnections,
		}
		if err := s.users.UpsertUser(ctx, user); err != nil {
			return err
		}
	case err != nil:
		return err
	case user.ShortID == "":
		// Returning user whose document predates short ids.
		shortID, mintErr := s.identity.MintShortID(ctx)
		if mintErr != nil {
			return mintErr
		}
		user.ShortID = shortID
		user.Online = true
		user.LastSeen = now
		if err := s.users.UpsertUser(ctx, user); err != nil {
			return err
		}
	default:
		if err := s.users.UpdatePresence(ctx, ident.UID, true, now); err != nil {
			return err
		}
		user.Online = true
		user.LastSeen = now
	}

	s.mu.Lock()
	s.ctx = ctx
	s.self = user
	s.online = true
	s.list = projection.NewChatList(user.UID, s.users, s.log)
	s.mu.Unlock()

	if err := s.mux.Attach(SlotSummaries, func() (contract.CancelFunc, error) {
		return s.chats.WatchSummaries(ctx, user.UID, s.onSummaries)
	}); err != nil {
		return err
	}
	return s.mux.Attach(SlotMemberships, func() (contract.CancelFunc, error) {
		return s.users.WatchUser(ctx, user.UID, s.onUserDocument)
	})
}

// Connect establishes a direct link to the holder of the given short id
// and opens the conversation. Input is normalized and shape-checked
// before any store call.
func (s *Session) Connect(rawShortID string) error {
	shortID, err := services.NormalizeShortID(rawShortID)
	if err != nil {
		return err
	}
	result, err := s.connections.Connect(s.context(), s.Self().UID, shortID)
	if err != nil {
		return err
	}
	return s.openDirect(result.ConversationID, result.Recipient)
}

// OpenConversation switches the view to an existing direct conversation
// with the given peer.
func (s *Session) OpenConversation(peerUID string) error {
	peer, err := s.users.GetUser(s.context(), peerUID)
	if err != nil {
		return err
	}
	return s.openDirect(domain.ConversationID(s.Self().UID, peerUID), peer)
}

// OpenGroup switches the view to a group conversation.
func (s *Session) OpenGroup(groupID string) error {
	ctx := s.context()
	group, err := s.groups.GetGroup(ctx, groupID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.active = &activeConversation{kind: domain.KindGroup, id: groupID, title: group.Name}
	s.mu.Unlock()

	return s.mux.Attach(SlotMessages, func() (contract.CancelFunc, error) {
		return s.groups.WatchMessages(ctx, groupID, s.onMessages)
	})
}

// Send appends text to the open conversation. Rejected locally when the
// client is offline or no conversation is selected; on failure the
// caller keeps the input for retry.
func (s *Session) Send(text string) error {
	s.mu.Lock()
	if !s.online {
		s.mu.Unlock()
		return errors.ErrOffline
	}
	if s.active == nil {
		s.mu.Unlock()
		return errors.ErrNoConversation
	}
	active := *s.active
	self := s.self
	ctx := s.ctx
	s.mu.Unlock()

	if active.kind == domain.KindGroup {
		return s.composer.SendGroup(ctx, active.id, self.UID, self.DisplayName, text)
	}
	return s.composer.SendDirect(ctx, self.UID, active.peerUID, text)
}

// Disconnect closes the open conversation view: the message
// subscription is released and the message state cleared. No persisted
// data is touched.
func (s *Session) Disconnect() {
	s.mux.Release(SlotMessages)

	s.mu.Lock()
	s.active = nil
	s.mu.Unlock()

	s.emitMessages(nil)
}

// DeleteConversation removes the conversation, its messages, and the
// standing connection to the peer. If it was the open conversation the
// view reverts to "no conversation selected".
func (s *Session) DeleteConversation(conversationID, peerUID string) error {
	if err := s.connections.DeleteConversation(s.context(), s.Self().UID, conversationID, peerUID); err != nil {
		return err
	}
	if active, ok := s.Active(); ok && active.Key == conversationID {
		s.Disconnect()
	}
	return nil
}

// CreateGroup creates a group with the session's user as creator. A
// partial failure (group durable, creator link missing) is downgraded
// to a notice: the group exists and the id is returned.
func (s *Session) CreateGroup(name string, memberIDs []string) (string, error) {
	cmd := services.CreateGroupCommand{
		Name:       name,
		CreatorUID: s.Self().UID,
		MemberIDs:  memberIDs,
	}
	groupID, err := s.groupSvc.CreateGroup(s.context(), cmd)
	if stderrors.Is(err, errors.ErrPartialFailure) {
		s.notify("Group created, but there was an issue adding it to your profile. You can still access the group.")
		return groupID, nil
	}
	return groupID, err
}

// DeleteOrLeaveGroup dissolves the group when the session's user
// created it, otherwise removes only them. Either way an open view of
// that group reverts to "no conversation selected".
func (s *Session) DeleteOrLeaveGroup(groupID string) error {
	if err := s.groupSvc.DeleteOrLeaveGroup(s.context(), groupID, s.Self().UID); err != nil {
		return err
	}
	if active, ok := s.Active(); ok && active.Kind == domain.KindGroup && active.Key == groupID {
		s.Disconnect()
	}
	return nil
}

// SignOut releases every subscription and best-effort marks the user
// offline. The session is unusable afterwards.
func (s *Session) SignOut(ctx context.Context) {
	s.mux.ReleaseAll()

	s.mu.Lock()
	uid := s.self.UID
	s.online = false
	s.active = nil
	s.mu.Unlock()

	if uid == "" {
		return
	}
	if err := s.users.UpdatePresence(ctx, uid, false, domain.Now()); err != nil {
		s.log.Warn("presence not cleared on sign-out", "error", err)
	}
}

// SetOnline flips the locally detected connectivity flag. It gates
// sends only; live subscriptions stay attached and resume on their own.
func (s *Session) SetOnline(online bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.online = online
}

func (s *Session) Online() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.online
}

// Self returns the session's user document as of the last refresh.
func (s *Session) Self() domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.self
}

// Active describes the open conversation as a chat list row, or false
// when none is selected.
func (s *Session) Active() (domain.ChatListEntry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == nil {
		return domain.ChatListEntry{}, false
	}
	return domain.ChatListEntry{
		Key:         s.active.id,
		Kind:        s.active.kind,
		PeerUID:     s.active.peerUID,
		DisplayName: s.active.title,
	}, true
}

func (s *Session) openDirect(conversationID string, peer domain.User) error {
	ctx := s.context()

	s.mu.Lock()
	s.active = &activeConversation{
		kind:    domain.KindDirect,
		id:      conversationID,
		peerUID: peer.UID,
		title:   peer.DisplayName,
	}
	s.mu.Unlock()

	return s.mux.Attach(SlotMessages, func() (contract.CancelFunc, error) {
		return s.chats.WatchMessages(ctx, conversationID, s.onMessages)
	})
}

// onSummaries feeds the aggregator. Permission denied degrades to an
// empty snapshot: a brand-new account legitimately has access to
// nothing yet. Any other error keeps the last-known list in place.
func (s *Session) onSummaries(chats []domain.Conversation, err error) {
	if err != nil {
		if !stderrors.Is(err, errors.ErrPermissionDenied) {
			s.notify("Chat list is temporarily unavailable.")
			return
		}
		chats = nil
	}
	s.chatList().SetSummaries(chats)
	s.publish()
}

// onUserDocument refreshes the session's own profile, the standing
// connection set, and the group memberships from one document.
func (s *Session) onUserDocument(user domain.User, err error) {
	if err != nil {
		if !stderrors.Is(err, errors.ErrPermissionDenied) {
			s.notify("Your profile is temporarily unavailable.")
			return
		}
		user = domain.User{}
	} else {
		s.mu.Lock()
		s.self = user
		s.mu.Unlock()
	}

	groupIDs := lo.Keys(user.Groups)
	sort.Strings(groupIDs)
	groups, groupErr := s.groups.GetGroups(s.context(), groupIDs)
	if groupErr != nil {
		s.notify("Groups are temporarily unavailable.")
		return
	}

	list := s.chatList()
	list.SetConnections(user.Connections)
	list.SetGroups(groups)
	s.publish()
}

func (s *Session) onMessages(messages []domain.Message, err error) {
	if err != nil {
		s.notify("Messages are temporarily unavailable.")
		return
	}
	s.emitMessages(messages)
}

func (s *Session) publish() {
	if s.sinks.OnChatList == nil {
		return
	}
	s.sinks.OnChatList(s.chatList().Recompute(s.context()))
}

func (s *Session) emitMessages(messages []domain.Message) {
	if s.sinks.OnMessages != nil {
		s.sinks.OnMessages(messages)
	}
}

func (s *Session) notify(text string) {
	if s.sinks.OnNotice != nil {
		s.sinks.OnNotice(text)
	}
}

func (s *Session) context() context.Context {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ctx == nil {
		return context.Background()
	}
	return s.ctx
}

func (s *Session) chatList() *projection.ChatList {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.list
}

func displayNameOf(ident domain.Identity) string {
	if ident.DisplayName == "" {
		return "User"
	}
	return ident.DisplayName
}
