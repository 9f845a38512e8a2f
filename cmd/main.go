package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"sync"
	"syscall"
	"whispr/auth"
	"whispr/domain"
	"whispr/repositories"
	"whispr/runtime"
	"whispr/services"

	"github.com/Netflix/go-env"
	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/gookit/color"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
	"github.com/olekukonko/tablewriter"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

// run initializes all components, manages the client lifecycle, and centralizes error reporting.
// This pattern is preferred over calling os.Exit or panic directly because:
// 1. It ensures all 'defer' statements (like database cleanup) are executed before the program exits.
// 2. It improves testability by decoupling the initialization logic from the main entry point.
func run() error {
	// 1. Configuration & Logger
	_ = godotenv.Load()
	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	// 2. Database (BadgerDB)
	db, err := badger.Open(badger.DefaultOptions(config.BadgerFilepath).
		WithLoggingLevel(badger.WARNING))
	if err != nil {
		return fmt.Errorf("database opening failed: %w", err)
	}
	//  Defer will be executed before run() returned anything to main()
	defer func() {
		log.Info("Closing BadgerDB...")
		_ = db.Close()
	}()

	// 3. Repositories & Services
	users := repositories.NewUserRepository(db, log)
	chats := repositories.NewChatRepository(db, log)
	groups := repositories.NewGroupRepository(db, log)

	identity := services.NewIdentityService(users, log, config.MintAttempts)
	quota := services.NewQuotaService()
	connections := services.NewConnectionService(users, chats, identity, quota, log)
	groupService := services.NewGroupService(users, groups, quota, log)
	composer := services.NewComposerService(chats, groups, log)

	// 4. Identity: sign a token for the configured profile, then trust
	// only what the validated claims carry.
	if config.UID == "" {
		config.UID = uuid.NewString()
	}
	token, err := auth.GenerateToken(domain.Identity{
		UID:         config.UID,
		DisplayName: config.DisplayName,
		PhotoURL:    config.PhotoURL,
		Guest:       config.GuestMode,
	}, config.AuthTokenDuration)
	if err != nil {
		return fmt.Errorf("token generation failed: %w", err)
	}
	claims, err := auth.ValidateToken(token)
	if err != nil {
		return fmt.Errorf("token validation failed: %w", err)
	}

	// 5. Session with terminal sinks
	view := newView()
	session := runtime.NewSession(log, users, chats, groups, connections, groupService, composer, identity, runtime.Sinks{
		OnMessages: view.showMessages(config.UID),
		OnChatList: view.showChatList,
		OnNotice:   view.showNotice,
	})

	// 6. Context & Signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := session.Start(ctx, claims.Identity()); err != nil {
		return fmt.Errorf("session failed to start: %w", err)
	}
	defer session.SignOut(context.Background())

	self := session.Self()
	color.Green.Printf("Signed in as %s\n", self.DisplayName)
	color.Cyan.Printf("Your short id: %s (share it to get connected)\n", self.ShortID)
	printHelp()

	// 7. Command loop. Stdin reads happen on their own goroutine so a
	// signal still interrupts a blocked read.
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			log.Info("Shutting down gracefully...")
			return nil
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			if strings.TrimSpace(line) == "/quit" {
				return nil
			}
			if err := dispatch(session, view, line); err != nil {
				color.Red.Printf("Error: %v\n", err)
			}
		}
	}
}

// dispatch interprets one input line. Lines starting with a slash are
// commands, everything else goes to the open conversation.
func dispatch(session *runtime.Session, view *view, line string) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}
	if !strings.HasPrefix(line, "/") {
		return session.Send(line)
	}

	command, args, _ := strings.Cut(line, " ")
	args = strings.TrimSpace(args)

	switch command {
	case "/help":
		printHelp()
		return nil
	case "/connect":
		return session.Connect(args)
	case "/open":
		entry, err := view.entryAt(args)
		if err != nil {
			return err
		}
		if entry.Kind == domain.KindGroup {
			return session.OpenGroup(entry.Key)
		}
		return session.OpenConversation(entry.PeerUID)
	case "/close":
		session.Disconnect()
		return nil
	case "/delete":
		entry, err := view.entryAt(args)
		if err != nil {
			return err
		}
		if entry.Kind == domain.KindGroup {
			return session.DeleteOrLeaveGroup(entry.Key)
		}
		return session.DeleteConversation(entry.Key, entry.PeerUID)
	case "/group":
		name, members, found := strings.Cut(args, ":")
		if !found {
			return fmt.Errorf("usage: /group <name>: <uid>,<uid>,...")
		}
		groupID, err := session.CreateGroup(strings.TrimSpace(name), splitCSV(members))
		if err != nil {
			return err
		}
		color.Green.Printf("Group created: %s\n", groupID)
		return nil
	case "/online":
		session.SetOnline(true)
		return nil
	case "/offline":
		session.SetOnline(false)
		return nil
	case "/whoami":
		self := session.Self()
		color.Cyan.Printf("%s (%s) uid=%s\n", self.DisplayName, self.ShortID, self.UID)
		return nil
	default:
		return fmt.Errorf("unknown command %s, try /help", command)
	}
}

func printHelp() {
	fmt.Println(`Commands:
  /connect XXXXXX        link up with the holder of a short id
  /open N                open chat list row N
  /close                 close the open conversation
  /delete N              delete row N (leave it, if a group you did not create)
  /group name: a,b,c     create a group with member uids
  /online | /offline     toggle local connectivity
  /whoami                show your profile
  /quit                  sign out and exit
Anything else is sent as a message to the open conversation.`)
}

func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// view renders session output and remembers the last chat list so rows
// can be addressed by number.
type view struct {
	mu      sync.Mutex
	entries []domain.ChatListEntry
}

func newView() *view {
	return &view{}
}

func (v *view) entryAt(arg string) (domain.ChatListEntry, error) {
	n, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil {
		return domain.ChatListEntry{}, fmt.Errorf("expected a row number, got %q", arg)
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	if n < 1 || n > len(v.entries) {
		return domain.ChatListEntry{}, fmt.Errorf("no chat list row %d", n)
	}
	return v.entries[n-1], nil
}

func (v *view) showChatList(entries []domain.ChatListEntry) {
	v.mu.Lock()
	v.entries = entries
	v.mu.Unlock()

	if len(entries) == 0 {
		color.Gray.Println("(no conversations yet)")
		return
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"#", "Kind", "Name", "Last message", "When"})
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")

	for i, e := range entries {
		kind := "chat"
		name := e.DisplayName
		if e.Kind == domain.KindGroup {
			kind = "group"
		} else if e.Online {
			name += " *"
		}
		table.Append([]string{
			strconv.Itoa(i + 1),
			kind,
			name,
			truncate(e.LastMessage, 40),
			e.Timestamp,
		})
	}
	table.Render()
}

func (v *view) showMessages(selfUID string) func([]domain.Message) {
	return func(messages []domain.Message) {
		if messages == nil {
			color.Gray.Println("(no conversation open)")
			return
		}
		for _, m := range messages {
			name := m.SenderName
			if name == "" {
				name = m.Sender
			}
			if m.Sender == selfUID {
				color.Green.Printf("you: %s\n", m.Text)
			} else {
				color.Blue.Printf("%s: %s\n", name, m.Text)
			}
		}
	}
}

func (v *view) showNotice(text string) {
	color.Yellow.Println(text)
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
