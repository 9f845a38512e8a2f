//go:generate go run go.uber.org/mock/mockgen -source=identity.go -destination=../mocks/mock_identity_service.go -package=mocks
package services

import (
	"context"
	stderrors "errors"
	"log/slog"
	"math/rand/v2"
	"strings"
	"whispr/domain"
	"whispr/errors"
	"whispr/repositories"
)

const (
	shortIDAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	// ShortIDLength is the fixed size of the human-shareable identifier.
	ShortIDLength = 6

	// DefaultMintAttempts bounds the collision-retry loop. With a 36^6
	// keyspace the loop exits on the first draw in practice; the bound
	// only exists so an adversarial store cannot spin it forever.
	DefaultMintAttempts = 64
)

type IIdentityService interface {
	MintShortID(ctx context.Context) (string, error)
	VerifyRecipient(ctx context.Context, shortID string) (domain.User, error)
}

// IdentityService mints and resolves the short identifiers users share
// with each other.
type IdentityService struct {
	users       repositories.IUserRepository
	log         *slog.Logger
	maxAttempts int
}

func NewIdentityService(users repositories.IUserRepository, log *slog.Logger, maxAttempts int) *IdentityService {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMintAttempts
	}
	return &IdentityService{users: users, log: log, maxAttempts: maxAttempts}
}

// MintShortID draws 6-character candidates until one is free in the
// store. Uniqueness is a read-then-write loop, not a transaction; it
// holds at mint time.
func (s *IdentityService) MintShortID(ctx context.Context) (string, error) {
	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		candidate := randomShortID()
		taken, err := s.users.ShortIDTaken(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		s.log.Debug("short id collision, redrawing", "attempt", attempt)
	}
	return "", errors.ErrIdentityExhausted
}

// VerifyRecipient case-normalizes the input and resolves it by exact
// equality. The first match wins; uniqueness is not re-verified here.
func (s *IdentityService) VerifyRecipient(ctx context.Context, shortID string) (domain.User, error) {
	normalized := strings.ToUpper(strings.TrimSpace(shortID))
	user, err := s.users.FindByShortID(ctx, normalized)
	if stderrors.Is(err, errors.ErrNotFound) {
		return domain.User{}, errors.ErrRecipientNotFound
	}
	if err != nil {
		return domain.User{}, err
	}
	return user, nil
}

// NormalizeShortID uppercases raw input and rejects anything that is not
// exactly 6 characters of A-Z or 0-9. Runs before any store call.
func NormalizeShortID(raw string) (string, error) {
	id := strings.ToUpper(strings.TrimSpace(raw))
	if len(id) != ShortIDLength {
		return "", errors.ErrInvalidShortID
	}
	for _, c := range id {
		if (c < 'A' || c > 'Z') && (c < '0' || c > '9') {
			return "", errors.ErrInvalidShortID
		}
	}
	return id, nil
}

func randomShortID() string {
	b := make([]byte, ShortIDLength)
	for i := range b {
		b[i] = shortIDAlphabet[rand.IntN(len(shortIDAlphabet))]
	}
	return string(b)
}
