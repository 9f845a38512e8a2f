package auth

import (
	"testing"
	"time"
	"whispr/domain"

	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateToken(t *testing.T) {
	req := require.New(t)
	ident := domain.Identity{
		UID:         "uid-123",
		DisplayName: "Alice",
		PhotoURL:    "https://example.com/alice.png",
		Guest:       true,
	}

	token, err := GenerateToken(ident, time.Hour)
	req.NoError(err)
	req.NotEmpty(token)

	claims, err := ValidateToken(token)
	req.NoError(err)
	req.Equal(ident, claims.Identity())
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	req := require.New(t)

	token, err := GenerateToken(domain.Identity{UID: "uid-123"}, -time.Minute)
	req.NoError(err)

	_, err = ValidateToken(token)
	req.Error(err)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	req := require.New(t)

	_, err := ValidateToken("not.a.token")
	req.Error(err)
}
