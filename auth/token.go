package auth

import (
	"time"
	"whispr/domain"

	"github.com/golang-jwt/jwt/v5"
)

// jwtKey is the secret used to sign tokens.
// In a production environment, this should be loaded from an environment variable or a secret manager.
var jwtKey = []byte("my_strong_and_long_secret_key_2026")

// IdentityClaims defines the structure of the data stored inside the JWT.
type IdentityClaims struct {
	DisplayName string `json:"name,omitempty"`
	PhotoURL    string `json:"picture,omitempty"`
	Guest       bool   `json:"guest,omitempty"`
	jwt.RegisteredClaims
}

// Identity maps the claims onto the engine's identity value. The
// subject carries the uid.
func (c *IdentityClaims) Identity() domain.Identity {
	return domain.Identity{
		UID:         c.Subject,
		DisplayName: c.DisplayName,
		PhotoURL:    c.PhotoURL,
		Guest:       c.Guest,
	}
}

// GenerateToken creates a signed JWT for a specific identity.
func GenerateToken(ident domain.Identity, tokenDuration time.Duration) (string, error) {
	expirationTime := time.Now().Add(tokenDuration)

	claims := &IdentityClaims{
		DisplayName: ident.DisplayName,
		PhotoURL:    ident.PhotoURL,
		Guest:       ident.Guest,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   ident.UID,
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "whispr",
		},
	}

	// Create the token using the HS256 algorithm (HMAC with SHA256).
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString(jwtKey)
}

// ValidateToken parses and validates the signature and expiration of a JWT string.
func ValidateToken(tokenString string) (*IdentityClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &IdentityClaims{}, func(token *jwt.Token) (interface{}, error) {
		return jwtKey, nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*IdentityClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, jwt.ErrSignatureInvalid
}
