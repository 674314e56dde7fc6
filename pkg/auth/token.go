package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenIssuer mints the HS256 tokens the Gate validates.
type TokenIssuer struct {
	signingKey []byte
	issuer     string
	ttl        time.Duration
}

// NewTokenIssuer creates an issuer. A zero ttl defaults to 24 hours.
func NewTokenIssuer(signingKey, issuer string, ttl time.Duration) *TokenIssuer {
	if ttl == 0 {
		ttl = 24 * time.Hour
	}
	if issuer == "" {
		issuer = "family-finance-api"
	}
	return &TokenIssuer{signingKey: []byte(signingKey), issuer: issuer, ttl: ttl}
}

// Issue signs a token for the given user. familyID may be uuid.Nil for users
// not scoped to a family.
func (i *TokenIssuer) Issue(userID uuid.UUID, role string, familyID uuid.UUID) (string, error) {
	now := time.Now()
	claims := &Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			Issuer:    i.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}
	if familyID != uuid.Nil {
		claims.FamilyID = familyID.String()
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.signingKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}
