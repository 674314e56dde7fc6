package auth

import (
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Role values carried in tokens. Comparisons are case-insensitive.
const (
	RoleParent = "Parent"
	RoleChild  = "Child"
)

// Claims is the JWT claim set this application issues and consumes. FamilyId
// is a custom claim scoping the user to one family.
type Claims struct {
	Role     string `json:"role,omitempty"`
	FamilyID string `json:"FamilyId,omitempty"`
	jwt.RegisteredClaims
}

// Principal is the validated identity extracted from a bearer token. It lives
// for a single invocation and is never persisted.
type Principal struct {
	userID      uuid.UUID
	familyID    uuid.UUID
	hasFamilyID bool
	role        string
	claims      *Claims
}

// newPrincipal derives a principal from a claim set that already passed
// signature validation. A missing or unparseable subject at this point means
// the token was issued incorrectly, which is an integrity defect rather than
// an authentication failure, so it surfaces as an error.
func newPrincipal(claims *Claims) (*Principal, error) {
	if claims.Subject == "" {
		return nil, fmt.Errorf("validated token is missing the subject claim")
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("validated token has a non-UUID subject claim %q: %w", claims.Subject, err)
	}

	p := &Principal{userID: userID, role: claims.Role, claims: claims}
	if claims.FamilyID != "" {
		familyID, err := uuid.Parse(claims.FamilyID)
		if err != nil {
			return nil, fmt.Errorf("validated token has a non-UUID FamilyId claim %q: %w", claims.FamilyID, err)
		}
		p.familyID = familyID
		p.hasFamilyID = true
	}
	return p, nil
}

// UserID returns the authenticated user's identifier.
func (p *Principal) UserID() uuid.UUID { return p.userID }

// FamilyID returns the family the user belongs to, when the token carries
// one.
func (p *Principal) FamilyID() (uuid.UUID, bool) { return p.familyID, p.hasFamilyID }

// Role returns the role claim, empty when the token carries none.
func (p *Principal) Role() string { return p.role }

// IsParent reports whether the principal holds the Parent role.
func (p *Principal) IsParent() bool { return strings.EqualFold(p.role, RoleParent) }

// IsChild reports whether the principal holds the Child role.
func (p *Principal) IsChild() bool { return strings.EqualFold(p.role, RoleChild) }

// Claims exposes the full validated claim set.
func (p *Principal) Claims() *Claims { return p.claims }
