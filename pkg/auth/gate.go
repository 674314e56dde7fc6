package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"

	"family-finance-api/pkg/serverless"
)

const bearerPrefix = "Bearer "

// MessageTokenRequired is the single 401 message for every token problem:
// the cause (missing, malformed, expired, bad signature) is deliberately not
// disclosed to the caller.
const MessageTokenRequired = "Valid JWT token required"

// Gate validates bearer tokens and enforces role allow-lists before a handler
// runs. It is cloud-agnostic: it only ever touches the request through the
// Context facade, so the same gate serves every adapter.
type Gate struct {
	signingKey []byte
}

// NewGate creates a gate validating HS256 signatures against the given
// symmetric key.
func NewGate(signingKey string) *Gate {
	return &Gate{signingKey: []byte(signingKey)}
}

// Authorize runs the check pipeline over the context's request. Exactly one
// of the three results is meaningful:
//   - a principal, when the token validates (and the role check, if any, passes);
//   - a pre-built rejection response (401 or 403) the caller returns as-is;
//   - an error, only for integrity defects (a validated token with a broken
//     subject claim) and serialization failures.
//
// No issuer or audience checks are performed and no clock-skew leeway is
// granted.
func (g *Gate) Authorize(c *serverless.Context, requiredRoles ...string) (*Principal, serverless.Response, error) {
	header, ok := serverless.Header(c.Request(), "Authorization")
	if !ok || len(header) < len(bearerPrefix) || !strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
		return g.reject401(c)
	}
	tokenString := strings.TrimSpace(header[len(bearerPrefix):])

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return g.signingKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		logrus.WithFields(logrus.Fields{
			"path":  c.Request().URL(),
			"error": errString(err),
		}).Warn("Token validation failed")
		return g.reject401(c)
	}

	principal, err := newPrincipal(claims)
	if err != nil {
		return nil, nil, err
	}

	if len(requiredRoles) > 0 && !roleAllowed(principal.Role(), requiredRoles) {
		logrus.WithFields(logrus.Fields{
			"user_id":        principal.UserID(),
			"role":           principal.Role(),
			"required_roles": requiredRoles,
			"path":           c.Request().URL(),
		}).Warn("Authorization failed - insufficient permissions")
		resp, err := c.CreateForbiddenResponse(
			"Access requires one of the following roles: " + strings.Join(requiredRoles, ", "))
		if err != nil {
			return nil, nil, err
		}
		return nil, resp, nil
	}

	return principal, nil, nil
}

func (g *Gate) reject401(c *serverless.Context) (*Principal, serverless.Response, error) {
	resp, err := c.CreateUnauthorizedResponse(MessageTokenRequired)
	if err != nil {
		return nil, nil, err
	}
	return nil, resp, nil
}

func roleAllowed(role string, allowed []string) bool {
	for _, candidate := range allowed {
		if strings.EqualFold(role, candidate) {
			return true
		}
	}
	return false
}

func errString(err error) string {
	if err == nil {
		return "token not valid"
	}
	return err.Error()
}

// AuthenticatedHandler is a handler that additionally receives the validated
// principal. Routes that do not require authorization use
// serverless.Handler directly.
type AuthenticatedHandler func(ctx context.Context, c *serverless.Context, principal *Principal) (serverless.Response, error)

// Require wraps an authenticated handler so the gate runs first. When the
// gate rejects, the handler never executes and the rejection response is
// returned unchanged.
func (g *Gate) Require(handler AuthenticatedHandler, requiredRoles ...string) serverless.Handler {
	return func(ctx context.Context, c *serverless.Context) (serverless.Response, error) {
		principal, rejection, err := g.Authorize(c, requiredRoles...)
		if err != nil {
			return nil, err
		}
		if rejection != nil {
			return rejection, nil
		}
		return handler(ctx, c, principal)
	}
}
