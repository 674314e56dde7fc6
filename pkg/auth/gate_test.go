package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"family-finance-api/pkg/serverless"
)

const testSigningKey = "test-signing-key-at-least-32-bytes!!"

// fakeRequest carries just enough of the Request facade for gate tests.
type fakeRequest struct {
	headers map[string]string
}

func (r *fakeRequest) Method() string { return "GET" }

func (r *fakeRequest) URL() string { return "/children" }

func (r *fakeRequest) Headers() map[string]string { return r.headers }

func (r *fakeRequest) Query() map[string]string { return map[string]string{} }

func (r *fakeRequest) RouteValues() map[string]string { return map[string]string{} }

func (r *fakeRequest) SetRouteValues(values map[string]string) {}

func (r *fakeRequest) Body() ([]byte, error) { return nil, nil }

type fakeResponse struct {
	status  int
	headers map[string]string
	body    string
}

func newFakeResponse() serverless.Response {
	return &fakeResponse{status: http.StatusOK, headers: serverless.NewHeaderMap()}
}

func (r *fakeResponse) StatusCode() int { return r.status }

func (r *fakeResponse) SetStatusCode(status int) { r.status = status }

func (r *fakeResponse) Headers() map[string]string { return r.headers }

func (r *fakeResponse) AddHeader(key, value string) {
	r.headers[http.CanonicalHeaderKey(key)] = value
}

func (r *fakeResponse) Body() string { return r.body }

func (r *fakeResponse) WriteJSON(data any) error {
	encoded, err := json.Marshal(data)
	if err != nil {
		return err
	}
	r.body = string(encoded)
	r.AddHeader("Content-Type", serverless.ContentTypeJSON)
	return nil
}

func (r *fakeResponse) WriteString(content string) { r.body = content }

func contextWithAuth(header string) *serverless.Context {
	headers := map[string]string{}
	if header != "" {
		headers[http.CanonicalHeaderKey("Authorization")] = header
	}
	return serverless.NewContext(&fakeRequest{headers: headers}, newFakeResponse)
}

func mintToken(t *testing.T, key string, ttl time.Duration, role string, familyID uuid.UUID) string {
	t.Helper()

	token, err := NewTokenIssuer(key, "", ttl).Issue(uuid.New(), role, familyID)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return token
}

func assertRejection(t *testing.T, resp serverless.Response, wantStatus int, wantBody string) {
	t.Helper()

	if resp == nil {
		t.Fatal("expected a rejection response")
	}
	if resp.StatusCode() != wantStatus {
		t.Errorf("status = %d, want %d", resp.StatusCode(), wantStatus)
	}
	if resp.Body() != wantBody {
		t.Errorf("body = %s, want %s", resp.Body(), wantBody)
	}
}

const unauthorizedBody = `{"error":{"code":"UNAUTHORIZED","message":"Valid JWT token required"}}`

func TestAuthorizeRejectsBadTokens(t *testing.T) {
	gate := NewGate(testSigningKey)

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not a bearer scheme", "Basic dXNlcjpwYXNz"},
		{"empty bearer token", "Bearer "},
		{"garbage token", "Bearer not.a.jwt"},
		{"wrong signing key", "Bearer " + mintToken(t, "some-other-signing-key-32-bytes!!!!", time.Hour, RoleParent, uuid.Nil)},
		{"expired token", "Bearer " + mintToken(t, testSigningKey, -time.Hour, RoleParent, uuid.Nil)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := contextWithAuth(tt.header)
			principal, rejection, err := gate.Authorize(c)
			if err != nil {
				t.Fatalf("Authorize: %v", err)
			}
			if principal != nil {
				t.Error("principal should be nil on rejection")
			}
			assertRejection(t, rejection, http.StatusUnauthorized, unauthorizedBody)
		})
	}
}

func TestAuthorizeRejectsNonHS256Algorithms(t *testing.T) {
	gate := NewGate(testSigningKey)

	claims := &Claims{
		Role: RoleParent,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uuid.New().String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(testSigningKey))
	if err != nil {
		t.Fatalf("sign HS512 token: %v", err)
	}

	c := contextWithAuth("Bearer " + signed)
	principal, rejection, err := gate.Authorize(c)
	if err != nil {
		t.Fatalf("Authorize: %v", err)
	}
	if principal != nil {
		t.Error("HS512 token must not yield a principal")
	}
	assertRejection(t, rejection, http.StatusUnauthorized, unauthorizedBody)
}

func TestAuthorizeValidToken(t *testing.T) {
	gate := NewGate(testSigningKey)
	userID := uuid.New()
	familyID := uuid.New()

	token, err := NewTokenIssuer(testSigningKey, "", 0).Issue(userID, RoleParent, familyID)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	c := contextWithAuth("Bearer " + token)
	principal, rejection, err := gate.Authorize(c)
	if err != nil {
		t.Fatalf("Authorize: %v", err)
	}
	if rejection != nil {
		t.Fatalf("unexpected rejection: %d %s", rejection.StatusCode(), rejection.Body())
	}
	if principal.UserID() != userID {
		t.Errorf("user id = %v, want %v", principal.UserID(), userID)
	}
	got, ok := principal.FamilyID()
	if !ok || got != familyID {
		t.Errorf("family id = %v, %t; want %v, true", got, ok, familyID)
	}
	if !principal.IsParent() {
		t.Errorf("role = %q, want Parent", principal.Role())
	}
}

func TestAuthorizeRoleMismatch(t *testing.T) {
	gate := NewGate(testSigningKey)
	token := mintToken(t, testSigningKey, time.Hour, RoleParent, uuid.New())

	c := contextWithAuth("Bearer " + token)
	principal, rejection, err := gate.Authorize(c, RoleChild)
	if err != nil {
		t.Fatalf("Authorize: %v", err)
	}
	if principal != nil {
		t.Error("principal should be nil on a role mismatch")
	}
	want := `{"error":{"code":"FORBIDDEN","message":"Access requires one of the following roles: Child"}}`
	assertRejection(t, rejection, http.StatusForbidden, want)
}

func TestAuthorizeRoleMismatchListsAllRoles(t *testing.T) {
	gate := NewGate(testSigningKey)
	token := mintToken(t, testSigningKey, time.Hour, "", uuid.Nil)

	c := contextWithAuth("Bearer " + token)
	_, rejection, err := gate.Authorize(c, RoleParent, RoleChild)
	if err != nil {
		t.Fatalf("Authorize: %v", err)
	}
	want := `{"error":{"code":"FORBIDDEN","message":"Access requires one of the following roles: Parent, Child"}}`
	assertRejection(t, rejection, http.StatusForbidden, want)
}

func TestAuthorizeRoleCheckIsCaseInsensitive(t *testing.T) {
	gate := NewGate(testSigningKey)
	token := mintToken(t, testSigningKey, time.Hour, "parent", uuid.Nil)

	c := contextWithAuth("Bearer " + token)
	principal, rejection, err := gate.Authorize(c, RoleParent)
	if err != nil {
		t.Fatalf("Authorize: %v", err)
	}
	if rejection != nil {
		t.Fatalf("unexpected rejection: %s", rejection.Body())
	}
	if principal == nil {
		t.Fatal("expected a principal")
	}
}

func TestAuthorizeNoRolesRequired(t *testing.T) {
	gate := NewGate(testSigningKey)
	token := mintToken(t, testSigningKey, time.Hour, RoleChild, uuid.New())

	c := contextWithAuth("Bearer " + token)
	principal, rejection, err := gate.Authorize(c)
	if err != nil || rejection != nil || principal == nil {
		t.Errorf("Authorize = %v, %v, %v; any authenticated user should pass", principal, rejection, err)
	}
}

func TestAuthorizeBrokenSubjectIsAnError(t *testing.T) {
	gate := NewGate(testSigningKey)

	claims := &Claims{
		Role: RoleParent,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "not-a-uuid",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSigningKey))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	c := contextWithAuth("Bearer " + signed)
	principal, rejection, err := gate.Authorize(c)
	if err == nil {
		t.Fatal("a validated token with a broken subject must surface as an error")
	}
	if principal != nil || rejection != nil {
		t.Error("no principal or rejection should accompany an integrity error")
	}
}

func TestRequireWrapsRejection(t *testing.T) {
	gate := NewGate(testSigningKey)

	called := false
	handler := gate.Require(func(ctx context.Context, c *serverless.Context, principal *Principal) (serverless.Response, error) {
		called = true
		return c.CreateNoContentResponse(), nil
	}, RoleParent)

	resp, err := handler(context.Background(), contextWithAuth(""))
	if err != nil {
		t.Fatalf("handler: %v", err)
	}
	if called {
		t.Error("wrapped handler must not run when the gate rejects")
	}
	assertRejection(t, resp, http.StatusUnauthorized, unauthorizedBody)
}

func TestRequirePassesPrincipal(t *testing.T) {
	gate := NewGate(testSigningKey)
	userID := uuid.New()
	token, err := NewTokenIssuer(testSigningKey, "", 0).Issue(userID, RoleParent, uuid.Nil)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	handler := gate.Require(func(ctx context.Context, c *serverless.Context, principal *Principal) (serverless.Response, error) {
		if principal.UserID() != userID {
			t.Errorf("principal user id = %v, want %v", principal.UserID(), userID)
		}
		return c.CreateNoContentResponse(), nil
	}, RoleParent)

	resp, err := handler(context.Background(), contextWithAuth("Bearer "+token))
	if err != nil {
		t.Fatalf("handler: %v", err)
	}
	if resp.StatusCode() != http.StatusNoContent {
		t.Errorf("status = %d, want 204", resp.StatusCode())
	}
}
