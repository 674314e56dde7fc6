package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"

	"family-finance-api/internal/models"
	"family-finance-api/internal/repositories"
	"family-finance-api/internal/services"
	"family-finance-api/pkg/auth"
	"family-finance-api/pkg/serverless"
)

const testSigningKey = "test-signing-key-at-least-32-bytes!!"

type fakeRequest struct {
	headers     map[string]string
	query       map[string]string
	routeValues map[string]string
	body        []byte
}

func (r *fakeRequest) Method() string { return "GET" }

func (r *fakeRequest) URL() string { return "/test" }

func (r *fakeRequest) Headers() map[string]string { return r.headers }

func (r *fakeRequest) Query() map[string]string { return r.query }

func (r *fakeRequest) RouteValues() map[string]string { return r.routeValues }

func (r *fakeRequest) SetRouteValues(values map[string]string) {
	if values == nil {
		values = map[string]string{}
	}
	r.routeValues = values
}

func (r *fakeRequest) Body() ([]byte, error) { return r.body, nil }

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

// testRequest builds a context for one invocation. routeID becomes the "id"
// route value when non-empty.
func testRequest(routeID, body, authHeader string) *serverless.Context {
	req := &fakeRequest{
		headers:     map[string]string{},
		query:       map[string]string{},
		routeValues: map[string]string{},
	}
	if routeID != "" {
		req.routeValues["id"] = routeID
	}
	if body != "" {
		req.body = []byte(body)
	}
	if authHeader != "" {
		req.headers[http.CanonicalHeaderKey("Authorization")] = authHeader
	}
	return serverless.NewContext(req, newFakeResponse)
}

// testPrincipal mints a token and runs it through the gate, the only way a
// principal is ever produced in production.
func testPrincipal(t *testing.T, role string, familyID uuid.UUID) *auth.Principal {
	t.Helper()

	token, err := auth.NewTokenIssuer(testSigningKey, "", 0).Issue(uuid.New(), role, familyID)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	principal, rejection, err := auth.NewGate(testSigningKey).Authorize(testRequest("", "", "Bearer "+token))
	if err != nil || rejection != nil {
		t.Fatalf("authorize minted token: %v %v", err, rejection)
	}
	return principal
}

func bearerFor(t *testing.T, role string, familyID uuid.UUID) string {
	t.Helper()

	token, err := auth.NewTokenIssuer(testSigningKey, "", 0).Issue(uuid.New(), role, familyID)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return "Bearer " + token
}

// stubFamilyService overrides only what each test needs; calling anything
// else panics through the embedded nil interface.
type stubFamilyService struct {
	services.FamilyService
	getChild          func(ctx context.Context, familyID, id string) (*models.Child, error)
	findParentByEmail func(ctx context.Context, email string) (*models.Parent, error)
}

func (s *stubFamilyService) GetChild(ctx context.Context, familyID, id string) (*models.Child, error) {
	return s.getChild(ctx, familyID, id)
}

func (s *stubFamilyService) FindParentByEmail(ctx context.Context, email string) (*models.Parent, error) {
	return s.findParentByEmail(ctx, email)
}

type stubLedgerService struct {
	services.LedgerService
	record func(ctx context.Context, familyID string, req *services.RecordTransactionRequest) (*models.Transaction, error)
}

func (s *stubLedgerService) RecordTransaction(ctx context.Context, familyID string, req *services.RecordTransactionRequest) (*models.Transaction, error) {
	return s.record(ctx, familyID, req)
}

type stubNotificationService struct {
	services.NotificationService
}

func (s *stubNotificationService) ListNotifications(ctx context.Context, userID string, unreadOnly bool) ([]*models.Notification, error) {
	return nil, nil
}

func assertEnvelope(t *testing.T, resp serverless.Response, wantStatus int, wantBody string) {
	t.Helper()

	if resp == nil {
		t.Fatal("expected a response")
	}
	if resp.StatusCode() != wantStatus {
		t.Errorf("status = %d, want %d", resp.StatusCode(), wantStatus)
	}
	if resp.Body() != wantBody {
		t.Errorf("body = %s, want %s", resp.Body(), wantBody)
	}
}

func TestChildGetInvalidID(t *testing.T) {
	h := NewChildHandler(&stubFamilyService{})
	principal := testPrincipal(t, auth.RoleParent, uuid.New())

	resp, err := h.Get(context.Background(), testRequest("not-a-uuid", "", ""), principal)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	assertEnvelope(t, resp, http.StatusBadRequest,
		`{"error":{"code":"INVALID_CHILD_ID","message":"Invalid child ID format"}}`)
}

func TestChildGetNotFound(t *testing.T) {
	h := NewChildHandler(&stubFamilyService{
		getChild: func(ctx context.Context, familyID, id string) (*models.Child, error) {
			return nil, repositories.NotFoundError("child", id)
		},
	})
	principal := testPrincipal(t, auth.RoleParent, uuid.New())

	resp, err := h.Get(context.Background(), testRequest(uuid.New().String(), "", ""), principal)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	assertEnvelope(t, resp, http.StatusNotFound,
		`{"error":{"code":"NOT_FOUND","message":"Resource not found"}}`)
}

func TestChildGetSuccess(t *testing.T) {
	familyID := uuid.New()
	childID := uuid.New().String()
	h := NewChildHandler(&stubFamilyService{
		getChild: func(ctx context.Context, gotFamily, id string) (*models.Child, error) {
			if gotFamily != familyID.String() {
				t.Errorf("family = %s, want the principal's family %s", gotFamily, familyID)
			}
			return &models.Child{ID: id, FamilyID: gotFamily, FirstName: "Sam"}, nil
		},
	})
	principal := testPrincipal(t, auth.RoleParent, familyID)

	resp, err := h.Get(context.Background(), testRequest(childID, "", ""), principal)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if resp.StatusCode() != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode())
	}
	var child models.Child
	if err := json.Unmarshal([]byte(resp.Body()), &child); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if child.ID != childID || child.FirstName != "Sam" {
		t.Errorf("child = %+v", child)
	}
}

func TestFamilyScopeRejectsUnscopedToken(t *testing.T) {
	h := NewChildHandler(&stubFamilyService{})
	principal := testPrincipal(t, auth.RoleParent, uuid.Nil)

	resp, err := h.Get(context.Background(), testRequest(uuid.New().String(), "", ""), principal)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	assertEnvelope(t, resp, http.StatusForbidden,
		`{"error":{"code":"FORBIDDEN","message":"Forbidden"}}`)
}

func TestChildCreateInvalidBody(t *testing.T) {
	h := NewChildHandler(&stubFamilyService{})
	principal := testPrincipal(t, auth.RoleParent, uuid.New())

	resp, err := h.Create(context.Background(), testRequest("", "{not json", ""), principal)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	assertEnvelope(t, resp, http.StatusBadRequest,
		`{"error":{"code":"VALIDATION_ERROR","message":"Invalid request body"}}`)
}

func TestRecordTransactionErrorMapping(t *testing.T) {
	principal := testPrincipal(t, auth.RoleParent, uuid.New())
	body := fmt.Sprintf(`{"child_id":%q,"type":"spending","amount_cents":-500}`, uuid.New().String())

	tests := []struct {
		name       string
		serviceErr error
		wantStatus int
		wantCode   string
	}{
		{"insufficient funds", fmt.Errorf("%w: balance too low", services.ErrInsufficientFunds), 400, CodeInsufficientFunds},
		{"validation", fmt.Errorf("%w: bad amount", services.ErrValidation), 400, CodeValidationError},
		{"invalid state", fmt.Errorf("%w: wrong status", services.ErrInvalidState), 409, CodeInvalidState},
		{"duplicate", repositories.DuplicateError("transaction", "id", "x"), 409, CodeDuplicateEntry},
		{"not found", repositories.NotFoundError("child", "x"), 404, serverless.CodeNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewTransactionHandler(&stubLedgerService{
				record: func(ctx context.Context, familyID string, req *services.RecordTransactionRequest) (*models.Transaction, error) {
					return nil, tt.serviceErr
				},
			})

			resp, err := h.Record(context.Background(), testRequest("", body, ""), principal)
			if err != nil {
				t.Fatalf("Record: %v", err)
			}
			if resp.StatusCode() != tt.wantStatus {
				t.Errorf("status = %d, want %d", resp.StatusCode(), tt.wantStatus)
			}
			var envelope serverless.ErrorEnvelope
			if err := json.Unmarshal([]byte(resp.Body()), &envelope); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if envelope.Error.Code != tt.wantCode {
				t.Errorf("code = %q, want %q", envelope.Error.Code, tt.wantCode)
			}
		})
	}
}

func TestRecordTransactionUnknownErrorPropagates(t *testing.T) {
	principal := testPrincipal(t, auth.RoleParent, uuid.New())
	h := NewTransactionHandler(&stubLedgerService{
		record: func(ctx context.Context, familyID string, req *services.RecordTransactionRequest) (*models.Transaction, error) {
			return nil, errors.New("database unreachable")
		},
	})

	body := fmt.Sprintf(`{"child_id":%q,"type":"spending","amount_cents":-500}`, uuid.New().String())
	resp, err := h.Record(context.Background(), testRequest("", body, ""), principal)
	if err == nil {
		t.Fatal("unmapped errors must propagate to the adapter")
	}
	if resp != nil {
		t.Error("no response should accompany a propagated error")
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	issuer := auth.NewTokenIssuer(testSigningKey, "", 0)
	h := NewAuthHandler(&stubFamilyService{
		findParentByEmail: func(ctx context.Context, email string) (*models.Parent, error) {
			return nil, repositories.NotFoundError("parent", email)
		},
	}, issuer)

	resp, err := h.Login(context.Background(), testRequest("", `{"email":"nobody@example.com"}`, ""))
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	assertEnvelope(t, resp, http.StatusUnauthorized,
		`{"error":{"code":"UNAUTHORIZED","message":"Unauthorized"}}`)
}

func TestLoginIssuesParentToken(t *testing.T) {
	issuer := auth.NewTokenIssuer(testSigningKey, "", 0)
	parent := models.NewParent(uuid.New().String(), "Ada", "Lovelace", "ada@example.com")
	h := NewAuthHandler(&stubFamilyService{
		findParentByEmail: func(ctx context.Context, email string) (*models.Parent, error) {
			if email != "ada@example.com" {
				t.Errorf("email = %q", email)
			}
			return parent, nil
		},
	}, issuer)

	resp, err := h.Login(context.Background(), testRequest("", `{"email":"ada@example.com"}`, ""))
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if resp.StatusCode() != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode())
	}

	var tokenResp TokenResponse
	if err := json.Unmarshal([]byte(resp.Body()), &tokenResp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if tokenResp.Role != auth.RoleParent {
		t.Errorf("role = %q, want Parent", tokenResp.Role)
	}

	// The issued token must validate against the same key and carry the
	// parent's identity and family.
	principal, rejection, err := auth.NewGate(testSigningKey).Authorize(
		testRequest("", "", "Bearer "+tokenResp.Token))
	if err != nil || rejection != nil {
		t.Fatalf("issued token rejected: %v %v", err, rejection)
	}
	if principal.UserID().String() != parent.ID {
		t.Errorf("subject = %s, want %s", principal.UserID(), parent.ID)
	}
	familyID, ok := principal.FamilyID()
	if !ok || familyID.String() != parent.FamilyID {
		t.Errorf("family = %v, %t; want %s", familyID, ok, parent.FamilyID)
	}
}

func TestLoginMissingEmail(t *testing.T) {
	h := NewAuthHandler(&stubFamilyService{}, auth.NewTokenIssuer(testSigningKey, "", 0))

	resp, err := h.Login(context.Background(), testRequest("", `{}`, ""))
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if resp.StatusCode() != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode())
	}
}

func TestRoutesPolicy(t *testing.T) {
	gate := auth.NewGate(testSigningKey)
	issuer := auth.NewTokenIssuer(testSigningKey, "", 0)
	svcs := &services.ServiceContainer{
		FamilyService:       &stubFamilyService{},
		LedgerService:       &stubLedgerService{},
		NotificationService: &stubNotificationService{},
	}
	routes := NewRoutes(svcs, gate, issuer)
	familyID := uuid.New()

	t.Run("missing token", func(t *testing.T) {
		resp, err := routes.ListChildren(context.Background(), testRequest("", "", ""))
		if err != nil {
			t.Fatalf("handler: %v", err)
		}
		assertEnvelope(t, resp, http.StatusUnauthorized,
			`{"error":{"code":"UNAUTHORIZED","message":"Valid JWT token required"}}`)
	})

	t.Run("parent cannot complete a task", func(t *testing.T) {
		resp, err := routes.CompleteTask(context.Background(),
			testRequest(uuid.New().String(), "", bearerFor(t, auth.RoleParent, familyID)))
		if err != nil {
			t.Fatalf("handler: %v", err)
		}
		assertEnvelope(t, resp, http.StatusForbidden,
			`{"error":{"code":"FORBIDDEN","message":"Access requires one of the following roles: Child"}}`)
	})

	t.Run("child cannot record a transaction", func(t *testing.T) {
		resp, err := routes.RecordTransaction(context.Background(),
			testRequest("", "{}", bearerFor(t, auth.RoleChild, familyID)))
		if err != nil {
			t.Fatalf("handler: %v", err)
		}
		if resp.StatusCode() != http.StatusForbidden {
			t.Errorf("status = %d, want 403", resp.StatusCode())
		}
	})

	t.Run("any authenticated user lists notifications", func(t *testing.T) {
		resp, err := routes.ListNotifications(context.Background(),
			testRequest("", "", bearerFor(t, auth.RoleChild, familyID)))
		if err != nil {
			t.Fatalf("handler: %v", err)
		}
		if resp.StatusCode() != http.StatusOK {
			t.Errorf("status = %d, want 200", resp.StatusCode())
		}
	})
}
