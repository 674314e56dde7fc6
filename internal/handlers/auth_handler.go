package handlers

import (
	"context"

	"github.com/google/uuid"

	"family-finance-api/internal/repositories"
	"family-finance-api/internal/services"
	"family-finance-api/pkg/auth"
	"family-finance-api/pkg/serverless"
)

// AuthHandler issues tokens. Parent login is by email; child tokens are
// minted by an authenticated parent for a child in their family.
type AuthHandler struct {
	familyService services.FamilyService
	issuer        *auth.TokenIssuer
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(familyService services.FamilyService, issuer *auth.TokenIssuer) *AuthHandler {
	return &AuthHandler{familyService: familyService, issuer: issuer}
}

// LoginRequest identifies the parent logging in. Credential verification is
// delegated to the identity provider fronting this API; this endpoint only
// exchanges a known email for a scoped token.
type LoginRequest struct {
	Email string `json:"email"`
}

// TokenResponse carries an issued bearer token
type TokenResponse struct {
	Token string `json:"token"`
	Role  string `json:"role"`
}

// Login exchanges a parent email for a Parent-role token
func (h *AuthHandler) Login(ctx context.Context, c *serverless.Context) (serverless.Response, error) {
	req, err := serverless.ReadJSONBody[*LoginRequest](c.Request())
	if err != nil || req == nil || req.Email == "" {
		return c.CreateBadRequestResponse(CodeValidationError, "Email is required")
	}

	parent, err := h.familyService.FindParentByEmail(ctx, req.Email)
	if err != nil {
		if repositories.IsNotFound(err) {
			return c.CreateUnauthorizedResponse("")
		}
		return respondServiceError(c, err)
	}

	userID, err := uuid.Parse(parent.ID)
	if err != nil {
		return nil, err
	}
	familyID, err := uuid.Parse(parent.FamilyID)
	if err != nil {
		return nil, err
	}

	token, err := h.issuer.Issue(userID, auth.RoleParent, familyID)
	if err != nil {
		return nil, err
	}
	return c.CreateOKResponse(&TokenResponse{Token: token, Role: auth.RoleParent})
}

// ChildToken mints a Child-role token for a child in the caller's family
func (h *AuthHandler) ChildToken(ctx context.Context, c *serverless.Context, principal *auth.Principal) (serverless.Response, error) {
	familyID, rejection, err := familyScope(c, principal)
	if rejection != nil || err != nil {
		return rejection, err
	}

	childID, ok := serverless.RouteGUID(c.Request(), "id")
	if !ok {
		return c.CreateBadRequestResponse("INVALID_CHILD_ID", "Invalid child ID format")
	}

	child, err := h.familyService.GetChild(ctx, familyID, childID.String())
	if err != nil {
		return respondServiceError(c, err)
	}

	childUUID, err := uuid.Parse(child.ID)
	if err != nil {
		return nil, err
	}
	familyUUID, err := uuid.Parse(child.FamilyID)
	if err != nil {
		return nil, err
	}

	token, err := h.issuer.Issue(childUUID, auth.RoleChild, familyUUID)
	if err != nil {
		return nil, err
	}
	return c.CreateOKResponse(&TokenResponse{Token: token, Role: auth.RoleChild})
}
