package handlers

import (
	"context"

	"family-finance-api/internal/services"
	"family-finance-api/pkg/auth"
	"family-finance-api/pkg/serverless"
)

// ChildHandler handles child account requests
type ChildHandler struct {
	familyService services.FamilyService
}

// NewChildHandler creates a new child handler
func NewChildHandler(familyService services.FamilyService) *ChildHandler {
	return &ChildHandler{familyService: familyService}
}

// Create creates a child account in the caller's family
func (h *ChildHandler) Create(ctx context.Context, c *serverless.Context, principal *auth.Principal) (serverless.Response, error) {
	familyID, rejection, err := familyScope(c, principal)
	if rejection != nil || err != nil {
		return rejection, err
	}

	req, err := serverless.ReadJSONBody[*services.CreateChildRequest](c.Request())
	if err != nil {
		return c.CreateBadRequestResponse(CodeValidationError, "Invalid request body")
	}

	child, err := h.familyService.CreateChild(ctx, familyID, req)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.CreateCreatedResponse(child)
}

// List lists the caller's family children
func (h *ChildHandler) List(ctx context.Context, c *serverless.Context, principal *auth.Principal) (serverless.Response, error) {
	familyID, rejection, err := familyScope(c, principal)
	if rejection != nil || err != nil {
		return rejection, err
	}

	children, err := h.familyService.ListChildren(ctx, familyID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.CreateOKResponse(children)
}

// Get retrieves one child by route ID
func (h *ChildHandler) Get(ctx context.Context, c *serverless.Context, principal *auth.Principal) (serverless.Response, error) {
	familyID, rejection, err := familyScope(c, principal)
	if rejection != nil || err != nil {
		return rejection, err
	}

	id, ok := serverless.RouteGUID(c.Request(), "id")
	if !ok {
		return c.CreateBadRequestResponse("INVALID_CHILD_ID", "Invalid child ID format")
	}

	child, err := h.familyService.GetChild(ctx, familyID, id.String())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.CreateOKResponse(child)
}

// Update updates a child's details
func (h *ChildHandler) Update(ctx context.Context, c *serverless.Context, principal *auth.Principal) (serverless.Response, error) {
	familyID, rejection, err := familyScope(c, principal)
	if rejection != nil || err != nil {
		return rejection, err
	}

	id, ok := serverless.RouteGUID(c.Request(), "id")
	if !ok {
		return c.CreateBadRequestResponse("INVALID_CHILD_ID", "Invalid child ID format")
	}

	req, err := serverless.ReadJSONBody[*services.UpdateChildRequest](c.Request())
	if err != nil {
		return c.CreateBadRequestResponse(CodeValidationError, "Invalid request body")
	}

	child, err := h.familyService.UpdateChild(ctx, familyID, id.String(), req)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.CreateOKResponse(child)
}

// Delete deletes a child account
func (h *ChildHandler) Delete(ctx context.Context, c *serverless.Context, principal *auth.Principal) (serverless.Response, error) {
	familyID, rejection, err := familyScope(c, principal)
	if rejection != nil || err != nil {
		return rejection, err
	}

	id, ok := serverless.RouteGUID(c.Request(), "id")
	if !ok {
		return c.CreateBadRequestResponse("INVALID_CHILD_ID", "Invalid child ID format")
	}

	if err := h.familyService.DeleteChild(ctx, familyID, id.String()); err != nil {
		return respondServiceError(c, err)
	}
	return c.CreateNoContentResponse(), nil
}

// Balance reports a child's balance alongside the ledger-derived total
func (h *ChildHandler) Balance(ctx context.Context, c *serverless.Context, principal *auth.Principal) (serverless.Response, error) {
	familyID, rejection, err := familyScope(c, principal)
	if rejection != nil || err != nil {
		return rejection, err
	}

	id, ok := serverless.RouteGUID(c.Request(), "id")
	if !ok {
		return c.CreateBadRequestResponse("INVALID_CHILD_ID", "Invalid child ID format")
	}

	balance, err := h.familyService.GetChildBalance(ctx, familyID, id.String())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.CreateOKResponse(balance)
}
