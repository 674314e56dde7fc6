package handlers

import (
	"context"

	"family-finance-api/internal/services"
	"family-finance-api/pkg/auth"
	"family-finance-api/pkg/serverless"
)

// ParentHandler handles parent account requests
type ParentHandler struct {
	familyService services.FamilyService
}

// NewParentHandler creates a new parent handler
func NewParentHandler(familyService services.FamilyService) *ParentHandler {
	return &ParentHandler{familyService: familyService}
}

// Create adds another parent to the caller's family
func (h *ParentHandler) Create(ctx context.Context, c *serverless.Context, principal *auth.Principal) (serverless.Response, error) {
	familyID, rejection, err := familyScope(c, principal)
	if rejection != nil || err != nil {
		return rejection, err
	}

	req, err := serverless.ReadJSONBody[*services.CreateParentRequest](c.Request())
	if err != nil {
		return c.CreateBadRequestResponse(CodeValidationError, "Invalid request body")
	}

	parent, err := h.familyService.CreateParent(ctx, familyID, req)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.CreateCreatedResponse(parent)
}

// List lists the caller's family parents
func (h *ParentHandler) List(ctx context.Context, c *serverless.Context, principal *auth.Principal) (serverless.Response, error) {
	familyID, rejection, err := familyScope(c, principal)
	if rejection != nil || err != nil {
		return rejection, err
	}

	parents, err := h.familyService.ListParents(ctx, familyID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.CreateOKResponse(parents)
}

// Get retrieves one parent by route ID
func (h *ParentHandler) Get(ctx context.Context, c *serverless.Context, principal *auth.Principal) (serverless.Response, error) {
	familyID, rejection, err := familyScope(c, principal)
	if rejection != nil || err != nil {
		return rejection, err
	}

	id, ok := serverless.RouteGUID(c.Request(), "id")
	if !ok {
		return c.CreateBadRequestResponse("INVALID_PARENT_ID", "Invalid parent ID format")
	}

	parent, err := h.familyService.GetParent(ctx, familyID, id.String())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.CreateOKResponse(parent)
}

// Update updates a parent's details
func (h *ParentHandler) Update(ctx context.Context, c *serverless.Context, principal *auth.Principal) (serverless.Response, error) {
	familyID, rejection, err := familyScope(c, principal)
	if rejection != nil || err != nil {
		return rejection, err
	}

	id, ok := serverless.RouteGUID(c.Request(), "id")
	if !ok {
		return c.CreateBadRequestResponse("INVALID_PARENT_ID", "Invalid parent ID format")
	}

	req, err := serverless.ReadJSONBody[*services.UpdateParentRequest](c.Request())
	if err != nil {
		return c.CreateBadRequestResponse(CodeValidationError, "Invalid request body")
	}

	parent, err := h.familyService.UpdateParent(ctx, familyID, id.String(), req)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.CreateOKResponse(parent)
}

// Delete removes a parent without children from the family
func (h *ParentHandler) Delete(ctx context.Context, c *serverless.Context, principal *auth.Principal) (serverless.Response, error) {
	familyID, rejection, err := familyScope(c, principal)
	if rejection != nil || err != nil {
		return rejection, err
	}

	id, ok := serverless.RouteGUID(c.Request(), "id")
	if !ok {
		return c.CreateBadRequestResponse("INVALID_PARENT_ID", "Invalid parent ID format")
	}

	if err := h.familyService.DeleteParent(ctx, familyID, id.String()); err != nil {
		return respondServiceError(c, err)
	}
	return c.CreateNoContentResponse(), nil
}
