package handlers

import (
	"context"

	"family-finance-api/internal/services"
	"family-finance-api/pkg/auth"
	"family-finance-api/pkg/serverless"
)

// GiftHandler handles gift goal requests
type GiftHandler struct {
	giftService services.GiftService
}

// NewGiftHandler creates a new gift handler
func NewGiftHandler(giftService services.GiftService) *GiftHandler {
	return &GiftHandler{giftService: giftService}
}

// Create opens a gift goal
func (h *GiftHandler) Create(ctx context.Context, c *serverless.Context, principal *auth.Principal) (serverless.Response, error) {
	familyID, rejection, err := familyScope(c, principal)
	if rejection != nil || err != nil {
		return rejection, err
	}

	req, err := serverless.ReadJSONBody[*services.CreateGiftRequest](c.Request())
	if err != nil {
		return c.CreateBadRequestResponse(CodeValidationError, "Invalid request body")
	}
	if req != nil {
		req.CreatedBy = principal.UserID().String()
	}

	gift, err := h.giftService.CreateGift(ctx, familyID, req)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.CreateCreatedResponse(gift)
}

// List lists the family's gift goals
func (h *GiftHandler) List(ctx context.Context, c *serverless.Context, principal *auth.Principal) (serverless.Response, error) {
	familyID, rejection, err := familyScope(c, principal)
	if rejection != nil || err != nil {
		return rejection, err
	}

	gifts, err := h.giftService.ListGifts(ctx, familyID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.CreateOKResponse(gifts)
}

// Get retrieves one gift by route ID
func (h *GiftHandler) Get(ctx context.Context, c *serverless.Context, principal *auth.Principal) (serverless.Response, error) {
	familyID, rejection, err := familyScope(c, principal)
	if rejection != nil || err != nil {
		return rejection, err
	}

	id, ok := serverless.RouteGUID(c.Request(), "id")
	if !ok {
		return c.CreateBadRequestResponse("INVALID_GIFT_ID", "Invalid gift ID format")
	}

	gift, err := h.giftService.GetGift(ctx, familyID, id.String())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.CreateOKResponse(gift)
}

// Contribute moves money from a child's balance into the gift
func (h *GiftHandler) Contribute(ctx context.Context, c *serverless.Context, principal *auth.Principal) (serverless.Response, error) {
	familyID, rejection, err := familyScope(c, principal)
	if rejection != nil || err != nil {
		return rejection, err
	}

	id, ok := serverless.RouteGUID(c.Request(), "id")
	if !ok {
		return c.CreateBadRequestResponse("INVALID_GIFT_ID", "Invalid gift ID format")
	}

	req, err := serverless.ReadJSONBody[*services.ContributeRequest](c.Request())
	if err != nil {
		return c.CreateBadRequestResponse(CodeValidationError, "Invalid request body")
	}
	// Children may only contribute from their own balance
	if req != nil && principal.IsChild() {
		req.ChildID = principal.UserID().String()
	}

	gift, err := h.giftService.ContributeToGift(ctx, familyID, id.String(), req)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.CreateOKResponse(gift)
}

// Close stops a gift from accepting contributions
func (h *GiftHandler) Close(ctx context.Context, c *serverless.Context, principal *auth.Principal) (serverless.Response, error) {
	familyID, rejection, err := familyScope(c, principal)
	if rejection != nil || err != nil {
		return rejection, err
	}

	id, ok := serverless.RouteGUID(c.Request(), "id")
	if !ok {
		return c.CreateBadRequestResponse("INVALID_GIFT_ID", "Invalid gift ID format")
	}

	gift, err := h.giftService.CloseGift(ctx, familyID, id.String())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.CreateOKResponse(gift)
}
