package handlers

import (
	"context"
	"strconv"
	"time"

	"family-finance-api/internal/services"
	"family-finance-api/pkg/auth"
	"family-finance-api/pkg/serverless"
)

// TransactionHandler handles ledger requests
type TransactionHandler struct {
	ledgerService services.LedgerService
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(ledgerService services.LedgerService) *TransactionHandler {
	return &TransactionHandler{ledgerService: ledgerService}
}

// Record posts a ledger entry. The creator is always the authenticated user,
// never whatever the body claims.
func (h *TransactionHandler) Record(ctx context.Context, c *serverless.Context, principal *auth.Principal) (serverless.Response, error) {
	familyID, rejection, err := familyScope(c, principal)
	if rejection != nil || err != nil {
		return rejection, err
	}

	req, err := serverless.ReadJSONBody[*services.RecordTransactionRequest](c.Request())
	if err != nil {
		return c.CreateBadRequestResponse(CodeValidationError, "Invalid request body")
	}
	if req != nil {
		req.CreatedBy = principal.UserID().String()
	}

	entry, err := h.ledgerService.RecordTransaction(ctx, familyID, req)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.CreateCreatedResponse(entry)
}

// Get retrieves one ledger entry by route ID
func (h *TransactionHandler) Get(ctx context.Context, c *serverless.Context, principal *auth.Principal) (serverless.Response, error) {
	familyID, rejection, err := familyScope(c, principal)
	if rejection != nil || err != nil {
		return rejection, err
	}

	id, ok := serverless.RouteGUID(c.Request(), "id")
	if !ok {
		return c.CreateBadRequestResponse("INVALID_TRANSACTION_ID", "Invalid transaction ID format")
	}

	entry, err := h.ledgerService.GetTransaction(ctx, familyID, id.String())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.CreateOKResponse(entry)
}

// List lists the family ledger with optional query filters
func (h *TransactionHandler) List(ctx context.Context, c *serverless.Context, principal *auth.Principal) (serverless.Response, error) {
	familyID, rejection, err := familyScope(c, principal)
	if rejection != nil || err != nil {
		return rejection, err
	}

	filters := &services.TransactionFilters{}
	if childID, ok := serverless.QueryParam(c.Request(), "child_id"); ok {
		filters.ChildID = childID
	}
	if txType, ok := serverless.QueryParam(c.Request(), "type"); ok {
		filters.Type = txType
	}
	if after, ok := serverless.QueryParam(c.Request(), "created_after"); ok {
		if t, err := time.Parse(time.RFC3339, after); err == nil {
			filters.CreatedAfter = &t
		}
	}
	if before, ok := serverless.QueryParam(c.Request(), "created_before"); ok {
		if t, err := time.Parse(time.RFC3339, before); err == nil {
			filters.CreatedBefore = &t
		}
	}
	if limit, ok := serverless.QueryParam(c.Request(), "limit"); ok {
		if v, err := strconv.Atoi(limit); err == nil && v > 0 {
			filters.Limit = v
		}
	}
	if offset, ok := serverless.QueryParam(c.Request(), "offset"); ok {
		if v, err := strconv.Atoi(offset); err == nil && v > 0 {
			filters.Offset = v
		}
	}

	entries, err := h.ledgerService.ListTransactions(ctx, familyID, filters)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.CreateOKResponse(entries)
}

// PostAllowance credits a child's configured allowance
func (h *TransactionHandler) PostAllowance(ctx context.Context, c *serverless.Context, principal *auth.Principal) (serverless.Response, error) {
	familyID, rejection, err := familyScope(c, principal)
	if rejection != nil || err != nil {
		return rejection, err
	}

	childID, ok := serverless.RouteGUID(c.Request(), "id")
	if !ok {
		return c.CreateBadRequestResponse("INVALID_CHILD_ID", "Invalid child ID format")
	}

	entry, err := h.ledgerService.PostAllowance(ctx, familyID, childID.String(), principal.UserID().String())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.CreateCreatedResponse(entry)
}
