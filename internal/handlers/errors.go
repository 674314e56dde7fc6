package handlers

import (
	"net/http"

	"family-finance-api/internal/repositories"
	"family-finance-api/internal/services"
	"family-finance-api/pkg/serverless"
)

// Error codes carried in the error envelope for client-addressable failures
const (
	CodeValidationError   = "VALIDATION_ERROR"
	CodeInsufficientFunds = "INSUFFICIENT_FUNDS"
	CodeInvalidState      = "INVALID_STATE"
	CodeDuplicateEntry    = "DUPLICATE_ENTRY"
)

// respondServiceError maps a service error onto the uniform error envelope.
// Errors with no client-facing mapping are returned to the adapter, which
// turns them into the canonical 500 envelope.
func respondServiceError(c *serverless.Context, err error) (serverless.Response, error) {
	switch {
	case repositories.IsNotFound(err):
		return c.CreateNotFoundResponse("")
	case services.IsValidation(err) || repositories.IsValidation(err):
		return c.CreateBadRequestResponse(CodeValidationError, err.Error())
	case services.IsInsufficientFunds(err):
		return c.CreateBadRequestResponse(CodeInsufficientFunds, err.Error())
	case services.IsInvalidState(err):
		return respondConflict(c, CodeInvalidState, err.Error())
	case repositories.IsDuplicate(err):
		return respondConflict(c, CodeDuplicateEntry, err.Error())
	default:
		return nil, err
	}
}

func respondConflict(c *serverless.Context, code, message string) (serverless.Response, error) {
	resp := c.CreateResponse(http.StatusConflict)
	if err := resp.WriteJSON(serverless.NewErrorEnvelope(code, message)); err != nil {
		return nil, err
	}
	return resp, nil
}
