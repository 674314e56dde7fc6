package serverless

// Error codes shared by every adapter. Handlers may add their own
// domain-specific codes; the ones below back the canned context
// constructors.
const (
	CodeUnauthorized        = "UNAUTHORIZED"
	CodeForbidden           = "FORBIDDEN"
	CodeNotFound            = "NOT_FOUND"
	CodeInternalServerError = "INTERNAL_SERVER_ERROR"
)

// Default messages for the canned error constructors.
const (
	MessageUnauthorized = "Unauthorized"
	MessageForbidden    = "Forbidden"
	MessageNotFound     = "Resource not found"
	MessageServerError  = "An internal server error occurred"
)

// ErrorDetail is the inner object of the uniform error envelope.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorEnvelope is the only body shape used for 4xx/5xx responses, across
// every adapter: {"error":{"code":"...","message":"..."}}.
type ErrorEnvelope struct {
	Error ErrorDetail `json:"error"`
}

// NewErrorEnvelope builds the envelope for a code/message pair.
func NewErrorEnvelope(code, message string) ErrorEnvelope {
	return ErrorEnvelope{Error: ErrorDetail{Code: code, Message: message}}
}
