package serverless

import "net/http"

// Response is a mutable HTTP response under construction. The adapter that
// produced it is responsible for translating its final state into the
// runtime's native response object; the builder itself never touches the
// wire.
type Response interface {
	StatusCode() int
	SetStatusCode(status int)
	Headers() map[string]string
	// AddHeader sets a header, overwriting any existing value for the
	// case-insensitive key.
	AddHeader(key, value string)
	Body() string
	// WriteJSON serializes data into the body and sets the JSON content
	// type. Calling it again replaces the body entirely.
	WriteJSON(data any) error
	// WriteString sets the body verbatim without touching headers.
	WriteString(content string)
}

// ContentTypeJSON is the default content type every adapter response starts
// with.
const ContentTypeJSON = "application/json"

// NewHeaderMap returns a header map pre-populated with the JSON content type.
func NewHeaderMap() map[string]string {
	return map[string]string{http.CanonicalHeaderKey("Content-Type"): ContentTypeJSON}
}
