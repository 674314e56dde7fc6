package serverless

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
)

// Request is a read-only view over a cloud runtime's native inbound request.
// Implementations normalize header keys with http.CanonicalHeaderKey and join
// multi-valued headers with ",". Route values may be set once after
// construction by adapters whose runtime binds route parameters out-of-band.
type Request interface {
	Method() string
	URL() string
	Headers() map[string]string
	Query() map[string]string
	RouteValues() map[string]string
	// SetRouteValues replaces (not merges) the route value map.
	SetRouteValues(values map[string]string)
	Body() ([]byte, error)
}

// Header looks up a header value, case-insensitively.
func Header(r Request, key string) (string, bool) {
	v, ok := r.Headers()[http.CanonicalHeaderKey(key)]
	return v, ok
}

// QueryParam looks up a decoded query parameter.
func QueryParam(r Request, key string) (string, bool) {
	v, ok := r.Query()[key]
	return v, ok
}

// RouteValue looks up a route parameter supplied by the routing layer.
func RouteValue(r Request, key string) (string, bool) {
	v, ok := r.RouteValues()[key]
	return v, ok
}

// RouteGUID looks up a route value and parses it as a UUID. It reports false
// when the key is absent or the value does not parse; it never panics, so the
// handler decides whether absence means 400 or something else.
func RouteGUID(r Request, key string) (uuid.UUID, bool) {
	raw, ok := RouteValue(r, key)
	if !ok {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// ReadJSONBody decodes the request body as JSON into T. A nil or empty body
// yields the zero value of T and no error; a malformed body yields a decode
// error the handler is expected to convert into a 400 response.
func ReadJSONBody[T any](r Request) (T, error) {
	var out T
	body, err := r.Body()
	if err != nil {
		return out, err
	}
	if len(body) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return out, err
	}
	return out, nil
}

// CanonicalHeaders copies src into a new map with canonicalized keys.
// Duplicate keys that differ only by case collapse last-wins.
func CanonicalHeaders(src map[string]string) map[string]string {
	dst := make(map[string]string, len(src))
	for k, v := range src {
		dst[http.CanonicalHeaderKey(k)] = v
	}
	return dst
}

// JoinHeaderValues flattens a multi-value header collection, joining values
// for the same key with ",".
func JoinHeaderValues(src map[string][]string) map[string]string {
	dst := make(map[string]string, len(src))
	for k, values := range src {
		dst[http.CanonicalHeaderKey(k)] = strings.Join(values, ",")
	}
	return dst
}

// ParseQuery parses a raw query string into a decoded key/value map. Pairs
// without "=" are skipped, as are pairs whose key or value fails percent
// decoding. Later duplicates win.
func ParseQuery(rawQuery string) map[string]string {
	params := map[string]string{}
	for _, pair := range strings.Split(rawQuery, "&") {
		if pair == "" {
			continue
		}
		key, value, found := strings.Cut(pair, "=")
		if !found {
			continue
		}
		decodedKey, err := url.QueryUnescape(key)
		if err != nil {
			continue
		}
		decodedValue, err := url.QueryUnescape(value)
		if err != nil {
			continue
		}
		params[decodedKey] = decodedValue
	}
	return params
}
