// Package ginadapter implements the serverless request/response contracts on
// top of gin, so the same handlers that run in Lambda or Azure Functions also
// serve the long-running local deployment.
package ginadapter

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"family-finance-api/pkg/serverless"
)

// request adapts *http.Request plus gin route params to the facade.
type request struct {
	native      *http.Request
	headers     map[string]string
	routeValues map[string]string
	body        []byte
	bodyRead    bool
	bodyErr     error
}

func newRequest(c *gin.Context) *request {
	routeValues := make(map[string]string, len(c.Params))
	for _, p := range c.Params {
		routeValues[p.Key] = p.Value
	}
	return &request{
		native:      c.Request,
		headers:     serverless.JoinHeaderValues(c.Request.Header),
		routeValues: routeValues,
	}
}

func (r *request) Method() string { return r.native.Method }

func (r *request) URL() string { return r.native.URL.String() }

func (r *request) Headers() map[string]string { return r.headers }

func (r *request) Query() map[string]string {
	return serverless.ParseQuery(r.native.URL.RawQuery)
}

func (r *request) RouteValues() map[string]string { return r.routeValues }

func (r *request) SetRouteValues(values map[string]string) {
	if values == nil {
		values = map[string]string{}
	}
	r.routeValues = values
}

func (r *request) Body() ([]byte, error) {
	// The underlying stream is read once; repeated reads replay the bytes
	// to tolerate bodies probed earlier in the pipeline.
	if !r.bodyRead {
		r.bodyRead = true
		if r.native.Body != nil {
			r.body, r.bodyErr = io.ReadAll(r.native.Body)
			if r.bodyErr != nil {
				r.bodyErr = fmt.Errorf("failed to read request body: %w", r.bodyErr)
			}
		}
	}
	return r.body, r.bodyErr
}

type response struct {
	status  int
	headers map[string]string
	body    string
}

func newResponse() serverless.Response {
	return &response{status: http.StatusOK, headers: serverless.NewHeaderMap()}
}

func (r *response) StatusCode() int { return r.status }

func (r *response) SetStatusCode(status int) { r.status = status }

func (r *response) Headers() map[string]string { return r.headers }

func (r *response) AddHeader(key, value string) {
	r.headers[http.CanonicalHeaderKey(key)] = value
}

func (r *response) Body() string { return r.body }

func (r *response) WriteJSON(data any) error {
	encoded, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to serialize response body: %w", err)
	}
	r.body = string(encoded)
	r.AddHeader("Content-Type", serverless.ContentTypeJSON)
	return nil
}

func (r *response) WriteString(content string) { r.body = content }

// NewContext wraps a gin invocation in an invocation-scoped context.
func NewContext(c *gin.Context) *serverless.Context {
	return serverless.NewContext(newRequest(c), newResponse)
}

// Wrap turns a cloud-agnostic handler into a gin.HandlerFunc, translating the
// finished response back onto the gin writer. Handler errors become the 500
// envelope, same as every other adapter.
func Wrap(handler serverless.Handler) gin.HandlerFunc {
	return func(gc *gin.Context) {
		c := NewContext(gc)
		resp, err := handler(gc.Request.Context(), c)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"method": gc.Request.Method,
				"path":   gc.Request.URL.Path,
				"error":  err.Error(),
			}).Error("Handler failed")
			resp, err = c.CreateServerErrorResponse("")
			if err != nil {
				gc.String(http.StatusInternalServerError, "response serialization failed")
				return
			}
		}
		for k, v := range resp.Headers() {
			gc.Header(k, v)
		}
		contentType := resp.Headers()[http.CanonicalHeaderKey("Content-Type")]
		gc.Data(resp.StatusCode(), contentType, []byte(resp.Body()))
	}
}
