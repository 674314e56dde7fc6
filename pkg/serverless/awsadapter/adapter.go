// Package awsadapter implements the serverless request/response contracts on
// top of AWS API Gateway proxy events. It is the only package that touches
// aws-lambda-go types; handlers behind it stay runtime-agnostic.
package awsadapter

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/sirupsen/logrus"

	"family-finance-api/pkg/serverless"
)

// request adapts an APIGatewayProxyRequest to the serverless.Request facade.
type request struct {
	event       events.APIGatewayProxyRequest
	headers     map[string]string
	routeValues map[string]string
}

func newRequest(event events.APIGatewayProxyRequest) *request {
	headers := serverless.JoinHeaderValues(event.MultiValueHeaders)
	// Single-value headers fill in anything the multi-value map lacks.
	for k, v := range event.Headers {
		key := http.CanonicalHeaderKey(k)
		if _, ok := headers[key]; !ok {
			headers[key] = v
		}
	}
	routeValues := map[string]string{}
	for k, v := range event.PathParameters {
		routeValues[k] = v
	}
	return &request{event: event, headers: headers, routeValues: routeValues}
}

func (r *request) Method() string { return r.event.HTTPMethod }

func (r *request) URL() string { return r.event.Path }

func (r *request) Headers() map[string]string { return r.headers }

func (r *request) Query() map[string]string {
	// API Gateway delivers query parameters already decoded.
	query := make(map[string]string, len(r.event.QueryStringParameters))
	for k, v := range r.event.QueryStringParameters {
		query[k] = v
	}
	return query
}

func (r *request) RouteValues() map[string]string { return r.routeValues }

func (r *request) SetRouteValues(values map[string]string) {
	if values == nil {
		values = map[string]string{}
	}
	r.routeValues = values
}

func (r *request) Body() ([]byte, error) {
	if r.event.Body == "" {
		return nil, nil
	}
	if r.event.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(r.event.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to decode base64 body: %w", err)
		}
		return decoded, nil
	}
	return []byte(r.event.Body), nil
}

// response adapts the serverless.Response builder for API Gateway.
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

// NewContext wraps an API Gateway event in an invocation-scoped context.
func NewContext(event events.APIGatewayProxyRequest) *serverless.Context {
	return serverless.NewContext(newRequest(event), newResponse)
}

// ProxyResponse materializes a finished response into the API Gateway proxy
// shape. Bodies produced by this layer are always text, never base64.
func ProxyResponse(resp serverless.Response) events.APIGatewayProxyResponse {
	return events.APIGatewayProxyResponse{
		StatusCode:      resp.StatusCode(),
		Headers:         resp.Headers(),
		Body:            resp.Body(),
		IsBase64Encoded: false,
	}
}

// Handle turns a cloud-agnostic handler into a Lambda-compatible function.
// Handler errors never reach API Gateway as transport failures; they become
// the uniform 500 envelope.
func Handle(handler serverless.Handler) func(context.Context, events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	return func(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		c := NewContext(event)
		resp, err := handler(ctx, c)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"method": event.HTTPMethod,
				"path":   event.Path,
				"error":  err.Error(),
			}).Error("Handler failed")
			resp, err = c.CreateServerErrorResponse("")
			if err != nil {
				// Envelope serialization cannot realistically fail; keep a
				// hand-written fallback so the contract holds regardless.
				return events.APIGatewayProxyResponse{
					StatusCode: http.StatusInternalServerError,
					Headers:    map[string]string{"Content-Type": serverless.ContentTypeJSON},
					Body:       `{"error":{"code":"INTERNAL_SERVER_ERROR","message":"An internal server error occurred"}}`,
				}, nil
			}
		}
		return ProxyResponse(resp), nil
	}
}
