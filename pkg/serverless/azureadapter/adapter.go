// Package azureadapter implements the serverless request/response contracts
// on top of the Azure Functions custom-handler protocol: the Functions host
// POSTs a JSON invocation payload to a local HTTP listener and expects an
// outputs document back. This package owns that wire shape end to end so the
// handlers behind it never see it.
package azureadapter

import (
	"encoding/json"
	"net/http"
	"net/url"

	"family-finance-api/pkg/serverless"
)

// HTTPTriggerData is the "req" binding payload of an HTTP-triggered function
// invocation.
type HTTPTriggerData struct {
	URL     string              `json:"Url"`
	Method  string              `json:"Method"`
	Headers map[string][]string `json:"Headers"`
	Params  map[string]string   `json:"Params"`
	Query   map[string]string   `json:"Query"`
	Body    string              `json:"Body"`
}

// InvokeRequest is the envelope the Functions host sends per invocation.
type InvokeRequest struct {
	Data     map[string]json.RawMessage `json:"Data"`
	Metadata map[string]json.RawMessage `json:"Metadata"`
}

// HTTPOutput is the "res" binding of an InvokeResponse.
type HTTPOutput struct {
	StatusCode int               `json:"statusCode"`
	Headers    map[string]string `json:"headers"`
	Body       string            `json:"body"`
}

// InvokeResponse is the document returned to the Functions host.
type InvokeResponse struct {
	Outputs     map[string]any `json:"Outputs"`
	Logs        []string       `json:"Logs"`
	ReturnValue any            `json:"ReturnValue"`
}

// request adapts an HTTP trigger payload to the serverless.Request facade.
type request struct {
	data        HTTPTriggerData
	headers     map[string]string
	routeValues map[string]string
}

func newRequest(data HTTPTriggerData) *request {
	return &request{
		data:        data,
		headers:     serverless.JoinHeaderValues(data.Headers),
		routeValues: map[string]string{},
	}
}

func (r *request) Method() string { return r.data.Method }

func (r *request) URL() string { return r.data.URL }

func (r *request) Headers() map[string]string { return r.headers }

func (r *request) Query() map[string]string {
	rawQuery := ""
	if parsed, err := url.Parse(r.data.URL); err == nil {
		rawQuery = parsed.RawQuery
	}
	query := serverless.ParseQuery(rawQuery)
	// The host also delivers a pre-parsed query map; it backfills anything
	// the URL did not carry.
	for k, v := range r.data.Query {
		if _, ok := query[k]; !ok {
			query[k] = v
		}
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
	if r.data.Body == "" {
		return nil, nil
	}
	return []byte(r.data.Body), nil
}

// response adapts the serverless.Response builder for the custom-handler
// output document.
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
		return err
	}
	r.body = string(encoded)
	r.AddHeader("Content-Type", serverless.ContentTypeJSON)
	return nil
}

func (r *response) WriteString(content string) { r.body = content }

// NewContext wraps an HTTP trigger payload in an invocation-scoped context.
// Route parameters arrive out-of-band in the payload, so they are applied
// through the facade's mutator after construction.
func NewContext(data HTTPTriggerData) *serverless.Context {
	req := newRequest(data)
	c := serverless.NewContext(req, newResponse)
	if len(data.Params) > 0 {
		params := make(map[string]string, len(data.Params))
		for k, v := range data.Params {
			params[k] = v
		}
		req.SetRouteValues(params)
	}
	return c
}

// Outputs materializes a finished response into the custom-handler response
// document.
func Outputs(resp serverless.Response) InvokeResponse {
	return InvokeResponse{
		Outputs: map[string]any{
			"res": HTTPOutput{
				StatusCode: resp.StatusCode(),
				Headers:    resp.Headers(),
				Body:       resp.Body(),
			},
		},
		Logs: []string{},
	}
}
