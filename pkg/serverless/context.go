package serverless

import "net/http"

// Context pairs exactly one inbound request with the ability to produce
// responses for it. It is scoped to a single invocation and owned by the
// adapter that created it; the canned constructors keep the response payload
// shape identical no matter which runtime is underneath.
type Context struct {
	request     Request
	newResponse func() Response
}

// NewContext wires a request facade to a response constructor. Adapters call
// this once per invocation.
func NewContext(request Request, newResponse func() Response) *Context {
	return &Context{request: request, newResponse: newResponse}
}

// Request returns the request this context was built for.
func (c *Context) Request() Request {
	return c.request
}

// CreateResponse returns a bare response with the given status and no body.
func (c *Context) CreateResponse(status int) Response {
	resp := c.newResponse()
	resp.SetStatusCode(status)
	return resp
}

// CreateNoContentResponse returns a 204 response with an empty body.
func (c *Context) CreateNoContentResponse() Response {
	return c.CreateResponse(http.StatusNoContent)
}

// CreateOKResponse returns a 200 response with data serialized as JSON.
func (c *Context) CreateOKResponse(data any) (Response, error) {
	return c.createJSONResponse(http.StatusOK, data)
}

// CreateCreatedResponse returns a 201 response with data serialized as JSON.
func (c *Context) CreateCreatedResponse(data any) (Response, error) {
	return c.createJSONResponse(http.StatusCreated, data)
}

// CreateBadRequestResponse returns a 400 response carrying the error
// envelope for the given code and message.
func (c *Context) CreateBadRequestResponse(code, message string) (Response, error) {
	return c.createJSONResponse(http.StatusBadRequest, NewErrorEnvelope(code, message))
}

// CreateUnauthorizedResponse returns a 401 error envelope. An empty message
// falls back to "Unauthorized".
func (c *Context) CreateUnauthorizedResponse(message string) (Response, error) {
	if message == "" {
		message = MessageUnauthorized
	}
	return c.createJSONResponse(http.StatusUnauthorized, NewErrorEnvelope(CodeUnauthorized, message))
}

// CreateForbiddenResponse returns a 403 error envelope. An empty message
// falls back to "Forbidden".
func (c *Context) CreateForbiddenResponse(message string) (Response, error) {
	if message == "" {
		message = MessageForbidden
	}
	return c.createJSONResponse(http.StatusForbidden, NewErrorEnvelope(CodeForbidden, message))
}

// CreateNotFoundResponse returns a 404 error envelope. An empty message
// falls back to "Resource not found".
func (c *Context) CreateNotFoundResponse(message string) (Response, error) {
	if message == "" {
		message = MessageNotFound
	}
	return c.createJSONResponse(http.StatusNotFound, NewErrorEnvelope(CodeNotFound, message))
}

// CreateServerErrorResponse returns a 500 error envelope. An empty message
// falls back to "An internal server error occurred".
func (c *Context) CreateServerErrorResponse(message string) (Response, error) {
	if message == "" {
		message = MessageServerError
	}
	return c.createJSONResponse(http.StatusInternalServerError, NewErrorEnvelope(CodeInternalServerError, message))
}

func (c *Context) createJSONResponse(status int, data any) (Response, error) {
	resp := c.CreateResponse(status)
	if err := resp.WriteJSON(data); err != nil {
		return nil, err
	}
	return resp, nil
}
