package serverless

import "context"

// Handler is a cloud-agnostic business-logic function. It sees only the
// Context abstraction, so the same handler runs unmodified under any adapter.
// A returned error means the handler hit something it could not express as a
// response; adapters convert it into the 500 envelope.
type Handler func(ctx context.Context, c *Context) (Response, error)
