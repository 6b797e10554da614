package record

import (
	"context"
	"io"

	"github.com/danielgtaylor/huma/v2"
)

type bodyKey struct{}

// captureBody stashes the raw request body in the context before input
// processing runs. Presence and shape of the payload are judged by the
// domain validator, never by the transport layer.
func captureBody(ctx huma.Context, next func(huma.Context)) {
	data, err := io.ReadAll(ctx.BodyReader())
	if err != nil {
		data = nil
	}
	next(huma.WithValue(ctx, bodyKey{}, data))
}

// bodyFromContext returns the bytes captured by captureBody, nil when
// nothing was captured.
func bodyFromContext(ctx context.Context) []byte {
	data, _ := ctx.Value(bodyKey{}).([]byte)
	return data
}
