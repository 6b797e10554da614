package health

import (
	"context"
	"log/slog"

	"github.com/danielgtaylor/huma/v2"

	"github.com/felipeatepam/backend-rest/internal/domain/record"
)

type Handler struct {
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(log *slog.Logger, middleware huma.Middlewares) *Handler {
	return &Handler{
		log:        log,
		middleware: middleware,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.healthCheckOp(), h.healthCheck)
}

func (h *Handler) healthCheck(_ context.Context, _ *Input) (*Output, error) {
	h.log.Debug("health check request received")

	return &Output{
		Body: Response{
			Status:    "OK",
			Message:   "Record API is running",
			Timestamp: record.Now(),
		},
	}, nil
}
