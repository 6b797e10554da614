package record

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/danielgtaylor/huma/v2"

	"github.com/felipeatepam/backend-rest/internal/domain/record"
)

type Handler struct {
	service    record.Servicer
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(service record.Servicer, log *slog.Logger, mws huma.Middlewares) *Handler {
	return &Handler{
		service:    service,
		log:        log,
		middleware: mws,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.listOp(), h.list)
	huma.Register(api, h.createOp(), h.create)
	huma.Register(api, h.updateOp(), h.update)
	huma.Register(api, h.deleteOp(), h.delete)
}

func (h *Handler) list(ctx context.Context, _ *struct{}) (*listOutput, error) {
	resp, err := h.service.List(ctx)
	if err != nil {
		return nil, h.mapError(err, "Failed to list records")
	}

	return &listOutput{Body: resp}, nil
}

func (h *Handler) create(ctx context.Context, _ *struct{}) (*createOutput, error) {
	rec, err := h.service.Create(ctx, decodeBody(bodyFromContext(ctx)))
	if err != nil {
		return nil, h.mapError(err, "Failed to create record")
	}

	return &createOutput{Body: *rec}, nil
}

func (h *Handler) update(ctx context.Context, input *updateInput) (*updateOutput, error) {
	rec, err := h.service.Update(ctx, input.ID, decodeBody(bodyFromContext(ctx)))
	if err != nil {
		return nil, h.mapError(err, "Failed to update record")
	}

	return &updateOutput{
		Body: updateResponse{
			Message: "Record updated successfully",
			Record:  rec,
		},
	}, nil
}

func (h *Handler) delete(ctx context.Context, input *deleteInput) (*deleteOutput, error) {
	if err := h.service.Delete(ctx, input.ID); err != nil {
		return nil, h.mapError(err, "Failed to delete record")
	}

	return &deleteOutput{
		Body: deleteResponse{Message: "Record deleted successfully"},
	}, nil
}

// withBodyCapture appends the body capture to the shared middleware chain
// without mutating it.
func (h *Handler) withBodyCapture() huma.Middlewares {
	mws := make(huma.Middlewares, 0, len(h.middleware)+1)
	mws = append(mws, h.middleware...)
	return append(mws, captureBody)
}

// decodeBody returns the body as a mapping, or nil when it is not one.
func decodeBody(raw []byte) map[string]any {
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil
	}
	return m
}

// mapError translates domain errors into transport errors. Storage detail
// stays in the server log; clients only see the fixed message.
func (h *Handler) mapError(err error, storageMsg string) error {
	var vErr *record.ValidationError
	if errors.As(err, &vErr) {
		return huma.Error400BadRequest(vErr.Message)
	}
	if errors.Is(err, record.ErrNotFound) {
		return huma.Error404NotFound("Record not found")
	}
	return huma.Error500InternalServerError(storageMsg)
}
