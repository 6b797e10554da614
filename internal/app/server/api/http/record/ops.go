package record

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) listOp() huma.Operation {
	return huma.Operation{
		OperationID: "records-list",
		Method:      http.MethodGet,
		Path:        "/api/records",
		Summary:     "List all records",
		Tags:        []string{"records"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) createOp() huma.Operation {
	return huma.Operation{
		OperationID:      "records-create",
		Method:           http.MethodPost,
		Path:             "/api/records",
		Summary:          "Create a record",
		Tags:             []string{"records"},
		DefaultStatus:    http.StatusCreated,
		RequestBody:      rawJSONBody(),
		SkipValidateBody: true,
		Middlewares:      h.withBodyCapture(),
	}
}

func (h *Handler) updateOp() huma.Operation {
	return huma.Operation{
		OperationID:      "records-update",
		Method:           http.MethodPut,
		Path:             "/api/records/{id}",
		Summary:          "Partially update a record",
		Tags:             []string{"records"},
		RequestBody:      rawJSONBody(),
		SkipValidateBody: true,
		Middlewares:      h.withBodyCapture(),
	}
}

// rawJSONBody documents an optional JSON body. It stays schema-less so the
// framework never rejects a payload before the validator has seen it; every
// 400, including the missing-body case, carries the validator's message.
func rawJSONBody() *huma.RequestBody {
	return &huma.RequestBody{
		Required: false,
		Content: map[string]*huma.MediaType{
			"application/json": {},
		},
	}
}

func (h *Handler) deleteOp() huma.Operation {
	return huma.Operation{
		OperationID: "records-delete",
		Method:      http.MethodDelete,
		Path:        "/api/records/{id}",
		Summary:     "Delete a record",
		Tags:        []string{"records"},
		Middlewares: h.middleware,
	}
}
