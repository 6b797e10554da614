package record

import "github.com/felipeatepam/backend-rest/internal/domain/record"

type listOutput struct {
	Body record.ListResponse
}

type createOutput struct {
	Body record.Record
}

type updateInput struct {
	ID int `path:"id" example:"1" doc:"Record ID"`
}

type updateOutput struct {
	Body updateResponse
}

type updateResponse struct {
	Message string         `json:"message"`
	Record  *record.Record `json:"record"`
}

type deleteInput struct {
	ID int `path:"id" example:"1" doc:"Record ID"`
}

type deleteOutput struct {
	Body deleteResponse
}

type deleteResponse struct {
	Message string `json:"message"`
}
