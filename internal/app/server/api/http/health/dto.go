package health

import "github.com/felipeatepam/backend-rest/internal/domain/record"

type Input struct{}

type Output struct {
	Body Response
}

type Response struct {
	Status    string           `json:"status" example:"OK" doc:"Health status of the service"`
	Message   string           `json:"message" example:"Record API is running"`
	Timestamp record.Timestamp `json:"timestamp"`
}
