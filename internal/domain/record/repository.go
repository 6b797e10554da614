package record

import "context"

// Repository is the narrow storage port the service depends on. FindByID,
// Update and Delete return ErrNotFound for an unknown id. Insert assigns
// the record's ID. Implementations must leave the store unchanged when a
// mutating call fails.
type Repository interface {
	FindAll(ctx context.Context) ([]Record, error)
	FindByID(ctx context.Context, id int) (*Record, error)
	Insert(ctx context.Context, rec *Record) error
	Update(ctx context.Context, rec *Record) error
	Delete(ctx context.Context, id int) error
}
