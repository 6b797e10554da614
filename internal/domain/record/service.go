package record

import (
	"context"
	"errors"
	"log/slog"
)

type Servicer interface {
	List(ctx context.Context) (ListResponse, error)
	Create(ctx context.Context, input map[string]any) (*Record, error)
	Update(ctx context.Context, id int, input map[string]any) (*Record, error)
	Delete(ctx context.Context, id int) error
}

// Service implements the record operations on top of the storage port.
type Service struct {
	repo Repository
	log  *slog.Logger
}

func NewService(repo Repository, log *slog.Logger) Servicer {
	return &Service{
		repo: repo,
		log:  log.With("component", "record_service"),
	}
}

// List returns all records with their count.
func (s *Service) List(ctx context.Context) (ListResponse, error) {
	records, err := s.repo.FindAll(ctx)
	if err != nil {
		s.log.Error("failed to list records", "error", err)
		return ListResponse{}, &StorageError{Op: "list records", Err: err}
	}

	if records == nil {
		records = []Record{}
	}

	return ListResponse{
		Records: records,
		Total:   len(records),
	}, nil
}

// Create validates the raw payload and persists a new record. Validation
// failures short-circuit before any storage interaction. CreatedAt and
// UpdatedAt are set from the same instant so they compare equal at
// microsecond granularity.
func (s *Service) Create(ctx context.Context, input map[string]any) (*Record, error) {
	data, err := NormalizeCreate(input)
	if err != nil {
		return nil, err
	}

	now := Now()
	rec := &Record{
		Name:      data.Name,
		Message:   data.Message,
		Note:      data.Note,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Insert(ctx, rec); err != nil {
		s.log.Error("failed to create record", "error", err)
		return nil, &StorageError{Op: "create record", Err: err}
	}

	s.log.Info("record created", "record_id", rec.ID)
	return rec, nil
}

// Update applies a partial update to an existing record. The record is
// resolved first, so an unknown id answers "not found" even when the
// payload itself is unusable.
func (s *Service) Update(ctx context.Context, id int, input map[string]any) (*Record, error) {
	rec, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		s.log.Error("failed to load record for update", "record_id", id, "error", err)
		return nil, &StorageError{Op: "find record", Err: err}
	}

	if err := ApplyPartialUpdate(rec, input); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, rec); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		s.log.Error("failed to update record", "record_id", id, "error", err)
		return nil, &StorageError{Op: "update record", Err: err}
	}

	s.log.Info("record updated", "record_id", id)
	return rec, nil
}

// Delete removes a record permanently.
func (s *Service) Delete(ctx context.Context, id int) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		s.log.Error("failed to delete record", "record_id", id, "error", err)
		return &StorageError{Op: "delete record", Err: err}
	}

	s.log.Info("record deleted", "record_id", id)
	return nil
}
