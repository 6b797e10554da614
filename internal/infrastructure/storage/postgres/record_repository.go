package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/felipeatepam/backend-rest/internal/domain/record"
)

// RecordRepository implements record.Repository on a pgx pool. Every
// mutation runs in its own transaction so a failed attempt leaves the
// table untouched.
type RecordRepository struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

func NewRecordRepository(storage *Storage, log *slog.Logger) *RecordRepository {
	return &RecordRepository{
		pool: storage.Pool(),
		log:  log.With("component", "record_repository"),
	}
}

func (r *RecordRepository) FindAll(ctx context.Context) ([]record.Record, error) {
	const query = `
		SELECT id, name, message, note, created_at, updated_at
		FROM records
		ORDER BY id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.log.Error("failed to list records", "error", err)
		return nil, fmt.Errorf("list records: %w", err)
	}
	defer rows.Close()

	var records []record.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		records = append(records, *rec)
	}

	return records, rows.Err()
}

func (r *RecordRepository) FindByID(ctx context.Context, id int) (*record.Record, error) {
	const query = `
		SELECT id, name, message, note, created_at, updated_at
		FROM records
		WHERE id = $1`

	rec, err := scanRecord(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, record.ErrNotFound
		}
		r.log.Error("failed to get record", "record_id", id, "error", err)
		return nil, fmt.Errorf("get record: %w", err)
	}

	return rec, nil
}

func (r *RecordRepository) Insert(ctx context.Context, rec *record.Record) error {
	const query = `
		INSERT INTO records (name, message, note, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin insert: %w", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, query,
		rec.Name, rec.Message, rec.Note, rec.CreatedAt.Time, rec.UpdatedAt.Time,
	).Scan(&rec.ID)
	if err != nil {
		r.log.Error("failed to insert record", "error", err)
		return fmt.Errorf("insert record: %w", err)
	}

	return tx.Commit(ctx)
}

func (r *RecordRepository) Update(ctx context.Context, rec *record.Record) error {
	const query = `
		UPDATE records
		SET name = $1, message = $2, note = $3, updated_at = $4
		WHERE id = $5`

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin update: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, query,
		rec.Name, rec.Message, rec.Note, rec.UpdatedAt.Time, rec.ID,
	)
	if err != nil {
		r.log.Error("failed to update record", "record_id", rec.ID, "error", err)
		return fmt.Errorf("update record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return record.ErrNotFound
	}

	return tx.Commit(ctx)
}

func (r *RecordRepository) Delete(ctx context.Context, id int) error {
	const query = `DELETE FROM records WHERE id = $1`

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin delete: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("failed to delete record", "record_id", id, "error", err)
		return fmt.Errorf("delete record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return record.ErrNotFound
	}

	return tx.Commit(ctx)
}

func scanRecord(row pgx.Row) (*record.Record, error) {
	var rec record.Record
	var createdAt, updatedAt time.Time

	err := row.Scan(&rec.ID, &rec.Name, &rec.Message, &rec.Note, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	rec.CreatedAt = record.NewTimestamp(createdAt)
	rec.UpdatedAt = record.NewTimestamp(updatedAt)
	return &rec, nil
}
