package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/felipeatepam/backend-rest/internal/domain/record"
)

// RecordRepository implements record.Repository on database/sql. Mutations
// use explicit transactions with rollback on failure, matching the
// postgres implementation.
type RecordRepository struct {
	db  *sql.DB
	log *slog.Logger
}

func NewRecordRepository(storage *Storage, log *slog.Logger) *RecordRepository {
	return &RecordRepository{
		db:  storage.DB(),
		log: log.With("component", "record_repository"),
	}
}

func (r *RecordRepository) FindAll(ctx context.Context) ([]record.Record, error) {
	const query = `
		SELECT id, name, message, note, created_at, updated_at
		FROM records
		ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
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
		WHERE id = ?`

	rec, err := scanRecord(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
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
		VALUES (?, ?, ?, ?, ?)`

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin insert: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, query,
		rec.Name, rec.Message, rec.Note, rec.CreatedAt.Time, rec.UpdatedAt.Time,
	)
	if err != nil {
		r.log.Error("failed to insert record", "error", err)
		return fmt.Errorf("insert record: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("insert record id: %w", err)
	}
	rec.ID = int(id)

	return tx.Commit()
}

func (r *RecordRepository) Update(ctx context.Context, rec *record.Record) error {
	const query = `
		UPDATE records
		SET name = ?, message = ?, note = ?, updated_at = ?
		WHERE id = ?`

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin update: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, query,
		rec.Name, rec.Message, rec.Note, rec.UpdatedAt.Time, rec.ID,
	)
	if err != nil {
		r.log.Error("failed to update record", "record_id", rec.ID, "error", err)
		return fmt.Errorf("update record: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update record: %w", err)
	}
	if affected == 0 {
		return record.ErrNotFound
	}

	return tx.Commit()
}

func (r *RecordRepository) Delete(ctx context.Context, id int) error {
	const query = `DELETE FROM records WHERE id = ?`

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, query, id)
	if err != nil {
		r.log.Error("failed to delete record", "record_id", id, "error", err)
		return fmt.Errorf("delete record: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete record: %w", err)
	}
	if affected == 0 {
		return record.ErrNotFound
	}

	return tx.Commit()
}

func scanRecord(row interface {
	Scan(dest ...any) error
}) (*record.Record, error) {
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
