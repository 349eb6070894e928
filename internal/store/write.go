package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/roach88/servicelog/internal/record"
)

const insertRecordSQL = `
	INSERT INTO records
	(entry_date, operator, identifier, amount, status, field,
	 call_count, resolution_date, resolution_operator, notes)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

// recordArgs flattens fields into insertRecordSQL argument order.
func recordArgs(f record.Fields) []any {
	return []any{
		f.EntryDate,
		f.Operator,
		f.Identifier,
		f.Amount,
		string(f.Status),
		f.Field,
		f.CallCount,
		f.ResolutionDate,
		f.ResolutionOperator,
		f.Notes,
	}
}

// InsertRecord adds a record and returns the assigned id.
func (s *Store) InsertRecord(ctx context.Context, f record.Fields) (int64, error) {
	var id int64
	err := s.mutate(ctx, "insert record", func(tx *sql.Tx) (string, error) {
		result, err := tx.ExecContext(ctx, insertRecordSQL, recordArgs(f)...)
		if err != nil {
			return "", err
		}
		id, err = result.LastInsertId()
		if err != nil {
			return "", fmt.Errorf("last insert id: %w", err)
		}
		return fmt.Sprintf("insert record %d (%s)", id, f.Identifier), nil
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

// InsertRecords adds every row in one transaction and returns the batch id
// written to the audit log. If any row fails nothing is inserted.
// An empty batch is a no-op and returns "".
func (s *Store) InsertRecords(ctx context.Context, rows []record.Fields) (string, error) {
	if len(rows) == 0 {
		return "", nil
	}

	batch, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("insert records: batch id: %w", err)
	}

	err = s.mutate(ctx, "insert records", func(tx *sql.Tx) (string, error) {
		stmt, err := tx.PrepareContext(ctx, insertRecordSQL)
		if err != nil {
			return "", fmt.Errorf("prepare: %w", err)
		}
		defer stmt.Close()

		for i, f := range rows {
			if _, err := stmt.ExecContext(ctx, recordArgs(f)...); err != nil {
				return "", fmt.Errorf("row %d: %w", i+1, err)
			}
		}
		return fmt.Sprintf("bulk insert %d records (batch %s)", len(rows), batch), nil
	})
	if err != nil {
		return "", err
	}
	return batch.String(), nil
}

// UpdateRecord overwrites every field of the record with the given id.
// An absent id is a silent no-op.
func (s *Store) UpdateRecord(ctx context.Context, id int64, f record.Fields) error {
	return s.mutate(ctx, "update record", func(tx *sql.Tx) (string, error) {
		result, err := tx.ExecContext(ctx, `
			UPDATE records SET
				entry_date = ?, operator = ?, identifier = ?, amount = ?, status = ?,
				field = ?, call_count = ?, resolution_date = ?, resolution_operator = ?,
				notes = ?
			WHERE id = ?
		`, append(recordArgs(f), id)...)
		if err != nil {
			return "", err
		}
		return actionIfChanged(result, fmt.Sprintf("update record %d (%s)", id, f.Identifier))
	})
}

// DeleteRecord removes a record. An absent id is a silent no-op.
func (s *Store) DeleteRecord(ctx context.Context, id int64) error {
	return s.mutate(ctx, "delete record", func(tx *sql.Tx) (string, error) {
		result, err := tx.ExecContext(ctx, "DELETE FROM records WHERE id = ?", id)
		if err != nil {
			return "", err
		}
		return actionIfChanged(result, fmt.Sprintf("delete record %d", id))
	})
}
