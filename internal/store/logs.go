package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/roach88/servicelog/internal/record"
)

// appendLog writes one audit row inside tx.
func (s *Store) appendLog(ctx context.Context, tx *sql.Tx, action string) error {
	_, err := tx.ExecContext(ctx,
		"INSERT INTO logs (timestamp, user, action) VALUES (?, ?, ?)",
		s.now().Format(record.TimestampLayout), s.actor, action,
	)
	if err != nil {
		return fmt.Errorf("append log: %w", err)
	}
	return nil
}

// ListLogs returns the audit trail oldest first.
func (s *Store) ListLogs(ctx context.Context) ([]record.LogEntry, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, timestamp, user, action FROM logs ORDER BY id ASC")
	if err != nil {
		return nil, persistErr("list logs", err)
	}
	defer rows.Close()

	entries := []record.LogEntry{}
	for rows.Next() {
		var e record.LogEntry
		if err := rows.Scan(&e.ID, &e.Timestamp, &e.User, &e.Action); err != nil {
			return nil, persistErr("list logs", fmt.Errorf("scan: %w", err))
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, persistErr("list logs", fmt.Errorf("iterate: %w", err))
	}
	return entries, nil
}
