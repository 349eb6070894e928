package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/roach88/servicelog/internal/record"
)

// InsertUser adds a user and returns the assigned id.
func (s *Store) InsertUser(ctx context.Context, name, username string) (int64, error) {
	var id int64
	err := s.mutate(ctx, "insert user", func(tx *sql.Tx) (string, error) {
		result, err := tx.ExecContext(ctx,
			"INSERT INTO users (name, username) VALUES (?, ?)",
			name, username,
		)
		if err != nil {
			return "", err
		}
		id, err = result.LastInsertId()
		if err != nil {
			return "", fmt.Errorf("last insert id: %w", err)
		}
		return fmt.Sprintf("insert user %d (%s)", id, username), nil
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

// ListUsers returns every user ordered by id.
// Returns an empty slice (not nil) when there are none.
func (s *Store) ListUsers(ctx context.Context) ([]record.User, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, name, username FROM users ORDER BY id ASC")
	if err != nil {
		return nil, persistErr("list users", err)
	}
	defer rows.Close()

	users := []record.User{}
	for rows.Next() {
		var u record.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Username); err != nil {
			return nil, persistErr("list users", fmt.Errorf("scan: %w", err))
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, persistErr("list users", fmt.Errorf("iterate: %w", err))
	}
	return users, nil
}

// UpdateUser overwrites a user's name and username.
// An absent id is a silent no-op.
func (s *Store) UpdateUser(ctx context.Context, id int64, name, username string) error {
	return s.mutate(ctx, "update user", func(tx *sql.Tx) (string, error) {
		result, err := tx.ExecContext(ctx,
			"UPDATE users SET name = ?, username = ? WHERE id = ?",
			name, username, id,
		)
		if err != nil {
			return "", err
		}
		return actionIfChanged(result, fmt.Sprintf("update user %d", id))
	})
}

// DeleteUser removes a user. An absent id is a silent no-op.
func (s *Store) DeleteUser(ctx context.Context, id int64) error {
	return s.mutate(ctx, "delete user", func(tx *sql.Tx) (string, error) {
		result, err := tx.ExecContext(ctx, "DELETE FROM users WHERE id = ?", id)
		if err != nil {
			return "", err
		}
		return actionIfChanged(result, fmt.Sprintf("delete user %d", id))
	})
}

// actionIfChanged returns action when the statement touched a row, "" otherwise.
func actionIfChanged(result sql.Result, action string) (string, error) {
	n, err := result.RowsAffected()
	if err != nil {
		return "", fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return "", nil
	}
	return action, nil
}
