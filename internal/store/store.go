package store

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// Schema version tracking:
// 0 - Initial schema (tables only)
// 1 - Added lookup indexes on records.identifier and records.entry_date
// 2 - records.amount stored as exact decimal TEXT instead of REAL
const currentSchemaVersion = 2

// DefaultActor is the log user when no actor is configured.
const DefaultActor = "system"

// Store owns the database connection for one service-record file.
type Store struct {
	db    *sql.DB
	actor string
	now   func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithActor sets the user name written to audit log rows.
func WithActor(name string) Option {
	return func(s *Store) {
		if name != "" {
			s.actor = name
		}
	}
}

// WithClock overrides the time source for audit log timestamps (for testing).
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// Open creates or opens a SQLite database at the given path.
// Applies pragmas and ensures the schema exists.
//
// This function is idempotent - safe to call on every startup.
func Open(path string, opts ...Option) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// One connection: the file has one active user and one writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply pragmas: %w", err)
	}

	s := &Store{db: db, actor: DefaultActor, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.CreateSchema(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Actor returns the user name written to audit log rows.
func (s *Store) Actor() string {
	return s.actor
}

// CreateSchema creates the users, records and logs tables if missing and
// brings the schema up to the current version.
func (s *Store) CreateSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schemaSQL); err != nil {
		return persistErr("create schema", err)
	}
	if err := s.upgradeSchema(ctx); err != nil {
		return persistErr("create schema", err)
	}
	return nil
}

// applyPragmas sets required SQLite configuration.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}

	return nil
}

// upgradeSchema applies incremental changes based on user_version.
func (s *Store) upgradeSchema(ctx context.Context) error {
	var version int
	if err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("get user_version: %w", err)
	}

	if version < 1 {
		if err := upgradeToV1(ctx, s.db); err != nil {
			return err
		}
	}

	if version < 2 {
		if err := upgradeToV2(ctx, s.db); err != nil {
			return err
		}
	}

	if _, err := s.db.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", currentSchemaVersion)); err != nil {
		return fmt.Errorf("set user_version: %w", err)
	}

	return nil
}

// upgradeToV1 adds the lookup indexes used by resubmission and date exports.
func upgradeToV1(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE INDEX IF NOT EXISTS idx_records_identifier ON records(identifier);
		CREATE INDEX IF NOT EXISTS idx_records_entry_date ON records(entry_date);
	`)
	if err != nil {
		return fmt.Errorf("upgrade to v1: %w", err)
	}
	return nil
}

// upgradeToV2 rebuilds records with a TEXT amount column. REAL amounts
// lose digits past float64 precision and overflow to Inf on read.
// Tables created from the current schema already have TEXT and are skipped.
func upgradeToV2(ctx context.Context, db *sql.DB) error {
	var amountType string
	err := db.QueryRowContext(ctx,
		"SELECT type FROM pragma_table_info('records') WHERE name = 'amount'",
	).Scan(&amountType)
	if err != nil {
		return fmt.Errorf("upgrade to v2: amount column: %w", err)
	}
	if strings.EqualFold(amountType, "TEXT") {
		return nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("upgrade to v2: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	// The rebuilt table must keep handing out ids above every id ever used.
	var seq sql.NullInt64
	err = tx.QueryRowContext(ctx, "SELECT seq FROM sqlite_sequence WHERE name = 'records'").Scan(&seq)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("upgrade to v2: read sequence: %w", err)
	}

	stmts := []string{
		`CREATE TABLE records_v2 (
			id                  INTEGER PRIMARY KEY AUTOINCREMENT,
			entry_date          TEXT NOT NULL DEFAULT '',
			operator            TEXT NOT NULL DEFAULT '',
			identifier          TEXT NOT NULL DEFAULT '',
			amount              TEXT NOT NULL DEFAULT '0',
			status              TEXT NOT NULL DEFAULT '--',
			field               TEXT NOT NULL DEFAULT '',
			call_count          INTEGER NOT NULL DEFAULT 0,
			resolution_date     TEXT NOT NULL DEFAULT '',
			resolution_operator TEXT NOT NULL DEFAULT '',
			notes               TEXT NOT NULL DEFAULT ''
		)`,
		`INSERT INTO records_v2
			SELECT id, entry_date, operator, identifier, CAST(amount AS TEXT), status,
			       field, call_count, resolution_date, resolution_operator, notes
			FROM records`,
		"DROP TABLE records",
		"ALTER TABLE records_v2 RENAME TO records",
		"CREATE INDEX IF NOT EXISTS idx_records_identifier ON records(identifier)",
		"CREATE INDEX IF NOT EXISTS idx_records_entry_date ON records(entry_date)",
	}
	for _, stmt := range stmts {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("upgrade to v2: %w", err)
		}
	}

	if seq.Valid {
		if _, err := tx.ExecContext(ctx, "DELETE FROM sqlite_sequence WHERE name = 'records'"); err != nil {
			return fmt.Errorf("upgrade to v2: reset sequence: %w", err)
		}
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO sqlite_sequence (name, seq) VALUES ('records', ?)", seq.Int64,
		); err != nil {
			return fmt.Errorf("upgrade to v2: reset sequence: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("upgrade to v2: commit: %w", err)
	}
	return nil
}

// mutate runs fn in a transaction and appends an audit log row for the
// action it reports. An empty action means nothing changed and no row is
// logged.
func (s *Store) mutate(ctx context.Context, op string, fn func(tx *sql.Tx) (action string, err error)) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return persistErr(op, fmt.Errorf("begin tx: %w", err))
	}
	defer tx.Rollback() // No-op if committed

	action, err := fn(tx)
	if err != nil {
		return persistErr(op, err)
	}

	if action != "" {
		if err := s.appendLog(ctx, tx, action); err != nil {
			return persistErr(op, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return persistErr(op, fmt.Errorf("commit: %w", err))
	}
	return nil
}

// RunRaw executes an ad hoc statement. It is not used by the validated
// record paths.
func (s *Store) RunRaw(ctx context.Context, stmt string) error {
	return s.mutate(ctx, "run raw", func(tx *sql.Tx) (string, error) {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return "", err
		}
		return "raw statement", nil
	})
}
