package registry

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/roach88/servicelog/internal/record"
	"github.com/roach88/servicelog/internal/sheet"
)

// SubmitResult describes what Submit persisted.
type SubmitResult struct {
	ID      int64 `json:"id"`
	Updated bool  `json:"updated"`
}

// ImportResult describes a committed import.
type ImportResult struct {
	Batch string `json:"batch"`
	Count int    `json:"count"`
}

// ExportResult describes a written workbook.
type ExportResult struct {
	Path  string `json:"path"`
	Count int    `json:"count"`
}

// Submit validates a typed-in record and persists it.
//
// When a record with the same identifier exists, Submit returns
// ErrIdentifierExists unless overwrite is set, in which case the
// lowest-id match is updated in place.
func (s *Service) Submit(ctx context.Context, d record.Draft, overwrite bool) (SubmitResult, error) {
	fields, err := s.check.Check(d)
	if err != nil {
		return SubmitResult{}, err
	}

	existing, err := s.store.FindRecordsByField(ctx, record.FieldIdentifier, fields.Identifier)
	if err != nil {
		return SubmitResult{}, err
	}

	if len(existing) > 0 {
		if !overwrite {
			return SubmitResult{}, fmt.Errorf("submit %q: %w", fields.Identifier, ErrIdentifierExists)
		}
		id := existing[0].ID
		if err := s.store.UpdateRecord(ctx, id, fields); err != nil {
			return SubmitResult{}, err
		}
		slog.Info("record updated", "id", id, "identifier", fields.Identifier)
		return SubmitResult{ID: id, Updated: true}, nil
	}

	id, err := s.store.InsertRecord(ctx, fields)
	if err != nil {
		return SubmitResult{}, err
	}
	slog.Info("record inserted", "id", id, "identifier", fields.Identifier)
	return SubmitResult{ID: id}, nil
}

// Import loads a workbook, validates every row and inserts them in one
// batch. Any header mismatch or invalid row rejects the whole file.
func (s *Service) Import(ctx context.Context, path string) (ImportResult, error) {
	rows, err := sheet.Load(path)
	if err != nil {
		return ImportResult{}, fmt.Errorf("import %s: %w", path, err)
	}
	slog.Debug("workbook loaded", "path", path, "rows", len(rows))

	batch := make([]record.Fields, 0, len(rows))
	for _, row := range rows {
		fields, err := s.check.CheckRow(row.Number, row.Draft)
		if err != nil {
			return ImportResult{}, fmt.Errorf("import %s: %w", path, err)
		}
		batch = append(batch, fields)
	}

	id, err := s.store.InsertRecords(ctx, batch)
	if err != nil {
		return ImportResult{}, fmt.Errorf("import %s: %w", path, err)
	}

	slog.Info("import complete", "path", path, "records", len(batch), "batch", id)
	return ImportResult{Batch: id, Count: len(batch)}, nil
}

// Export writes the records selected by mode to dir/mode.FileName().
func (s *Service) Export(ctx context.Context, mode sheet.Mode, dir string, opts ...sheet.WriteOption) (ExportResult, error) {
	records, err := s.query(ctx, mode)
	if err != nil {
		return ExportResult{}, err
	}

	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return ExportResult{}, fmt.Errorf("export: %w", err)
	}

	path := filepath.Join(dir, mode.FileName())
	if err := sheet.Save(path, records, opts...); err != nil {
		return ExportResult{}, fmt.Errorf("export: %w", err)
	}

	slog.Info("export complete", "mode", mode.String(), "path", path, "records", len(records))
	return ExportResult{Path: path, Count: len(records)}, nil
}

func (s *Service) query(ctx context.Context, mode sheet.Mode) ([]record.Record, error) {
	switch mode.Kind {
	case sheet.KindRange:
		return s.store.FindRecordsByDateRange(ctx, mode.Start, mode.End)
	case sheet.KindSince:
		return s.store.FindRecordsSince(ctx, mode.Start)
	default:
		return s.store.ListRecords(ctx)
	}
}
