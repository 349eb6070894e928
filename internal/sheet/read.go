package sheet

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/roach88/servicelog/internal/record"
)

// Row is one imported data row.
type Row struct {
	// Number is the 1-based spreadsheet row.
	Number int
	Draft  record.Draft
}

// Read decodes the active sheet of an .xlsx workbook.
//
// Row 1 must match ImportHeader exactly; otherwise a *HeaderError is
// returned and no data row is read. Short rows are padded with empty cells.
// Fully blank rows are skipped.
func Read(r io.Reader) ([]Row, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	name := f.GetSheetName(f.GetActiveSheetIndex())
	rows, err := f.GetRows(name, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", name, err)
	}

	var header []string
	if len(rows) > 0 {
		header = rows[0]
	}
	if err := checkHeader(header, ImportHeader()); err != nil {
		return nil, err
	}

	out := []Row{}
	for i := 1; i < len(rows); i++ {
		if blank(rows[i]) {
			continue
		}
		out = append(out, Row{Number: i + 1, Draft: record.DraftFromRow(rows[i])})
	}
	return out, nil
}

// Load reads the workbook at path.
func Load(path string) ([]Row, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load workbook: %w", err)
	}
	defer file.Close()

	return Read(file)
}

func blank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
