package sheet

import (
	"errors"
	"fmt"

	"golang.org/x/text/unicode/norm"

	"github.com/roach88/servicelog/internal/record"
)

// SheetName is the title of the only sheet in an exported workbook.
const SheetName = "Registros"

// Header is the export header row, one label per record column.
var Header = headerLabels()

// ErrHeaderMismatch is matched by every *HeaderError.
var ErrHeaderMismatch = errors.New("spreadsheet header mismatch")

// HeaderError reports the first header cell that differs from the
// expected import header.
type HeaderError struct {
	// Column is the 1-based spreadsheet column.
	Column int
	Want   string
	Got    string
}

func (e *HeaderError) Error() string {
	return fmt.Sprintf("%s: column %d: want %q, got %q", ErrHeaderMismatch, e.Column, e.Want, e.Got)
}

func (e *HeaderError) Is(target error) bool {
	return target == ErrHeaderMismatch
}

func headerLabels() []string {
	fields := record.AllFields()
	labels := make([]string, len(fields))
	for i, f := range fields {
		labels[i] = f.Label()
	}
	return labels
}

// ImportHeader returns the header an import file must carry: Header
// without the ID column.
func ImportHeader() []string {
	out := make([]string, len(Header)-1)
	copy(out, Header[1:])
	return out
}

// checkHeader compares row against want cell by cell after NFC
// normalization. Trailing cells beyond want must be empty.
func checkHeader(row, want []string) error {
	cell := func(i int) string {
		if i < len(row) {
			return row[i]
		}
		return ""
	}

	for i, w := range want {
		if norm.NFC.String(cell(i)) != norm.NFC.String(w) {
			return &HeaderError{Column: i + 1, Want: w, Got: cell(i)}
		}
	}
	for i := len(want); i < len(row); i++ {
		if row[i] != "" {
			return &HeaderError{Column: i + 1, Want: "", Got: row[i]}
		}
	}
	return nil
}
