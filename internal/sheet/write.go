package sheet

import (
	"fmt"
	"io"
	"math"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/roach88/servicelog/internal/record"
)

const columnWidth = 25

// Border styles as numbered by the workbook format.
const (
	borderThin  = 1
	borderThick = 5
)

// WriteOption configures a workbook export.
type WriteOption func(*writeConfig)

type writeConfig struct {
	withID bool
}

// WithoutID drops the ID column so the workbook can be imported again
// as-is.
func WithoutID() WriteOption {
	return func(c *writeConfig) { c.withID = false }
}

// Write encodes records as an .xlsx workbook to w.
func Write(w io.Writer, records []record.Record, opts ...WriteOption) error {
	f, err := build(records, opts...)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// Save writes records to a workbook file at path, replacing any existing file.
func Save(path string, records []record.Record, opts ...WriteOption) error {
	f, err := build(records, opts...)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook %s: %w", path, err)
	}
	return nil
}

func build(records []record.Record, opts ...WriteOption) (*excelize.File, error) {
	cfg := writeConfig{withID: true}
	for _, opt := range opts {
		opt(&cfg)
	}

	header := Header
	if !cfg.withID {
		header = ImportHeader()
	}

	f := excelize.NewFile()
	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		f.Close()
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	headerRow := make([]any, len(header))
	for i, label := range header {
		headerRow[i] = label
	}
	if err := f.SetSheetRow(SheetName, "A1", &headerRow); err != nil {
		f.Close()
		return nil, fmt.Errorf("write header: %w", err)
	}

	for i, rec := range records {
		row := recordRow(rec, cfg.withID)
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			f.Close()
			return nil, err
		}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			f.Close()
			return nil, fmt.Errorf("write record %d: %w", rec.ID, err)
		}
	}

	if err := format(f, len(header), len(records)); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

// recordRow lays out a record in header order.
func recordRow(rec record.Record, withID bool) []any {
	row := []any{
		rec.EntryDate,
		rec.Operator,
		rec.Identifier,
		amountCell(rec.Amount),
		string(rec.Status),
		rec.Field,
		rec.CallCount,
		rec.ResolutionDate,
		rec.ResolutionOperator,
		rec.Notes,
	}
	if withID {
		row = append([]any{rec.ID}, row...)
	}
	return row
}

// amountCell writes an amount as a number when a float64 holds it exactly,
// and as its decimal text otherwise.
func amountCell(d decimal.Decimal) any {
	f := d.InexactFloat64()
	if math.IsInf(f, 0) || !decimal.NewFromFloat(f).Equal(d) {
		return d.String()
	}
	return f
}

// format applies the header and data cell styles and the column width.
func format(f *excelize.File, cols, rows int) error {
	lastCol, err := excelize.ColumnNumberToName(cols)
	if err != nil {
		return err
	}

	headerStyle, err := f.NewStyle(cellStyle(borderThick, "Gotham Bold", 12, true))
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}
	if err := f.SetCellStyle(SheetName, "A1", lastCol+"1", headerStyle); err != nil {
		return fmt.Errorf("header style: %w", err)
	}

	if rows > 0 {
		dataStyle, err := f.NewStyle(cellStyle(borderThin, "Gotham Light", 10, false))
		if err != nil {
			return fmt.Errorf("data style: %w", err)
		}
		last := fmt.Sprintf("%s%d", lastCol, rows+1)
		if err := f.SetCellStyle(SheetName, "A2", last, dataStyle); err != nil {
			return fmt.Errorf("data style: %w", err)
		}
	}

	if err := f.SetColWidth(SheetName, "A", lastCol, columnWidth); err != nil {
		return fmt.Errorf("column width: %w", err)
	}
	return nil
}

func cellStyle(border int, font string, size float64, bold bool) *excelize.Style {
	return &excelize.Style{
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: border},
			{Type: "right", Color: "000000", Style: border},
			{Type: "top", Color: "000000", Style: border},
			{Type: "bottom", Color: "000000", Style: border},
		},
		Font: &excelize.Font{Family: font, Size: size, Bold: bold},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	}
}
