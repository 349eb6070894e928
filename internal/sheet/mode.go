package sheet

import "fmt"

// Kind is the query an export was built from.
type Kind int

const (
	KindGlobal Kind = iota
	KindRange
	KindSince
)

func (k Kind) String() string {
	switch k {
	case KindGlobal:
		return "global"
	case KindRange:
		return "range"
	case KindSince:
		return "since"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Mode selects which records an export contains and names its file.
type Mode struct {
	Kind  Kind
	Start string
	End   string
}

// Global exports every record.
func Global() Mode {
	return Mode{Kind: KindGlobal}
}

// Range exports records with entry_date between start and end, inclusive.
func Range(start, end string) Mode {
	return Mode{Kind: KindRange, Start: start, End: end}
}

// Since exports records with entry_date on or after date.
func Since(date string) Mode {
	return Mode{Kind: KindSince, Start: date}
}

// FileName returns the workbook file name for the mode.
func (m Mode) FileName() string {
	switch m.Kind {
	case KindRange:
		return fmt.Sprintf("Extracción %s - %s.xlsx", m.Start, m.End)
	case KindSince:
		return fmt.Sprintf("Extracción %s.xlsx", m.Start)
	default:
		return "Extracción global.xlsx"
	}
}

func (m Mode) String() string {
	switch m.Kind {
	case KindRange:
		return fmt.Sprintf("range %s..%s", m.Start, m.End)
	case KindSince:
		return "since " + m.Start
	default:
		return "global"
	}
}
