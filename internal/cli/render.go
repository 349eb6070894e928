package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/roach88/servicelog/internal/record"
	"github.com/roach88/servicelog/internal/sheet"
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

// writeRecords prints records as a table under the spreadsheet header.
func writeRecords(w io.Writer, records []record.Record) {
	if len(records) == 0 {
		fmt.Fprintln(w, "No records found.")
		return
	}

	tw := newTable(w)
	fmt.Fprintln(tw, strings.Join(sheet.Header, "\t"))
	for _, r := range records {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%d\t%s\t%s\t%s\n",
			r.ID, r.EntryDate, r.Operator, r.Identifier, r.Amount.String(), r.Status,
			r.Field, r.CallCount, r.ResolutionDate, r.ResolutionOperator, oneLine(r.Notes))
	}
	tw.Flush()
}

// writeRecord prints a single record as label/value pairs.
func writeRecord(w io.Writer, r record.Record) {
	values := []string{
		fmt.Sprint(r.ID), r.EntryDate, r.Operator, r.Identifier, r.Amount.String(),
		string(r.Status), r.Field, fmt.Sprint(r.CallCount), r.ResolutionDate,
		r.ResolutionOperator, r.Notes,
	}

	tw := newTable(w)
	for i, label := range sheet.Header {
		fmt.Fprintf(tw, "%s:\t%s\n", label, values[i])
	}
	tw.Flush()
}

func writeUsers(w io.Writer, users []record.User) {
	if len(users) == 0 {
		fmt.Fprintln(w, "No users found.")
		return
	}

	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tNAME\tUSERNAME")
	for _, u := range users {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", u.ID, u.Name, u.Username)
	}
	tw.Flush()
}

func writeLogs(w io.Writer, entries []record.LogEntry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No log entries found.")
		return
	}

	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tTIMESTAMP\tUSER\tACTION")
	for _, e := range entries {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", e.ID, e.Timestamp, e.User, e.Action)
	}
	tw.Flush()
}

// oneLine keeps multi-line notes on one table row.
func oneLine(s string) string {
	return strings.ReplaceAll(s, "\n", " ")
}
