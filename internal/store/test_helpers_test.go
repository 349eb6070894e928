package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/roach88/servicelog/internal/record"
	"github.com/roach88/servicelog/internal/testutil"
)

var testEpoch = time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

// createTestStore creates a new store in a temp directory for testing.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	clock := testutil.NewStepClock(testEpoch, time.Second)
	s, err := Open(path, WithActor("tester"), WithClock(clock.Now))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// okFields returns a non-incident record with the given identifier and date.
func okFields(identifier, entryDate string) record.Fields {
	return record.Fields{
		EntryDate:  entryDate,
		Operator:   "Ana",
		Identifier: identifier,
		Amount:     decimal.RequireFromString("10.5"),
		Status:     record.StatusOK,
		Notes:      "ok",
	}
}

// incidentFields returns a fully populated incident record.
func incidentFields(identifier, entryDate string) record.Fields {
	return record.Fields{
		EntryDate:          entryDate,
		Operator:           "Luis",
		Identifier:         identifier,
		Amount:             decimal.RequireFromString("99.99"),
		Status:             record.StatusIncident,
		Field:              "billing",
		CallCount:          3,
		ResolutionDate:     "05-01-2024",
		ResolutionOperator: "Ana",
		Notes:              "escalated",
	}
}

// assertFieldsEqual compares fields, using decimal equality for the amount.
func assertFieldsEqual(t *testing.T, want, got record.Fields) {
	t.Helper()
	assert.True(t, want.Amount.Equal(got.Amount), "amount: want %s, got %s", want.Amount, got.Amount)
	want.Amount, got.Amount = decimal.Zero, decimal.Zero
	assert.Equal(t, want, got)
}

// identifiers extracts the identifier of each record, in order.
func identifiers(records []record.Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Identifier
	}
	return out
}
