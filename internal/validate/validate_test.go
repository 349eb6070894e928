package validate

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/servicelog/internal/record"
)

func okDraft() record.Draft {
	return record.Draft{
		EntryDate:  "01-01-2024",
		Operator:   "Ana",
		Identifier: "T-1",
		Amount:     "10.5",
		Status:     "OK",
		Notes:      "ok",
	}
}

func incidentDraft() record.Draft {
	return record.Draft{
		EntryDate:          "01-01-2024",
		Operator:           "Luis",
		Identifier:         "T-2",
		Amount:             "99.99",
		Status:             "INCIDENT",
		Field:              "billing",
		CallCount:          "3",
		ResolutionDate:     "05-01-2024",
		ResolutionOperator: "Ana",
		Notes:              "escalated",
	}
}

func TestCheck_ValidOK(t *testing.T) {
	f, err := New().Check(okDraft())
	require.NoError(t, err)

	assert.Equal(t, "01-01-2024", f.EntryDate)
	assert.Equal(t, "T-1", f.Identifier)
	assert.True(t, decimal.RequireFromString("10.5").Equal(f.Amount))
	assert.Equal(t, record.StatusOK, f.Status)
	assert.Equal(t, int64(0), f.CallCount)
}

func TestCheck_ValidIncident(t *testing.T) {
	f, err := New().Check(incidentDraft())
	require.NoError(t, err)

	assert.Equal(t, record.StatusIncident, f.Status)
	assert.Equal(t, int64(3), f.CallCount)
	assert.Equal(t, "05-01-2024", f.ResolutionDate)
	assert.Equal(t, "Ana", f.ResolutionOperator)
}

func TestCheck_Reasons(t *testing.T) {
	tests := []struct {
		name   string
		draft  func() record.Draft
		edit   func(*record.Draft)
		reason Reason
		field  string
	}{
		{"iso entry date", okDraft, func(d *record.Draft) { d.EntryDate = "2023-02-31" }, ReasonEntryDate, "entry_date"},
		{"slashed entry date", okDraft, func(d *record.Draft) { d.EntryDate = "31/02/2023" }, ReasonEntryDate, "entry_date"},
		{"empty entry date", okDraft, func(d *record.Draft) { d.EntryDate = "" }, ReasonEntryDate, "entry_date"},
		{"empty operator", okDraft, func(d *record.Draft) { d.Operator = "" }, ReasonMissingFields, "operator"},
		{"blank identifier", okDraft, func(d *record.Draft) { d.Identifier = "   " }, ReasonMissingFields, "identifier"},
		{"text amount", okDraft, func(d *record.Draft) { d.Amount = "abc" }, ReasonAmount, "amount"},
		{"empty amount", okDraft, func(d *record.Draft) { d.Amount = "" }, ReasonAmount, "amount"},
		{"comma amount", okDraft, func(d *record.Draft) { d.Amount = "10,5" }, ReasonAmount, "amount"},
		{"unknown status", okDraft, func(d *record.Draft) { d.Status = "DONE" }, ReasonStatus, "status"},
		{"lowercase status", okDraft, func(d *record.Draft) { d.Status = "ok" }, ReasonStatus, "status"},
		{"non-incident bad call count", okDraft, func(d *record.Draft) { d.CallCount = "two" }, ReasonCallCount, "call_count"},
		{"incident missing field", incidentDraft, func(d *record.Draft) { d.Field = "" }, ReasonMissingFields, "field"},
		{"incident missing resolution date", incidentDraft, func(d *record.Draft) { d.ResolutionDate = "" }, ReasonMissingFields, "resolution_date"},
		{"incident missing resolution operator", incidentDraft, func(d *record.Draft) { d.ResolutionOperator = "" }, ReasonMissingFields, "resolution_operator"},
		{"incident empty call count", incidentDraft, func(d *record.Draft) { d.CallCount = "" }, ReasonCallCount, "call_count"},
		{"incident fractional call count", incidentDraft, func(d *record.Draft) { d.CallCount = "1.5" }, ReasonCallCount, "call_count"},
		{"incident zero call count", incidentDraft, func(d *record.Draft) { d.CallCount = "0" }, ReasonCallCount, "call_count"},
		{"incident negative call count", incidentDraft, func(d *record.Draft) { d.CallCount = "-2" }, ReasonCallCount, "call_count"},
		{"non-incident negative call count", okDraft, func(d *record.Draft) { d.CallCount = "-1" }, ReasonCallCount, "call_count"},
		{"incident bad resolution date", incidentDraft, func(d *record.Draft) { d.ResolutionDate = "2024-01-05" }, ReasonResolutionDate, "resolution_date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := tt.draft()
			tt.edit(&d)

			_, err := New().Check(d)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalid)
			assert.Equal(t, tt.reason, ReasonOf(err))

			var ve *Error
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, tt.field, ve.Field)
			assert.Equal(t, 0, ve.Row)
		})
	}
}

func TestCheck_FirstFailingRuleWins(t *testing.T) {
	d := okDraft()
	d.EntryDate = "bad"
	d.Operator = ""
	d.Amount = "abc"
	d.Status = "DONE"

	_, err := New().Check(d)
	assert.Equal(t, ReasonEntryDate, ReasonOf(err))

	d.EntryDate = "01-01-2024"
	_, err = New().Check(d)
	assert.Equal(t, ReasonMissingFields, ReasonOf(err))

	d.Operator = "Ana"
	_, err = New().Check(d)
	assert.Equal(t, ReasonAmount, ReasonOf(err))

	d.Amount = "1"
	_, err = New().Check(d)
	assert.Equal(t, ReasonStatus, ReasonOf(err))
}

func TestCheck_ImpossibleCalendarDateAccepted(t *testing.T) {
	d := okDraft()
	d.EntryDate = "31-02-2023"

	f, err := New().Check(d)
	require.NoError(t, err)
	assert.Equal(t, "31-02-2023", f.EntryDate)
}

func TestCheck_AmountForms(t *testing.T) {
	for _, in := range []string{"0", "-3", " 42 ", "1e3", "0.001"} {
		d := okDraft()
		d.Amount = in
		_, err := New().Check(d)
		assert.NoError(t, err, "amount %q", in)
	}
}

func TestCheck_AmountKeepsEveryDigit(t *testing.T) {
	for _, in := range []string{"12345678901234567.89", "0.1234567890123456789", "1e400"} {
		d := okDraft()
		d.Amount = in
		f, err := New().Check(d)
		require.NoError(t, err, "amount %q", in)
		assert.True(t, decimal.RequireFromString(in).Equal(f.Amount), "amount %q, got %s", in, f.Amount)
	}
}

func TestCheck_IncidentNeedsAtLeastOneCall(t *testing.T) {
	d := incidentDraft()
	d.CallCount = "1"

	f, err := New().Check(d)
	require.NoError(t, err)
	assert.Equal(t, int64(1), f.CallCount)
}

func TestCheck_EmptyStatusMarkerAccepted(t *testing.T) {
	d := okDraft()
	d.Status = "--"

	f, err := New().Check(d)
	require.NoError(t, err)
	assert.Equal(t, record.StatusEmpty, f.Status)
}

func TestCheck_LenientKeepsIncidentFieldsOnNonIncident(t *testing.T) {
	d := okDraft()
	d.Field = "billing"
	d.CallCount = "2"

	f, err := New().Check(d)
	require.NoError(t, err)
	assert.Equal(t, "billing", f.Field)
	assert.Equal(t, int64(2), f.CallCount)
}

func TestCheck_StrictRejectsIncidentFieldsOnNonIncident(t *testing.T) {
	v := New(Strict())

	d := okDraft()
	d.ResolutionOperator = "Luis"

	_, err := v.Check(d)
	require.Error(t, err)
	assert.Equal(t, ReasonUnexpectedIncidentFields, ReasonOf(err))

	// A clean non-incident record and a full incident both pass.
	_, err = v.Check(okDraft())
	assert.NoError(t, err)
	_, err = v.Check(incidentDraft())
	assert.NoError(t, err)
}

func TestCheck_ZeroCallCountIsNotIncidentData(t *testing.T) {
	d := okDraft()
	d.CallCount = "0"

	_, err := New(WithStrict(true)).Check(d)
	assert.NoError(t, err)
}

func TestCheckRow_ErrorText(t *testing.T) {
	d := okDraft()
	d.Amount = "abc"

	_, err := New().CheckRow(4, d)
	require.Error(t, err)
	assert.Equal(t, `row 4: invalid amount (amount="abc")`, err.Error())

	d = okDraft()
	d.Field = "billing"
	_, err = New(Strict()).CheckRow(7, d)
	require.Error(t, err)
	assert.Equal(t, "row 7: incident fields set on a non-incident record", err.Error())
}

func TestCheck_ErrorTextWithoutRow(t *testing.T) {
	d := okDraft()
	d.Status = "DONE"

	_, err := New().Check(d)
	require.Error(t, err)
	assert.Equal(t, `invalid status (status="DONE")`, err.Error())
}

func TestReasonOf_NonValidationError(t *testing.T) {
	assert.Equal(t, Reason(""), ReasonOf(errors.New("boom")))
	assert.Equal(t, Reason(""), ReasonOf(nil))
}

func TestReason_MessageFallback(t *testing.T) {
	assert.Equal(t, "SOMETHING", Reason("SOMETHING").Message())
}
