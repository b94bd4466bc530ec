package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func at(hour, min, sec int) time.Time {
	return time.Date(2025, 6, 16, hour, min, sec, 0, time.UTC)
}

func openRecord(clockIn time.Time) *Record {
	return &Record{ID: "rec-1", UserID: "u-1", Date: at(0, 0, 0), ClockIn: &clockIn, Status: StatusPresent}
}

func closedRecord(clockIn, clockOut time.Time) *Record {
	rec := openRecord(clockIn)
	rec.ClockOut = &clockOut
	return rec
}

func TestEvaluatePunchIn_RuleOrder(t *testing.T) {
	policy := DefaultClockPolicy()
	in := at(9, 2, 0)
	out := at(18, 30, 0)

	cases := []struct {
		name     string
		now      time.Time
		existing *Record
		late     *LateRequest
		want     Status
		wantErr  error
	}{
		{"completed day blocks", at(10, 0, 0), closedRecord(in, out), nil, "", ErrAlreadyComplete},
		// A completed record wins over every later rule, even before opening.
		{"completed day blocks even when early", at(8, 0, 0), closedRecord(in, out), nil, "", ErrAlreadyComplete},
		{"open record blocks", at(10, 0, 0), openRecord(in), nil, "", ErrAlreadyPunchedIn},
		{"before opening blocks", at(8, 59, 59), nil, nil, "", ErrTooEarly},
		{"opening instant is on time", at(9, 0, 0), nil, nil, StatusPresent, nil},
		{"inside grace window", at(9, 3, 30), nil, nil, StatusPresent, nil},
		{"grace boundary is on time", at(9, 5, 0), nil, nil, StatusPresent, nil},
		{"one second past grace is late", at(9, 5, 1), nil, nil, "", ErrLateApprovalRequired},
		{"late without request", at(11, 0, 0), nil, nil, "", ErrLateApprovalRequired},
		{"late with pending request", at(11, 0, 0), nil, &LateRequest{Status: RequestStatusPending}, "", ErrLateApprovalPending},
		{"late with rejected request", at(11, 0, 0), nil, &LateRequest{Status: RequestStatusRejected}, "", ErrLateRequestRejected},
		{"late with approved request", at(11, 0, 0), nil, &LateRequest{Status: RequestStatusApproved}, StatusLate, nil},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			status, err := policy.EvaluatePunchIn(c.now, c.existing, c.late)
			if c.wantErr != nil {
				assert.ErrorIs(t, err, c.wantErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, c.want, status)
		})
	}
}

func TestEvaluatePunchOut(t *testing.T) {
	policy := DefaultClockPolicy()
	in := at(9, 1, 0)

	cases := []struct {
		name        string
		now         time.Time
		existing    *Record
		wantHalfDay bool
		wantErr     error
	}{
		{"no record", at(17, 0, 0), nil, false, ErrNotPunchedIn},
		{"record without punch-in", at(17, 0, 0), &Record{Status: StatusAbsent}, false, ErrNotPunchedIn},
		{"already punched out", at(19, 0, 0), closedRecord(in, at(18, 5, 0)), false, ErrAlreadyPunchedOut},
		{"before end of day flags half day", at(17, 59, 59), openRecord(in), true, nil},
		{"at end of day is a full day", at(18, 0, 0), openRecord(in), false, nil},
		{"after end of day is a full day", at(20, 30, 0), openRecord(in), false, nil},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			halfDay, err := policy.EvaluatePunchOut(c.now, c.existing)
			if c.wantErr != nil {
				assert.ErrorIs(t, err, c.wantErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, c.wantHalfDay, halfDay)
		})
	}
}

func TestEvaluatePunchIn_NeverMutates(t *testing.T) {
	policy := DefaultClockPolicy()
	in := at(9, 2, 0)
	rec := openRecord(in)
	before := *rec

	_, _ = policy.EvaluatePunchIn(at(10, 0, 0), rec, nil)

	assert.Equal(t, before, *rec)
}
