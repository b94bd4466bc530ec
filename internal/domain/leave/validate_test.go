package leave

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidateRequest(t *testing.T) {
	today := time.Date(2025, 6, 16, 14, 0, 0, 0, time.UTC)

	cases := []struct {
		name      string
		leaveType Type
		start     string
		end       string
		reason    string
		wantDays  int
		wantErr   error
	}{
		{"single day", TypeSick, "2025-06-20", "2025-06-20", "fever", 1, nil},
		{"inclusive span", TypeEarned, "2025-06-20", "2025-06-24", "trip", 5, nil},
		{"starts today", TypeSick, "2025-06-16", "2025-06-16", "fever", 1, nil},
		{"starts yesterday", TypeSick, "2025-06-15", "2025-06-16", "fever", 0, ErrDateInPast},
		{"ends yesterday", TypeSick, "2025-06-17", "2025-06-15", "fever", 0, ErrDateInPast},
		{"end before start", TypeSick, "2025-06-20", "2025-06-19", "fever", 0, ErrInvalidRange},
		{"casual at the cap", TypeCasual, "2025-06-20", "2025-06-22", "errand", 3, nil},
		{"casual over the cap", TypeCasual, "2025-06-20", "2025-06-23", "errand", 0, ErrCasualTooLong},
		{"unknown type", Type("VACATION"), "2025-06-20", "2025-06-20", "x", 0, ErrInvalidLeaveType},
		{"blank reason", TypeSick, "2025-06-20", "2025-06-20", "  ", 0, ErrEmptyReason},
		{"malformed start date", TypeSick, "20-06-2025", "2025-06-20", "fever", 0, ErrInvalidRange},
		{"malformed end date", TypeSick, "2025-06-20", "June 21", "fever", 0, ErrInvalidRange},
		{"spans a month boundary", TypeEarned, "2025-06-29", "2025-07-02", "trip", 4, nil},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			days, err := ValidateRequest(c.leaveType, c.start, c.end, c.reason, today)
			if c.wantErr != nil {
				assert.ErrorIs(t, err, c.wantErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, c.wantDays, days)
		})
	}
}

func TestValidateRequest_PastCheckIsLexicographic(t *testing.T) {
	// The comparison runs on the raw strings, so a later year sorts after
	// today regardless of month or day digits.
	today := time.Date(2025, 12, 31, 23, 0, 0, 0, time.UTC)

	days, err := ValidateRequest(TypeSick, "2026-01-01", "2026-01-01", "fever", today)
	assert.NoError(t, err)
	assert.Equal(t, 1, days)
}
