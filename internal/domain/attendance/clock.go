package attendance

import "time"

// ClockPolicy maps wall-clock time to the punch actions allowed at that
// moment. All rules are pure; the caller supplies `now` already converted to
// the attendance timezone.
type ClockPolicy struct {
	StartHour    int // earliest punch-in hour
	GraceMinutes int // on-time window after StartHour
	EndOfDayHour int // punch-out before this hour flags a half day
}

// DefaultClockPolicy is the reference policy: punch-in opens at 09:00 with a
// five minute grace window, the workday ends at 18:00.
func DefaultClockPolicy() ClockPolicy {
	return ClockPolicy{
		StartHour:    9,
		GraceMinutes: 5,
		EndOfDayHour: 18,
	}
}

// EvaluatePunchIn decides whether a punch-in at `now` may proceed, given the
// day's existing record (nil if none) and late request (nil if none).
// On success it returns the status the new record must carry: PRESENT inside
// the grace window, LATE when an approved late request unlocked the punch.
// Rules are evaluated in order; the boundary instant StartHour:GraceMinutes:00
// is still inside the grace window.
func (p ClockPolicy) EvaluatePunchIn(now time.Time, existing *Record, late *LateRequest) (Status, error) {
	if existing != nil {
		if existing.ClockIn != nil && existing.ClockOut != nil {
			return "", ErrAlreadyComplete
		}
		if existing.ClockIn != nil {
			return "", ErrAlreadyPunchedIn
		}
	}

	if now.Hour() < p.StartHour {
		return "", ErrTooEarly
	}

	elapsed := time.Duration(now.Hour())*time.Hour +
		time.Duration(now.Minute())*time.Minute +
		time.Duration(now.Second())*time.Second
	graceEnd := time.Duration(p.StartHour)*time.Hour + time.Duration(p.GraceMinutes)*time.Minute

	if elapsed <= graceEnd {
		return StatusPresent, nil
	}

	if late == nil {
		return "", ErrLateApprovalRequired
	}
	switch late.Status {
	case RequestStatusPending:
		return "", ErrLateApprovalPending
	case RequestStatusRejected:
		return "", ErrLateRequestRejected
	default:
		return StatusLate, nil
	}
}

// EvaluatePunchOut decides whether a punch-out at `now` may proceed.
// flagHalfDay is true when the punch-out falls before the end-of-day hour;
// the caller must confirm it before HALF_DAY is persisted.
func (p ClockPolicy) EvaluatePunchOut(now time.Time, existing *Record) (flagHalfDay bool, err error) {
	if existing == nil || existing.ClockIn == nil {
		return false, ErrNotPunchedIn
	}
	if existing.ClockOut != nil {
		return false, ErrAlreadyPunchedOut
	}
	return now.Hour() < p.EndOfDayHour, nil
}
