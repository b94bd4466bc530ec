package leave

import (
	"time"

	"github.com/scprithiviraj/smarthr/internal/pkg/validator"
)

const dateLayout = "2006-01-02"

// ValidateRequest checks a leave submission against the leave rules and
// returns the inclusive day count of the requested span. The past-date and
// range checks compare the dates as strings, which is safe because the
// layout is fixed-width ISO and both sides are validated first.
func ValidateRequest(leaveType Type, startDate, endDate, reason string, today time.Time) (int, error) {
	if !leaveType.Valid() {
		return 0, ErrInvalidLeaveType
	}
	start, startOK := validator.IsValidDate(startDate)
	end, endOK := validator.IsValidDate(endDate)
	if !startOK || !endOK {
		return 0, ErrInvalidRange
	}
	if validator.IsEmpty(reason) {
		return 0, ErrEmptyReason
	}

	todayStr := today.Format(dateLayout)
	if startDate < todayStr || endDate < todayStr {
		return 0, ErrDateInPast
	}
	if endDate < startDate {
		return 0, ErrInvalidRange
	}

	days := int(end.Sub(start).Hours()/24) + 1
	if leaveType == TypeCasual && days > CasualLeaveMaxDays {
		return 0, ErrCasualTooLong
	}
	return days, nil
}
