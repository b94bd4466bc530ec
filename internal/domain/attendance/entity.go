package attendance

import "time"

// Status is the derived per-day attendance status. It is computed from the
// punch timestamps and the late-approval outcome, never set independently.
type Status string

const (
	StatusPresent Status = "PRESENT"
	StatusHalfDay Status = "HALF_DAY"
	StatusAbsent  Status = "ABSENT"
	StatusLate    Status = "LATE"
)

// Record is one attendance record per (user, workday). It is created on the
// first accepted punch-in of the day and closed by punch-out.
type Record struct {
	ID         string
	UserID     string
	Date       time.Time // workday, midnight in the attendance timezone
	ClockIn    *time.Time
	ClockOut   *time.Time
	Status     Status
	TotalHours *float64 // set once both timestamps exist
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// Joined for admin listings
	UserFullName *string
}

// RequestStatus is the lifecycle of a late punch-in request:
// PENDING -> {APPROVED, REJECTED}, terminal once decided.
type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "PENDING"
	RequestStatusApproved RequestStatus = "APPROVED"
	RequestStatusRejected RequestStatus = "REJECTED"
)

// LateRequest is an employee's appeal to punch in after the grace window.
// At most one exists per (user, date); its status gates the late punch-in.
type LateRequest struct {
	ID          string
	UserID      string
	Date        time.Time
	Reason      string
	RequestTime time.Time
	Status      RequestStatus
	DecidedBy   *string
	DecidedAt   *time.Time

	UserFullName *string
}

// Decision is an admin verdict on a late request.
type Decision string

const (
	DecisionApprove Decision = "APPROVED"
	DecisionReject  Decision = "REJECTED"
)

func (d Decision) Valid() bool {
	return d == DecisionApprove || d == DecisionReject
}
