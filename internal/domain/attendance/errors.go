package attendance

import "errors"

// Attendance domain errors. The taxonomy is closed: every user-visible
// failure of a punch or late-request operation is one of these.
var (
	// Punch-in errors
	ErrTooEarly             = errors.New("punch-in is enabled only after the workday start")
	ErrAlreadyPunchedIn     = errors.New("already punched in today")
	ErrAlreadyComplete      = errors.New("attendance for today is already complete")
	ErrLateApprovalRequired = errors.New("late punch-in requires an approved late request")
	ErrLateApprovalPending  = errors.New("late request is awaiting approval")
	ErrLateRequestRejected  = errors.New("late request for today was rejected")

	// Punch-out errors
	ErrNotPunchedIn      = errors.New("not punched in yet")
	ErrAlreadyPunchedOut = errors.New("already punched out today")

	// Late-request errors
	ErrEmptyReason         = errors.New("late request reason must not be empty")
	ErrLateRequestExists   = errors.New("late request already exists for today")
	ErrLateRequestNotFound = errors.New("late request not found")
	ErrLateRequestDecided  = errors.New("late request has already been decided")
)
