package leave

import "errors"

var (
	ErrInvalidLeaveType = errors.New("invalid leave type")
	ErrDateInPast       = errors.New("leave cannot start in the past")
	ErrInvalidRange     = errors.New("leave end date is before its start date")
	ErrCasualTooLong    = errors.New("casual leave cannot exceed 3 days")
	ErrEmptyReason      = errors.New("leave reason is required")
	ErrLeaveNotFound    = errors.New("leave request not found")
	ErrLeaveDecided     = errors.New("leave request has already been decided")
	ErrNotLeaveOwner    = errors.New("leave request belongs to another employee")
)
