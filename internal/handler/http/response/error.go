package response

import (
	"errors"
	"net/http"

	"github.com/scprithiviraj/smarthr/internal/domain/attendance"
	"github.com/scprithiviraj/smarthr/internal/domain/auth"
	"github.com/scprithiviraj/smarthr/internal/domain/calendar"
	"github.com/scprithiviraj/smarthr/internal/domain/leave"
	"github.com/scprithiviraj/smarthr/internal/domain/user"
	"github.com/scprithiviraj/smarthr/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, "Invalid username or password")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrUsernameExists):
		Conflict(w, "Username already taken")
	case errors.Is(err, user.ErrEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, user.ErrAdminPrivilegeRequired):
		Forbidden(w, "Admin privilege required")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrTooEarly):
		BadRequest(w, "Punch-in is not open yet", nil)
	case errors.Is(err, attendance.ErrAlreadyPunchedIn):
		Conflict(w, "Already punched in today")
	case errors.Is(err, attendance.ErrAlreadyComplete):
		Conflict(w, "Attendance for today is already complete")
	case errors.Is(err, attendance.ErrLateApprovalRequired):
		Forbidden(w, "Late punch-in requires an approved late request")
	case errors.Is(err, attendance.ErrLateApprovalPending):
		Forbidden(w, "Late request is awaiting an admin decision")
	case errors.Is(err, attendance.ErrLateRequestRejected):
		Forbidden(w, "Late request was rejected")
	case errors.Is(err, attendance.ErrNotPunchedIn):
		BadRequest(w, "No open punch-in found for today", nil)
	case errors.Is(err, attendance.ErrAlreadyPunchedOut):
		Conflict(w, "Already punched out today")
	case errors.Is(err, attendance.ErrLateRequestExists):
		Conflict(w, "A late request for today already exists")
	case errors.Is(err, attendance.ErrLateRequestNotFound):
		NotFound(w, "Late request not found")
	case errors.Is(err, attendance.ErrLateRequestDecided):
		Conflict(w, "Late request has already been decided")

	// Leave domain errors
	case errors.Is(err, leave.ErrInvalidLeaveType):
		BadRequest(w, "Invalid leave type", nil)
	case errors.Is(err, leave.ErrDateInPast):
		BadRequest(w, "Leave dates cannot be in the past", nil)
	case errors.Is(err, leave.ErrInvalidRange):
		BadRequest(w, "Leave date range is invalid", nil)
	case errors.Is(err, leave.ErrCasualTooLong):
		BadRequest(w, "Casual leave cannot exceed 3 days", nil)
	case errors.Is(err, leave.ErrEmptyReason):
		BadRequest(w, "Leave reason is required", nil)
	case errors.Is(err, leave.ErrLeaveNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrLeaveDecided):
		Conflict(w, "Leave request has already been decided")
	case errors.Is(err, leave.ErrNotLeaveOwner):
		Forbidden(w, "Leave request belongs to another employee")

	// Calendar domain errors
	case errors.Is(err, calendar.ErrInvalidMonth):
		BadRequest(w, "Month must be between 1 and 12", nil)

	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
