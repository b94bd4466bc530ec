package attendance

import (
	"time"

	"github.com/scprithiviraj/smarthr/internal/pkg/validator"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

type PunchOutRequest struct {
	// ConfirmHalfDay acknowledges that a punch-out before the end-of-day
	// hour should be recorded as HALF_DAY. Without it the prior status is
	// kept.
	ConfirmHalfDay bool `json:"confirm_half_day"`
}

type LateRequestSubmission struct {
	Reason string `json:"reason"`
}

func (r *LateRequestSubmission) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RecordResponse struct {
	ID           string   `json:"id"`
	UserID       string   `json:"user_id"`
	UserFullName *string  `json:"user_full_name,omitempty"`
	Date         string   `json:"date"`
	ClockInTime  *string  `json:"clock_in_time,omitempty"`
	ClockOutTime *string  `json:"clock_out_time,omitempty"`
	Status       string   `json:"status"`
	TotalHours   *float64 `json:"total_hours,omitempty"`
}

type LateRequestResponse struct {
	ID           string  `json:"id"`
	UserID       string  `json:"user_id"`
	UserFullName *string `json:"user_full_name,omitempty"`
	Date         string  `json:"date"`
	Reason       string  `json:"reason"`
	RequestTime  string  `json:"request_time"`
	Status       string  `json:"status"`
	DecidedBy    *string `json:"decided_by,omitempty"`
	DecidedAt    *string `json:"decided_at,omitempty"`
}

func ToRecordResponse(rec Record) RecordResponse {
	resp := RecordResponse{
		ID:           rec.ID,
		UserID:       rec.UserID,
		UserFullName: rec.UserFullName,
		Date:         rec.Date.Format("2006-01-02"),
		Status:       string(rec.Status),
		TotalHours:   rec.TotalHours,
	}
	if rec.ClockIn != nil {
		in := rec.ClockIn.Format(time.RFC3339)
		resp.ClockInTime = &in
	}
	if rec.ClockOut != nil {
		out := rec.ClockOut.Format(time.RFC3339)
		resp.ClockOutTime = &out
	}
	return resp
}

func ToRecordResponses(recs []Record) []RecordResponse {
	resps := make([]RecordResponse, 0, len(recs))
	for _, rec := range recs {
		resps = append(resps, ToRecordResponse(rec))
	}
	return resps
}

func ToLateRequestResponse(req LateRequest) LateRequestResponse {
	resp := LateRequestResponse{
		ID:           req.ID,
		UserID:       req.UserID,
		UserFullName: req.UserFullName,
		Date:         req.Date.Format("2006-01-02"),
		Reason:       req.Reason,
		RequestTime:  req.RequestTime.Format(time.RFC3339),
		Status:       string(req.Status),
		DecidedBy:    req.DecidedBy,
	}
	if req.DecidedAt != nil {
		decidedAt := req.DecidedAt.Format(time.RFC3339)
		resp.DecidedAt = &decidedAt
	}
	return resp
}

func ToLateRequestResponses(reqs []LateRequest) []LateRequestResponse {
	resps := make([]LateRequestResponse, 0, len(reqs))
	for _, req := range reqs {
		resps = append(resps, ToLateRequestResponse(req))
	}
	return resps
}
