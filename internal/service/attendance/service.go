package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/scprithiviraj/smarthr/internal/domain/attendance"
	"github.com/scprithiviraj/smarthr/internal/domain/calendar"
	"github.com/scprithiviraj/smarthr/internal/pkg/metrics"
	"github.com/scprithiviraj/smarthr/internal/pkg/validator"
)

const recentLimit = 10

type attendanceService struct {
	repo        attendance.Repository
	lateRepo    attendance.LateRequestRepository
	policy      attendance.ClockPolicy
	metrics     *metrics.Metrics
	invalidator calendar.Invalidator
	location    *time.Location
	nowFn       func() time.Time
}

func NewAttendanceService(
	repo attendance.Repository,
	lateRepo attendance.LateRequestRepository,
	policy attendance.ClockPolicy,
	m *metrics.Metrics,
	invalidator calendar.Invalidator,
	location *time.Location,
) attendance.Service {
	return &attendanceService{
		repo:        repo,
		lateRepo:    lateRepo,
		policy:      policy,
		metrics:     m,
		invalidator: invalidator,
		location:    location,
		nowFn:       time.Now,
	}
}

func (s *attendanceService) PunchIn(ctx context.Context, userID string) (attendance.RecordResponse, error) {
	now := s.nowFn().In(s.location)
	date := workday(now)

	existing, err := s.repo.GetByUserAndDate(ctx, userID, date)
	if err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to get attendance record: %w", err)
	}
	late, err := s.lateRepo.GetByUserAndDate(ctx, userID, date)
	if err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to get late request: %w", err)
	}

	status, err := s.policy.EvaluatePunchIn(now, existing, late)
	if err != nil {
		s.metrics.PunchInErrors.WithLabelValues(rejectionReason(err)).Inc()
		return attendance.RecordResponse{}, err
	}

	rec := attendance.Record{
		ID:      uuid.NewString(),
		UserID:  userID,
		Date:    date,
		ClockIn: &now,
		Status:  status,
	}
	created, err := s.repo.Create(ctx, rec)
	if err != nil {
		if errors.Is(err, attendance.ErrAlreadyPunchedIn) {
			s.metrics.PunchInErrors.WithLabelValues(rejectionReason(err)).Inc()
			return attendance.RecordResponse{}, err
		}
		return attendance.RecordResponse{}, fmt.Errorf("failed to create attendance record: %w", err)
	}

	s.metrics.PunchIns.WithLabelValues(string(status)).Inc()
	s.invalidator.InvalidateUser(ctx, userID)
	slog.Info("Employee punched in", "user_id", userID, "status", status)
	return attendance.ToRecordResponse(created), nil
}

func (s *attendanceService) PunchOut(ctx context.Context, userID string, req attendance.PunchOutRequest) (attendance.RecordResponse, error) {
	now := s.nowFn().In(s.location)
	date := workday(now)

	existing, err := s.repo.GetByUserAndDate(ctx, userID, date)
	if err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to get attendance record: %w", err)
	}

	flagHalfDay, err := s.policy.EvaluatePunchOut(now, existing)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	status := existing.Status
	if flagHalfDay && req.ConfirmHalfDay {
		status = attendance.StatusHalfDay
	}

	hours := math.Round(now.Sub(*existing.ClockIn).Hours()*100) / 100
	rec := *existing
	rec.ClockOut = &now
	rec.Status = status
	rec.TotalHours = &hours

	updated, err := s.repo.CompletePunchOut(ctx, rec)
	if err != nil {
		if errors.Is(err, attendance.ErrAlreadyPunchedOut) {
			return attendance.RecordResponse{}, err
		}
		return attendance.RecordResponse{}, fmt.Errorf("failed to complete punch-out: %w", err)
	}

	s.metrics.PunchOuts.Inc()
	s.invalidator.InvalidateUser(ctx, userID)
	slog.Info("Employee punched out", "user_id", userID, "status", status, "total_hours", hours)
	return attendance.ToRecordResponse(updated), nil
}

func (s *attendanceService) SubmitLateRequest(ctx context.Context, userID string, req attendance.LateRequestSubmission) (attendance.LateRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.LateRequestResponse{}, err
	}

	now := s.nowFn().In(s.location)
	late := attendance.LateRequest{
		ID:          uuid.NewString(),
		UserID:      userID,
		Date:        workday(now),
		Reason:      req.Reason,
		RequestTime: now,
		Status:      attendance.RequestStatusPending,
	}

	created, err := s.lateRepo.Create(ctx, late)
	if err != nil {
		if errors.Is(err, attendance.ErrLateRequestExists) {
			return attendance.LateRequestResponse{}, err
		}
		return attendance.LateRequestResponse{}, fmt.Errorf("failed to create late request: %w", err)
	}

	slog.Info("Late request submitted", "user_id", userID, "request_id", created.ID)
	return attendance.ToLateRequestResponse(created), nil
}

func (s *attendanceService) DecideLateRequest(ctx context.Context, adminID, requestID string, decision attendance.Decision) (attendance.LateRequestResponse, error) {
	if !decision.Valid() {
		return attendance.LateRequestResponse{}, validator.ValidationErrors{{
			Field:   "decision",
			Message: "decision must be APPROVED or REJECTED",
		}}
	}

	decided, err := s.lateRepo.Decide(ctx, requestID, attendance.RequestStatus(decision), adminID)
	if err != nil {
		if errors.Is(err, attendance.ErrLateRequestNotFound) || errors.Is(err, attendance.ErrLateRequestDecided) {
			return attendance.LateRequestResponse{}, err
		}
		return attendance.LateRequestResponse{}, fmt.Errorf("failed to decide late request: %w", err)
	}

	s.metrics.LateDecisions.WithLabelValues(string(decision)).Inc()
	slog.Info("Late request decided", "request_id", requestID, "decision", decision, "decided_by", adminID)
	return attendance.ToLateRequestResponse(decided), nil
}

func (s *attendanceService) MyLateRequest(ctx context.Context, userID string) (*attendance.LateRequestResponse, error) {
	now := s.nowFn().In(s.location)
	late, err := s.lateRepo.GetByUserAndDate(ctx, userID, workday(now))
	if err != nil {
		return nil, fmt.Errorf("failed to get late request: %w", err)
	}
	if late == nil {
		return nil, nil
	}
	resp := attendance.ToLateRequestResponse(*late)
	return &resp, nil
}

func (s *attendanceService) PendingLateRequests(ctx context.Context) ([]attendance.LateRequestResponse, error) {
	pending, err := s.lateRepo.ListPending(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending late requests: %w", err)
	}
	return attendance.ToLateRequestResponses(pending), nil
}

func (s *attendanceService) MyHistory(ctx context.Context, userID string) ([]attendance.RecordResponse, error) {
	recs, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance records: %w", err)
	}
	return attendance.ToRecordResponses(recs), nil
}

func (s *attendanceService) All(ctx context.Context) ([]attendance.RecordResponse, error) {
	recs, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance records: %w", err)
	}
	return attendance.ToRecordResponses(recs), nil
}

func (s *attendanceService) Recent(ctx context.Context) ([]attendance.RecordResponse, error) {
	recs, err := s.repo.ListRecent(ctx, recentLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent attendance records: %w", err)
	}
	return attendance.ToRecordResponses(recs), nil
}

// workday truncates a local timestamp to its calendar date, stored as
// midnight UTC so date equality survives timezone conversions.
func workday(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, attendance.ErrTooEarly):
		return "too_early"
	case errors.Is(err, attendance.ErrAlreadyPunchedIn):
		return "already_punched_in"
	case errors.Is(err, attendance.ErrAlreadyComplete):
		return "already_complete"
	case errors.Is(err, attendance.ErrLateApprovalRequired):
		return "approval_required"
	case errors.Is(err, attendance.ErrLateApprovalPending):
		return "approval_pending"
	case errors.Is(err, attendance.ErrLateRequestRejected):
		return "request_rejected"
	default:
		return "other"
	}
}
