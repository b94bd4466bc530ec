package leave

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/scprithiviraj/smarthr/internal/domain/calendar"
	"github.com/scprithiviraj/smarthr/internal/domain/leave"
	"github.com/scprithiviraj/smarthr/internal/pkg/metrics"
	"github.com/scprithiviraj/smarthr/internal/pkg/validator"
)

type leaveService struct {
	repo        leave.Repository
	metrics     *metrics.Metrics
	invalidator calendar.Invalidator
	location    *time.Location
	nowFn       func() time.Time
}

func NewLeaveService(repo leave.Repository, m *metrics.Metrics, invalidator calendar.Invalidator, location *time.Location) leave.Service {
	return &leaveService{
		repo:        repo,
		metrics:     m,
		invalidator: invalidator,
		location:    location,
		nowFn:       time.Now,
	}
}

func (s *leaveService) Apply(ctx context.Context, userID string, req *leave.ApplyRequest) (*leave.Request, error) {
	today := s.nowFn().In(s.location)
	leaveType := leave.Type(req.Type)

	days, err := leave.ValidateRequest(leaveType, req.StartDate, req.EndDate, req.Reason, today)
	if err != nil {
		return nil, err
	}

	request := &leave.Request{
		ID:        uuid.NewString(),
		UserID:    userID,
		Type:      leaveType,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Days:      days,
		Reason:    req.Reason,
		Status:    leave.StatusPending,
	}
	if err := s.repo.Create(ctx, request); err != nil {
		return nil, fmt.Errorf("failed to create leave request: %w", err)
	}

	s.metrics.LeaveRequests.WithLabelValues(string(leaveType)).Inc()
	slog.Info("Leave request submitted", "user_id", userID, "leave_id", request.ID, "type", leaveType, "days", days)
	return request, nil
}

func (s *leaveService) Decide(ctx context.Context, adminID, leaveID string, decision leave.Decision) (*leave.Request, error) {
	if !decision.Valid() {
		return nil, validator.ValidationErrors{{
			Field:   "decision",
			Message: "decision must be APPROVED or REJECTED",
		}}
	}

	decided, err := s.repo.Decide(ctx, leaveID, leave.Status(decision), adminID)
	if err != nil {
		if errors.Is(err, leave.ErrLeaveNotFound) || errors.Is(err, leave.ErrLeaveDecided) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to decide leave request: %w", err)
	}

	s.metrics.LeaveDecisions.WithLabelValues(string(decision)).Inc()
	s.invalidator.InvalidateUser(ctx, decided.UserID)
	slog.Info("Leave request decided", "leave_id", leaveID, "decision", decision, "decided_by", adminID)
	return decided, nil
}

func (s *leaveService) Cancel(ctx context.Context, userID, leaveID string) (*leave.Request, error) {
	cancelled, err := s.repo.Cancel(ctx, leaveID, userID)
	if err != nil {
		if errors.Is(err, leave.ErrLeaveNotFound) || errors.Is(err, leave.ErrLeaveDecided) || errors.Is(err, leave.ErrNotLeaveOwner) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to cancel leave request: %w", err)
	}

	slog.Info("Leave request cancelled", "leave_id", leaveID, "user_id", userID)
	return cancelled, nil
}

func (s *leaveService) MyLeaves(ctx context.Context, userID string) ([]leave.Request, error) {
	leaves, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}
	return leaves, nil
}

func (s *leaveService) All(ctx context.Context) ([]leave.Request, error) {
	leaves, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}
	return leaves, nil
}

func (s *leaveService) Pending(ctx context.Context) ([]leave.Request, error) {
	leaves, err := s.repo.ListPending(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending leave requests: %w", err)
	}
	return leaves, nil
}

func (s *leaveService) Balance(ctx context.Context, userID string) ([]leave.BalanceEntry, error) {
	year := s.nowFn().In(s.location).Year()
	used, err := s.repo.ApprovedDaysByType(ctx, userID, year)
	if err != nil {
		return nil, fmt.Errorf("failed to sum approved leave days: %w", err)
	}

	entries := make([]leave.BalanceEntry, 0, len(leave.AnnualAllowance))
	for leaveType, allowance := range leave.AnnualAllowance {
		remaining := allowance - used[leaveType]
		if remaining < 0 {
			remaining = 0
		}
		entries = append(entries, leave.BalanceEntry{
			Type:      leaveType,
			Allowance: allowance,
			Used:      used[leaveType],
			Remaining: remaining,
		})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Type < entries[j].Type })
	return entries, nil
}
