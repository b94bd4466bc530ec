package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/scprithiviraj/smarthr/internal/domain/attendance"
	"github.com/scprithiviraj/smarthr/internal/domain/dashboard"
	"github.com/scprithiviraj/smarthr/internal/domain/user"
)

type dashboardService struct {
	repo     dashboard.Repository
	userRepo user.Repository
	location *time.Location
	nowFn    func() time.Time
}

func NewDashboardService(repo dashboard.Repository, userRepo user.Repository, location *time.Location) dashboard.Service {
	return &dashboardService{
		repo:     repo,
		userRepo: userRepo,
		location: location,
		nowFn:    time.Now,
	}
}

func (s *dashboardService) MyStats(ctx context.Context, userID string) (*dashboard.Stats, error) {
	now := s.nowFn().In(s.location)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, -1)
	startStr := monthStart.Format("2006-01-02")
	endStr := monthEnd.Format("2006-01-02")

	counts, err := s.repo.MonthlyStatusCounts(ctx, userID, startStr, endStr)
	if err != nil {
		return nil, fmt.Errorf("failed to count attendance statuses: %w", err)
	}
	leaveDays, err := s.repo.ApprovedLeaveDaysInMonth(ctx, userID, startStr, endStr)
	if err != nil {
		return nil, fmt.Errorf("failed to sum leave days: %w", err)
	}
	pendingLeaves, err := s.repo.PendingLeaveCountByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count pending leaves: %w", err)
	}

	return &dashboard.Stats{
		PresentDays:   counts[string(attendance.StatusPresent)],
		HalfDays:      counts[string(attendance.StatusHalfDay)],
		LateDays:      counts[string(attendance.StatusLate)],
		AbsentDays:    counts[string(attendance.StatusAbsent)],
		LeaveDays:     leaveDays,
		PendingLeaves: pendingLeaves,
	}, nil
}

func (s *dashboardService) AdminStats(ctx context.Context) (*dashboard.AdminStats, error) {
	today := s.nowFn().In(s.location).Format("2006-01-02")

	total, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}
	counts, err := s.repo.DailyStatusCounts(ctx, today)
	if err != nil {
		return nil, fmt.Errorf("failed to count attendance statuses: %w", err)
	}
	onLeave, err := s.repo.OnLeaveCount(ctx, today)
	if err != nil {
		return nil, fmt.Errorf("failed to count employees on leave: %w", err)
	}
	pendingLeaves, err := s.repo.PendingLeaveCount(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count pending leaves: %w", err)
	}
	pendingLate, err := s.repo.PendingLateRequestCount(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count pending late requests: %w", err)
	}

	present := counts[string(attendance.StatusPresent)] + counts[string(attendance.StatusHalfDay)]
	return &dashboard.AdminStats{
		TotalEmployees:      int(total),
		PresentToday:        present,
		LateToday:           counts[string(attendance.StatusLate)],
		AbsentToday:         counts[string(attendance.StatusAbsent)],
		OnLeaveToday:        onLeave,
		PendingLeaves:       pendingLeaves,
		PendingLateRequests: pendingLate,
	}, nil
}
