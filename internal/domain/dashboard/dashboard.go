package dashboard

import "context"

// Stats is the employee dashboard summary for the current month.
type Stats struct {
	PresentDays   int `json:"present_days"`
	HalfDays      int `json:"half_days"`
	LateDays      int `json:"late_days"`
	AbsentDays    int `json:"absent_days"`
	LeaveDays     int `json:"leave_days"`
	PendingLeaves int `json:"pending_leaves"`
}

// AdminStats is the org-wide summary for today.
type AdminStats struct {
	TotalEmployees      int `json:"total_employees"`
	PresentToday        int `json:"present_today"`
	LateToday           int `json:"late_today"`
	AbsentToday         int `json:"absent_today"`
	OnLeaveToday        int `json:"on_leave_today"`
	PendingLeaves       int `json:"pending_leave_requests"`
	PendingLateRequests int `json:"pending_late_requests"`
}

type Repository interface {
	// MonthlyStatusCounts counts the user's attendance rows per status for
	// the month containing date (date is "YYYY-MM-DD").
	MonthlyStatusCounts(ctx context.Context, userID, monthStart, monthEnd string) (map[string]int, error)

	// ApprovedLeaveDaysInMonth sums approved leave days of the user that
	// fall inside the month.
	ApprovedLeaveDaysInMonth(ctx context.Context, userID, monthStart, monthEnd string) (int, error)

	PendingLeaveCountByUser(ctx context.Context, userID string) (int, error)

	// DailyStatusCounts counts today's attendance rows per status across
	// all employees.
	DailyStatusCounts(ctx context.Context, date string) (map[string]int, error)

	OnLeaveCount(ctx context.Context, date string) (int, error)
	PendingLeaveCount(ctx context.Context) (int, error)
	PendingLateRequestCount(ctx context.Context) (int, error)
}

type Service interface {
	MyStats(ctx context.Context, userID string) (*Stats, error)
	AdminStats(ctx context.Context) (*AdminStats, error)
}
