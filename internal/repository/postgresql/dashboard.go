package postgresql

import (
	"context"

	"github.com/scprithiviraj/smarthr/internal/domain/dashboard"
	"github.com/scprithiviraj/smarthr/internal/pkg/database"
)

type dashboardRepositoryImpl struct {
	db *database.DB
}

func NewDashboardRepository(db *database.DB) dashboard.Repository {
	return &dashboardRepositoryImpl{db: db}
}

func (r *dashboardRepositoryImpl) MonthlyStatusCounts(ctx context.Context, userID, monthStart, monthEnd string) (map[string]int, error) {
	q := GetQuerier(ctx, r.db)

	selectQuery := `
		SELECT status, COUNT(*)
		FROM attendance_records
		WHERE user_id = $1 AND date BETWEEN $2::date AND $3::date
		GROUP BY status
	`

	return r.countsByKey(ctx, q, selectQuery, userID, monthStart, monthEnd)
}

func (r *dashboardRepositoryImpl) ApprovedLeaveDaysInMonth(ctx context.Context, userID, monthStart, monthEnd string) (int, error) {
	q := GetQuerier(ctx, r.db)

	// Overlapping spans are clipped to the month so a leave crossing a
	// month boundary only counts the days inside it.
	selectQuery := `
		SELECT COALESCE(SUM(
			LEAST(end_date::date, $3::date) - GREATEST(start_date::date, $2::date) + 1
		), 0)
		FROM leave_requests
		WHERE user_id = $1 AND status = 'APPROVED'
		  AND start_date::date <= $3::date AND end_date::date >= $2::date
	`

	var days int
	err := q.QueryRow(ctx, selectQuery, userID, monthStart, monthEnd).Scan(&days)
	return days, err
}

func (r *dashboardRepositoryImpl) PendingLeaveCountByUser(ctx context.Context, userID string) (int, error) {
	q := GetQuerier(ctx, r.db)

	var count int
	err := q.QueryRow(ctx,
		`SELECT COUNT(*) FROM leave_requests WHERE user_id = $1 AND status = 'PENDING'`, userID,
	).Scan(&count)
	return count, err
}

func (r *dashboardRepositoryImpl) DailyStatusCounts(ctx context.Context, date string) (map[string]int, error) {
	q := GetQuerier(ctx, r.db)

	selectQuery := `
		SELECT status, COUNT(*)
		FROM attendance_records
		WHERE date = $1::date
		GROUP BY status
	`

	return r.countsByKey(ctx, q, selectQuery, date)
}

func (r *dashboardRepositoryImpl) OnLeaveCount(ctx context.Context, date string) (int, error) {
	q := GetQuerier(ctx, r.db)

	var count int
	err := q.QueryRow(ctx, `
		SELECT COUNT(DISTINCT user_id)
		FROM leave_requests
		WHERE status = 'APPROVED' AND start_date::date <= $1::date AND end_date::date >= $1::date
	`, date).Scan(&count)
	return count, err
}

func (r *dashboardRepositoryImpl) PendingLeaveCount(ctx context.Context) (int, error) {
	q := GetQuerier(ctx, r.db)

	var count int
	err := q.QueryRow(ctx, `SELECT COUNT(*) FROM leave_requests WHERE status = 'PENDING'`).Scan(&count)
	return count, err
}

func (r *dashboardRepositoryImpl) PendingLateRequestCount(ctx context.Context) (int, error) {
	q := GetQuerier(ctx, r.db)

	var count int
	err := q.QueryRow(ctx, `SELECT COUNT(*) FROM late_requests WHERE status = 'PENDING'`).Scan(&count)
	return count, err
}

func (r *dashboardRepositoryImpl) countsByKey(ctx context.Context, q database.Querier, query string, args ...interface{}) (map[string]int, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var key string
		var count int
		if err := rows.Scan(&key, &count); err != nil {
			return nil, err
		}
		counts[key] = count
	}
	return counts, rows.Err()
}
