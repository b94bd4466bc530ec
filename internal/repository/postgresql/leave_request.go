package postgresql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/scprithiviraj/smarthr/internal/domain/leave"
	"github.com/scprithiviraj/smarthr/internal/pkg/database"
)

type leaveRequestRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.Repository {
	return &leaveRequestRepositoryImpl{db: db}
}

const leaveColumns = `id, user_id, leave_type, start_date, end_date, days, reason, status, decided_by, decided_at, created_at`

func scanLeave(row pgx.Row) (leave.Request, error) {
	var req leave.Request
	err := row.Scan(
		&req.ID,
		&req.UserID,
		&req.Type,
		&req.StartDate,
		&req.EndDate,
		&req.Days,
		&req.Reason,
		&req.Status,
		&req.DecidedBy,
		&req.DecidedAt,
		&req.CreatedAt,
	)
	return req, err
}

func (r *leaveRequestRepositoryImpl) Create(ctx context.Context, req *leave.Request) error {
	q := GetQuerier(ctx, r.db)

	insertQuery := `
		INSERT INTO leave_requests (id, user_id, leave_type, start_date, end_date, days, reason, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at
	`

	return q.QueryRow(ctx, insertQuery,
		req.ID, req.UserID, req.Type, req.StartDate, req.EndDate, req.Days, req.Reason, req.Status,
	).Scan(&req.CreatedAt)
}

func (r *leaveRequestRepositoryImpl) GetByID(ctx context.Context, id string) (*leave.Request, error) {
	q := GetQuerier(ctx, r.db)

	req, err := scanLeave(q.QueryRow(ctx, `SELECT `+leaveColumns+` FROM leave_requests WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, leave.ErrLeaveNotFound
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *leaveRequestRepositoryImpl) Decide(ctx context.Context, id string, status leave.Status, decidedBy string) (*leave.Request, error) {
	q := GetQuerier(ctx, r.db)

	updateQuery := `
		UPDATE leave_requests
		SET status = $1, decided_by = $2, decided_at = NOW()
		WHERE id = $3 AND status = 'PENDING'
		RETURNING ` + leaveColumns

	decided, err := scanLeave(q.QueryRow(ctx, updateQuery, status, decidedBy, id))
	if errors.Is(err, pgx.ErrNoRows) {
		if _, getErr := r.GetByID(ctx, id); getErr != nil {
			return nil, getErr
		}
		return nil, leave.ErrLeaveDecided
	}
	if err != nil {
		return nil, err
	}
	return &decided, nil
}

func (r *leaveRequestRepositoryImpl) Cancel(ctx context.Context, id, userID string) (*leave.Request, error) {
	q := GetQuerier(ctx, r.db)

	updateQuery := `
		UPDATE leave_requests
		SET status = 'CANCELLED'
		WHERE id = $1 AND user_id = $2 AND status = 'PENDING'
		RETURNING ` + leaveColumns

	cancelled, err := scanLeave(q.QueryRow(ctx, updateQuery, id, userID))
	if errors.Is(err, pgx.ErrNoRows) {
		existing, getErr := r.GetByID(ctx, id)
		if getErr != nil {
			return nil, getErr
		}
		if existing.UserID != userID {
			return nil, leave.ErrNotLeaveOwner
		}
		return nil, leave.ErrLeaveDecided
	}
	if err != nil {
		return nil, err
	}
	return &cancelled, nil
}

func (r *leaveRequestRepositoryImpl) ListByUser(ctx context.Context, userID string) ([]leave.Request, error) {
	q := GetQuerier(ctx, r.db)

	selectQuery := `
		SELECT ` + leaveColumns + `
		FROM leave_requests
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	return r.list(ctx, q, selectQuery, userID)
}

func (r *leaveRequestRepositoryImpl) ListAll(ctx context.Context) ([]leave.Request, error) {
	q := GetQuerier(ctx, r.db)

	selectQuery := `
		SELECT l.id, l.user_id, l.leave_type, l.start_date, l.end_date, l.days, l.reason, l.status,
		       l.decided_by, l.decided_at, l.created_at, u.full_name
		FROM leave_requests l
		JOIN users u ON u.id = l.user_id
		ORDER BY l.created_at DESC
	`

	return r.listWithNames(ctx, q, selectQuery)
}

func (r *leaveRequestRepositoryImpl) ListPending(ctx context.Context) ([]leave.Request, error) {
	q := GetQuerier(ctx, r.db)

	selectQuery := `
		SELECT l.id, l.user_id, l.leave_type, l.start_date, l.end_date, l.days, l.reason, l.status,
		       l.decided_by, l.decided_at, l.created_at, u.full_name
		FROM leave_requests l
		JOIN users u ON u.id = l.user_id
		WHERE l.status = 'PENDING'
		ORDER BY l.created_at
	`

	return r.listWithNames(ctx, q, selectQuery)
}

func (r *leaveRequestRepositoryImpl) ApprovedDaysByType(ctx context.Context, userID string, year int) (map[leave.Type]int, error) {
	q := GetQuerier(ctx, r.db)

	selectQuery := `
		SELECT leave_type, COALESCE(SUM(days), 0)
		FROM leave_requests
		WHERE user_id = $1 AND status = 'APPROVED'
		  AND EXTRACT(YEAR FROM start_date::date) = $2
		GROUP BY leave_type
	`

	rows, err := q.Query(ctx, selectQuery, userID, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	used := make(map[leave.Type]int)
	for rows.Next() {
		var leaveType leave.Type
		var days int
		if err := rows.Scan(&leaveType, &days); err != nil {
			return nil, err
		}
		used[leaveType] = days
	}
	return used, rows.Err()
}

func (r *leaveRequestRepositoryImpl) ApprovedOverlapping(ctx context.Context, userID, startDate, endDate string) ([]leave.Request, error) {
	q := GetQuerier(ctx, r.db)

	selectQuery := `
		SELECT ` + leaveColumns + `
		FROM leave_requests
		WHERE user_id = $1 AND status = 'APPROVED'
		  AND start_date <= $3 AND end_date >= $2
		ORDER BY start_date
	`

	return r.list(ctx, q, selectQuery, userID, startDate, endDate)
}

func (r *leaveRequestRepositoryImpl) list(ctx context.Context, q database.Querier, query string, args ...interface{}) ([]leave.Request, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reqs []leave.Request
	for rows.Next() {
		req, err := scanLeave(rows)
		if err != nil {
			return nil, err
		}
		reqs = append(reqs, req)
	}
	return reqs, rows.Err()
}

func (r *leaveRequestRepositoryImpl) listWithNames(ctx context.Context, q database.Querier, query string) ([]leave.Request, error) {
	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reqs []leave.Request
	for rows.Next() {
		var req leave.Request
		if err := rows.Scan(
			&req.ID,
			&req.UserID,
			&req.Type,
			&req.StartDate,
			&req.EndDate,
			&req.Days,
			&req.Reason,
			&req.Status,
			&req.DecidedBy,
			&req.DecidedAt,
			&req.CreatedAt,
			&req.UserFullName,
		); err != nil {
			return nil, err
		}
		reqs = append(reqs, req)
	}
	return reqs, rows.Err()
}
