package postgresql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/scprithiviraj/smarthr/internal/domain/attendance"
	"github.com/scprithiviraj/smarthr/internal/pkg/database"
)

type lateRequestRepositoryImpl struct {
	db *database.DB
}

func NewLateRequestRepository(db *database.DB) attendance.LateRequestRepository {
	return &lateRequestRepositoryImpl{db: db}
}

func scanLateRequest(row pgx.Row) (attendance.LateRequest, error) {
	var req attendance.LateRequest
	err := row.Scan(
		&req.ID,
		&req.UserID,
		&req.Date,
		&req.Reason,
		&req.RequestTime,
		&req.Status,
		&req.DecidedBy,
		&req.DecidedAt,
	)
	return req, err
}

func (r *lateRequestRepositoryImpl) Create(ctx context.Context, req attendance.LateRequest) (attendance.LateRequest, error) {
	q := GetQuerier(ctx, r.db)

	insertQuery := `
		INSERT INTO late_requests (id, user_id, date, reason, request_time, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id, date) DO NOTHING
		RETURNING id, user_id, date, reason, request_time, status, decided_by, decided_at
	`

	created, err := scanLateRequest(q.QueryRow(ctx, insertQuery,
		req.ID, req.UserID, req.Date, req.Reason, req.RequestTime, req.Status,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return attendance.LateRequest{}, attendance.ErrLateRequestExists
	}
	return created, err
}

func (r *lateRequestRepositoryImpl) GetByID(ctx context.Context, id string) (attendance.LateRequest, error) {
	q := GetQuerier(ctx, r.db)

	selectQuery := `
		SELECT id, user_id, date, reason, request_time, status, decided_by, decided_at
		FROM late_requests
		WHERE id = $1
	`

	req, err := scanLateRequest(q.QueryRow(ctx, selectQuery, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return attendance.LateRequest{}, attendance.ErrLateRequestNotFound
	}
	return req, err
}

func (r *lateRequestRepositoryImpl) GetByUserAndDate(ctx context.Context, userID string, date time.Time) (*attendance.LateRequest, error) {
	q := GetQuerier(ctx, r.db)

	selectQuery := `
		SELECT id, user_id, date, reason, request_time, status, decided_by, decided_at
		FROM late_requests
		WHERE user_id = $1 AND date = $2
	`

	req, err := scanLateRequest(q.QueryRow(ctx, selectQuery, userID, date))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// Decide updates only while the request is PENDING, so two admins racing on
// the same request cannot both win.
func (r *lateRequestRepositoryImpl) Decide(ctx context.Context, id string, status attendance.RequestStatus, decidedBy string) (attendance.LateRequest, error) {
	q := GetQuerier(ctx, r.db)

	updateQuery := `
		UPDATE late_requests
		SET status = $1, decided_by = $2, decided_at = NOW()
		WHERE id = $3 AND status = 'PENDING'
		RETURNING id, user_id, date, reason, request_time, status, decided_by, decided_at
	`

	decided, err := scanLateRequest(q.QueryRow(ctx, updateQuery, status, decidedBy, id))
	if errors.Is(err, pgx.ErrNoRows) {
		// Distinguish a missing request from an already-decided one.
		if _, getErr := r.GetByID(ctx, id); getErr != nil {
			return attendance.LateRequest{}, getErr
		}
		return attendance.LateRequest{}, attendance.ErrLateRequestDecided
	}
	return decided, err
}

func (r *lateRequestRepositoryImpl) ListPending(ctx context.Context) ([]attendance.LateRequest, error) {
	q := GetQuerier(ctx, r.db)

	selectQuery := `
		SELECT l.id, l.user_id, l.date, l.reason, l.request_time, l.status, l.decided_by, l.decided_at, u.full_name
		FROM late_requests l
		JOIN users u ON u.id = l.user_id
		WHERE l.status = 'PENDING'
		ORDER BY l.request_time
	`

	rows, err := q.Query(ctx, selectQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reqs []attendance.LateRequest
	for rows.Next() {
		var req attendance.LateRequest
		if err := rows.Scan(
			&req.ID,
			&req.UserID,
			&req.Date,
			&req.Reason,
			&req.RequestTime,
			&req.Status,
			&req.DecidedBy,
			&req.DecidedAt,
			&req.UserFullName,
		); err != nil {
			return nil, err
		}
		reqs = append(reqs, req)
	}
	return reqs, rows.Err()
}
