package postgresql

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/scprithiviraj/smarthr/internal/domain/attendance"
	"github.com/scprithiviraj/smarthr/internal/pkg/database"
)

type attendanceRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.Repository {
	return &attendanceRepositoryImpl{db: db}
}

const recordColumns = `a.id, a.user_id, a.date, a.clock_in, a.clock_out, a.status, a.total_hours, a.created_at, a.updated_at`

func scanRecord(row pgx.Row) (attendance.Record, error) {
	var rec attendance.Record
	err := row.Scan(
		&rec.ID,
		&rec.UserID,
		&rec.Date,
		&rec.ClockIn,
		&rec.ClockOut,
		&rec.Status,
		&rec.TotalHours,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	)
	return rec, err
}

func scanRecordWithName(rows pgx.Rows) (attendance.Record, error) {
	var rec attendance.Record
	err := rows.Scan(
		&rec.ID,
		&rec.UserID,
		&rec.Date,
		&rec.ClockIn,
		&rec.ClockOut,
		&rec.Status,
		&rec.TotalHours,
		&rec.CreatedAt,
		&rec.UpdatedAt,
		&rec.UserFullName,
	)
	return rec, err
}

// Create relies on the unique (user_id, date) index: when a concurrent
// punch-in already inserted the row, ON CONFLICT makes the insert return no
// row and the caller sees ErrAlreadyPunchedIn instead of a duplicate.
func (r *attendanceRepositoryImpl) Create(ctx context.Context, rec attendance.Record) (attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	insertQuery := `
		INSERT INTO attendance_records (id, user_id, date, clock_in, status)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, date) DO NOTHING
		RETURNING id, user_id, date, clock_in, clock_out, status, total_hours, created_at, updated_at
	`

	created, err := scanRecord(q.QueryRow(ctx, insertQuery, rec.ID, rec.UserID, rec.Date, rec.ClockIn, rec.Status))
	if errors.Is(err, pgx.ErrNoRows) {
		return attendance.Record{}, attendance.ErrAlreadyPunchedIn
	}
	return created, err
}

func (r *attendanceRepositoryImpl) GetByUserAndDate(ctx context.Context, userID string, date time.Time) (*attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	selectQuery := `
		SELECT id, user_id, date, clock_in, clock_out, status, total_hours, created_at, updated_at
		FROM attendance_records
		WHERE user_id = $1 AND date = $2
	`

	rec, err := scanRecord(q.QueryRow(ctx, selectQuery, userID, date))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// CompletePunchOut closes the record only while it is still open; a raced
// second punch-out matches no row and maps to ErrAlreadyPunchedOut.
func (r *attendanceRepositoryImpl) CompletePunchOut(ctx context.Context, rec attendance.Record) (attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	updateQuery := `
		UPDATE attendance_records
		SET clock_out = $1, status = $2, total_hours = $3, updated_at = NOW()
		WHERE id = $4 AND clock_out IS NULL
		RETURNING id, user_id, date, clock_in, clock_out, status, total_hours, created_at, updated_at
	`

	updated, err := scanRecord(q.QueryRow(ctx, updateQuery, rec.ClockOut, rec.Status, rec.TotalHours, rec.ID))
	if errors.Is(err, pgx.ErrNoRows) {
		return attendance.Record{}, attendance.ErrAlreadyPunchedOut
	}
	return updated, err
}

func (r *attendanceRepositoryImpl) ListByUser(ctx context.Context, userID string) ([]attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	selectQuery := `
		SELECT id, user_id, date, clock_in, clock_out, status, total_hours, created_at, updated_at
		FROM attendance_records
		WHERE user_id = $1
		ORDER BY date DESC
	`

	rows, err := q.Query(ctx, selectQuery, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []attendance.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

func (r *attendanceRepositoryImpl) ListByUserAndRange(ctx context.Context, userID string, from, to time.Time) ([]attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	selectQuery := `
		SELECT id, user_id, date, clock_in, clock_out, status, total_hours, created_at, updated_at
		FROM attendance_records
		WHERE user_id = $1 AND date BETWEEN $2 AND $3
		ORDER BY date
	`

	rows, err := q.Query(ctx, selectQuery, userID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []attendance.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

func (r *attendanceRepositoryImpl) ListAll(ctx context.Context) ([]attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	selectQuery := `
		SELECT ` + recordColumns + `, u.full_name
		FROM attendance_records a
		JOIN users u ON u.id = a.user_id
		ORDER BY a.date DESC, u.full_name
	`

	rows, err := q.Query(ctx, selectQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []attendance.Record
	for rows.Next() {
		rec, err := scanRecordWithName(rows)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

func (r *attendanceRepositoryImpl) ListRecent(ctx context.Context, n int) ([]attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	selectQuery := `
		SELECT ` + recordColumns + `, u.full_name
		FROM attendance_records a
		JOIN users u ON u.id = a.user_id
		ORDER BY a.updated_at DESC
		LIMIT $1
	`

	rows, err := q.Query(ctx, selectQuery, n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []attendance.Record
	for rows.Next() {
		rec, err := scanRecordWithName(rows)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

func (r *attendanceRepositoryImpl) CreateAbsences(ctx context.Context, recs []attendance.Record) (int64, error) {
	q := GetQuerier(ctx, r.db)

	insertQuery := `
		INSERT INTO attendance_records (id, user_id, date, status)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, date) DO NOTHING
	`

	var created int64
	for _, rec := range recs {
		id := rec.ID
		if id == "" {
			id = uuid.NewString()
		}
		tag, err := q.Exec(ctx, insertQuery, id, rec.UserID, rec.Date, rec.Status)
		if err != nil {
			return created, err
		}
		created += tag.RowsAffected()
	}
	return created, nil
}
