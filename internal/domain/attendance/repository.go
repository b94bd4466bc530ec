package attendance

import (
	"context"
	"time"
)

// Repository defines data access for attendance records. At most one record
// exists per (user, date); Create relies on that uniqueness to stay atomic
// against concurrent identical punch-ins.
type Repository interface {
	// Create inserts the day's record. Returns ErrAlreadyPunchedIn when a
	// record for (user, date) already exists, including when a concurrent
	// request won the race.
	Create(ctx context.Context, rec Record) (Record, error)

	// GetByUserAndDate returns nil without error when no record exists.
	GetByUserAndDate(ctx context.Context, userID string, date time.Time) (*Record, error)

	// CompletePunchOut closes an open record. Returns ErrAlreadyPunchedOut
	// when the record was closed by a concurrent request.
	CompletePunchOut(ctx context.Context, rec Record) (Record, error)

	// ListByUser returns the user's records, newest first.
	ListByUser(ctx context.Context, userID string) ([]Record, error)

	// ListByUserAndRange returns records with from <= date <= to.
	ListByUserAndRange(ctx context.Context, userID string, from, to time.Time) ([]Record, error)

	// ListAll returns every record, newest first (admin view).
	ListAll(ctx context.Context) ([]Record, error)

	// ListRecent returns the latest n records across all users.
	ListRecent(ctx context.Context, n int) ([]Record, error)

	// CreateAbsences inserts ABSENT records for the given (user, date) pairs,
	// skipping any pair that already has a record of any status.
	CreateAbsences(ctx context.Context, recs []Record) (int64, error)
}

// LateRequestRepository defines data access for late punch-in requests.
type LateRequestRepository interface {
	// Create inserts a PENDING request. Returns ErrLateRequestExists when a
	// request for (user, date) already exists.
	Create(ctx context.Context, req LateRequest) (LateRequest, error)

	// GetByID returns ErrLateRequestNotFound when missing.
	GetByID(ctx context.Context, id string) (LateRequest, error)

	// GetByUserAndDate returns nil without error when no request exists.
	GetByUserAndDate(ctx context.Context, userID string, date time.Time) (*LateRequest, error)

	// Decide transitions a PENDING request to the given terminal status.
	// Returns ErrLateRequestDecided when the request is no longer PENDING,
	// ErrLateRequestNotFound when it does not exist.
	Decide(ctx context.Context, id string, status RequestStatus, decidedBy string) (LateRequest, error)

	// ListPending returns all undecided requests, oldest first.
	ListPending(ctx context.Context) ([]LateRequest, error)
}
