package leave

import "context"

type Repository interface {
	Create(ctx context.Context, req *Request) error
	GetByID(ctx context.Context, id string) (*Request, error)

	// Decide flips a pending request to the decided status. It returns
	// ErrLeaveDecided when the request exists but is no longer pending and
	// ErrLeaveNotFound when it does not exist.
	Decide(ctx context.Context, id string, status Status, decidedBy string) (*Request, error)

	// Cancel withdraws a pending request owned by userID. The same
	// pending-only guard as Decide applies.
	Cancel(ctx context.Context, id, userID string) (*Request, error)

	ListByUser(ctx context.Context, userID string) ([]Request, error)
	ListAll(ctx context.Context) ([]Request, error)
	ListPending(ctx context.Context) ([]Request, error)

	// ApprovedDaysByType sums the day counts of the user's approved
	// requests whose start date falls inside the given year.
	ApprovedDaysByType(ctx context.Context, userID string, year int) (map[Type]int, error)

	// ApprovedOverlapping returns approved requests for the user whose
	// spans intersect the given inclusive date range.
	ApprovedOverlapping(ctx context.Context, userID, startDate, endDate string) ([]Request, error)
}
