package user

import "context"

// Repository defines data access for user accounts.
type Repository interface {
	Create(ctx context.Context, u User) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
	GetByUsername(ctx context.Context, username string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)

	// ListIDs returns the IDs of every registered user. Used by the
	// end-of-day absent-marking job.
	ListIDs(ctx context.Context) ([]string, error)

	Count(ctx context.Context) (int64, error)
}
