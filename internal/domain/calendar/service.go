package calendar

import (
	"context"
	"errors"
	"time"
)

var ErrInvalidMonth = errors.New("month must be between 1 and 12")

type Service interface {
	MonthFor(ctx context.Context, userID string, year int, month time.Month) (*MonthView, error)
}

// Invalidator drops a user's cached calendar months. Write paths that change
// what a month would show call it; a nil-safe no-op implementation backs
// deployments without a cache.
type Invalidator interface {
	InvalidateUser(ctx context.Context, userID string)
}
