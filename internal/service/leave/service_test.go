package leave

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scprithiviraj/smarthr/internal/domain/leave"
	"github.com/scprithiviraj/smarthr/internal/pkg/metrics"
)

type fakeRepo struct {
	requests map[string]leave.Request
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{requests: make(map[string]leave.Request)}
}

func (f *fakeRepo) Create(_ context.Context, req *leave.Request) error {
	f.requests[req.ID] = *req
	return nil
}

func (f *fakeRepo) GetByID(_ context.Context, id string) (*leave.Request, error) {
	req, ok := f.requests[id]
	if !ok {
		return nil, leave.ErrLeaveNotFound
	}
	return &req, nil
}

func (f *fakeRepo) Decide(_ context.Context, id string, status leave.Status, decidedBy string) (*leave.Request, error) {
	req, ok := f.requests[id]
	if !ok {
		return nil, leave.ErrLeaveNotFound
	}
	if req.Status != leave.StatusPending {
		return nil, leave.ErrLeaveDecided
	}
	now := time.Now()
	req.Status = status
	req.DecidedBy = &decidedBy
	req.DecidedAt = &now
	f.requests[id] = req
	return &req, nil
}

func (f *fakeRepo) Cancel(_ context.Context, id, userID string) (*leave.Request, error) {
	req, ok := f.requests[id]
	if !ok {
		return nil, leave.ErrLeaveNotFound
	}
	if req.UserID != userID {
		return nil, leave.ErrNotLeaveOwner
	}
	if req.Status != leave.StatusPending {
		return nil, leave.ErrLeaveDecided
	}
	req.Status = leave.StatusCancelled
	f.requests[id] = req
	return &req, nil
}

func (f *fakeRepo) ListByUser(_ context.Context, userID string) ([]leave.Request, error) {
	var reqs []leave.Request
	for _, req := range f.requests {
		if req.UserID == userID {
			reqs = append(reqs, req)
		}
	}
	return reqs, nil
}

func (f *fakeRepo) ListAll(_ context.Context) ([]leave.Request, error) {
	var reqs []leave.Request
	for _, req := range f.requests {
		reqs = append(reqs, req)
	}
	return reqs, nil
}

func (f *fakeRepo) ListPending(_ context.Context) ([]leave.Request, error) {
	var reqs []leave.Request
	for _, req := range f.requests {
		if req.Status == leave.StatusPending {
			reqs = append(reqs, req)
		}
	}
	return reqs, nil
}

func (f *fakeRepo) ApprovedDaysByType(_ context.Context, userID string, year int) (map[leave.Type]int, error) {
	used := make(map[leave.Type]int)
	for _, req := range f.requests {
		if req.UserID != userID || req.Status != leave.StatusApproved {
			continue
		}
		start, _ := time.Parse("2006-01-02", req.StartDate)
		if start.Year() == year {
			used[req.Type] += req.Days
		}
	}
	return used, nil
}

func (f *fakeRepo) ApprovedOverlapping(_ context.Context, userID, startDate, endDate string) ([]leave.Request, error) {
	var reqs []leave.Request
	for _, req := range f.requests {
		if req.UserID == userID && req.Status == leave.StatusApproved &&
			req.StartDate <= endDate && startDate <= req.EndDate {
			reqs = append(reqs, req)
		}
	}
	return reqs, nil
}

type noopInvalidator struct {
	calls int
}

func (n *noopInvalidator) InvalidateUser(context.Context, string) { n.calls++ }

func newTestService(repo *fakeRepo, inv *noopInvalidator, now time.Time) *leaveService {
	svc := NewLeaveService(
		repo,
		metrics.NewWithRegistry(prometheus.NewRegistry()),
		inv,
		time.UTC,
	).(*leaveService)
	svc.nowFn = func() time.Time { return now }
	return svc
}

var testNow = time.Date(2025, 6, 16, 11, 0, 0, 0, time.UTC)

func TestApply(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, &noopInvalidator{}, testNow)

	req, err := svc.Apply(context.Background(), "u-1", &leave.ApplyRequest{
		Type:      "SICK",
		StartDate: "2025-06-20",
		EndDate:   "2025-06-22",
		Reason:    "fever",
	})

	require.NoError(t, err)
	assert.Equal(t, leave.StatusPending, req.Status)
	assert.Equal(t, 3, req.Days)
	assert.NotEmpty(t, req.ID)
}

func TestApply_ValidationErrors(t *testing.T) {
	svc := newTestService(newFakeRepo(), &noopInvalidator{}, testNow)
	ctx := context.Background()

	_, err := svc.Apply(ctx, "u-1", &leave.ApplyRequest{Type: "SICK", StartDate: "2025-06-10", EndDate: "2025-06-12", Reason: "x"})
	assert.ErrorIs(t, err, leave.ErrDateInPast)

	_, err = svc.Apply(ctx, "u-1", &leave.ApplyRequest{Type: "CASUAL", StartDate: "2025-06-20", EndDate: "2025-06-25", Reason: "x"})
	assert.ErrorIs(t, err, leave.ErrCasualTooLong)

	_, err = svc.Apply(ctx, "u-1", &leave.ApplyRequest{Type: "HOLIDAY", StartDate: "2025-06-20", EndDate: "2025-06-20", Reason: "x"})
	assert.ErrorIs(t, err, leave.ErrInvalidLeaveType)
}

func TestDecide(t *testing.T) {
	repo := newFakeRepo()
	inv := &noopInvalidator{}
	svc := newTestService(repo, inv, testNow)
	ctx := context.Background()

	req, err := svc.Apply(ctx, "u-1", &leave.ApplyRequest{Type: "EARNED", StartDate: "2025-06-20", EndDate: "2025-06-21", Reason: "trip"})
	require.NoError(t, err)

	decided, err := svc.Decide(ctx, "admin-1", req.ID, leave.DecisionApproved)
	require.NoError(t, err)
	assert.Equal(t, leave.StatusApproved, decided.Status)
	require.NotNil(t, decided.DecidedBy)
	assert.Equal(t, "admin-1", *decided.DecidedBy)
	assert.Equal(t, 1, inv.calls)

	// Terminal: a second decision is refused.
	_, err = svc.Decide(ctx, "admin-1", req.ID, leave.DecisionRejected)
	assert.ErrorIs(t, err, leave.ErrLeaveDecided)
}

func TestDecide_UnknownLeave(t *testing.T) {
	svc := newTestService(newFakeRepo(), &noopInvalidator{}, testNow)

	_, err := svc.Decide(context.Background(), "admin-1", "missing", leave.DecisionApproved)

	assert.ErrorIs(t, err, leave.ErrLeaveNotFound)
}

func TestCancel(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, &noopInvalidator{}, testNow)
	ctx := context.Background()

	req, err := svc.Apply(ctx, "u-1", &leave.ApplyRequest{Type: "SICK", StartDate: "2025-06-20", EndDate: "2025-06-20", Reason: "fever"})
	require.NoError(t, err)

	_, err = svc.Cancel(ctx, "u-2", req.ID)
	assert.ErrorIs(t, err, leave.ErrNotLeaveOwner)

	cancelled, err := svc.Cancel(ctx, "u-1", req.ID)
	require.NoError(t, err)
	assert.Equal(t, leave.StatusCancelled, cancelled.Status)

	// A cancelled request can no longer be decided.
	_, err = svc.Decide(ctx, "admin-1", req.ID, leave.DecisionApproved)
	assert.ErrorIs(t, err, leave.ErrLeaveDecided)
}

func TestBalance(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, &noopInvalidator{}, testNow)
	ctx := context.Background()

	req, err := svc.Apply(ctx, "u-1", &leave.ApplyRequest{Type: "SICK", StartDate: "2025-06-20", EndDate: "2025-06-24", Reason: "fever"})
	require.NoError(t, err)
	_, err = svc.Decide(ctx, "admin-1", req.ID, leave.DecisionApproved)
	require.NoError(t, err)

	// Pending requests do not count against the balance.
	_, err = svc.Apply(ctx, "u-1", &leave.ApplyRequest{Type: "SICK", StartDate: "2025-07-01", EndDate: "2025-07-02", Reason: "checkup"})
	require.NoError(t, err)

	entries, err := svc.Balance(ctx, "u-1")
	require.NoError(t, err)

	byType := make(map[leave.Type]leave.BalanceEntry)
	for _, e := range entries {
		byType[e.Type] = e
	}
	assert.Equal(t, 5, byType[leave.TypeSick].Used)
	assert.Equal(t, 7, byType[leave.TypeSick].Remaining)
	assert.Equal(t, 0, byType[leave.TypeCasual].Used)
	assert.Equal(t, 12, byType[leave.TypeCasual].Remaining)
}
