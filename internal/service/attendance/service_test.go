package attendance

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scprithiviraj/smarthr/internal/domain/attendance"
	"github.com/scprithiviraj/smarthr/internal/pkg/metrics"
)

type fakeRepo struct {
	records map[string]attendance.Record // keyed by userID + "|" + date
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{records: make(map[string]attendance.Record)}
}

func key(userID string, date time.Time) string {
	return userID + "|" + date.Format("2006-01-02")
}

func (f *fakeRepo) Create(_ context.Context, rec attendance.Record) (attendance.Record, error) {
	k := key(rec.UserID, rec.Date)
	if _, exists := f.records[k]; exists {
		return attendance.Record{}, attendance.ErrAlreadyPunchedIn
	}
	f.records[k] = rec
	return rec, nil
}

func (f *fakeRepo) GetByUserAndDate(_ context.Context, userID string, date time.Time) (*attendance.Record, error) {
	rec, ok := f.records[key(userID, date)]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (f *fakeRepo) CompletePunchOut(_ context.Context, rec attendance.Record) (attendance.Record, error) {
	k := key(rec.UserID, rec.Date)
	current, ok := f.records[k]
	if !ok || current.ClockOut != nil {
		return attendance.Record{}, attendance.ErrAlreadyPunchedOut
	}
	f.records[k] = rec
	return rec, nil
}

func (f *fakeRepo) ListByUser(_ context.Context, userID string) ([]attendance.Record, error) {
	var recs []attendance.Record
	for _, rec := range f.records {
		if rec.UserID == userID {
			recs = append(recs, rec)
		}
	}
	return recs, nil
}

func (f *fakeRepo) ListByUserAndRange(_ context.Context, userID string, from, to time.Time) ([]attendance.Record, error) {
	var recs []attendance.Record
	for _, rec := range f.records {
		if rec.UserID == userID && !rec.Date.Before(from) && !rec.Date.After(to) {
			recs = append(recs, rec)
		}
	}
	return recs, nil
}

func (f *fakeRepo) ListAll(_ context.Context) ([]attendance.Record, error) {
	var recs []attendance.Record
	for _, rec := range f.records {
		recs = append(recs, rec)
	}
	return recs, nil
}

func (f *fakeRepo) ListRecent(_ context.Context, n int) ([]attendance.Record, error) {
	recs, _ := f.ListAll(nil)
	if len(recs) > n {
		recs = recs[:n]
	}
	return recs, nil
}

func (f *fakeRepo) CreateAbsences(_ context.Context, recs []attendance.Record) (int64, error) {
	var created int64
	for _, rec := range recs {
		k := key(rec.UserID, rec.Date)
		if _, exists := f.records[k]; exists {
			continue
		}
		f.records[k] = rec
		created++
	}
	return created, nil
}

type fakeLateRepo struct {
	requests map[string]attendance.LateRequest // keyed by id
}

func newFakeLateRepo() *fakeLateRepo {
	return &fakeLateRepo{requests: make(map[string]attendance.LateRequest)}
}

func (f *fakeLateRepo) Create(_ context.Context, req attendance.LateRequest) (attendance.LateRequest, error) {
	for _, existing := range f.requests {
		if existing.UserID == req.UserID && existing.Date.Equal(req.Date) {
			return attendance.LateRequest{}, attendance.ErrLateRequestExists
		}
	}
	f.requests[req.ID] = req
	return req, nil
}

func (f *fakeLateRepo) GetByID(_ context.Context, id string) (attendance.LateRequest, error) {
	req, ok := f.requests[id]
	if !ok {
		return attendance.LateRequest{}, attendance.ErrLateRequestNotFound
	}
	return req, nil
}

func (f *fakeLateRepo) GetByUserAndDate(_ context.Context, userID string, date time.Time) (*attendance.LateRequest, error) {
	for _, req := range f.requests {
		if req.UserID == userID && req.Date.Equal(date) {
			r := req
			return &r, nil
		}
	}
	return nil, nil
}

func (f *fakeLateRepo) Decide(_ context.Context, id string, status attendance.RequestStatus, decidedBy string) (attendance.LateRequest, error) {
	req, ok := f.requests[id]
	if !ok {
		return attendance.LateRequest{}, attendance.ErrLateRequestNotFound
	}
	if req.Status != attendance.RequestStatusPending {
		return attendance.LateRequest{}, attendance.ErrLateRequestDecided
	}
	now := time.Now()
	req.Status = status
	req.DecidedBy = &decidedBy
	req.DecidedAt = &now
	f.requests[id] = req
	return req, nil
}

func (f *fakeLateRepo) ListPending(_ context.Context) ([]attendance.LateRequest, error) {
	var pending []attendance.LateRequest
	for _, req := range f.requests {
		if req.Status == attendance.RequestStatusPending {
			pending = append(pending, req)
		}
	}
	return pending, nil
}

type noopInvalidator struct {
	calls int
}

func (n *noopInvalidator) InvalidateUser(context.Context, string) { n.calls++ }

func newTestService(repo *fakeRepo, lateRepo *fakeLateRepo, inv *noopInvalidator, now time.Time) *attendanceService {
	svc := NewAttendanceService(
		repo,
		lateRepo,
		attendance.DefaultClockPolicy(),
		metrics.NewWithRegistry(prometheus.NewRegistry()),
		inv,
		time.UTC,
	).(*attendanceService)
	svc.nowFn = func() time.Time { return now }
	return svc
}

func clockAt(hour, min int) time.Time {
	return time.Date(2025, 6, 16, hour, min, 0, 0, time.UTC)
}

func TestPunchIn_OnTime(t *testing.T) {
	repo, lateRepo, inv := newFakeRepo(), newFakeLateRepo(), &noopInvalidator{}
	svc := newTestService(repo, lateRepo, inv, clockAt(9, 3))

	resp, err := svc.PunchIn(context.Background(), "u-1")

	require.NoError(t, err)
	assert.Equal(t, "PRESENT", resp.Status)
	assert.Equal(t, "2025-06-16", resp.Date)
	assert.NotNil(t, resp.ClockInTime)
	assert.Equal(t, 1, inv.calls)
}

func TestPunchIn_TwiceSameDay(t *testing.T) {
	repo, lateRepo, inv := newFakeRepo(), newFakeLateRepo(), &noopInvalidator{}
	svc := newTestService(repo, lateRepo, inv, clockAt(9, 3))

	_, err := svc.PunchIn(context.Background(), "u-1")
	require.NoError(t, err)

	_, err = svc.PunchIn(context.Background(), "u-1")
	assert.ErrorIs(t, err, attendance.ErrAlreadyPunchedIn)
}

func TestPunchIn_LateWithoutRequest(t *testing.T) {
	svc := newTestService(newFakeRepo(), newFakeLateRepo(), &noopInvalidator{}, clockAt(9, 30))

	_, err := svc.PunchIn(context.Background(), "u-1")

	assert.ErrorIs(t, err, attendance.ErrLateApprovalRequired)
}

func TestPunchIn_LateRequestLifecycle(t *testing.T) {
	repo, lateRepo, inv := newFakeRepo(), newFakeLateRepo(), &noopInvalidator{}
	svc := newTestService(repo, lateRepo, inv, clockAt(10, 0))
	ctx := context.Background()

	submitted, err := svc.SubmitLateRequest(ctx, "u-1", attendance.LateRequestSubmission{Reason: "traffic"})
	require.NoError(t, err)
	assert.Equal(t, "PENDING", submitted.Status)

	// Pending request blocks the punch.
	_, err = svc.PunchIn(ctx, "u-1")
	assert.ErrorIs(t, err, attendance.ErrLateApprovalPending)

	// A second submission for the same day is refused.
	_, err = svc.SubmitLateRequest(ctx, "u-1", attendance.LateRequestSubmission{Reason: "again"})
	assert.ErrorIs(t, err, attendance.ErrLateRequestExists)

	decided, err := svc.DecideLateRequest(ctx, "admin-1", submitted.ID, attendance.DecisionApprove)
	require.NoError(t, err)
	assert.Equal(t, "APPROVED", decided.Status)
	require.NotNil(t, decided.DecidedBy)
	assert.Equal(t, "admin-1", *decided.DecidedBy)

	// Approval unlocks the punch, recorded as LATE.
	resp, err := svc.PunchIn(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, "LATE", resp.Status)

	// Decisions are terminal.
	_, err = svc.DecideLateRequest(ctx, "admin-1", submitted.ID, attendance.DecisionReject)
	assert.ErrorIs(t, err, attendance.ErrLateRequestDecided)
}

func TestPunchIn_RejectedRequestBlocksDay(t *testing.T) {
	repo, lateRepo, inv := newFakeRepo(), newFakeLateRepo(), &noopInvalidator{}
	svc := newTestService(repo, lateRepo, inv, clockAt(10, 0))
	ctx := context.Background()

	submitted, err := svc.SubmitLateRequest(ctx, "u-1", attendance.LateRequestSubmission{Reason: "traffic"})
	require.NoError(t, err)

	_, err = svc.DecideLateRequest(ctx, "admin-1", submitted.ID, attendance.DecisionReject)
	require.NoError(t, err)

	_, err = svc.PunchIn(ctx, "u-1")
	assert.ErrorIs(t, err, attendance.ErrLateRequestRejected)
}

func TestPunchOut_FullDayKeepsStatus(t *testing.T) {
	repo, lateRepo, inv := newFakeRepo(), newFakeLateRepo(), &noopInvalidator{}
	svc := newTestService(repo, lateRepo, inv, clockAt(9, 0))
	ctx := context.Background()

	_, err := svc.PunchIn(ctx, "u-1")
	require.NoError(t, err)

	svc.nowFn = func() time.Time { return clockAt(18, 30) }
	resp, err := svc.PunchOut(ctx, "u-1", attendance.PunchOutRequest{})

	require.NoError(t, err)
	assert.Equal(t, "PRESENT", resp.Status)
	require.NotNil(t, resp.TotalHours)
	assert.InDelta(t, 9.5, *resp.TotalHours, 0.01)
}

func TestPunchOut_EarlyConfirmedIsHalfDay(t *testing.T) {
	repo, lateRepo, inv := newFakeRepo(), newFakeLateRepo(), &noopInvalidator{}
	svc := newTestService(repo, lateRepo, inv, clockAt(9, 0))
	ctx := context.Background()

	_, err := svc.PunchIn(ctx, "u-1")
	require.NoError(t, err)

	svc.nowFn = func() time.Time { return clockAt(13, 0) }
	resp, err := svc.PunchOut(ctx, "u-1", attendance.PunchOutRequest{ConfirmHalfDay: true})

	require.NoError(t, err)
	assert.Equal(t, "HALF_DAY", resp.Status)
}

func TestPunchOut_EarlyUnconfirmedKeepsStatus(t *testing.T) {
	repo, lateRepo, inv := newFakeRepo(), newFakeLateRepo(), &noopInvalidator{}
	svc := newTestService(repo, lateRepo, inv, clockAt(9, 0))
	ctx := context.Background()

	_, err := svc.PunchIn(ctx, "u-1")
	require.NoError(t, err)

	svc.nowFn = func() time.Time { return clockAt(13, 0) }
	resp, err := svc.PunchOut(ctx, "u-1", attendance.PunchOutRequest{ConfirmHalfDay: false})

	require.NoError(t, err)
	assert.Equal(t, "PRESENT", resp.Status)
}

func TestPunchOut_WithoutPunchIn(t *testing.T) {
	svc := newTestService(newFakeRepo(), newFakeLateRepo(), &noopInvalidator{}, clockAt(17, 0))

	_, err := svc.PunchOut(context.Background(), "u-1", attendance.PunchOutRequest{})

	assert.ErrorIs(t, err, attendance.ErrNotPunchedIn)
}

func TestPunchOut_Twice(t *testing.T) {
	repo, lateRepo, inv := newFakeRepo(), newFakeLateRepo(), &noopInvalidator{}
	svc := newTestService(repo, lateRepo, inv, clockAt(9, 0))
	ctx := context.Background()

	_, err := svc.PunchIn(ctx, "u-1")
	require.NoError(t, err)

	svc.nowFn = func() time.Time { return clockAt(18, 30) }
	_, err = svc.PunchOut(ctx, "u-1", attendance.PunchOutRequest{})
	require.NoError(t, err)

	_, err = svc.PunchOut(ctx, "u-1", attendance.PunchOutRequest{})
	assert.ErrorIs(t, err, attendance.ErrAlreadyPunchedOut)
}

func TestPunchIn_AfterCompletedDay(t *testing.T) {
	repo, lateRepo, inv := newFakeRepo(), newFakeLateRepo(), &noopInvalidator{}
	svc := newTestService(repo, lateRepo, inv, clockAt(9, 0))
	ctx := context.Background()

	_, err := svc.PunchIn(ctx, "u-1")
	require.NoError(t, err)

	svc.nowFn = func() time.Time { return clockAt(18, 30) }
	_, err = svc.PunchOut(ctx, "u-1", attendance.PunchOutRequest{})
	require.NoError(t, err)

	svc.nowFn = func() time.Time { return clockAt(19, 0) }
	_, err = svc.PunchIn(ctx, "u-1")
	assert.ErrorIs(t, err, attendance.ErrAlreadyComplete)
}

func TestSubmitLateRequest_EmptyReason(t *testing.T) {
	svc := newTestService(newFakeRepo(), newFakeLateRepo(), &noopInvalidator{}, clockAt(10, 0))

	_, err := svc.SubmitLateRequest(context.Background(), "u-1", attendance.LateRequestSubmission{Reason: "   "})

	assert.Error(t, err)
}

func TestMyLateRequest_NoneToday(t *testing.T) {
	svc := newTestService(newFakeRepo(), newFakeLateRepo(), &noopInvalidator{}, clockAt(10, 0))

	resp, err := svc.MyLateRequest(context.Background(), "u-1")

	require.NoError(t, err)
	assert.Nil(t, resp)
}
