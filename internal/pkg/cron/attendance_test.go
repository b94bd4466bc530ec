package cron

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scprithiviraj/smarthr/internal/domain/attendance"
	"github.com/scprithiviraj/smarthr/internal/domain/user"
	"github.com/scprithiviraj/smarthr/internal/pkg/metrics"
)

type stubAttendanceRepo struct {
	existing map[string]bool // userID|date pairs that already have a record
	inserted []attendance.Record
}

func (s *stubAttendanceRepo) Create(_ context.Context, rec attendance.Record) (attendance.Record, error) {
	return rec, nil
}

func (s *stubAttendanceRepo) GetByUserAndDate(context.Context, string, time.Time) (*attendance.Record, error) {
	return nil, nil
}

func (s *stubAttendanceRepo) CompletePunchOut(_ context.Context, rec attendance.Record) (attendance.Record, error) {
	return rec, nil
}

func (s *stubAttendanceRepo) ListByUser(context.Context, string) ([]attendance.Record, error) {
	return nil, nil
}

func (s *stubAttendanceRepo) ListByUserAndRange(context.Context, string, time.Time, time.Time) ([]attendance.Record, error) {
	return nil, nil
}

func (s *stubAttendanceRepo) ListAll(context.Context) ([]attendance.Record, error) { return nil, nil }

func (s *stubAttendanceRepo) ListRecent(context.Context, int) ([]attendance.Record, error) {
	return nil, nil
}

func (s *stubAttendanceRepo) CreateAbsences(_ context.Context, recs []attendance.Record) (int64, error) {
	var created int64
	for _, rec := range recs {
		if s.existing[rec.UserID+"|"+rec.Date.Format("2006-01-02")] {
			continue
		}
		s.inserted = append(s.inserted, rec)
		created++
	}
	return created, nil
}

type stubUserRepo struct {
	ids []string
}

func (s *stubUserRepo) Create(_ context.Context, u user.User) (user.User, error) { return u, nil }

func (s *stubUserRepo) GetByID(context.Context, string) (user.User, error) {
	return user.User{}, user.ErrUserNotFound
}

func (s *stubUserRepo) GetByUsername(context.Context, string) (user.User, error) {
	return user.User{}, user.ErrUserNotFound
}

func (s *stubUserRepo) GetByEmail(context.Context, string) (user.User, error) {
	return user.User{}, user.ErrUserNotFound
}

func (s *stubUserRepo) ListIDs(context.Context) ([]string, error) { return s.ids, nil }

func (s *stubUserRepo) Count(context.Context) (int64, error) { return int64(len(s.ids)), nil }

func newJobs(attRepo *stubAttendanceRepo, userRepo *stubUserRepo, now time.Time) *AttendanceJobs {
	jobs := NewAttendanceJobs(attRepo, userRepo, metrics.NewWithRegistry(prometheus.NewRegistry()), time.UTC)
	jobs.nowFn = func() time.Time { return now }
	return jobs
}

func TestMarkAbsentEmployees(t *testing.T) {
	attRepo := &stubAttendanceRepo{existing: map[string]bool{
		"u-1|2025-06-15": true, // already punched in yesterday
	}}
	userRepo := &stubUserRepo{ids: []string{"u-1", "u-2", "u-3"}}
	jobs := newJobs(attRepo, userRepo, time.Date(2025, 6, 16, 0, 30, 0, 0, time.UTC))

	err := jobs.MarkAbsentEmployees(context.Background())

	require.NoError(t, err)
	require.Len(t, attRepo.inserted, 2)
	for _, rec := range attRepo.inserted {
		assert.Equal(t, attendance.StatusAbsent, rec.Status)
		assert.Equal(t, "2025-06-15", rec.Date.Format("2006-01-02"))
	}
}

func TestMarkAbsentEmployees_OutsideMidnightWindow(t *testing.T) {
	attRepo := &stubAttendanceRepo{}
	userRepo := &stubUserRepo{ids: []string{"u-1"}}
	jobs := newJobs(attRepo, userRepo, time.Date(2025, 6, 16, 14, 0, 0, 0, time.UTC))

	err := jobs.MarkAbsentEmployees(context.Background())

	require.NoError(t, err)
	assert.Empty(t, attRepo.inserted)
}
