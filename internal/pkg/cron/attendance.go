package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/scprithiviraj/smarthr/internal/domain/attendance"
	"github.com/scprithiviraj/smarthr/internal/domain/user"
	"github.com/scprithiviraj/smarthr/internal/pkg/metrics"
)

type AttendanceJobs struct {
	attendanceRepo attendance.Repository
	userRepo       user.Repository
	metrics        *metrics.Metrics
	location       *time.Location
	nowFn          func() time.Time
}

func NewAttendanceJobs(attendanceRepo attendance.Repository, userRepo user.Repository, m *metrics.Metrics, location *time.Location) *AttendanceJobs {
	return &AttendanceJobs{
		attendanceRepo: attendanceRepo,
		userRepo:       userRepo,
		metrics:        m,
		location:       location,
		nowFn:          time.Now,
	}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("mark_absent_employees", 1*time.Hour, j.MarkAbsentEmployees)
}

// MarkAbsentEmployees backfills an ABSENT record for every employee with no
// attendance row for yesterday. It runs hourly but acts only during the
// first hour after local midnight; the insert skips existing rows, so a
// repeated run in that hour is harmless.
func (j *AttendanceJobs) MarkAbsentEmployees(ctx context.Context) error {
	now := j.nowFn().In(j.location)
	if now.Hour() != 0 {
		return nil
	}

	yesterday := now.AddDate(0, 0, -1)
	date := time.Date(yesterday.Year(), yesterday.Month(), yesterday.Day(), 0, 0, 0, 0, time.UTC)

	userIDs, err := j.userRepo.ListIDs(ctx)
	if err != nil {
		return fmt.Errorf("failed to list users: %w", err)
	}
	if len(userIDs) == 0 {
		return nil
	}

	recs := make([]attendance.Record, 0, len(userIDs))
	for _, id := range userIDs {
		recs = append(recs, attendance.Record{
			UserID: id,
			Date:   date,
			Status: attendance.StatusAbsent,
		})
	}

	created, err := j.attendanceRepo.CreateAbsences(ctx, recs)
	if err != nil {
		return fmt.Errorf("failed to create absences: %w", err)
	}
	if created > 0 {
		j.metrics.AbsencesMarked.Add(float64(created))
		slog.Info("Cron: Marked absent employees", "date", date.Format("2006-01-02"), "count", created)
	}
	return nil
}
