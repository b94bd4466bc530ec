package calendar

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/scprithiviraj/smarthr/internal/domain/attendance"
	"github.com/scprithiviraj/smarthr/internal/domain/calendar"
	"github.com/scprithiviraj/smarthr/internal/domain/leave"
	"github.com/scprithiviraj/smarthr/internal/pkg/cache"
	"github.com/scprithiviraj/smarthr/internal/pkg/metrics"
)

const cacheTTL = 10 * time.Minute

type calendarService struct {
	attendanceRepo attendance.Repository
	leaveRepo      leave.Repository
	cache          *cache.Cache
	metrics        *metrics.Metrics
}

func NewCalendarService(attendanceRepo attendance.Repository, leaveRepo leave.Repository, c *cache.Cache, m *metrics.Metrics) calendar.Service {
	return &calendarService{
		attendanceRepo: attendanceRepo,
		leaveRepo:      leaveRepo,
		cache:          c,
		metrics:        m,
	}
}

func (s *calendarService) MonthFor(ctx context.Context, userID string, year int, month time.Month) (*calendar.MonthView, error) {
	if month < time.January || month > time.December {
		return nil, calendar.ErrInvalidMonth
	}

	key := cacheKey(userID, year, month)
	if cached, ok := s.cache.Get(ctx, key); ok {
		var view calendar.MonthView
		if err := json.Unmarshal(cached, &view); err == nil {
			s.metrics.CalendarCache.WithLabelValues("hit").Inc()
			return &view, nil
		}
	}
	s.metrics.CalendarCache.WithLabelValues("miss").Inc()

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)

	records, err := s.attendanceRepo.ListByUserAndRange(ctx, userID, first, last)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance records: %w", err)
	}
	leaves, err := s.leaveRepo.ApprovedOverlapping(ctx, userID, first.Format("2006-01-02"), last.Format("2006-01-02"))
	if err != nil {
		return nil, fmt.Errorf("failed to list approved leaves: %w", err)
	}

	view := calendar.Reconcile(userID, year, month, records, leaves)

	if encoded, err := json.Marshal(view); err == nil {
		s.cache.Set(ctx, key, encoded, cacheTTL)
	}
	return &view, nil
}

func cacheKey(userID string, year int, month time.Month) string {
	return fmt.Sprintf("calendar:%s:%04d-%02d", userID, year, int(month))
}

// CacheInvalidator drops a user's cached calendar months whenever a write
// changes what a month would show.
type CacheInvalidator struct {
	cache *cache.Cache
}

func NewCacheInvalidator(c *cache.Cache) *CacheInvalidator {
	return &CacheInvalidator{cache: c}
}

func (i *CacheInvalidator) InvalidateUser(ctx context.Context, userID string) {
	i.cache.DeleteByPattern(ctx, fmt.Sprintf("calendar:%s:*", userID))
}
