package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/scprithiviraj/smarthr/internal/domain/auth"
	"github.com/scprithiviraj/smarthr/internal/domain/calendar"
	"github.com/scprithiviraj/smarthr/internal/handler/http/middleware"
	"github.com/scprithiviraj/smarthr/internal/handler/http/response"
)

type CalendarHandler interface {
	MyMonth(w http.ResponseWriter, r *http.Request)
}

type calendarHandlerImpl struct {
	calendarService calendar.Service
}

func NewCalendarHandler(calendarService calendar.Service) CalendarHandler {
	return &calendarHandlerImpl{calendarService: calendarService}
}

// MyMonth serves the merged attendance-and-leave view for ?year=&month=,
// defaulting to the current month.
func (h *calendarHandlerImpl) MyMonth(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	now := time.Now()
	year := now.Year()
	month := int(now.Month())

	if raw := r.URL.Query().Get("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			response.BadRequest(w, "Invalid year", nil)
			return
		}
		year = parsed
	}
	if raw := r.URL.Query().Get("month"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			response.BadRequest(w, "Invalid month", nil)
			return
		}
		month = parsed
	}

	view, err := h.calendarService.MonthFor(r.Context(), userID, year, time.Month(month))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, view)
}
