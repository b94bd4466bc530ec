package calendar

import (
	"time"

	"github.com/scprithiviraj/smarthr/internal/domain/attendance"
	"github.com/scprithiviraj/smarthr/internal/domain/leave"
)

const dateLayout = "2006-01-02"

// Reconcile merges a month's attendance records and approved leaves into one
// entry per calendar day. An approved leave always wins over whatever the
// attendance table recorded for the same day; days with neither are NONE.
func Reconcile(userID string, year int, month time.Month, records []attendance.Record, leaves []leave.Request) MonthView {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	daysInMonth := first.AddDate(0, 1, -1).Day()

	byDate := make(map[string]DayStatus, len(records))
	for i := range records {
		byDate[records[i].Date.Format(dateLayout)] = DayStatus(records[i].Status)
	}

	leaveByDate := make(map[string]leave.Type)
	for i := range leaves {
		for _, date := range datesOf(&leaves[i]) {
			leaveByDate[date] = leaves[i].Type
		}
	}

	view := MonthView{UserID: userID, Year: year, Month: int(month), Days: make([]Day, 0, daysInMonth)}
	for d := 1; d <= daysInMonth; d++ {
		date := time.Date(year, month, d, 0, 0, 0, 0, time.UTC).Format(dateLayout)
		day := Day{Date: date, Status: DayNone}
		if status, ok := byDate[date]; ok {
			day.Status = status
		}
		if leaveType, ok := leaveByDate[date]; ok {
			day.Status = DayLeave
			lt := string(leaveType)
			day.LeaveType = &lt
		}
		view.Days = append(view.Days, day)
	}
	return view
}

func datesOf(req *leave.Request) []string {
	start, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		return nil
	}
	end, err := time.Parse(dateLayout, req.EndDate)
	if err != nil {
		return nil
	}
	var dates []string
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d.Format(dateLayout))
	}
	return dates
}
