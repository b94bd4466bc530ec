package calendar

// DayStatus is the merged status shown for one calendar day.
type DayStatus string

const (
	DayPresent DayStatus = "PRESENT"
	DayHalfDay DayStatus = "HALF_DAY"
	DayAbsent  DayStatus = "ABSENT"
	DayLate    DayStatus = "LATE"
	DayLeave   DayStatus = "LEAVE"
	DayNone    DayStatus = "NONE"
)

type Day struct {
	Date      string    `json:"date"`
	Status    DayStatus `json:"status"`
	LeaveType *string   `json:"leave_type,omitempty"`
}

type MonthView struct {
	UserID string `json:"user_id"`
	Year   int    `json:"year"`
	Month  int    `json:"month"`
	Days   []Day  `json:"days"`
}
