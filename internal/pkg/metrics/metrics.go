package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the service counters. All fields are always non-nil; tests
// construct an isolated instance with NewWithRegistry.
type Metrics struct {
	PunchIns       *prometheus.CounterVec
	PunchInErrors  *prometheus.CounterVec
	PunchOuts      prometheus.Counter
	LateDecisions  *prometheus.CounterVec
	LeaveDecisions *prometheus.CounterVec
	LeaveRequests  *prometheus.CounterVec
	AbsencesMarked prometheus.Counter
	CalendarCache  *prometheus.CounterVec
}

func New() *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

func NewWithRegistry(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		PunchIns: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "smarthr_punch_ins_total",
			Help: "Successful punch-ins by resulting status.",
		}, []string{"status"}),
		PunchInErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "smarthr_punch_in_rejections_total",
			Help: "Rejected punch-in attempts by reason.",
		}, []string{"reason"}),
		PunchOuts: factory.NewCounter(prometheus.CounterOpts{
			Name: "smarthr_punch_outs_total",
			Help: "Successful punch-outs.",
		}),
		LateDecisions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "smarthr_late_request_decisions_total",
			Help: "Late attendance request decisions by outcome.",
		}, []string{"decision"}),
		LeaveDecisions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "smarthr_leave_decisions_total",
			Help: "Leave request decisions by outcome.",
		}, []string{"decision"}),
		LeaveRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "smarthr_leave_requests_total",
			Help: "Submitted leave requests by type.",
		}, []string{"type"}),
		AbsencesMarked: factory.NewCounter(prometheus.CounterOpts{
			Name: "smarthr_absences_marked_total",
			Help: "Attendance rows created as ABSENT by the nightly job.",
		}),
		CalendarCache: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "smarthr_calendar_cache_total",
			Help: "Calendar month cache lookups by result.",
		}, []string{"result"}),
	}
}
