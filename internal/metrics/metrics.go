// Package metrics provides Prometheus metrics for scheduling runs and the
// graph viewer.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ─── Scheduling ─────────────────────────────────────────────────────────────

// ScheduleRuns counts scheduling runs by outcome ("completed" or "failed").
var ScheduleRuns = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "cpm",
	Name:      "schedule_runs_total",
	Help:      "Total scheduling runs.",
}, []string{"outcome"})

// Activities is the number of activities in the last scheduled network.
var Activities = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "cpm",
	Name:      "activities",
	Help:      "Activities in the last scheduled network.",
})

// ProjectDuration is the project duration of the last successful run.
var ProjectDuration = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "cpm",
	Name:      "project_duration",
	Help:      "Project duration of the last successful run, in time units.",
})

// CriticalActivities is the length of the last selected critical path.
var CriticalActivities = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "cpm",
	Name:      "critical_path_activities",
	Help:      "Activities on the last selected critical path.",
})

// ─── Viewer ─────────────────────────────────────────────────────────────────

// HTTPRequests counts viewer requests by route pattern and status code.
var HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "cpm",
	Subsystem: "viewer",
	Name:      "requests_total",
	Help:      "Total HTTP requests served by the viewer.",
}, []string{"route", "status"})

// HTTPLatency tracks viewer request duration in seconds.
var HTTPLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Namespace: "cpm",
	Subsystem: "viewer",
	Name:      "request_duration_seconds",
	Help:      "Viewer request duration in seconds.",
	Buckets:   prometheus.DefBuckets,
}, []string{"route"})

// ObserveRun records the outcome of a scheduling run over a network of size
// activities. duration and critical are ignored for failed runs.
func ObserveRun(activities, duration, critical int, err error) {
	Activities.Set(float64(activities))
	if err != nil {
		ScheduleRuns.WithLabelValues("failed").Inc()
		return
	}
	ScheduleRuns.WithLabelValues("completed").Inc()
	ProjectDuration.Set(float64(duration))
	CriticalActivities.Set(float64(critical))
}
