// Package metrics holds the Prometheus collectors the site exports on
// /metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "atlas", Name: "http_requests_total", Help: "HTTP requests."},
		[]string{"route", "method", "status"},
	)
	HTTPLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "atlas", Name: "http_request_duration_seconds",
			Help:    "HTTP request duration seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)
	PlannerResults = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "atlas", Name: "planner_results_total", Help: "Planner sessions that reached the results step, counted once per plan."},
		[]string{"city"},
	)
	ChecklistEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "atlas", Name: "checklist_events_total", Help: "Checklist toggles, resets and completions."},
		[]string{"event"}, // check|uncheck|reset|complete
	)
	StoreOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "atlas", Name: "store_ops_total", Help: "Preference store operations."},
		[]string{"backend", "op", "result"}, // result: hit|miss|ok|error
	)
)

// InitRegistry returns a registry with the site collectors plus the Go and
// process collectors.
func InitRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(HTTPRequests, HTTPLatency, PlannerResults, ChecklistEvents, StoreOps)
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	return reg
}

// RegisterSessions exports the live session count reported by count under
// atlas_sessions_active{kind}.
func RegisterSessions(reg *prometheus.Registry, kind string, count func() int) {
	reg.MustRegister(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Namespace: "atlas", Name: "sessions_active",
			Help:        "Live planner and checklist sessions.",
			ConstLabels: prometheus.Labels{"kind": kind},
		},
		func() float64 { return float64(count()) },
	))
}

func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

// Middleware records request counts and latency labelled by chi route
// pattern, so /api/planner/{id} is one series rather than one per session.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rc := chi.RouteContext(r.Context()); rc != nil {
			if p := rc.RoutePattern(); p != "" {
				route = p
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		ObserveHTTP(route, r.Method, status, time.Since(start))
	})
}

func ObserveHTTP(route, method string, status int, dur time.Duration) {
	HTTPRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	HTTPLatency.WithLabelValues(route, method).Observe(dur.Seconds())
}

func ObservePlannerResult(city string) {
	PlannerResults.WithLabelValues(city).Inc()
}

func ObserveChecklist(event string) {
	ChecklistEvents.WithLabelValues(event).Inc()
}

// ObserveStore counts one store call. result is hit or miss for reads that
// succeed, ok for writes, error otherwise.
func ObserveStore(backend, op, result string) {
	StoreOps.WithLabelValues(backend, op, result).Inc()
}
