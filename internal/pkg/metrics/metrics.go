package metrics

import (
	"errors"

	"marketplace/internal/pkg/errs"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	CommandsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "marketplace_commands_total",
		Help: "Total number of commands handled, by command and outcome.",
	},
		[]string{"command", "outcome"},
	)

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "marketplace_http_requests_total",
		Help: "Total number of HTTP requests.",
	},
		[]string{"route", "method", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "marketplace_http_request_duration_seconds",
		Help:    "HTTP request duration in seconds.",
		Buckets: prometheus.DefBuckets,
	},
		[]string{"route", "method"},
	)

	JobRunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "marketplace_job_runs_total",
		Help: "Total number of background job runs, by job and outcome.",
	},
		[]string{"job", "outcome"},
	)

	StakesRetrievedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "marketplace_stakes_retrieved_total",
		Help: "Total number of matured provider stakes released by the retrieval job.",
	},
		[]string{"kind"},
	)
)

// ObserveCommand counts one command under the outcome of err.
func ObserveCommand(command string, err error) {
	CommandsTotal.WithLabelValues(command, Outcome(err)).Inc()
}

// Outcome maps an error to a low-cardinality label.
func Outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, errs.ErrObjectNotFound):
		return "not_found"
	case errors.Is(err, errs.ErrUnauthorized):
		return "unauthorized"
	case errors.Is(err, errs.ErrInvalidState):
		return "invalid_state"
	case errors.Is(err, errs.ErrResourceExhausted):
		return "exhausted"
	case errors.Is(err, errs.ErrCollision):
		return "collision"
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return "invalid_input"
	default:
		return "error"
	}
}
