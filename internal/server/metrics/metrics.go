// Package metrics registers the server's Prometheus collectors and exposes
// them over HTTP.
package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"google.golang.org/grpc"
	"google.golang.org/grpc/status"
)

// Login outcomes.
const (
	LoginOK          = "ok"
	LoginInvalid     = "invalid"
	LoginUnknownUser = "unknown_user"
	LoginLocked      = "locked"
)

var (
	rpcRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mcp_rpc_requests_total",
			Help: "Total number of RPCs handled, by method and status code.",
		},
		[]string{"method", "code"},
	)

	rpcRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mcp_rpc_request_duration_seconds",
			Help:    "RPC handling latency in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method"},
	)

	loginAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mcp_login_attempts_total",
			Help: "Login attempts by outcome.",
		},
		[]string{"outcome"},
	)

	accountLockoutsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mcp_account_lockouts_total",
		Help: "Accounts locked after reaching the failed attempt threshold.",
	})

	auditWriteFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mcp_audit_write_failures_total",
		Help: "Audit entries that could not be persisted.",
	})

	notificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mcp_notifications_total",
			Help: "Email notifications attempted, by result.",
		},
		[]string{"result"},
	)
)

func LoginAttempt(outcome string) {
	loginAttemptsTotal.WithLabelValues(outcome).Inc()
}

func AccountLocked() {
	accountLockoutsTotal.Inc()
}

func AuditWriteFailed() {
	auditWriteFailuresTotal.Inc()
}

func Notification(sent bool) {
	result := "sent"
	if !sent {
		result = "failed"
	}
	notificationsTotal.WithLabelValues(result).Inc()
}

// UnaryServerInterceptor records request counts and latency per method.
func UnaryServerInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)

		rpcRequestsTotal.WithLabelValues(info.FullMethod, status.Code(err).String()).Inc()
		rpcRequestDuration.WithLabelValues(info.FullMethod).Observe(time.Since(start).Seconds())

		return resp, err
	}
}

// Handler serves the default registry in the Prometheus text format.
func Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	return mux
}
