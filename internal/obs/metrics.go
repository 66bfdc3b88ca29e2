package obs

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

var (
	authRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "adminboard_auth_requests_total",
		Help: "Auth operations by outcome.",
	}, []string{"op", "outcome"})

	gateRejections = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "adminboard_gate_rejections_total",
		Help: "Requests rejected by the authorization gate, by reason.",
	}, []string{"reason"})
)

// IncAuth records an auth operation outcome ("ok" or an error kind).
func IncAuth(op, outcome string) {
	authRequests.WithLabelValues(op, outcome).Inc()
}

// IncGateRejection records a request turned away at the gate.
func IncGateRejection(reason string) {
	gateRejections.WithLabelValues(reason).Inc()
}

// BootstrapMetricsServer serves /metrics and /healthz on a side listener.
func BootstrapMetricsServer(addr string, health func(context.Context) error, l *zap.Logger) *http.Server {
	ms := createMetricsServer(addr, health)

	go func() {
		l.Info("metrics listening", zap.String("addr", addr))
		if err := ms.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			l.Error("metrics server error", zap.Error(err))
		}
	}()

	return ms
}

func createMetricsServer(addr string, health func(context.Context) error) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
		defer cancel()
		if err := health(ctx); err != nil {
			http.Error(w, "unhealthy", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	})
	return &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		IdleTimeout:  30 * time.Second,
	}
}
