package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the pipeline's Prometheus collectors on a private
// registry. A nil Metrics records nothing.
type Metrics struct {
	registry     *prometheus.Registry
	taskRuns     *prometheus.CounterVec
	taskDuration *prometheus.HistogramVec
}

// NewMetrics returns a fresh metrics set.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		taskRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cubepipe",
			Subsystem: "pipeline",
			Name:      "task_runs_total",
			Help:      "Task run attempts by task and outcome.",
		}, []string{"task", "status"}),
		taskDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "cubepipe",
			Subsystem: "pipeline",
			Name:      "task_duration_seconds",
			Help:      "Wall-clock duration of task attempts.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"task"}),
	}
	m.registry.MustRegister(m.taskRuns, m.taskDuration)
	return m
}

// ObserveRun records one task attempt.
func (m *Metrics) ObserveRun(task, status string, d time.Duration) {
	if m == nil {
		return
	}
	m.taskRuns.WithLabelValues(task, status).Inc()
	m.taskDuration.WithLabelValues(task).Observe(d.Seconds())
}

// Serve exposes /metrics on addr until ctx is cancelled.
func (m *Metrics) Serve(ctx context.Context, addr string, logger *slog.Logger) error {
	if m == nil {
		return nil
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("metrics listener starting", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
