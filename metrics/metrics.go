package metrics

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

var (
	requests = prometheus.NewCounterVec(prometheus.CounterOpts{Name: "ask_requests_total", Help: "HTTP requests by status code"}, []string{"code"})
	duration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "ask_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60},
	})
	agentErrors = prometheus.NewCounter(prometheus.CounterOpts{Name: "ask_agent_errors_total", Help: "Agent invocations that failed"})
	toolCalls   = prometheus.NewCounterVec(prometheus.CounterOpts{Name: "ask_tool_calls_total", Help: "Tool invocations"}, []string{"tool", "status"})
	modelCalls  = prometheus.NewCounterVec(prometheus.CounterOpts{Name: "ask_model_calls_total", Help: "Model round trips"}, []string{"provider", "status"})
)

func init() {
	prometheus.MustRegister(requests, duration, agentErrors, toolCalls, modelCalls)
}

// Start serves the Prometheus handler on listen until ctx is done.
// An empty listen address disables the metrics endpoint.
func Start(ctx context.Context, listen string, log *logrus.Entry) error {
	if listen == "" {
		return nil
	}
	srv := &http.Server{
		Addr:              listen,
		Handler:           promhttp.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		_ = srv.Shutdown(context.Background())
	}()
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			if log != nil {
				log.WithError(err).Error("metrics server failed")
			}
		}
	}()
	return nil
}

func ObserveRequest(code int, elapsed time.Duration) {
	requests.WithLabelValues(strconv.Itoa(code)).Inc()
	duration.Observe(elapsed.Seconds())
}

func IncAgentError() { agentErrors.Inc() }

func IncToolCall(tool string, status string) { toolCalls.WithLabelValues(tool, status).Inc() }

func IncModelCall(provider string, status string) { modelCalls.WithLabelValues(provider, status).Inc() }
