package service

import (
	"context"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

type metricsUseCaseObserver struct {
	calls    *prometheus.CounterVec
	duration *prometheus.HistogramVec
	rows     *prometheus.HistogramVec
}

// NewMetricsUseCaseObserver records use-case counts, latencies and
// filtered row counts on reg.
func NewMetricsUseCaseObserver(reg prometheus.Registerer) UseCaseObserver {
	o := &metricsUseCaseObserver{
		calls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "suivi",
			Name:      "use_case_total",
			Help:      "Service use-case executions by outcome.",
		}, []string{"use_case", "success"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "suivi",
			Name:      "use_case_duration_seconds",
			Help:      "Service use-case latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"use_case"}),
		rows: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "suivi",
			Name:      "dashboard_rows",
			Help:      "Rows remaining after filtering, per dashboard pass.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		}, []string{"sheet"}),
	}
	reg.MustRegister(o.calls, o.duration, o.rows)
	return o
}

func (o *metricsUseCaseObserver) ObserveUseCase(_ context.Context, event UseCaseEvent) {
	o.calls.WithLabelValues(event.Name, strconv.FormatBool(event.Success)).Inc()
	o.duration.WithLabelValues(event.Name).Observe(event.Duration.Seconds())
	if n, ok := event.Fields["rows_out"].(int); ok {
		sheet, _ := event.Fields["sheet"].(string)
		o.rows.WithLabelValues(sheet).Observe(float64(n))
	}
}
