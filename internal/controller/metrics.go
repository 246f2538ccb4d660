package controller

import (
	stderrors "errors"
	"github.com/prometheus/client_golang/prometheus"
	"time"
)

const (
	outcomeOK          = "ok"
	outcomeError       = "error"
	outcomeUnavailable = "unavailable"
)

type metrics struct {
	lookups     *prometheus.CounterVec
	resolutions *prometheus.CounterVec
	duration    *prometheus.HistogramVec
}

// newMetrics builds the controller collectors. With a nil registerer they are never registered;
// collectors already registered under the same name are reused.
func newMetrics(reg prometheus.Registerer, namespace string) *metrics {
	return &metrics{
		lookups: register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_lookups_total",
			Help:      "Cache lookups by entry kind and result (hit or miss).",
		}, []string{"kind", "result"})),
		resolutions: register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "source_resolutions_total",
			Help:      "Cache misses resolved from the source by entry kind and outcome.",
		}, []string{"kind", "outcome"})),
		duration: register(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "source_resolution_seconds",
			Help:      "Time spent resolving a cache miss from the source.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
		}, []string{"kind"})),
	}
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) C {
	if reg == nil {
		return c
	}
	if err := reg.Register(c); err != nil {
		var already prometheus.AlreadyRegisteredError
		if stderrors.As(err, &already) {
			if existing, ok := already.ExistingCollector.(C); ok {
				return existing
			}
		}
		panic(err)
	}
	return c
}

func (m *metrics) lookup(kind string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.lookups.WithLabelValues(kind, result).Inc()
}

func (m *metrics) resolved(kind string, started time.Time, err error) {
	outcome := outcomeOK
	switch {
	case isUnavailable(err):
		outcome = outcomeUnavailable
	case err != nil:
		outcome = outcomeError
	}
	m.resolutions.WithLabelValues(kind, outcome).Inc()
	m.duration.WithLabelValues(kind).Observe(time.Since(started).Seconds())
}
