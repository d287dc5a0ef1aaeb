// Package observability bundles the Prometheus metrics of the serving
// surface: computation throughput, latency, and the latest openness readings.
package observability

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Nodal-Works/isovist/pkg/analytics"
)

// Collector bundles Prometheus metrics for the isovist serving surface.
type Collector struct {
	gatherer prometheus.Gatherer

	Computations     prometheus.Counter
	ComputeDurations prometheus.Histogram
	RaysCast         prometheus.Counter

	OpenPercent     prometheus.Gauge
	GreenViewFactor prometheus.Gauge
}

// NewCollector registers the isovist metrics against the provided registerer,
// defaulting to the global Prometheus registry when nil. Re-registration of
// identical collectors is tolerated so tests can build multiple servers.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	computations, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "isovist_computations_total",
		Help: "Total number of visibility computations performed.",
	}), "isovist_computations_total")
	if err != nil {
		return nil, err
	}

	durations, err := registerHistogram(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "isovist_compute_duration_seconds",
		Help:    "Visibility computation latency in seconds.",
		Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
	}), "isovist_compute_duration_seconds")
	if err != nil {
		return nil, err
	}

	rays, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "isovist_rays_cast_total",
		Help: "Total number of rays cast across all computations.",
	}), "isovist_rays_cast_total")
	if err != nil {
		return nil, err
	}

	openPercent, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "isovist_open_percent",
		Help: "Share of rays reaching max distance in the latest computation.",
	}), "isovist_open_percent")
	if err != nil {
		return nil, err
	}

	gvf, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "isovist_green_view_factor",
		Help: "Fraction of rays terminating on vegetation in the latest computation.",
	}), "isovist_green_view_factor")
	if err != nil {
		return nil, err
	}

	return &Collector{
		gatherer:         gatherer,
		Computations:     computations,
		ComputeDurations: durations,
		RaysCast:         rays,
		OpenPercent:      openPercent,
		GreenViewFactor:  gvf,
	}, nil
}

// RecordComputation records one finished visibility computation.
func (c *Collector) RecordComputation(seconds float64, stats analytics.VisibilityStats) {
	if c == nil {
		return
	}
	c.Computations.Inc()
	c.ComputeDurations.Observe(seconds)
	c.RaysCast.Add(float64(stats.TotalRays))
	c.OpenPercent.Set(stats.OpenPercent)
	c.GreenViewFactor.Set(stats.GreenViewFactor)
}

// Handler exposes a ready-to-use /metrics handler.
func (c *Collector) Handler() http.Handler {
	gatherer := c.gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

func registerCounter(reg prometheus.Registerer, counter prometheus.Counter, name string) (prometheus.Counter, error) {
	if err := reg.Register(counter); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Counter); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return counter, nil
}

func registerHistogram(reg prometheus.Registerer, hist prometheus.Histogram, name string) (prometheus.Histogram, error) {
	if err := reg.Register(hist); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Histogram); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return hist, nil
}

func registerGauge(reg prometheus.Registerer, gauge prometheus.Gauge, name string) (prometheus.Gauge, error) {
	if err := reg.Register(gauge); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Gauge); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return gauge, nil
}
