package generate

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/c360studio/sdml/graph"
	"github.com/c360studio/sdml/vocabulary/sdml"
)

// Metrics holds the Prometheus collectors for graph lowering.
type Metrics struct {
	ModulesTotal    *prometheus.CounterVec
	TriplesTotal    *prometheus.CounterVec
	LoweringSeconds prometheus.Histogram
}

// NewMetrics registers the lowering collectors with reg. A nil reg uses the
// default registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	return &Metrics{
		ModulesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "sdml",
				Subsystem: "generate",
				Name:      "modules_total",
				Help:      "Modules lowered to RDF, by result",
			},
			[]string{"result"},
		),
		TriplesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "sdml",
				Subsystem: "generate",
				Name:      "triples_total",
				Help:      "Triples emitted, by registered sdml predicate or \"other\"",
			},
			[]string{"predicate"},
		),
		LoweringSeconds: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "sdml",
				Subsystem: "generate",
				Name:      "lowering_duration_seconds",
				Help:      "Time spent lowering one module",
				Buckets:   []float64{.0005, .001, .005, .01, .05, .1, .5, 1},
			},
		),
	}
}

func (m *Metrics) observe(g *graph.Graph, started time.Time, err error) {
	if m == nil {
		return
	}
	m.LoweringSeconds.Observe(time.Since(started).Seconds())
	if err != nil {
		m.ModulesTotal.WithLabelValues("error").Inc()
		return
	}
	m.ModulesTotal.WithLabelValues("ok").Inc()
	for _, t := range g.Triples() {
		name, ok := sdml.DottedName(string(t.Predicate))
		if !ok {
			name = "other"
		}
		m.TriplesTotal.WithLabelValues(name).Inc()
	}
}
