package httpapi

import (
	"github.com/prometheus/client_golang/prometheus"
)

// metrics holds the instruments recorded by the generate handler.
type metrics struct {
	generations *prometheus.CounterVec
	duration    prometheus.Histogram
	treeNodes   prometheus.Histogram
}

func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		generations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "espalier_generations_total",
				Help: "Total number of pipeline generation requests by outcome",
			},
			[]string{"status"},
		),
		duration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name: "espalier_generation_duration_seconds",
				Help: "Duration of pipeline generations",
			},
		),
		treeNodes: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "espalier_tree_nodes",
				Help:    "Number of processes in generated trees",
				Buckets: []float64{1, 2, 5, 10, 20, 50, 100},
			},
		),
	}
	reg.MustRegister(m.generations, m.duration, m.treeNodes)
	return m
}
