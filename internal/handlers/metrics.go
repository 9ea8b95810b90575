package handlers

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	droneWrites = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dronedb_drone_writes_total",
		Help: "Successful drone catalog writes by operation",
	}, []string{"op"})

	listResultSize = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "dronedb_list_result_size",
		Help:    "Number of drone records returned per list request",
		Buckets: []float64{0, 1, 5, 10, 25, 50, 100},
	})
)
