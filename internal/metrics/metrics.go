package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SourceFetchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "coldwatch_source_fetches_total",
			Help: "Total workbook source fetch attempts",
		},
		[]string{"source", "status"},
	)

	ReadingsNormalized = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "coldwatch_readings_normalized_total",
			Help: "Readings produced by the normalization transform",
		},
		[]string{"channel"},
	)

	RowsDropped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "coldwatch_rows_dropped_total",
			Help: "Raw records dropped during normalization, by reason",
		},
		[]string{"channel", "reason"},
	)

	ReloadsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "coldwatch_reloads_total",
			Help: "Manual dashboard reloads",
		},
	)
)
