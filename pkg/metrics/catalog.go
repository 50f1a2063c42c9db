package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// Latency of the catalog products HTTP handler
	CatalogPageLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "catalog_page_latency_seconds",
		Help:    "Latency of the visible catalog page handler",
		Buckets: prometheus.DefBuckets,
	})

	// Total number of catalog pages served
	CatalogPageRequests = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "catalog_page_requests_total",
		Help: "Total number of catalog page requests",
	})

	// Total number of upstream catalog fetches
	UpstreamFetchTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_upstream_fetch_total",
		Help: "Upstream catalog fetches by outcome",
	}, []string{"outcome"})
)

func Init() {
	prometheus.MustRegister(
		CatalogPageLatency,
		CatalogPageRequests,
		UpstreamFetchTotal,
	)
}
