package catalog

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	EnrichedProductsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "catalog_enriched_products_total",
			Help: "Count of products that received a one-time sale and badge enrichment.",
		},
	)
)

func init() {
	prometheus.MustRegister(EnrichedProductsTotal)
}
