package catalog

import "myFitLane/domain"

// pageSize is the fixed page window of the storefront grid.
const pageSize = 12

const (
	storeKeyEnriched   = "catalog:enriched:v1"
	storeKeyBadges     = "catalog:promo:v1"
	storeKeyCategories = "catalog:categories:v1"
)

const (
	defaultSaleProbability  = 0.3
	defaultSaleDiscount     = 0.2
	defaultBadgeProbability = 0.7
	defaultFetchLimit       = 20

	// minimum rating a product needs before it can be considered for a badge
	badgeMinRate = 3.0
)

type Config struct {
	SaleProbability  float64
	SaleDiscount     float64
	BadgeProbability float64
	FetchLimit       int
}

func DefaultConfig() Config {
	return Config{
		SaleProbability:  defaultSaleProbability,
		SaleDiscount:     defaultSaleDiscount,
		BadgeProbability: defaultBadgeProbability,
		FetchLimit:       defaultFetchLimit,
	}
}

// promoBadges is the fixed badge catalog new badge assignments draw from.
var promoBadges = []domain.PromoBadge{
	{Label: "Bestseller", Color: "bg-orange-500", IconName: "badge"},
	{Label: "Top Rated", Color: "bg-yellow-400", IconName: "star"},
	{Label: "Hot Deal", Color: "bg-red-500", IconName: "fire"},
	{Label: "Popular", Color: "bg-gray-800", IconName: "thumb"},
	{Label: "FitLane Pick", Color: "bg-blue-500", IconName: "badge"},
}
