package catalog

import (
	"myFitLane/domain"
	"sort"
	"strings"
)

// The derivation pipeline is pure and runs its steps in a fixed order:
// category, title search, sale, rating, sort, page slice. The order matters
// for identical output on ties and is relied on by the tests.

func filterProducts(products []domain.EnrichedProduct, criteria FilterCriteria, searchText string, category Category) []domain.EnrichedProduct {
	token, restrict := categoryTokens[category]
	search := strings.ToLower(searchText)

	out := make([]domain.EnrichedProduct, 0, len(products))
	for _, p := range products {
		if restrict && p.Category != token {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(p.Title), search) {
			continue
		}
		if criteria.OnlySale && !p.OnSale {
			continue
		}
		if criteria.MinRating > 0 && productRate(p) < float64(criteria.MinRating) {
			continue
		}
		out = append(out, p)
	}

	return out
}

// sortProducts reorders in place and is stable: equal prices keep their prior
// relative order.
func sortProducts(products []domain.EnrichedProduct, order SortOrder) []domain.EnrichedProduct {
	switch order {
	case SortPriceAsc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price < products[j].Price
		})
	case SortPriceDesc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price > products[j].Price
		})
	}

	return products
}

// pageSlice cuts the current page window. There is no clamping: a page beyond
// the filtered set yields an empty slice, and the controller avoids that by
// resetting the page on every apply.
func pageSlice(products []domain.EnrichedProduct, page int) []domain.EnrichedProduct {
	if page < 1 {
		return []domain.EnrichedProduct{}
	}

	first := (page - 1) * pageSize
	if first >= len(products) {
		return []domain.EnrichedProduct{}
	}

	last := first + pageSize
	if last > len(products) {
		last = len(products)
	}

	return products[first:last]
}

func pageCount(filteredCount int) int {
	return (filteredCount + pageSize - 1) / pageSize
}

// productRate normalizes a missing rating to 0, which excludes the product
// whenever a minimum rating filter is active.
func productRate(p domain.EnrichedProduct) float64 {
	if p.Rating == nil {
		return 0
	}
	return p.Rating.Rate
}
