package catalog

import (
	"context"
	"encoding/json"
	"math"
	"math/rand"
	"myFitLane/domain"
	"myFitLane/pkg/logger"
	"time"
)

// randSource isolates the sale and badge draws so tests can inject a
// deterministic generator.
type randSource interface {
	Float64() float64
	Intn(n int) int
}

func newRandSource() randSource {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// enrichCatalog turns the raw catalog into the display-ready set. Ids already
// present in the persisted cache pass through untouched; only unseen ids get
// sale and badge draws, and the complete set is persisted once after the
// delta. Store failures degrade to in-memory results, never to an error.
func (s *CatalogService) enrichCatalog(ctx context.Context, raw []domain.Product) []domain.EnrichedProduct {
	cached, byID := s.loadEnrichedCache(ctx)

	badges := newBadgeCache(s.store, s.rng, s.cfg)
	badges.load(ctx)

	enriched := make([]domain.EnrichedProduct, 0, len(raw))
	delta := 0
	for _, p := range raw {
		if e, ok := byID[p.ID]; ok {
			enriched = append(enriched, e)
			continue
		}

		e := domain.EnrichedProduct{Product: p}
		if s.rng.Float64() < s.cfg.SaleProbability {
			e.OnSale = true
			e.OldPrice = p.Price
			e.Price = roundPrice(p.Price * (1 - s.cfg.SaleDiscount))
		}
		e.PromoBadge = badges.getOrAssign(p.ID, productRate(e))

		enriched = append(enriched, e)
		delta++
	}

	if delta == 0 {
		return enriched
	}

	s.persistEnriched(ctx, enriched, cached)
	if err := badges.flush(ctx); err != nil {
		logger.Error("Failed to persist badge cache", "error", err)
	}

	EnrichedProductsTotal.Add(float64(delta))
	logger.Info("Enriched catalog delta", "new_items", delta, "total", len(enriched))

	return enriched
}

// loadEnrichedCache reads the persisted enriched set in stored order. Missing
// or corrupt data counts as an empty cache.
func (s *CatalogService) loadEnrichedCache(ctx context.Context) ([]domain.EnrichedProduct, map[int]domain.EnrichedProduct) {
	byID := make(map[int]domain.EnrichedProduct)

	raw, ok, err := s.store.Get(ctx, storeKeyEnriched)
	if err != nil {
		logger.Warn("Failed to read enriched cache, starting empty", "error", err)
		return nil, byID
	}
	if !ok {
		return nil, byID
	}

	var cached []domain.EnrichedProduct
	if err := json.Unmarshal(raw, &cached); err != nil {
		logger.Warn("Corrupt enriched cache, starting empty", "error", err)
		return nil, byID
	}

	for _, e := range cached {
		byID[e.ID] = e
	}

	return cached, byID
}

// persistEnriched writes the union of the freshly enriched set and any cache
// entries that were not part of this fetch. Entries are never dropped.
func (s *CatalogService) persistEnriched(ctx context.Context, enriched, cached []domain.EnrichedProduct) {
	seen := make(map[int]struct{}, len(enriched))
	for _, e := range enriched {
		seen[e.ID] = struct{}{}
	}

	full := enriched
	for _, e := range cached {
		if _, ok := seen[e.ID]; !ok {
			full = append(full, e)
		}
	}

	raw, err := json.Marshal(full)
	if err != nil {
		logger.Error("Failed to marshal enriched cache", "error", err)
		return
	}
	if err := s.store.Set(ctx, storeKeyEnriched, raw); err != nil {
		logger.Error("Failed to persist enriched cache", "error", err)
	}
}

// roundPrice rounds a discounted price to 2 decimals the way the storefront
// displays it.
func roundPrice(price float64) float64 {
	return math.Round(price*100) / 100
}
