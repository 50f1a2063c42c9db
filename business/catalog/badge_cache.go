package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"myFitLane/pkg/logger"

	"myFitLane/domain"
)

// badgeAssignments is the persisted id -> badge decision map. A key that is
// present with a nil badge means "decided: no badge" and is never re-rolled;
// an absent key means the id has not been seen yet.
type badgeAssignments map[int]*domain.PromoBadge

// badgeCache hands out sticky promo-badge decisions to the enrichment pass.
// It is loaded in full, mutated in memory and flushed in one write, so a
// second enrichment run in the same tick cannot lose updates.
type badgeCache struct {
	store StoreRepository
	rng   randSource
	cfg   Config

	assignments badgeAssignments
	dirty       bool
}

func newBadgeCache(store StoreRepository, rng randSource, cfg Config) *badgeCache {
	return &badgeCache{
		store:       store,
		rng:         rng,
		cfg:         cfg,
		assignments: make(badgeAssignments),
	}
}

// load reads the full persisted map. Missing or corrupt data starts empty.
func (b *badgeCache) load(ctx context.Context) {
	b.assignments = make(badgeAssignments)
	b.dirty = false

	raw, ok, err := b.store.Get(ctx, storeKeyBadges)
	if err != nil {
		logger.Warn("Failed to read badge cache, starting empty", "error", err)
		return
	}
	if !ok {
		return
	}

	var assignments badgeAssignments
	if err := json.Unmarshal(raw, &assignments); err != nil {
		logger.Warn("Corrupt badge cache, starting empty", "error", err)
		return
	}

	b.assignments = assignments
}

// getOrAssign returns the badge decision for id, rolling a new one only for
// ids that were never decided before. Ids below the rating floor are decided
// "no badge" and that decision sticks too.
func (b *badgeCache) getOrAssign(id int, rate float64) *domain.PromoBadge {
	if badge, seen := b.assignments[id]; seen {
		return badge
	}

	var badge *domain.PromoBadge
	if rate >= badgeMinRate && b.rng.Float64() < b.cfg.BadgeProbability {
		pick := promoBadges[b.rng.Intn(len(promoBadges))]
		badge = &pick
	}

	b.assignments[id] = badge
	b.dirty = true
	return badge
}

// flush persists the full map in a single write. A no-op when nothing new was
// decided.
func (b *badgeCache) flush(ctx context.Context) error {
	if !b.dirty {
		return nil
	}

	raw, err := json.Marshal(b.assignments)
	if err != nil {
		return fmt.Errorf("marshal badge cache: %w", err)
	}
	if err := b.store.Set(ctx, storeKeyBadges, raw); err != nil {
		return fmt.Errorf("persist badge cache: %w", err)
	}

	b.dirty = false
	return nil
}
