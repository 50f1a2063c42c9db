package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"myFitLane/domain"
	"myFitLane/pkg/logger"
	"sync"
)

// StoreRepository is the persistent string-keyed blob store backing the
// enriched catalog, badge and category caches. A missing key is reported via
// the bool, never as an error.
type StoreRepository interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// CatalogSource is the upstream demo API the raw catalog comes from.
type CatalogSource interface {
	FetchProducts(ctx context.Context, limit int) ([]domain.Product, error)
	FetchCategories(ctx context.Context) ([]string, error)
}

// CatalogService owns the enriched product set and the storefront view state
// derived from it. All state transitions happen under a single lock; the
// pipeline itself is pure.
type CatalogService struct {
	source CatalogSource
	store  StoreRepository
	rng    randSource
	cfg    Config

	mu       sync.Mutex
	products []domain.EnrichedProduct
	view     *viewState
	loaded   bool
}

func NewCatalogService(source CatalogSource, store StoreRepository, cfg Config) *CatalogService {
	return &CatalogService{
		source: source,
		store:  store,
		rng:    newRandSource(),
		cfg:    cfg,
		view:   newViewState(),
	}
}

// LoadCatalog makes the enriched product set available: the persisted cache
// wins when present, otherwise the raw catalog is fetched once and enriched.
// A fetch failure leaves the catalog empty and is not fatal.
func (s *CatalogService) LoadCatalog(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.loadCatalogLocked(ctx)
}

func (s *CatalogService) loadCatalogLocked(ctx context.Context) error {
	if s.loaded {
		return nil
	}

	cached, _ := s.loadEnrichedCache(ctx)
	if len(cached) > 0 {
		s.products = cached
		s.loaded = true
		return nil
	}

	raw, err := s.source.FetchProducts(ctx, s.cfg.FetchLimit)
	if err != nil {
		logger.Error("Failed to fetch catalog from upstream", "error", err)
		return fmt.Errorf("fetch catalog: %w", err)
	}

	s.products = s.enrichCatalog(ctx, raw)
	s.loaded = true
	return nil
}

// ensureLoaded degrades an upstream failure to an empty catalog so derived
// views stay consistent instead of erroring.
func (s *CatalogService) ensureLoaded(ctx context.Context) {
	if s.loaded {
		return
	}
	if err := s.loadCatalogLocked(ctx); err != nil {
		s.products = nil
	}
}

// PageView is the storefront-facing snapshot of the current derived view.
type PageView struct {
	Products  []domain.EnrichedProduct `json:"products"`
	Page      int                      `json:"page"`
	PageCount int                      `json:"page_count"`
	Category  Category                 `json:"category"`
	Search    string                   `json:"search"`
	Filters   FilterCriteria           `json:"filters"`
}

// VisibleProducts returns the current page of the filtered, sorted catalog.
func (s *CatalogService) VisibleProducts(ctx context.Context) ([]domain.EnrichedProduct, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded(ctx)

	filtered := filterProducts(s.products, s.view.applied, s.view.searchText, s.view.category)
	filtered = sortProducts(filtered, s.view.applied.SortOrder)
	return pageSlice(filtered, s.view.page), nil
}

// PageCount returns the number of pages the applied filters currently yield.
func (s *CatalogService) PageCount(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("context error: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded(ctx)

	filtered := filterProducts(s.products, s.view.applied, s.view.searchText, s.view.category)
	return pageCount(len(filtered)), nil
}

// CurrentView derives the whole page snapshot in one pass.
func (s *CatalogService) CurrentView(ctx context.Context) (PageView, error) {
	if err := ctx.Err(); err != nil {
		return PageView{}, fmt.Errorf("context error: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded(ctx)

	filtered := filterProducts(s.products, s.view.applied, s.view.searchText, s.view.category)
	filtered = sortProducts(filtered, s.view.applied.SortOrder)

	tid := TraceIDFromContext(ctx)
	logger.Debug("catalog_page",
		"trace_id", tid,
		"page", s.view.page,
		"category", s.view.category,
		"filtered_count", len(filtered),
	)

	return PageView{
		Products:  pageSlice(filtered, s.view.page),
		Page:      s.view.page,
		PageCount: pageCount(len(filtered)),
		Category:  s.view.category,
		Search:    s.view.searchText,
		Filters:   s.view.applied,
	}, nil
}

// Product returns a single enriched product by id for the detail view.
func (s *CatalogService) Product(ctx context.Context, id int) (domain.EnrichedProduct, error) {
	if err := ctx.Err(); err != nil {
		return domain.EnrichedProduct{}, fmt.Errorf("context error: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded(ctx)

	for _, p := range s.products {
		if p.ID == id {
			return p, nil
		}
	}

	return domain.EnrichedProduct{}, errors.New("product not found")
}

// FilterPanel reports the controller state the filter UI renders from.
type FilterPanel struct {
	Open    bool           `json:"open"`
	Applied FilterCriteria `json:"applied"`
	Draft   FilterCriteria `json:"draft"`
}

func (s *CatalogService) FilterState() FilterPanel {
	s.mu.Lock()
	defer s.mu.Unlock()

	return FilterPanel{
		Open:    s.view.panelOpen,
		Applied: s.view.applied,
		Draft:   s.view.draft,
	}
}

// OpenFilters opens the filter panel, seeding the draft from the applied
// criteria.
func (s *CatalogService) OpenFilters() FilterCriteria {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.view.openPanel()
}

// EditDraft replaces the draft while the panel is open. The applied criteria
// and the visible list are unaffected.
func (s *CatalogService) EditDraft(draft FilterCriteria) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.view.editDraft(draft)
}

// ApplyFilters copies the draft into the applied criteria, resets the page
// window to 1 and closes the panel, as one transition.
func (s *CatalogService) ApplyFilters() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.view.applyDraft()
}

// ResetDraft restores the draft defaults without touching the applied
// criteria or closing the panel.
func (s *CatalogService) ResetDraft() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.view.resetDraft()
}

// DismissFilters closes the panel and discards the draft.
func (s *CatalogService) DismissFilters() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.view.dismissPanel()
}

// SetCategory switches the active category immediately and resets the page.
func (s *CatalogService) SetCategory(c Category) error {
	if !validCategory(c) {
		return errors.New("unknown category")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.view.setCategory(c)
	return nil
}

// SetSearchTerm updates the applied title search immediately.
func (s *CatalogService) SetSearchTerm(q string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.view.setSearchTerm(q)
}

// SetPage moves the page window. Any page >= 1 is accepted; an out-of-range
// page simply yields an empty visible slice.
func (s *CatalogService) SetPage(page int) error {
	if page < 1 {
		return errors.New("page must be at least 1")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.view.setPage(page)
	return nil
}

// Categories returns the storefront category list from the upstream API,
// cached in the store after the first successful fetch. Falls back to the
// fixed category tokens when the upstream is unavailable.
func (s *CatalogService) Categories(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	if raw, ok, err := s.store.Get(ctx, storeKeyCategories); err == nil && ok {
		var categories []string
		if err := json.Unmarshal(raw, &categories); err == nil && len(categories) > 0 {
			return categories, nil
		}
		logger.Warn("Corrupt category cache, refetching")
	}

	categories, err := s.source.FetchCategories(ctx)
	if err != nil || len(categories) == 0 {
		if err != nil {
			logger.Warn("Failed to fetch categories from upstream", "error", err)
		}
		return fallbackCategories(), nil
	}

	if raw, err := json.Marshal(categories); err == nil {
		if err := s.store.Set(ctx, storeKeyCategories, raw); err != nil {
			logger.Warn("Failed to persist category cache", "error", err)
		}
	}

	return categories, nil
}
