package catalog

import "errors"

type SortOrder string

const (
	SortNone      SortOrder = "none"
	SortPriceAsc  SortOrder = "price_asc"
	SortPriceDesc SortOrder = "price_desc"
)

type Category string

const (
	CategoryAll         Category = "all"
	CategoryMen         Category = "men"
	CategoryWomen       Category = "women"
	CategoryJewelry     Category = "jewelry"
	CategoryElectronics Category = "electronics"
)

// categoryTokens maps the storefront selector onto the exact category strings
// the upstream API stores. Matching is case-sensitive string equality.
var categoryTokens = map[Category]string{
	CategoryMen:         "men's clothing",
	CategoryWomen:       "women's clothing",
	CategoryJewelry:     "jewelery",
	CategoryElectronics: "electronics",
}

func validCategory(c Category) bool {
	if c == CategoryAll {
		return true
	}
	_, ok := categoryTokens[c]
	return ok
}

func fallbackCategories() []string {
	return []string{
		"electronics",
		"jewelery",
		"men's clothing",
		"women's clothing",
	}
}

// FilterCriteria are the panel-managed filters. The title search lives next
// to them on the applied state but is edited outside the panel.
type FilterCriteria struct {
	OnlySale  bool      `json:"only_sale"`
	MinRating int       `json:"min_rating"`
	SortOrder SortOrder `json:"sort_order"`
}

func defaultCriteria() FilterCriteria {
	return FilterCriteria{SortOrder: SortNone}
}

var errPanelClosed = errors.New("filter panel is not open")

// viewState is the controller over the storefront's mutable UI state: applied
// vs draft filters, active category and page window. Transitions follow the
// filter-panel state machine; the caller holds the service lock.
type viewState struct {
	applied    FilterCriteria
	searchText string
	category   Category
	page       int

	panelOpen bool
	draft     FilterCriteria
}

func newViewState() *viewState {
	return &viewState{
		applied:  defaultCriteria(),
		category: CategoryAll,
		page:     1,
	}
}

// openPanel seeds the draft from the applied criteria and opens the panel.
func (v *viewState) openPanel() FilterCriteria {
	v.draft = v.applied
	v.panelOpen = true
	return v.draft
}

func (v *viewState) editDraft(draft FilterCriteria) error {
	if !v.panelOpen {
		return errPanelClosed
	}
	v.draft = draft
	return nil
}

// applyDraft is the single transition that promotes the draft, resets the
// page window and closes the panel. Skipping the page reset would leave the
// current page beyond the new bounds.
func (v *viewState) applyDraft() error {
	if !v.panelOpen {
		return errPanelClosed
	}
	v.applied = v.draft
	v.page = 1
	v.panelOpen = false
	return nil
}

// resetDraft restores the draft defaults; the applied criteria and the panel
// stay as they are.
func (v *viewState) resetDraft() error {
	if !v.panelOpen {
		return errPanelClosed
	}
	v.draft = defaultCriteria()
	return nil
}

// dismissPanel closes the panel and throws the draft away.
func (v *viewState) dismissPanel() {
	v.panelOpen = false
	v.draft = FilterCriteria{}
}

func (v *viewState) setCategory(c Category) {
	v.category = c
	v.page = 1
}

func (v *viewState) setSearchTerm(q string) {
	v.searchText = q
}

func (v *viewState) setPage(page int) {
	v.page = page
}
