//go:build !integration

package rest

import (
	"context"
	"errors"
	"myFitLane/business/catalog"
	"myFitLane/domain"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

type fakeCatalogService struct {
	panelOpen bool
	draft     catalog.FilterCriteria
	applied   catalog.FilterCriteria
	category  catalog.Category
	search    string
	page      int
	viewErr   error
}

func (f *fakeCatalogService) CurrentView(ctx context.Context) (catalog.PageView, error) {
	if f.viewErr != nil {
		return catalog.PageView{}, f.viewErr
	}
	return catalog.PageView{Page: 1, PageCount: 1, Category: catalog.CategoryAll}, nil
}

func (f *fakeCatalogService) Product(ctx context.Context, id int) (domain.EnrichedProduct, error) {
	if id == 1 {
		return domain.EnrichedProduct{
			Product: domain.Product{ID: 1, Title: "Slim Fit Jacket"},
			OnSale:  true,
		}, nil
	}
	return domain.EnrichedProduct{}, errors.New("product not found")
}

func (f *fakeCatalogService) Categories(ctx context.Context) ([]string, error) {
	return []string{"electronics", "jewelery"}, nil
}

func (f *fakeCatalogService) FilterState() catalog.FilterPanel {
	return catalog.FilterPanel{Open: f.panelOpen, Applied: f.applied, Draft: f.draft}
}

func (f *fakeCatalogService) OpenFilters() catalog.FilterCriteria {
	f.panelOpen = true
	f.draft = f.applied
	return f.draft
}

func (f *fakeCatalogService) EditDraft(draft catalog.FilterCriteria) error {
	if !f.panelOpen {
		return errors.New("filter panel is not open")
	}
	f.draft = draft
	return nil
}

func (f *fakeCatalogService) ApplyFilters() error {
	if !f.panelOpen {
		return errors.New("filter panel is not open")
	}
	f.applied = f.draft
	f.panelOpen = false
	return nil
}

func (f *fakeCatalogService) ResetDraft() error {
	if !f.panelOpen {
		return errors.New("filter panel is not open")
	}
	f.draft = catalog.FilterCriteria{SortOrder: catalog.SortNone}
	return nil
}

func (f *fakeCatalogService) DismissFilters() {
	f.panelOpen = false
}

func (f *fakeCatalogService) SetCategory(c catalog.Category) error {
	f.category = c
	return nil
}

func (f *fakeCatalogService) SetSearchTerm(q string) {
	f.search = q
}

func (f *fakeCatalogService) SetPage(page int) error {
	if page < 1 {
		return errors.New("page must be at least 1")
	}
	f.page = page
	return nil
}

func doJSON(t *testing.T, handler echo.HandlerFunc, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()

	if err := handler(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	return rec
}

func TestGetProducts(t *testing.T) {
	h := NewCatalogHandler(&fakeCatalogService{})

	rec := doJSON(t, h.GetProducts, http.MethodGet, "/catalog/products", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"view"`) {
		t.Errorf("body missing view payload: %s", rec.Body.String())
	}
}

func TestGetProduct(t *testing.T) {
	h := NewCatalogHandler(&fakeCatalogService{})
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/catalog/products/1", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("1")

	if err := h.GetProduct(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "Slim Fit Jacket") {
		t.Errorf("body missing product payload: %s", rec.Body.String())
	}
}

func TestGetProductNotFound(t *testing.T) {
	h := NewCatalogHandler(&fakeCatalogService{})
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/catalog/products/99", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("99")

	if err := h.GetProduct(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestGetProductBadID(t *testing.T) {
	h := NewCatalogHandler(&fakeCatalogService{})
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/catalog/products/abc", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("abc")

	if err := h.GetProduct(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400 for a non-numeric id", rec.Code)
	}
}

func TestGetProductsServiceFailure(t *testing.T) {
	h := NewCatalogHandler(&fakeCatalogService{viewErr: errors.New("boom")})

	rec := doJSON(t, h.GetProducts, http.MethodGet, "/catalog/products", "")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
}

func TestEditDraftValidation(t *testing.T) {
	svc := &fakeCatalogService{panelOpen: true}
	h := NewCatalogHandler(svc)

	rec := doJSON(t, h.EditDraft, http.MethodPut, "/catalog/filters/draft",
		`{"only_sale":true,"min_rating":9,"sort_order":"price_asc"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400 for min_rating out of range", rec.Code)
	}

	rec = doJSON(t, h.EditDraft, http.MethodPut, "/catalog/filters/draft",
		`{"only_sale":true,"min_rating":4,"sort_order":"price_asc"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}
	if svc.draft.MinRating != 4 || svc.draft.SortOrder != catalog.SortPriceAsc {
		t.Errorf("draft = %+v, want the bound request", svc.draft)
	}
}

func TestEditDraftClosedPanelConflicts(t *testing.T) {
	h := NewCatalogHandler(&fakeCatalogService{})

	rec := doJSON(t, h.EditDraft, http.MethodPut, "/catalog/filters/draft",
		`{"sort_order":"none"}`)
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409 when the panel is closed", rec.Code)
	}
}

func TestApplyFiltersClosedPanelConflicts(t *testing.T) {
	h := NewCatalogHandler(&fakeCatalogService{})

	rec := doJSON(t, h.ApplyFilters, http.MethodPost, "/catalog/filters/apply", "")
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409 when the panel is closed", rec.Code)
	}
}

func TestSetCategoryValidation(t *testing.T) {
	svc := &fakeCatalogService{}
	h := NewCatalogHandler(svc)

	rec := doJSON(t, h.SetCategory, http.MethodPut, "/catalog/category", `{"category":"books"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400 for unknown category", rec.Code)
	}

	rec = doJSON(t, h.SetCategory, http.MethodPut, "/catalog/category", `{"category":"jewelry"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}
	if svc.category != catalog.CategoryJewelry {
		t.Errorf("category = %q, want jewelry", svc.category)
	}
}

func TestSetPageValidation(t *testing.T) {
	svc := &fakeCatalogService{}
	h := NewCatalogHandler(svc)

	rec := doJSON(t, h.SetPage, http.MethodPut, "/catalog/page", `{"page":0}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400 for page 0", rec.Code)
	}

	rec = doJSON(t, h.SetPage, http.MethodPut, "/catalog/page", `{"page":2}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}
	if svc.page != 2 {
		t.Errorf("page = %d, want 2", svc.page)
	}
}

func TestSetSearch(t *testing.T) {
	svc := &fakeCatalogService{}
	h := NewCatalogHandler(svc)

	rec := doJSON(t, h.SetSearch, http.MethodPut, "/catalog/search", `{"q":"jacket"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if svc.search != "jacket" {
		t.Errorf("search = %q, want jacket", svc.search)
	}
}
