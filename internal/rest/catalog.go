package rest

import (
	"context"
	"myFitLane/business/catalog"
	"myFitLane/domain"
	"myFitLane/pkg/logger"
	"myFitLane/pkg/metrics"
	"net/http"
	"strconv"
	"time"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// ResponseError represent the response error struct
type ResponseError struct {
	Message string `json:"message"`
}

type (
	CatalogHandler struct {
		catalogService CatalogService
		validator      *validator.Validate
		timeout        time.Duration
	}

	CatalogService interface {
		CurrentView(ctx context.Context) (catalog.PageView, error)
		Product(ctx context.Context, id int) (domain.EnrichedProduct, error)
		Categories(ctx context.Context) ([]string, error)
		FilterState() catalog.FilterPanel
		OpenFilters() catalog.FilterCriteria
		EditDraft(draft catalog.FilterCriteria) error
		ApplyFilters() error
		ResetDraft() error
		DismissFilters()
		SetCategory(c catalog.Category) error
		SetSearchTerm(q string)
		SetPage(page int) error
	}

	DraftFiltersRequest struct {
		OnlySale  bool   `json:"only_sale"`
		MinRating int    `json:"min_rating" validate:"gte=0,lte=5"`
		SortOrder string `json:"sort_order" validate:"required,oneof=none price_asc price_desc"`
	}

	CategoryRequest struct {
		Category string `json:"category" validate:"required,oneof=all men women jewelry electronics"`
	}

	PageRequest struct {
		Page int `json:"page" validate:"required,gte=1"`
	}

	SearchRequest struct {
		Q string `json:"q"`
	}
)

func NewCatalogHandler(catalogService CatalogService) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
		validator:      validator.New(),
		timeout:        10 * time.Second,
	}
}

func (h *CatalogHandler) GetProducts(c echo.Context) error {
	start := time.Now()

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	view, err := h.catalogService.CurrentView(ctx)
	if err != nil {
		logger.Error("Failed to derive catalog page", "error", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	metrics.CatalogPageRequests.Inc()
	metrics.CatalogPageLatency.Observe(time.Since(start).Seconds())

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "successfully get catalog page",
		"view":    view,
	})
}

func (h *CatalogHandler) GetProduct(c echo.Context) error {
	idStr := c.Param("id")

	id, err := strconv.Atoi(idStr)
	if err != nil {
		logger.Error("Invalid product id", "error", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	product, err := h.catalogService.Product(ctx, id)
	if err != nil {
		if err.Error() == "product not found" {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		logger.Error("Failed to get product", "product_id", id, "error", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "successfully get product",
		"product": product,
	})
}

func (h *CatalogHandler) GetCategories(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	categories, err := h.catalogService.Categories(ctx)
	if err != nil {
		logger.Error("Failed to get categories", "error", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":    "successfully get categories",
		"categories": categories,
	})
}

func (h *CatalogHandler) GetFilters(c echo.Context) error {
	return c.JSON(http.StatusOK, fres.Response.StatusOK(h.catalogService.FilterState()))
}

func (h *CatalogHandler) OpenFilters(c echo.Context) error {
	draft := h.catalogService.OpenFilters()
	return c.JSON(http.StatusOK, fres.Response.StatusOK(draft))
}

func (h *CatalogHandler) EditDraft(c echo.Context) error {
	var req DraftFiltersRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind draft filters", "error", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate draft filters", "error", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	draft := catalog.FilterCriteria{
		OnlySale:  req.OnlySale,
		MinRating: req.MinRating,
		SortOrder: catalog.SortOrder(req.SortOrder),
	}

	if err := h.catalogService.EditDraft(draft); err != nil {
		return c.JSON(http.StatusConflict, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(draft))
}

func (h *CatalogHandler) ApplyFilters(c echo.Context) error {
	if err := h.catalogService.ApplyFilters(); err != nil {
		return c.JSON(http.StatusConflict, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK("filters applied"))
}

func (h *CatalogHandler) ResetDraft(c echo.Context) error {
	if err := h.catalogService.ResetDraft(); err != nil {
		return c.JSON(http.StatusConflict, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK("draft reset"))
}

func (h *CatalogHandler) DismissFilters(c echo.Context) error {
	h.catalogService.DismissFilters()
	return c.JSON(http.StatusOK, fres.Response.StatusOK("filters dismissed"))
}

func (h *CatalogHandler) SetCategory(c echo.Context) error {
	var req CategoryRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind category request", "error", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate category request", "error", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.catalogService.SetCategory(catalog.Category(req.Category)); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK("category set"))
}

func (h *CatalogHandler) SetSearch(c echo.Context) error {
	var req SearchRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind search request", "error", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	h.catalogService.SetSearchTerm(req.Q)
	return c.JSON(http.StatusOK, fres.Response.StatusOK("search term set"))
}

func (h *CatalogHandler) SetPage(c echo.Context) error {
	var req PageRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind page request", "error", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate page request", "error", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.catalogService.SetPage(req.Page); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK("page set"))
}
