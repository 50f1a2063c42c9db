package router

import (
	"myFitLane/internal/middleware"
	"myFitLane/internal/rest"

	"github.com/labstack/echo/v4"
)

func SetupCatalogRoutes(api *echo.Group, handler *rest.CatalogHandler) {
	catalog := api.Group("/catalog", middleware.SessionOptional())

	catalog.GET("/products", handler.GetProducts)
	catalog.GET("/products/:id", handler.GetProduct)
	catalog.GET("/categories", handler.GetCategories)

	catalog.GET("/filters", handler.GetFilters)
	catalog.POST("/filters/open", handler.OpenFilters)
	catalog.PUT("/filters/draft", handler.EditDraft)
	catalog.POST("/filters/apply", handler.ApplyFilters)
	catalog.POST("/filters/reset", handler.ResetDraft)
	catalog.POST("/filters/dismiss", handler.DismissFilters)

	catalog.PUT("/category", handler.SetCategory)
	catalog.PUT("/search", handler.SetSearch)
	catalog.PUT("/page", handler.SetPage)
}

func SetupSessionRoutes(api *echo.Group, handler *rest.SessionHandler) {
	auth := api.Group("/auth")

	auth.POST("/login", handler.Login)
	auth.GET("/me", handler.Me)
	auth.POST("/logout", handler.Logout, middleware.SessionRequired())

	users := api.Group("/users", middleware.SessionRequired())
	users.GET("/:id", handler.GetProfile)
	users.PUT("/:id", handler.UpdateProfile)
}
