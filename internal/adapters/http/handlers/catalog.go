package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/errgate-io/errgate/internal/catalog"
)

// CatalogHandler exposes the item catalog over HTTP. Handlers never write
// error responses themselves; failures are attached to the gin context and
// translated by the error translator middleware.
type CatalogHandler struct {
	service *catalog.Service
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler(service *catalog.Service) *CatalogHandler {
	return &CatalogHandler{service: service}
}

// List handles GET /items.
func (h *CatalogHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.List(c.Request.Context()))
}

// Get handles GET /items/:id.
func (h *CatalogHandler) Get(c *gin.Context) {
	item, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, item)
}

// Create handles POST /items.
func (h *CatalogHandler) Create(c *gin.Context) {
	var item catalog.Item
	if err := c.ShouldBindJSON(&item); err != nil {
		_ = c.Error(catalog.NewValidationError(err))
		return
	}

	created, err := h.service.Create(c.Request.Context(), item)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

// Delete handles DELETE /items/:id.
func (h *CatalogHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		_ = c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Crash panics with a typed storage fault. It exists so the panic
// recovery and translation path can be exercised against a running
// instance, not just in tests.
func (h *CatalogHandler) Crash(c *gin.Context) {
	panic(catalog.NewStorageError(errors.New("simulated store corruption")))
}

// RegisterCatalogRoutes registers the catalog routes on the group.
func (h *CatalogHandler) RegisterCatalogRoutes(rg *gin.RouterGroup) {
	rg.GET("/items", h.List)
	rg.GET("/items/:id", h.Get)
	rg.POST("/items", h.Create)
	rg.DELETE("/items/:id", h.Delete)
	rg.GET("/crash", h.Crash)
}
