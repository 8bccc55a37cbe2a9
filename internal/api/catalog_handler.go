package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"jewelry-store/internal/entity"
	"jewelry-store/internal/service"
)

type CatalogHandler struct {
	catalogService *service.CatalogService
}

// NewCatalogHandler creates a new instance of CatalogHandler
func NewCatalogHandler(catalogService *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// ListMetals --> GET /api/metals
func (h *CatalogHandler) ListMetals(c echo.Context) error {
	metals, err := h.catalogService.ListMetals(c.Request().Context())
	if err != nil {
		return jsonError(c, err)
	}
	if metals == nil {
		metals = []*entity.Metal{}
	}
	return c.JSON(http.StatusOK, metals)
}

// ListGems --> GET /api/gems
func (h *CatalogHandler) ListGems(c echo.Context) error {
	gems, err := h.catalogService.ListGems(c.Request().Context())
	if err != nil {
		return jsonError(c, err)
	}
	if gems == nil {
		gems = []*entity.Gem{}
	}
	return c.JSON(http.StatusOK, gems)
}

// ListLinks --> GET /api/links
func (h *CatalogHandler) ListLinks(c echo.Context) error {
	links, err := h.catalogService.ListLinks(c.Request().Context())
	if err != nil {
		return jsonError(c, err)
	}
	if links == nil {
		links = []*entity.Link{}
	}
	return c.JSON(http.StatusOK, links)
}

// ListRings --> GET /api/rings
func (h *CatalogHandler) ListRings(c echo.Context) error {
	rings, err := h.catalogService.ListRings(c.Request().Context())
	if err != nil {
		return jsonError(c, err)
	}
	if rings == nil {
		rings = []*entity.Ring{}
	}
	return c.JSON(http.StatusOK, rings)
}

// CreateNecklace stores a configured chain and returns its id for the
// follow-up product call --> POST /api/necklaces
func (h *CatalogHandler) CreateNecklace(c echo.Context) error {
	req := struct {
		LinkID    int    `json:"linkId"`
		Name      string `json:"name"`
		LinkCount int    `json:"linkCount"`
	}{}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request payload"})
	}

	necklace, err := h.catalogService.CreateNecklace(c.Request().Context(), &entity.Necklace{
		LinkID:    req.LinkID,
		Name:      req.Name,
		LinkCount: req.LinkCount,
	})
	if err != nil {
		return jsonError(c, err)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "Necklace added successfully.",
		"neckId":  necklace.ID,
	})
}

// CreateRing stores a configured ring geometry --> POST /api/rings
func (h *CatalogHandler) CreateRing(c echo.Context) error {
	req := struct {
		Name   string  `json:"name"`
		Size   float64 `json:"size"`
		Volume float64 `json:"volume"`
	}{}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request payload"})
	}

	ring, err := h.catalogService.CreateRing(c.Request().Context(), &entity.Ring{
		Name:   req.Name,
		Size:   req.Size,
		Volume: req.Volume,
	})
	if err != nil {
		return jsonError(c, err)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "Ring added successfully.",
		"ringId":  ring.ID,
	})
}
