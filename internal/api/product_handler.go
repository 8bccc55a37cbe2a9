package api

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"jewelry-store/internal/entity"
	"jewelry-store/internal/service"
)

type ProductHandler struct {
	productService *service.ProductService
	quoteService   *service.QuoteService
}

// NewProductHandler creates a new instance of ProductHandler
func NewProductHandler(productService *service.ProductService, quoteService *service.QuoteService) *ProductHandler {
	return &ProductHandler{productService: productService, quoteService: quoteService}
}

type productRequest struct {
	ProductID  int     `json:"productId"`
	Name       string  `json:"name"`
	Mass       float64 `json:"mass"`
	Price      float64 `json:"price"`
	MetalID    int     `json:"metalId"`
	GemID      int     `json:"gemId"`
	NecklaceID *int    `json:"necklaceId"`
	RingID     *int    `json:"ringId"`
	CreatorID  int     `json:"creatorId"`
}

// List returns all products --> GET /api/products
func (h *ProductHandler) List(c echo.Context) error {
	products, err := h.productService.List(c.Request().Context())
	if err != nil {
		return jsonError(c, err)
	}
	if products == nil {
		products = []*entity.Product{}
	}
	return c.JSON(http.StatusOK, products)
}

// Create adds a product --> POST /api/products (admin)
func (h *ProductHandler) Create(c echo.Context) error {
	req := productRequest{}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request payload"})
	}

	// The creator is whoever holds the token, not whatever id the client
	// put in the body.
	claims := claimsFrom(c)
	if claims == nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}

	product, err := h.productService.Create(c.Request().Context(), &entity.Product{
		Name:       req.Name,
		Mass:       req.Mass,
		Price:      req.Price,
		MetalID:    req.MetalID,
		GemID:      req.GemID,
		NecklaceID: req.NecklaceID,
		RingID:     req.RingID,
		CreatorID:  claims.UserID,
	})
	if err != nil {
		return jsonError(c, err)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "Product added successfully.",
		"product": product,
	})
}

// Update edits a product --> PUT /api/products (admin)
func (h *ProductHandler) Update(c echo.Context) error {
	req := productRequest{}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request payload"})
	}
	if req.ProductID == 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Product ID is required."})
	}

	claims := claimsFrom(c)
	if claims == nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}

	product, err := h.productService.Update(c.Request().Context(), &entity.Product{
		ID:         req.ProductID,
		Name:       req.Name,
		Mass:       req.Mass,
		Price:      req.Price,
		MetalID:    req.MetalID,
		GemID:      req.GemID,
		NecklaceID: req.NecklaceID,
		RingID:     req.RingID,
		CreatorID:  claims.UserID,
	})
	if err != nil {
		return jsonError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Product updated successfully.",
		"product": product,
	})
}

// Delete removes a product --> DELETE /api/products (admin)
func (h *ProductHandler) Delete(c echo.Context) error {
	req := struct {
		ProductID int `json:"productId"`
	}{}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request payload"})
	}
	if req.ProductID == 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Product ID is required."})
	}

	if err := h.productService.Delete(c.Request().Context(), req.ProductID); err != nil {
		return jsonError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Product deleted successfully."})
}

type customProductRequest struct {
	Name    string `json:"name"`
	MetalID int    `json:"metalId"`
	GemID   int    `json:"gemId"`
	// Exactly one of Necklace and Ring must be set.
	Necklace *struct {
		LinkID    int    `json:"linkId"`
		Name      string `json:"name"`
		LinkCount int    `json:"linkCount"`
	} `json:"necklace"`
	Ring *struct {
		Name   string  `json:"name"`
		Size   float64 `json:"size"`
		Volume float64 `json:"volume"`
	} `json:"ring"`
}

// CreateCustom builds a configured piece end to end --> POST
// /api/products/custom (admin). The geometry row and the product are
// written in one transaction, and mass/price come from the server-side
// calculator rather than the client.
func (h *ProductHandler) CreateCustom(c echo.Context) error {
	req := customProductRequest{}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request payload"})
	}

	claims := claimsFrom(c)
	if claims == nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}

	if req.Name == "" || req.MetalID == 0 || req.GemID == 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "All fields are required."})
	}
	if (req.Necklace == nil) == (req.Ring == nil) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Exactly one of necklace and ring is required."})
	}

	ctx := c.Request().Context()

	var (
		quote    *entity.Quote
		err      error
		necklace *entity.Necklace
		ring     *entity.Ring
	)
	if req.Necklace != nil {
		quote, err = h.quoteService.NecklaceQuote(ctx, req.MetalID, req.GemID, req.Necklace.LinkID, req.Necklace.LinkCount)
		necklace = &entity.Necklace{
			LinkID:    req.Necklace.LinkID,
			Name:      req.Necklace.Name,
			LinkCount: req.Necklace.LinkCount,
		}
		if necklace.Name == "" {
			necklace.Name = fmt.Sprintf("%s Necklace", req.Name)
		}
	} else {
		quote, err = h.quoteService.RingQuote(ctx, req.MetalID, req.GemID, req.Ring.Volume)
		ring = &entity.Ring{
			Name:   req.Ring.Name,
			Size:   req.Ring.Size,
			Volume: req.Ring.Volume,
		}
	}
	if err != nil {
		return jsonError(c, err)
	}

	product, err := h.productService.CreateCustom(ctx, &entity.Product{
		Name:      req.Name,
		Mass:      quote.Mass,
		Price:     quote.Price,
		MetalID:   req.MetalID,
		GemID:     req.GemID,
		CreatorID: claims.UserID,
	}, necklace, ring)
	if err != nil {
		return jsonError(c, err)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "Product added successfully.",
		"product": product,
	})
}
