package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"jewelry-store/internal/entity"
	"jewelry-store/internal/service"
)

type QuoteHandler struct {
	quoteService *service.QuoteService
}

// NewQuoteHandler creates a new instance of QuoteHandler
func NewQuoteHandler(quoteService *service.QuoteService) *QuoteHandler {
	return &QuoteHandler{quoteService: quoteService}
}

// Quote prices a configuration before anything is stored --> POST
// /api/quotes. gemId may be omitted for a piece without a gem.
func (h *QuoteHandler) Quote(c echo.Context) error {
	req := struct {
		Type      string  `json:"type"` // "necklace" or "ring"
		MetalID   int     `json:"metalId"`
		GemID     int     `json:"gemId"`
		LinkID    int     `json:"linkId"`
		LinkCount int     `json:"linkCount"`
		Volume    float64 `json:"volume"`
	}{}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request payload"})
	}
	if req.MetalID == 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "metalId is required."})
	}

	ctx := c.Request().Context()

	var (
		quote *entity.Quote
		err   error
	)
	switch req.Type {
	case "necklace":
		quote, err = h.quoteService.NecklaceQuote(ctx, req.MetalID, req.GemID, req.LinkID, req.LinkCount)
	case "ring":
		quote, err = h.quoteService.RingQuote(ctx, req.MetalID, req.GemID, req.Volume)
	default:
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "type must be necklace or ring"})
	}
	if err != nil {
		return jsonError(c, err)
	}

	return c.JSON(http.StatusOK, quote)
}
