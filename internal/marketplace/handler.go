package marketplace

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"carbon-credits/marketplace-backend/internal/tokens"
)

// ListRequest is the payload for creating a new marketplace listing.
type ListRequest struct {
	Kind  ListingKind `json:"kind"`
	Item  string      `json:"item"`
	Price int64       `json:"price"`
}

// Handler exposes the marketplace over HTTP
type Handler struct {
	book   *Book
	engine *Engine
	logger *zap.Logger
}

// NewHandler creates a new marketplace handler
func NewHandler(book *Book, engine *Engine, logger *zap.Logger) *Handler {
	return &Handler{
		book:   book,
		engine: engine,
		logger: logger,
	}
}

// RegisterRoutes registers marketplace routes. Browsing the catalog is
// public; listing and buying require an active session.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, sessionRequired gin.HandlerFunc) {
	marketplace := router.Group("/marketplace")
	{
		marketplace.GET("/listings", h.getListings)
		marketplace.POST("/listings", sessionRequired, h.createListing)
		marketplace.POST("/listings/:id/buy", sessionRequired, h.buy)
	}
}

// getListings handles GET /api/v1/marketplace/listings
func (h *Handler) getListings(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"listings": h.book.Listings()})
}

// createListing handles POST /api/v1/marketplace/listings
func (h *Handler) createListing(c *gin.Context) {
	var req ListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	listing, err := h.book.List(req.Kind, req.Item, req.Price)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, listing)
}

// buy handles POST /api/v1/marketplace/listings/:id/buy
func (h *Handler) buy(c *gin.Context) {
	listing, err := h.engine.Buy(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, ErrAlreadySold):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, tokens.ErrInsufficientBalance):
			c.JSON(http.StatusPaymentRequired, gin.H{"error": err.Error()})
		default:
			h.logger.Error("purchase failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, listing)
}
