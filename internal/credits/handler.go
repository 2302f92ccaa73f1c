package credits

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// MintRequest is the payload for minting a new credit into the inventory.
type MintRequest struct {
	Project    string `json:"project"`
	OffsetTons int64  `json:"offset_tons"`
}

// Handler exposes the session's credit inventory over HTTP
type Handler struct {
	inventory *Inventory
	logger    *zap.Logger
}

// NewHandler creates a new credits handler
func NewHandler(inventory *Inventory, logger *zap.Logger) *Handler {
	return &Handler{
		inventory: inventory,
		logger:    logger,
	}
}

// RegisterRoutes registers credit inventory routes; all require an active session
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, sessionRequired gin.HandlerFunc) {
	credits := router.Group("/credits", sessionRequired)
	{
		credits.GET("", h.listOwned)
		credits.POST("/mint", h.mint)
	}
}

// listOwned handles GET /api/v1/credits
func (h *Handler) listOwned(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"credits": h.inventory.ListOwned()})
}

// mint handles POST /api/v1/credits/mint
func (h *Handler) mint(c *gin.Context) {
	var req MintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	credit, err := h.inventory.Mint(req.Project, req.OffsetTons)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, credit)
}
