package conversion

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ConvertRequest is the payload for converting a credit NFT into tokens.
type ConvertRequest struct {
	Amount int64 `json:"amount"`
}

// Handler exposes the conversion engine over HTTP
type Handler struct {
	engine *Engine
	logger *zap.Logger
}

// NewHandler creates a new conversion handler
func NewHandler(engine *Engine, logger *zap.Logger) *Handler {
	return &Handler{
		engine: engine,
		logger: logger,
	}
}

// RegisterRoutes registers the conversion route; it requires an active session
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, sessionRequired gin.HandlerFunc) {
	router.POST("/credits/:id/convert", sessionRequired, h.convert)
}

// convert handles POST /api/v1/credits/:id/convert
func (h *Handler) convert(c *gin.Context) {
	var req ConvertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.engine.Convert(c.Request.Context(), c.Param("id"), req.Amount)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidAmount):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, ErrUnknownNFT):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, ErrAlreadyConverted):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			h.logger.Error("conversion failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, result)
}
