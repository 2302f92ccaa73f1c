package wallet

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler exposes wallet session operations over HTTP
type Handler struct {
	service *Service
	issuer  *TokenIssuer
	logger  *zap.Logger
}

// NewHandler creates a new wallet handler
func NewHandler(service *Service, issuer *TokenIssuer, logger *zap.Logger) *Handler {
	return &Handler{
		service: service,
		issuer:  issuer,
		logger:  logger,
	}
}

// RegisterRoutes registers wallet routes
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	wallet := router.Group("/wallet")
	{
		wallet.POST("/connect", h.connect)
		wallet.POST("/disconnect", h.disconnect)
		wallet.GET("/session", h.getSession)
	}
}

// connect handles POST /api/v1/wallet/connect
func (h *Handler) connect(c *gin.Context) {
	session := h.service.Connect()

	token, err := h.issuer.Issue(session.Address)
	if err != nil {
		h.logger.Error("failed to issue session token", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue session token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"session": session,
		"token":   token,
	})
}

// disconnect handles POST /api/v1/wallet/disconnect
func (h *Handler) disconnect(c *gin.Context) {
	session := h.service.Disconnect()
	c.JSON(http.StatusOK, gin.H{"session": session})
}

// getSession handles GET /api/v1/wallet/session
func (h *Handler) getSession(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"session": h.service.Session()})
}
