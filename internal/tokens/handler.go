package tokens

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// TradeRequest is the payload for the mock buy/sell token operations.
type TradeRequest struct {
	Amount int64 `json:"amount"`
}

// Handler exposes token ledger operations over HTTP
type Handler struct {
	ledger *Ledger
	logger *zap.Logger
}

// NewHandler creates a new tokens handler
func NewHandler(ledger *Ledger, logger *zap.Logger) *Handler {
	return &Handler{
		ledger: ledger,
		logger: logger,
	}
}

// RegisterRoutes registers token routes; all of them require an active session
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, sessionRequired gin.HandlerFunc) {
	tokens := router.Group("/tokens", sessionRequired)
	{
		tokens.GET("/balance", h.getBalance)
		tokens.POST("/buy", h.buy)
		tokens.POST("/sell", h.sell)
	}
}

// getBalance handles GET /api/v1/tokens/balance
func (h *Handler) getBalance(c *gin.Context) {
	c.JSON(http.StatusOK, h.ledger.Balance())
}

// buy handles POST /api/v1/tokens/buy (mock purchase, credits the balance)
func (h *Handler) buy(c *gin.Context) {
	var req TradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	balance, err := h.ledger.Credit(req.Amount)
	if err != nil {
		c.JSON(statusForLedgerError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, balance)
}

// sell handles POST /api/v1/tokens/sell (mock sale, debits the balance)
func (h *Handler) sell(c *gin.Context) {
	var req TradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	balance, err := h.ledger.Debit(req.Amount)
	if err != nil {
		c.JSON(statusForLedgerError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, balance)
}

func statusForLedgerError(err error) int {
	switch {
	case errors.Is(err, ErrInvalidAmount):
		return http.StatusBadRequest
	case errors.Is(err, ErrInsufficientBalance):
		return http.StatusPaymentRequired
	default:
		return http.StatusInternalServerError
	}
}
