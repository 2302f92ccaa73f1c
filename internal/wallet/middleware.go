package wallet

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// SessionRequired guards wallet-scoped routes. The bearer token must
// verify and must match the currently connected session, so disconnecting
// invalidates previously issued tokens.
func SessionRequired(service *Service, issuer *TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": ErrNotConnected.Error()})
			return
		}

		address, err := issuer.Verify(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}

		session, err := service.Require()
		if err != nil || session.Address != address {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": ErrNotConnected.Error()})
			return
		}

		c.Set("wallet_address", address)
		c.Next()
	}
}
