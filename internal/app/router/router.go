// Package router builds the route table and middleware chain.
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	accountshandler "github.com/marolinik/arteon-ledger/internal/feature/accounts/transport/handler"
	ledgerhandler "github.com/marolinik/arteon-ledger/internal/feature/ledger/transport/handler"
	platformhandler "github.com/marolinik/arteon-ledger/internal/platform/http/handler"
	"github.com/marolinik/arteon-ledger/internal/platform/token"
	"github.com/marolinik/arteon-ledger/internal/shared/ratelimiter"
)

// NewRouter wires every endpoint. The middleware chain is layered:
// session first, then the forced-password-change gate, then the admin
// gate. Change-password and logout stay reachable while the forced
// flag is set; admin routes require all three.
func NewRouter(
	auth *accountshandler.AuthHandler,
	ledger *ledgerhandler.LedgerHandler,
	codec *token.Codec,
	resolver token.SessionResolver,
	loginLimiter ratelimiter.RateLimiterInterface,
) *gin.Engine {
	r := gin.Default()

	// No authentication required
	r.GET("/healthz", platformhandler.Health)
	r.POST("/login", loginRateLimit(loginLimiter), auth.Login)

	// Session required; forced-change users may still pass here
	session := r.Group("/")
	session.Use(token.SessionRequired(codec, resolver))
	{
		session.POST("/logout", auth.Logout)
		session.POST("/change-password", auth.ChangePassword)
	}

	// Session required and the forced password change completed
	active := session.Group("/")
	active.Use(token.ForcedPasswordChangeGate())
	{
		active.GET("/me", auth.Me)
		active.GET("/dashboard", ledger.Dashboard)
		active.POST("/expenses", ledger.CreateExpense)
		active.PUT("/expenses/:id", ledger.UpdateExpense)
		active.DELETE("/expenses/:id", ledger.DeleteExpense)
	}

	// Admins only
	admin := active.Group("/admin")
	admin.Use(token.AdminRequired())
	{
		admin.GET("", ledger.Admin)
		admin.POST("/settle", ledger.SettleAll)
		admin.POST("/expenses/:id/settle", ledger.SettleOne)
	}

	return r
}

// loginRateLimit rejects clients that exceed the per-IP login budget.
func loginRateLimit(limiter ratelimiter.RateLimiterInterface) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.Allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many login attempts, try again later"})
			return
		}
		c.Next()
	}
}
