package token

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/marolinik/arteon-ledger/internal/feature/accounts/domain/entity"
)

const (
	// SessionCookieName is the name of the session cookie.
	SessionCookieName = "arteon_session"

	// ContextUser is the gin context key for the authenticated user.
	ContextUser = "currentUser"
	// ContextSession is the gin context key for the resolved session.
	ContextSession = "currentSession"
)

// SessionResolver resolves a session ID into its user and session.
// Following Go convention: the interface is defined by the consumer (middleware),
// not the provider (accounts usecase).
type SessionResolver interface {
	Resolve(ctx context.Context, sessionID string) (*entity.User, *entity.Session, error)
}

// SessionRequired returns a Gin middleware that restricts access to
// requests carrying a valid session cookie. The cookie signature is
// checked first, then the session is resolved server-side.
func SessionRequired(codec *Codec, resolver SessionResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		cookie, err := c.Cookie(SessionCookieName)
		if err != nil || cookie == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}

		sessionID, err := codec.Parse(cookie)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid session"})
			return
		}

		user, session, err := resolver.Resolve(c.Request.Context(), sessionID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid session"})
			return
		}

		c.Set(ContextUser, user)
		c.Set(ContextSession, session)
		c.Next()
	}
}

// ForcedPasswordChangeGate returns a middleware that blocks users who must
// still complete their mandatory first password change. Mount it after
// SessionRequired on every route except change-password and logout.
func ForcedPasswordChangeGate() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user != nil && user.ForcePasswordChange {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "password change required before continuing",
				"code":  "PASSWORD_CHANGE_REQUIRED",
			})
			return
		}
		c.Next()
	}
}

// AdminRequired returns a middleware that restricts a route to admins.
// Denial is a user-visible message, not a hard failure.
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil || !user.IsAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "you need to be an admin to access this page",
				"code":  "ADMIN_ONLY",
			})
			return
		}
		c.Next()
	}
}

// CurrentUser retrieves the authenticated user from the gin context.
func CurrentUser(c *gin.Context) *entity.User {
	if v, ok := c.Get(ContextUser); ok {
		if user, ok := v.(*entity.User); ok {
			return user
		}
	}
	return nil
}

// CurrentSession retrieves the resolved session from the gin context.
func CurrentSession(c *gin.Context) *entity.Session {
	if v, ok := c.Get(ContextSession); ok {
		if session, ok := v.(*entity.Session); ok {
			return session
		}
	}
	return nil
}
