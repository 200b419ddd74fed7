package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/avdeev0/EventRegistry/internal/domain"
	"github.com/wb-go/wbf/ginext"
)

const sessionKey = "session"

type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*domain.Session, error)
}

// Auth resolves the bearer token into a session and attaches it to the
// request. Requests without a valid session are rejected.
func Auth(auth Authenticator) ginext.HandlerFunc {
	return func(c *ginext.Context) {
		const prefix = "Bearer "
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, prefix) {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				ginext.H{"error": "missing session token"},
			)
			return
		}

		session, err := auth.Authenticate(c.Request.Context(), strings.TrimPrefix(header, prefix))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				ginext.H{"error": domain.ErrSessionNotFound.Error()},
			)
			return
		}

		c.Set(sessionKey, session)
		c.Next()
	}
}

// RequireRole guards a route group behind one role. Must run after Auth.
func RequireRole(role domain.Role) ginext.HandlerFunc {
	return func(c *ginext.Context) {
		session, ok := SessionFromContext(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				ginext.H{"error": "missing session token"},
			)
			return
		}

		if session.Role != role {
			c.AbortWithStatusJSON(http.StatusForbidden,
				ginext.H{"error": "role " + string(role) + " required"},
			)
			return
		}

		c.Next()
	}
}

func SessionFromContext(c *ginext.Context) (*domain.Session, bool) {
	v, ok := c.Get(sessionKey)
	if !ok {
		return nil, false
	}

	session, ok := v.(*domain.Session)
	return session, ok
}
