package auth

import (
	"net/http"
	"strings"

	"github.com/Yunxiang777/accounts/internal/dto"

	"github.com/gin-gonic/gin"
)

// SessionCookieName is the cookie carrying the opaque session ID.
const SessionCookieName = "session_id"

const contextKeyIdentity = "identity"

// IdentityFromContext returns the identity set by RequireSession or
// RequireToken. Zero value if not set.
func IdentityFromContext(c *gin.Context) Identity {
	v, ok := c.Get(contextKeyIdentity)
	if !ok {
		return Identity{}
	}
	ident, ok := v.(Identity)
	if !ok {
		return Identity{}
	}
	return ident
}

// RequireSession gates browser routes. A request without an active
// session is redirected to the login entry point rather than given an
// error body.
func RequireSession(sessions *Store, loginPath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, err := c.Cookie(SessionCookieName)
		if err != nil || sessionID == "" {
			c.Redirect(http.StatusFound, loginPath)
			c.Abort()
			return
		}
		ident, ok := sessions.Get(c.Request.Context(), sessionID)
		if !ok {
			c.Redirect(http.StatusFound, loginPath)
			c.Abort()
			return
		}
		c.Set(contextKeyIdentity, ident)
		c.Next()
	}
}

// RequireToken gates API routes with a bearer token. Each failure mode
// has its own envelope code: missing header, malformed header, and
// invalid or expired token.
func RequireToken(tokens *TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusForbidden, dto.Fail(dto.CodeMissingToken, "no token provided"))
			return
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.Fail(dto.CodeMalformedToken, "invalid token format"))
			return
		}
		ident, err := tokens.Verify(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.Fail(dto.CodeInvalidToken, "invalid token"))
			return
		}
		c.Set(contextKeyIdentity, ident)
		c.Next()
	}
}
