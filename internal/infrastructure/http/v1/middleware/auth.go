package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"stayhub/internal/core/apperror"
	appctx "stayhub/internal/core/context"
	"stayhub/pkg/logger"
)

// SessionResolver turns a session credential into the caller it was issued for.
type SessionResolver interface {
	Resolve(tokenString string) (*appctx.Caller, error)
}

// Authenticate resolves the bearer credential and attaches the caller to the
// request context. Public routes are passed through without a caller.
func Authenticate(resolver SessionResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		if PolicyFrom(c).Public {
			c.Next()
			return
		}

		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			logger.Warn(c.Request.Context(), "request rejected: missing credential",
				"route", c.FullPath())
			abortUnauthorized(c, "missing or malformed authorization header")
			return
		}

		caller, err := resolver.Resolve(token)
		if err != nil {
			logger.Warn(c.Request.Context(), "request rejected: invalid credential",
				"route", c.FullPath(),
				"error", err)
			if apperror.IsAppError(err) {
				_ = c.Error(err)
				c.Abort()
				return
			}
			abortUnauthorized(c, "invalid token")
			return
		}

		c.Request = c.Request.WithContext(appctx.WithCaller(c.Request.Context(), caller))
		c.Set("identity_id", caller.IdentityID.String())

		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}

func abortUnauthorized(c *gin.Context, message string) {
	_ = c.Error(apperror.NewUnauthorized(message))
	c.Abort()
}
