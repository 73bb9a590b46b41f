// internal/interfaces/http/middleware/session.go
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront/internal/config"
	"github.com/your-org/storefront/internal/pkg/session"
)

const sessionIDKey = "session_id"

// Seeder fills in any seeded state a session is missing
type Seeder interface {
	Seed(ctx context.Context, sessionID string) error
}

// Session resolves the visitor session from the session cookie or a Bearer
// token. Visitors without a valid token get a fresh session and cookie.
func Session(cfg *config.Config, manager *session.Manager, seeder Seeder, logger logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, err := sessionFromRequest(c, cfg.Session.CookieName, manager)
		if err != nil {
			var token string
			sessionID, token, err = manager.NewSession()
			if err != nil {
				logger.WithError(err).Error("Failed to issue session token")
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error": "Failed to start session",
				})
				return
			}
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(cfg.Session.CookieName, token, int(manager.TTL().Seconds()), "/", "", cfg.Session.Secure, true)
		}

		if seeder != nil {
			if err := seeder.Seed(c.Request.Context(), sessionID); err != nil {
				// Reads fall back to empty defaults
				logger.WithError(err).WithField("session_id", sessionID).Warn("Failed to seed session from mock users")
			}
		}

		c.Set(sessionIDKey, sessionID)
		c.Next()
	}
}

func sessionFromRequest(c *gin.Context, cookieName string, manager *session.Manager) (string, error) {
	if token, err := c.Cookie(cookieName); err == nil && token != "" {
		return manager.Validate(token)
	}
	if token := extractBearer(c.GetHeader("Authorization")); token != "" {
		return manager.Validate(token)
	}
	return "", session.ErrInvalidToken
}

func extractBearer(header string) string {
	const prefix = "Bearer "
	if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		return strings.TrimSpace(header[len(prefix):])
	}
	return ""
}

// GetSessionID extracts the session ID from gin context
func GetSessionID(c *gin.Context) string {
	return c.GetString(sessionIDKey)
}
