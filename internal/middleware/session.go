package middleware

import (
	"errors"   // Error matching
	"net/http" // HTTP status codes
	"time"     // Cookie lifetime

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logrus for structured logging

	"github.com/lazarmura54-arch/Hotel/internal/domain"  // Importing domain models
	"github.com/lazarmura54-arch/Hotel/internal/session" // Session binder
	"github.com/lazarmura54-arch/Hotel/internal/utils"   // Session cookie signing
)

// Context keys
const (
	sessionKey = "session"
	userKey    = "user"
	userIDKey  = "userID"
)

// LoginPath is where unauthenticated visitors are sent
const LoginPath = "/login"

// Sessions connects the session Binder to gin requests and the session cookie
type Sessions struct {
	binder *session.Binder
	secret string        // Cookie signing key
	cookie string        // Cookie name
	ttl    time.Duration // Cookie and session lifetime
	secure bool          // Send the cookie over HTTPS only
}

// NewSessions returns the session middleware set
func NewSessions(binder *session.Binder, secret, cookieName string, ttl time.Duration, secure bool) *Sessions {
	return &Sessions{binder: binder, secret: secret, cookie: cookieName, ttl: ttl, secure: secure}
}

// Binder returns the underlying session Binder
func (m *Sessions) Binder() *session.Binder { return m.binder }

// Load opens the session named by the request cookie and stores it in the context.
// Missing, tampered or expired cookies start a new anonymous session.
func (m *Sessions) Load() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := ""
		if raw, err := c.Cookie(m.cookie); err == nil {
			if sid, err := utils.ParseSessionToken(raw, m.secret); err == nil {
				id = sid
			}
		}
		s, err := m.binder.Open(c.Request.Context(), id)
		if err != nil {
			logrus.WithError(err).Error("Failed to load session")
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}
		c.Set(sessionKey, s) // Store session in context
		c.Next()
	}
}

// Current returns the session opened by Load
func Current(c *gin.Context) *session.Session {
	return c.MustGet(sessionKey).(*session.Session)
}

// Commit saves the session and refreshes the cookie if anything changed.
// It must run before the response is written.
func (m *Sessions) Commit(c *gin.Context) error {
	s := Current(c)
	if !s.Dirty() {
		return nil
	}
	if err := m.binder.Save(c.Request.Context(), s); err != nil {
		return err
	}
	token, err := utils.SignSessionToken(s.ID(), m.secret, m.ttl)
	if err != nil {
		return err
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(m.cookie, token, int(m.ttl.Seconds()), "/", "", m.secure, true)
	return nil
}

// Identity resolves the user bound to the request's session, once per request.
// It returns session.ErrUnauthenticated for anonymous visitors.
func (m *Sessions) Identity(c *gin.Context) (*domain.User, error) {
	if u, ok := c.Get(userKey); ok {
		return u.(*domain.User), nil
	}
	user, err := m.binder.Resolve(c.Request.Context(), Current(c))
	if err != nil {
		return nil, err
	}
	c.Set(userKey, user)      // Store user in context
	c.Set(userIDKey, user.ID) // Store userID in context
	return user, nil
}

// RequireAuthenticated rejects anonymous requests before the handler runs
// and redirects them to the login page. The requested URL is not kept.
func (m *Sessions) RequireAuthenticated() gin.HandlerFunc {
	return func(c *gin.Context) {
		_, err := m.Identity(c)
		if errors.Is(err, session.ErrUnauthenticated) {
			m.binder.Flash(Current(c), session.FlashError, "Please log in to access this page.")
			if err := m.Commit(c); err != nil {
				logrus.WithError(err).Error("Failed to save session")
				c.AbortWithStatus(http.StatusInternalServerError)
				return
			}
			c.Redirect(http.StatusFound, LoginPath)
			c.Abort()
			return
		}
		if err != nil {
			logrus.WithError(err).Error("Failed to resolve session user")
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}
		c.Next() // Proceed to the next handler
	}
}

// CurrentUser returns the user set by RequireAuthenticated or Identity
func CurrentUser(c *gin.Context) *domain.User {
	if u, ok := c.Get(userKey); ok {
		return u.(*domain.User)
	}
	return nil
}
