package api

import (
	"errors"   // Error matching
	"net/http" // HTTP status codes

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logrus for structured logging

	"github.com/lazarmura54-arch/Hotel/internal/middleware" // Session middleware
	"github.com/lazarmura54-arch/Hotel/internal/session"    // Flash kinds
)

// Pages renders templates and redirects with one-shot notices.
// Both save the session before anything is written to the response.
type Pages struct {
	sessions *middleware.Sessions
}

// NewPages returns a Pages bound to the session middleware
func NewPages(sessions *middleware.Sessions) *Pages {
	return &Pages{sessions: sessions}
}

// Render executes the named template with the pending notices and the signed-in user
func (p *Pages) Render(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["Flashes"] = p.sessions.Binder().PopFlashes(middleware.Current(c)) // One-shot notices
	user, err := p.sessions.Identity(c)
	switch {
	case err == nil:
		data["User"] = user // Signed-in user for the navigation bar
	case !errors.Is(err, session.ErrUnauthenticated):
		p.Fail(c, err, "Failed to resolve session user", nil)
		return
	}
	if err := p.sessions.Commit(c); err != nil {
		p.Fail(c, err, "Failed to save session", nil)
		return
	}
	c.HTML(status, name, data)
}

// Redirect queues an optional notice and sends the browser to location
func (p *Pages) Redirect(c *gin.Context, kind, message, location string) {
	if message != "" {
		p.sessions.Binder().Flash(middleware.Current(c), kind, message)
	}
	if err := p.sessions.Commit(c); err != nil {
		p.Fail(c, err, "Failed to save session", nil)
		return
	}
	c.Redirect(http.StatusFound, location)
}

// Fail logs err and answers with a generic server error
func (p *Pages) Fail(c *gin.Context, err error, msg string, fields logrus.Fields) {
	logrus.WithFields(fields).WithError(err).Error(msg)
	c.AbortWithStatus(http.StatusInternalServerError)
}
