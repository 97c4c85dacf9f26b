package api

import (
	"errors" // Error matching
	"net/http"

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logrus for structured logging

	"github.com/lazarmura54-arch/Hotel/internal/account"    // Credential store
	"github.com/lazarmura54-arch/Hotel/internal/metrics"    // Prometheus counters
	"github.com/lazarmura54-arch/Hotel/internal/middleware" // Session middleware
	"github.com/lazarmura54-arch/Hotel/internal/session"    // Flash kinds
)

// SignupRequest is the registration form
type SignupRequest struct {
	Username string `form:"username"` // Desired username
	Email    string `form:"email"`    // Contact email
	Password string `form:"password"` // Plaintext password, hashed before storage
}

// LoginRequest is the login form
type LoginRequest struct {
	Username string `form:"username"` // Username
	Password string `form:"password"` // Plaintext password
}

// signupNotices maps registration failures to the notice shown on the signup page
var signupNotices = []struct {
	err     error
	message string
}{
	{account.ErrDuplicateUsername, "Username already exists. Please choose a different one."},
	{account.ErrDuplicateEmail, "Email address already registered. Please use a different one."},
	{account.ErrMissingField, "Please fill in username, email and password."},
	{account.ErrFieldTooLong, "Username must be at most 80 characters and email at most 120."},
	{account.ErrPasswordTooLong, "Password must be at most 72 bytes long."},
}

// PageHandler renders a template that needs no data
func PageHandler(pages *Pages, name, title string) gin.HandlerFunc {
	return func(c *gin.Context) {
		pages.Render(c, http.StatusOK, name, gin.H{"Title": title})
	}
}

// SignupHandler registers a new account and sends the visitor to the login page
func SignupHandler(accounts *account.Service, pages *Pages, m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SignupRequest // Bind form to struct
		if err := c.ShouldBind(&req); err != nil {
			pages.Redirect(c, session.FlashError, "Invalid request.", "/signup")
			return
		}
		user, err := accounts.Register(c.Request.Context(), req.Username, req.Email, req.Password)
		if err != nil {
			for _, n := range signupNotices {
				if errors.Is(err, n.err) {
					pages.Redirect(c, session.FlashError, n.message, "/signup")
					return
				}
			}
			pages.Fail(c, err, "Failed to register user", logrus.Fields{"username": req.Username})
			return
		}
		m.Signups.Inc()
		// Log the new account, never the password
		logrus.WithFields(logrus.Fields{
			"user_id":  user.ID,       // New user ID
			"username": user.Username, // Username
		}).Info("User registered")
		pages.Redirect(c, session.FlashSuccess, "Account created successfully! Please log in.", middleware.LoginPath)
	}
}

// LoginHandler authenticates the visitor and binds the account to the session
func LoginHandler(accounts *account.Service, sessions *middleware.Sessions, pages *Pages, m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest // Bind form to struct
		if err := c.ShouldBind(&req); err != nil {
			pages.Redirect(c, session.FlashError, "Invalid request.", middleware.LoginPath)
			return
		}
		user, err := accounts.Authenticate(c.Request.Context(), req.Username, req.Password)
		if errors.Is(err, account.ErrInvalidCredentials) {
			m.Logins.WithLabelValues("failure").Inc()
			logrus.WithField("username", req.Username).Warn("Login failed")
			pages.Redirect(c, session.FlashError, "Invalid username or password. Please try again.", middleware.LoginPath)
			return
		}
		if err != nil {
			pages.Fail(c, err, "Failed to authenticate user", logrus.Fields{"username": req.Username})
			return
		}
		m.Logins.WithLabelValues("success").Inc()
		sessions.Binder().Bind(middleware.Current(c), user) // Replaces any earlier login
		logrus.WithField("user_id", user.ID).Info("User logged in")
		pages.Redirect(c, session.FlashSuccess, "Welcome back, "+user.Username+"!", "/")
	}
}

// LogoutHandler clears the session's identity
func LogoutHandler(sessions *middleware.Sessions, pages *Pages) gin.HandlerFunc {
	return func(c *gin.Context) {
		if user := middleware.CurrentUser(c); user != nil {
			logrus.WithField("user_id", user.ID).Info("User logged out")
		}
		sessions.Binder().Unbind(middleware.Current(c))
		pages.Redirect(c, session.FlashSuccess, "You have been logged out successfully.", "/")
	}
}
