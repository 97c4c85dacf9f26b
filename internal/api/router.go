package api

import (
	"net/http" // HTTP status codes

	"github.com/gin-gonic/gin" // Gin web framework
	"gorm.io/gorm"             // GORM ORM library

	"github.com/lazarmura54-arch/Hotel/internal/account"    // Credential store
	"github.com/lazarmura54-arch/Hotel/internal/catalog"    // Menu catalog
	"github.com/lazarmura54-arch/Hotel/internal/metrics"    // Prometheus counters
	"github.com/lazarmura54-arch/Hotel/internal/middleware" // Session middleware
	"github.com/lazarmura54-arch/Hotel/internal/orders"     // Order recorder
	"github.com/lazarmura54-arch/Hotel/internal/web"        // HTML templates
)

// Deps are the services the router wires into handlers
type Deps struct {
	DB        *gorm.DB             // Database, pinged by /healthz
	Accounts  *account.Service     // Credential store
	Catalog   *catalog.Service     // Menu catalog
	Orders    *orders.Service      // Order recorder
	Sessions  *middleware.Sessions // Session binding and guard
	Metrics   *metrics.Metrics     // Prometheus collectors
	StaticDir string               // Served under /static when set
}

// NewRouter builds the gin engine with every route of the site
func NewRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery(), d.Metrics.Middleware())
	r.SetHTMLTemplate(web.Templates())

	pages := NewPages(d.Sessions)

	// Operational routes, no session
	r.GET("/metrics", gin.WrapH(d.Metrics.Handler()))
	r.GET("/healthz", HealthHandler(d.DB))
	if d.StaticDir != "" {
		r.Static("/static", d.StaticDir)
	}

	// Public pages
	site := r.Group("/")
	site.Use(d.Sessions.Load())
	site.GET("/", HomeHandler(d.Catalog, pages))
	site.GET("/hotel/:hotelName", HotelHandler(d.Catalog, pages))
	site.GET("/contact_us", PageHandler(pages, "contact_us.html", "Contact us"))
	site.GET("/signup", PageHandler(pages, "signup.html", "Sign up"))
	site.POST("/signup", SignupHandler(d.Accounts, pages, d.Metrics))
	site.GET("/login", PageHandler(pages, "login.html", "Log in"))
	site.POST("/login", LoginHandler(d.Accounts, d.Sessions, pages, d.Metrics))

	// Pages that need a signed-in user
	private := site.Group("/")
	private.Use(d.Sessions.RequireAuthenticated())
	private.GET("/logout", LogoutHandler(d.Sessions, pages))
	private.GET("/address_form", AddressFormHandler(pages))
	private.POST("/address_form", SubmitOrderHandler(d.Orders, pages, d.Metrics))
	private.GET("/orders", OrderHistoryHandler(d.Orders, pages))

	return r
}

// HealthHandler reports whether the database answers
func HealthHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
