package api_test

import (
	"context"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/lazarmura54-arch/Hotel/internal/account"
	"github.com/lazarmura54-arch/Hotel/internal/api"
	"github.com/lazarmura54-arch/Hotel/internal/catalog"
	"github.com/lazarmura54-arch/Hotel/internal/dbtest"
	"github.com/lazarmura54-arch/Hotel/internal/domain"
	"github.com/lazarmura54-arch/Hotel/internal/metrics"
	"github.com/lazarmura54-arch/Hotel/internal/middleware"
	"github.com/lazarmura54-arch/Hotel/internal/orders"
	"github.com/lazarmura54-arch/Hotel/internal/session"
)

type site struct {
	t      *testing.T
	db     *gorm.DB
	server *httptest.Server
	client *http.Client
}

func newSite(t *testing.T) *site {
	t.Helper()
	gin.SetMode(gin.TestMode)
	gdb := dbtest.Open(t)

	menus := catalog.NewService(gdb)
	_, err := menus.Seed(context.Background(), catalog.DefaultMenu)
	require.NoError(t, err)

	accounts := account.NewService(gdb, bcrypt.MinCost)
	binder := session.NewBinder(session.NewMemoryStore(), accounts, time.Hour)
	router := api.NewRouter(api.Deps{
		DB:       gdb,
		Accounts: accounts,
		Catalog:  menus,
		Orders:   orders.NewService(gdb),
		Sessions: middleware.NewSessions(binder, "test-secret", "hotel_session", time.Hour, false),
		Metrics:  metrics.New(),
	})
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &site{t: t, db: gdb, server: server, client: newClient(t)}
}

// newClient returns a browser-like client that keeps cookies and does not follow redirects
func newClient(t *testing.T) *http.Client {
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{
		Jar: jar,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

type page struct {
	status   int
	location string
	body     string
}

func (s *site) do(client *http.Client, method, path string, form url.Values) page {
	s.t.Helper()
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req, err := http.NewRequest(method, s.server.URL+path, body)
	require.NoError(s.t, err)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	resp, err := client.Do(req)
	require.NoError(s.t, err)
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(s.t, err)
	return page{status: resp.StatusCode, location: resp.Header.Get("Location"), body: string(b)}
}

func (s *site) get(path string) page { return s.do(s.client, http.MethodGet, path, nil) }

func (s *site) post(path string, form url.Values) page {
	return s.do(s.client, http.MethodPost, path, form)
}

func (s *site) signup(username, email, password string) page {
	return s.post("/signup", url.Values{"username": {username}, "email": {email}, "password": {password}})
}

func (s *site) login(username, password string) page {
	return s.post("/login", url.Values{"username": {username}, "password": {password}})
}

func (s *site) orderCount() int64 {
	var n int64
	require.NoError(s.t, s.db.Model(&domain.Order{}).Count(&n).Error)
	return n
}

func TestHomeListsHotels(t *testing.T) {
	s := newSite(t)

	p := s.get("/")
	require.Equal(t, http.StatusOK, p.status)
	b, l, m, n := strings.Index(p.body, "bhasker"), strings.Index(p.body, "lazar"),
		strings.Index(p.body, "mariyamma"), strings.Index(p.body, "nani")
	assert.True(t, b < l && l < m && m < n, "hotels out of order")
}

func TestHotelPageIsCaseInsensitive(t *testing.T) {
	s := newSite(t)

	p := s.get("/hotel/LAZAR")
	require.Equal(t, http.StatusOK, p.status)
	assert.Contains(t, p.body, "Chicken Biriyani")
	assert.Contains(t, p.body, "180.00")
}

func TestUnknownHotelRedirectsWithNotice(t *testing.T) {
	s := newSite(t)

	p := s.get("/hotel/nowhere")
	assert.Equal(t, http.StatusFound, p.status)
	assert.Equal(t, "/", p.location)

	home := s.get("/")
	assert.Contains(t, home.body, "Sorry, the hotel &#39;nowhere&#39; was not found.")

	// Notices are shown once
	assert.NotContains(t, s.get("/").body, "was not found")
}

func TestContactPage(t *testing.T) {
	s := newSite(t)
	p := s.get("/contact_us")
	assert.Equal(t, http.StatusOK, p.status)
	assert.Contains(t, p.body, "Contact us")
}

func TestSignupDuplicateUsername(t *testing.T) {
	s := newSite(t)

	p := s.signup("alice", "a@x.com", "pw123")
	assert.Equal(t, "/login", p.location)
	assert.Contains(t, s.get("/login").body, "Account created successfully! Please log in.")

	p = s.signup("alice", "new@x.com", "pw123")
	assert.Equal(t, "/signup", p.location)
	assert.Contains(t, s.get("/signup").body, "Username already exists.")

	p = s.signup("bob", "a@x.com", "pw123")
	assert.Equal(t, "/signup", p.location)
	assert.Contains(t, s.get("/signup").body, "Email address already registered.")
}

func TestSignupTooLongUsername(t *testing.T) {
	s := newSite(t)
	p := s.signup(strings.Repeat("a", 81), "a@x.com", "pw123")
	assert.Equal(t, "/signup", p.location)
	assert.Contains(t, s.get("/signup").body, "Username must be at most 80 characters")
}

func TestLogoutRotatesSessionCookie(t *testing.T) {
	s := newSite(t)
	s.signup("alice", "a@x.com", "pw123")
	s.login("alice", "pw123")
	u, err := url.Parse(s.server.URL)
	require.NoError(t, err)
	before := s.client.Jar.Cookies(u)
	s.get("/logout")
	after := s.client.Jar.Cookies(u)
	require.Len(t, before, 1)
	require.Len(t, after, 1)
	assert.NotEqual(t, before[0].Value, after[0].Value)
}

func TestLoginFailuresLookTheSame(t *testing.T) {
	s := newSite(t)
	s.signup("alice", "a@x.com", "pw123")
	s.get("/login") // Drain the signup notice

	wrong := s.login("alice", "nope")
	wrongPage := s.get("/login")
	unknown := s.login("mallory", "pw123")
	unknownPage := s.get("/login")

	assert.Equal(t, wrong.status, unknown.status)
	assert.Equal(t, wrong.location, unknown.location)
	assert.Equal(t, "/login", wrong.location)
	assert.Equal(t, wrongPage.body, unknownPage.body)
	assert.Contains(t, wrongPage.body, "Invalid username or password. Please try again.")
}

func TestGuardRedirectsAnonymousVisitors(t *testing.T) {
	s := newSite(t)

	for _, path := range []string{"/logout", "/address_form?items=Curd+Rice&total=50", "/orders"} {
		p := s.get(path)
		assert.Equal(t, http.StatusFound, p.status, path)
		assert.Equal(t, "/login", p.location, path)
	}
	assert.Contains(t, s.get("/login").body, "Please log in to access this page.")
}

func TestAnonymousOrderIsRejected(t *testing.T) {
	s := newSite(t)

	p := s.post("/address_form", url.Values{
		"fname": {"Alice"}, "mobile": {"999"}, "address": {"1 Rd"}, "items": {"[Biriyani]"}, "total": {"180.0"},
	})
	assert.Equal(t, http.StatusFound, p.status)
	assert.Equal(t, "/login", p.location)
	assert.Zero(t, s.orderCount())
}

func TestEmptyCartIsRejected(t *testing.T) {
	s := newSite(t)
	s.signup("alice", "a@x.com", "pw123")
	s.login("alice", "pw123")

	p := s.get("/address_form?total=10")
	assert.Equal(t, "/", p.location)
	assert.Contains(t, s.get("/").body, "Your cart is empty. Please select items to order.")
}

func TestInvalidTotalCreatesNoOrder(t *testing.T) {
	s := newSite(t)
	s.signup("alice", "a@x.com", "pw123")
	s.login("alice", "pw123")

	p := s.post("/address_form", url.Values{
		"fname": {"Alice"}, "mobile": {"999"}, "address": {"1 Rd"}, "items": {"[Biriyani]"}, "total": {"not-a-number"},
	})
	assert.Equal(t, "/", p.location)
	assert.Zero(t, s.orderCount())
}

func TestMissingFieldCreatesNoOrder(t *testing.T) {
	s := newSite(t)
	s.signup("alice", "a@x.com", "pw123")
	s.login("alice", "pw123")

	p := s.post("/address_form", url.Values{"fname": {"Alice"}, "items": {"[Biriyani]"}, "total": {"180"}})
	assert.Equal(t, "/", p.location)
	assert.Contains(t, s.get("/").body, "Please fill all fields to submit your order.")
	assert.Zero(t, s.orderCount())
}

func TestOrderEndToEnd(t *testing.T) {
	s := newSite(t)

	s.signup("alice", "a@x.com", "pw123")
	p := s.login("alice", "pw123")
	require.Equal(t, "/", p.location)
	assert.Contains(t, s.get("/").body, "Welcome back, alice!")

	form := s.get("/address_form?items=Biriyani&total=180.0")
	require.Equal(t, http.StatusOK, form.status)
	assert.Contains(t, form.body, `value="[Biriyani]"`)

	p = s.post("/address_form", url.Values{
		"fname": {"Alice"}, "mobile": {"999"}, "address": {"1 Rd"}, "items": {"[Biriyani]"}, "total": {"180.0"},
	})
	require.Equal(t, http.StatusOK, p.status)
	assert.Contains(t, p.body, "Thank you, Alice!")

	var alice domain.User
	require.NoError(t, s.db.Where("username = ?", "alice").First(&alice).Error)
	var stored []domain.Order
	require.NoError(t, s.db.Find(&stored).Error)
	require.Len(t, stored, 1)
	assert.Equal(t, alice.ID, stored[0].UserID)
	assert.Equal(t, 180.0, stored[0].Total)
	assert.Equal(t, "[Biriyani]", stored[0].Items)

	history := s.get("/orders")
	assert.Contains(t, history.body, "[Biriyani]")
}

func TestOrdersAreScopedToTheirOwner(t *testing.T) {
	s := newSite(t)
	s.signup("alice", "a@x.com", "pw123")
	s.login("alice", "pw123")
	s.post("/address_form", url.Values{
		"fname": {"Alice"}, "mobile": {"999"}, "address": {"Alice Street"}, "items": {"[Curd Rice]"}, "total": {"50"},
	})

	bob := newClient(t)
	s.do(bob, http.MethodPost, "/signup", url.Values{"username": {"bob"}, "email": {"b@x.com"}, "password": {"pw"}})
	s.do(bob, http.MethodPost, "/login", url.Values{"username": {"bob"}, "password": {"pw"}})
	history := s.do(bob, http.MethodGet, "/orders", nil)
	assert.Equal(t, http.StatusOK, history.status)
	assert.NotContains(t, history.body, "Alice Street")
}

func TestLogoutUnbinds(t *testing.T) {
	s := newSite(t)
	s.signup("alice", "a@x.com", "pw123")
	s.login("alice", "pw123")

	p := s.get("/logout")
	assert.Equal(t, "/", p.location)
	assert.Contains(t, s.get("/").body, "You have been logged out successfully.")

	p = s.get("/orders")
	assert.Equal(t, "/login", p.location)
}

func TestSecondLoginReplacesIdentity(t *testing.T) {
	s := newSite(t)
	s.signup("alice", "a@x.com", "pw123")
	s.signup("bob", "b@x.com", "pw456")
	s.login("alice", "pw123")
	s.login("bob", "pw456")

	assert.Contains(t, s.get("/").body, "Signed in as bob")
}

func TestHealthAndMetrics(t *testing.T) {
	s := newSite(t)

	assert.Equal(t, http.StatusOK, s.get("/healthz").status)
	s.signup("alice", "a@x.com", "pw123")
	p := s.get("/metrics")
	assert.Equal(t, http.StatusOK, p.status)
	assert.Contains(t, p.body, "hotel_signups_total 1")
}
