package web

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplatesParse(t *testing.T) {
	tpl := Templates()
	for _, name := range []string{
		"index.html", "hotel_menu.html", "address_form.html", "order_confirmation.html",
		"orders.html", "signup.html", "login.html", "contact_us.html",
	} {
		assert.NotNil(t, tpl.Lookup(name), name)
	}
}

func TestIndexRendersHotels(t *testing.T) {
	var buf bytes.Buffer
	err := Templates().ExecuteTemplate(&buf, "index.html", map[string]any{
		"Title":      "Hotels",
		"HotelNames": []string{"bhasker", "lazar"},
	})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `<a href="/hotel/lazar">lazar</a>`)
	assert.Contains(t, buf.String(), "Log in")
}
