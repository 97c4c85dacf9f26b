package api

import (
	"errors"   // Error matching
	"net/http" // HTTP status codes

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logrus for structured logging

	"github.com/lazarmura54-arch/Hotel/internal/catalog" // Menu catalog
	"github.com/lazarmura54-arch/Hotel/internal/session" // Flash kinds
)

// HomeHandler lists the hotels that have a menu
func HomeHandler(menus *catalog.Service, pages *Pages) gin.HandlerFunc {
	return func(c *gin.Context) {
		hotels, err := menus.ListHotels(c.Request.Context())
		if err != nil {
			pages.Fail(c, err, "Failed to list hotels", nil)
			return
		}
		pages.Render(c, http.StatusOK, "index.html", gin.H{"Title": "Hotels", "HotelNames": hotels})
	}
}

// HotelHandler shows one hotel's menu
func HotelHandler(menus *catalog.Service, pages *Pages) gin.HandlerFunc {
	return func(c *gin.Context) {
		name := c.Param("hotelName")
		items, err := menus.ListItems(c.Request.Context(), name)
		if errors.Is(err, catalog.ErrHotelNotFound) {
			pages.Redirect(c, session.FlashError, "Sorry, the hotel '"+name+"' was not found.", "/")
			return
		}
		if err != nil {
			pages.Fail(c, err, "Failed to list menu items", logrus.Fields{"hotel": name})
			return
		}
		pages.Render(c, http.StatusOK, "hotel_menu.html", gin.H{"Title": name, "HotelName": name, "Items": items})
	}
}
