package api

import (
	"errors"   // Error matching
	"net/http" // HTTP status codes

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logrus for structured logging

	"github.com/lazarmura54-arch/Hotel/internal/metrics"    // Prometheus counters
	"github.com/lazarmura54-arch/Hotel/internal/middleware" // Session middleware
	"github.com/lazarmura54-arch/Hotel/internal/orders"     // Order recorder
	"github.com/lazarmura54-arch/Hotel/internal/session"    // Flash kinds
)

// orderNotices maps rejected submissions to the notice shown on the home page
var orderNotices = []struct {
	err     error
	message string
}{
	{orders.ErrMissingField, "Please fill all fields to submit your order."},
	{orders.ErrFieldTooLong, "Some delivery details are too long. Please shorten them and try again."},
	{orders.ErrInvalidTotal, "The order total is not a valid amount."},
}

// AddressFormHandler shows the delivery form for the cart carried in the query string
func AddressFormHandler(pages *Pages) gin.HandlerFunc {
	return func(c *gin.Context) {
		cart, err := orders.PrepareCart(c.QueryArray("items"), c.DefaultQuery("total", "0.00"))
		if errors.Is(err, orders.ErrEmptyCart) {
			pages.Redirect(c, session.FlashError, "Your cart is empty. Please select items to order.", "/")
			return
		}
		pages.Render(c, http.StatusOK, "address_form.html", gin.H{"Title": "Delivery details", "Cart": cart})
	}
}

// SubmitOrderHandler stores the order for the signed-in user and shows a confirmation
func SubmitOrderHandler(recorder *orders.Service, pages *Pages, m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c) // Set by RequireAuthenticated
		var sub orders.Submission         // Bind form to struct
		if err := c.ShouldBind(&sub); err != nil {
			pages.Redirect(c, session.FlashError, "Invalid request.", "/")
			return
		}
		order, err := recorder.Submit(c.Request.Context(), user, sub)
		if errors.Is(err, orders.ErrNoIdentity) {
			pages.Redirect(c, session.FlashError, "Please log in to access this page.", middleware.LoginPath)
			return
		}
		if err != nil {
			for _, n := range orderNotices {
				if errors.Is(err, n.err) {
					pages.Redirect(c, session.FlashError, n.message, "/")
					return
				}
			}
			pages.Fail(c, err, "Failed to create order", logrus.Fields{"user_id": user.ID})
			return
		}
		m.OrdersPlaced.Inc()
		// Log the new order
		logrus.WithFields(logrus.Fields{
			"order_id": order.ID,    // Order ID
			"user_id":  user.ID,     // Owning user ID
			"total":    order.Total, // Order total
		}).Info("Order placed")
		pages.Render(c, http.StatusOK, "order_confirmation.html", gin.H{"Title": "Order placed", "Order": order})
	}
}

// OrderHistoryHandler lists the signed-in user's orders
func OrderHistoryHandler(recorder *orders.Service, pages *Pages) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c) // Set by RequireAuthenticated
		list, err := recorder.ListForUser(c.Request.Context(), user.ID)
		if err != nil {
			pages.Fail(c, err, "Failed to list orders", logrus.Fields{"user_id": user.ID})
			return
		}
		pages.Render(c, http.StatusOK, "orders.html", gin.H{"Title": "My orders", "Orders": list})
	}
}
