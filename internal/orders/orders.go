// Package orders records placed orders against the authenticated user.
package orders

import (
	"context"
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"gorm.io/gorm" // GORM ORM library

	"github.com/lazarmura54-arch/Hotel/internal/domain" // Importing domain models
)

var (
	ErrNoIdentity   = errors.New("order requires an authenticated user")
	ErrMissingField = errors.New("missing required field")
	ErrFieldTooLong = errors.New("field too long")
	ErrInvalidTotal = errors.New("total is not a valid non-negative amount")
	ErrEmptyCart    = errors.New("cart is empty")
)

// Submission is the delivery form exactly as the client posted it
type Submission struct {
	Name    string `form:"fname"`   // Recipient name
	Mobile  string `form:"mobile"`  // Recipient mobile number
	Address string `form:"address"` // Delivery address
	Items   string `form:"items"`   // Serialized cart items
	Total   string `form:"total"`   // Cart total as text
}

// Cart is the pre-filled content of the address form
type Cart struct {
	Items []string // Item labels carried over from the menu page
	Total string   // Total as submitted by the client
}

// Service persists orders
type Service struct {
	db *gorm.DB
}

// NewService returns an orders Service backed by db
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Submit validates sub and stores it as an order owned by user.
// Items are not checked against the catalog and the total is not recomputed.
func (s *Service) Submit(ctx context.Context, user *domain.User, sub Submission) (*domain.Order, error) {
	if user == nil || user.ID == 0 {
		return nil, ErrNoIdentity
	}
	fields := []struct {
		name  string
		value string
		max   int
	}{
		{"name", sub.Name, 100},
		{"mobile", sub.Mobile, 15},
		{"address", sub.Address, 200},
		{"items", sub.Items, 0},
		{"total", sub.Total, 0},
	}
	for _, f := range fields {
		v := strings.TrimSpace(f.value)
		if v == "" {
			return nil, fmt.Errorf("%w: %s", ErrMissingField, f.name)
		}
		if f.max > 0 && len(v) > f.max {
			return nil, fmt.Errorf("%w: %s", ErrFieldTooLong, f.name)
		}
	}
	total, err := ParseTotal(sub.Total)
	if err != nil {
		return nil, err
	}

	order := domain.Order{
		Name:    strings.TrimSpace(sub.Name),
		Mobile:  strings.TrimSpace(sub.Mobile),
		Address: strings.TrimSpace(sub.Address),
		Items:   sub.Items,
		Total:   total,
		UserID:  user.ID, // Owned by the authenticated user
	}
	if err := s.db.WithContext(ctx).Create(&order).Error; err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	return &order, nil
}

// decimalPattern matches plain decimal numbers; hex floats and digit separators are not amounts
var decimalPattern = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)

// ParseTotal parses a client supplied total as a finite, non-negative amount
func ParseTotal(raw string) (float64, error) {
	trimmed := strings.TrimSpace(raw)
	if !decimalPattern.MatchString(trimmed) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTotal, raw)
	}
	total, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || math.IsNaN(total) || math.IsInf(total, 0) || total < 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTotal, raw)
	}
	return total, nil
}

// PrepareCart checks there is something to order before the address form is shown
func PrepareCart(items []string, total string) (*Cart, error) {
	if len(items) == 0 || total == "" {
		return nil, ErrEmptyCart
	}
	return &Cart{Items: items, Total: total}, nil
}

// Label is the text stored as the order's items, e.g. "[Chicken Biriyani, Curd Rice]"
func (c *Cart) Label() string {
	return "[" + strings.Join(c.Items, ", ") + "]"
}

// ListForUser returns the orders owned by userID, newest first
func (s *Service) ListForUser(ctx context.Context, userID uint) ([]domain.Order, error) {
	var orders []domain.Order
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id desc").
		Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("list orders for user %d: %w", userID, err)
	}
	return orders, nil
}
