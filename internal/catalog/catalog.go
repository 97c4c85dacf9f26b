// Package catalog serves the per-hotel menus and seeds them.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"gorm.io/gorm" // GORM ORM library

	"github.com/lazarmura54-arch/Hotel/internal/domain" // Importing domain models
)

// ErrHotelNotFound is returned when no menu item carries the requested hotel tag
var ErrHotelNotFound = errors.New("hotel not found")

// Service reads the menu catalog
type Service struct {
	db *gorm.DB
}

// NewService returns a catalog Service backed by db
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// ListHotels returns every distinct hotel tag in ascending byte order
func (s *Service) ListHotels(ctx context.Context) ([]string, error) {
	var hotels []string
	if err := s.db.WithContext(ctx).Model(&domain.MenuItem{}).Distinct().Pluck("hotel", &hotels).Error; err != nil {
		return nil, fmt.Errorf("list hotels: %w", err)
	}
	// Sort here so the order does not depend on the database collation
	sort.Strings(hotels)
	return hotels, nil
}

// ListItems returns the items of one hotel, matched case-insensitively, in insertion order
func (s *Service) ListItems(ctx context.Context, hotel string) ([]domain.MenuItem, error) {
	var items []domain.MenuItem
	if err := s.db.WithContext(ctx).
		Where("LOWER(hotel) = LOWER(?)", hotel).
		Order("id asc").
		Find(&items).Error; err != nil {
		return nil, fmt.Errorf("list items for %q: %w", hotel, err)
	}
	if len(items) == 0 {
		return nil, ErrHotelNotFound
	}
	return items, nil
}
