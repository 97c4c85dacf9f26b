package catalog

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus" // Logrus for structured logging
	"gorm.io/gorm"               // GORM ORM library

	"github.com/lazarmura54-arch/Hotel/internal/domain" // Importing domain models
)

// SeedItem is one dish in a seed dataset
type SeedItem struct {
	Name  string
	Price float64
	Image string
}

// HotelMenu is the full menu of one hotel
type HotelMenu struct {
	Hotel string
	Items []SeedItem
}

// Dataset is an ordered list of hotel menus
type Dataset []HotelMenu

// SeedReport records which hotels a Seed run touched
type SeedReport struct {
	Added   []string // Hotels whose items were inserted
	Skipped []string // Hotels that already had items
}

// Seed inserts each hotel's items unless that hotel already has at least one item.
// Existing hotels are left as they are, even if the dataset changed.
func (s *Service) Seed(ctx context.Context, dataset Dataset) (SeedReport, error) {
	var report SeedReport
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, menu := range dataset {
			var count int64
			if err := tx.Model(&domain.MenuItem{}).Where("hotel = ?", menu.Hotel).Count(&count).Error; err != nil {
				return fmt.Errorf("count items for %q: %w", menu.Hotel, err)
			}
			if count > 0 {
				logrus.WithField("hotel", menu.Hotel).Info("Menu items already exist")
				report.Skipped = append(report.Skipped, menu.Hotel)
				continue
			}
			if len(menu.Items) == 0 {
				continue
			}
			rows := make([]domain.MenuItem, len(menu.Items))
			for i, item := range menu.Items {
				rows[i] = domain.MenuItem{Name: item.Name, Price: item.Price, Image: item.Image, Hotel: menu.Hotel}
			}
			if err := tx.Create(&rows).Error; err != nil {
				return fmt.Errorf("insert items for %q: %w", menu.Hotel, err)
			}
			logrus.WithFields(logrus.Fields{
				"hotel": menu.Hotel, // Hotel tag
				"items": len(rows),  // Number of inserted items
			}).Info("Added menu items")
			report.Added = append(report.Added, menu.Hotel)
		}
		return nil
	})
	if err != nil {
		return SeedReport{}, err
	}
	return report, nil
}

// DefaultMenu is the dataset shipped with the site
var DefaultMenu = Dataset{
	{Hotel: "lazar", Items: []SeedItem{
		{Name: "Chicken Biriyani", Price: 180.0, Image: "chicken1.jpeg"},
		{Name: "Egg Biriyani", Price: 190.0, Image: "egg1.jpeg"},
		{Name: "Mutton Biriyani", Price: 260.0, Image: "mutton1.jpeg"},
		{Name: "Veg Meals", Price: 90.0, Image: "meals1.jpeg"},
		{Name: "Curd Rice", Price: 50.0, Image: "Curd rice1.jpeg"},
		{Name: "Fish Biriyani", Price: 150.0, Image: "Fish1.jpeg"},
	}},
	{Hotel: "nani", Items: []SeedItem{
		{Name: "Chicken Biriyani", Price: 180.0, Image: "chicken1.jpeg"},
		{Name: "Egg Biriyani", Price: 190.0, Image: "egg1.jpeg"},
		{Name: "Mutton Biriyani", Price: 260.0, Image: "mutton1.jpeg"},
		{Name: "Veg Meals", Price: 90.0, Image: "meals1.jpeg"},
		{Name: "Curd Rice", Price: 50.0, Image: "Curd rice1.jpeg"},
		{Name: "Fish Biriyani", Price: 150.0, Image: "Fish1.jpeg"},
	}},
	{Hotel: "mariyamma", Items: []SeedItem{
		{Name: "Veg Biriyani", Price: 100.0, Image: "Veg Biriyani.jpeg"},
		{Name: "Egg Biriyani", Price: 90.0, Image: "egg2.jpeg"},
		{Name: "Mutton Biriyani", Price: 160.0, Image: "mutton2.jpeg"},
		{Name: "France Biryani", Price: 260.0, Image: "france2.jpeg"},
		{Name: "Veg Meals", Price: 70.0, Image: "meals2.jpeg"},
		{Name: "Curd Rice", Price: 80.0, Image: "curd rice.jpeg"},
	}},
	{Hotel: "bhasker", Items: []SeedItem{
		{Name: "Chicken Biriyani", Price: 100.0, Image: "chicken3.jpeg"},
		{Name: "Egg Biriyani", Price: 90.0, Image: "egg3.jpeg"},
		{Name: "Mutton Biriyani", Price: 160.0, Image: "mutton3.jpeg"},
		{Name: "Veg Meals", Price: 70.0, Image: "meals3.jpeg"},
		{Name: "France Biryani", Price: 80.0, Image: "france1.jpeg"},
		{Name: "Fish Biryani", Price: 60.0, Image: "fish1.jpeg"},
		{Name: "Fish Fry", Price: 100.0, Image: "fish2.jpeg"},
		{Name: "Chicken Fry", Price: 100.0, Image: "chicken fry.jpeg"},
	}},
}
