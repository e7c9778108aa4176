package seeders

import (
	"context"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/catalog/app/models"
)

func init() {
	Register("catalog", seedCatalog)
}

// seedCatalog creates the General category, an admin user and two sample
// products owned by that user. Existing rows are left alone.
func seedCatalog(_ context.Context, db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		general := models.Category{Name: "General"}
		if err := tx.Where(models.Category{Name: "General"}).
			Attrs(models.Category{Description: "General products"}).
			FirstOrCreate(&general).Error; err != nil {
			return err
		}

		admin := models.User{Username: "admin"}
		if err := tx.Where(models.User{Username: "admin"}).
			Attrs(models.User{Password: "admin", Role: models.RoleAdmin}).
			FirstOrCreate(&admin).Error; err != nil {
			return err
		}

		samples := []models.Product{
			{Name: "Sample Product 1", Price: 99.99, Description: "This is a sample product"},
			{Name: "Sample Product 2", Price: 149.99, Description: "Another sample product"},
		}
		for _, s := range samples {
			p := models.Product{}
			err := tx.Where(models.Product{Name: s.Name, UserID: admin.ID}).
				Attrs(models.Product{
					Price:       s.Price,
					Description: s.Description,
					Image:       "/assets/images/placeholder.jpg",
					CategoryID:  general.ID,
				}).
				FirstOrCreate(&p).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}
