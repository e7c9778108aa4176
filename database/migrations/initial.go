package migrations

import (
	"gorm.io/gorm"

	"github.com/shashiranjanraj/catalog/app/models"
	"github.com/shashiranjanraj/catalog/pkg/migration"
)

func init() {
	migration.Register("20260301000000_create_categories_table", table(&models.Category{}, "categories"))
	migration.Register("20260301000001_create_users_table", table(&models.User{}, "users"))
	migration.Register("20260301000002_create_products_table", table(&models.Product{}, "products"))
	migration.Register("20260301000003_create_logs_table", table(&models.Log{}, "logs"))
	migration.Register("20260301000004_create_monitored_users_table", table(&models.MonitoredUser{}, "monitored_users"))
}

func table(model interface{}, name string) migration.Migration {
	return migration.Func(
		func(db *gorm.DB) error { return db.AutoMigrate(model) },
		func(db *gorm.DB) error { return db.Migrator().DropTable(name) },
	)
}
