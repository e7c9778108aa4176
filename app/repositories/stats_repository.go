package repositories

import (
	"context"
	"time"

	"github.com/shashiranjanraj/catalog/app/models"
	"github.com/shashiranjanraj/catalog/pkg/database"
	"github.com/shashiranjanraj/catalog/pkg/metrics"
)

// StatsRepository runs aggregate reads.
type StatsRepository struct {
	pool *database.Pool
}

func NewStatsRepository(pool *database.Pool) *StatsRepository {
	return &StatsRepository{pool: pool}
}

// AvgPricePerCategory averages the owner's product prices per category,
// highest average first.
func (r *StatsRepository) AvgPricePerCategory(ctx context.Context, owner uint) ([]models.CategoryAverage, error) {
	defer metrics.ObserveDBQuery("select", time.Now())
	db, cancel := r.pool.Conn(ctx)
	defer cancel()

	out := []models.CategoryAverage{}
	err := db.Table("products").
		Select("categories.name AS category, AVG(products.price) AS avg_price").
		Joins("JOIN categories ON categories.id = products.category_id").
		Where("products.user_id = ?", owner).
		Group("categories.id, categories.name").
		Order("AVG(products.price) DESC").
		Order("categories.name ASC").
		Scan(&out).Error
	return out, translate("average price per category", err)
}
