package repositories

import (
	"context"
	"time"

	"github.com/shashiranjanraj/catalog/app/models"
	"github.com/shashiranjanraj/catalog/pkg/database"
	"github.com/shashiranjanraj/catalog/pkg/metrics"
)

// CategoryRepository handles database operations for Category.
type CategoryRepository struct {
	pool *database.Pool
}

func NewCategoryRepository(pool *database.Pool) *CategoryRepository {
	return &CategoryRepository{pool: pool}
}

// List returns every category ordered by name.
func (r *CategoryRepository) List(ctx context.Context) ([]models.Category, error) {
	defer metrics.ObserveDBQuery("select", time.Now())
	db, cancel := r.pool.Conn(ctx)
	defer cancel()

	out := []models.Category{}
	err := db.Order("name ASC").Order("id ASC").Find(&out).Error
	return out, translate("list categories", err)
}

// Find looks up a category by primary key.
func (r *CategoryRepository) Find(ctx context.Context, id uint) (models.Category, error) {
	defer metrics.ObserveDBQuery("select", time.Now())
	db, cancel := r.pool.Conn(ctx)
	defer cancel()

	var c models.Category
	err := db.First(&c, id).Error
	return c, translate("find category", err)
}

// First returns the category with the lowest id.
func (r *CategoryRepository) First(ctx context.Context) (models.Category, error) {
	defer metrics.ObserveDBQuery("select", time.Now())
	db, cancel := r.pool.Conn(ctx)
	defer cancel()

	var c models.Category
	err := db.Order("id ASC").First(&c).Error
	return c, translate("first category", err)
}

// Exists reports whether a category with id exists.
func (r *CategoryRepository) Exists(ctx context.Context, id uint) (bool, error) {
	defer metrics.ObserveDBQuery("select", time.Now())
	db, cancel := r.pool.Conn(ctx)
	defer cancel()

	var n int64
	err := db.Model(&models.Category{}).Where("id = ?", id).Count(&n).Error
	return n > 0, translate("category exists", err)
}

// Create persists a new category and fills in its id and timestamps.
func (r *CategoryRepository) Create(ctx context.Context, c *models.Category) error {
	defer metrics.ObserveDBQuery("insert", time.Now())
	db, cancel := r.pool.Conn(ctx)
	defer cancel()

	return translate("create category", db.Create(c).Error)
}

// Update writes every field of c and refreshes updated_at.
func (r *CategoryRepository) Update(ctx context.Context, c *models.Category) error {
	defer metrics.ObserveDBQuery("update", time.Now())
	db, cancel := r.pool.Conn(ctx)
	defer cancel()

	return translate("update category", db.Save(c).Error)
}

// Delete removes the category. ErrNotFound when no row matched.
func (r *CategoryRepository) Delete(ctx context.Context, id uint) error {
	defer metrics.ObserveDBQuery("delete", time.Now())
	db, cancel := r.pool.Conn(ctx)
	defer cancel()

	res := db.Delete(&models.Category{}, id)
	if res.Error != nil {
		return translate("delete category", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
