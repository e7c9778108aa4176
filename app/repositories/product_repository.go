package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/catalog/app/models"
	"github.com/shashiranjanraj/catalog/pkg/database"
	"github.com/shashiranjanraj/catalog/pkg/metrics"
)

// ProductRepository handles database operations for Product.
type ProductRepository struct {
	pool *database.Pool
}

func NewProductRepository(pool *database.Pool) *ProductRepository {
	return &ProductRepository{pool: pool}
}

func joined(db *gorm.DB) *gorm.DB {
	return db.Table("products").
		Select("products.*, categories.name AS category_name").
		Joins("JOIN categories ON categories.id = products.category_id")
}

// ListWithCategory returns products joined with their category name,
// ordered by id. A non-nil owner restricts the result to that user's
// products. Products whose category is gone are left out.
func (r *ProductRepository) ListWithCategory(ctx context.Context, owner *uint) ([]models.ProductWithCategory, error) {
	defer metrics.ObserveDBQuery("select", time.Now())
	db, cancel := r.pool.Conn(ctx)
	defer cancel()

	q := joined(db)
	if owner != nil {
		q = q.Where("products.user_id = ?", *owner)
	}

	out := []models.ProductWithCategory{}
	err := q.Order("products.id ASC").Scan(&out).Error
	return out, translate("list products", err)
}

// FindWithCategory returns one product joined with its category name.
func (r *ProductRepository) FindWithCategory(ctx context.Context, id uint) (models.ProductWithCategory, error) {
	defer metrics.ObserveDBQuery("select", time.Now())
	db, cancel := r.pool.Conn(ctx)
	defer cancel()

	var out []models.ProductWithCategory
	if err := joined(db).Where("products.id = ?", id).Limit(1).Scan(&out).Error; err != nil {
		return models.ProductWithCategory{}, translate("find product", err)
	}
	if len(out) == 0 {
		return models.ProductWithCategory{}, ErrNotFound
	}
	return out[0], nil
}

// Find looks up a product by primary key.
func (r *ProductRepository) Find(ctx context.Context, id uint) (models.Product, error) {
	defer metrics.ObserveDBQuery("select", time.Now())
	db, cancel := r.pool.Conn(ctx)
	defer cancel()

	var p models.Product
	err := db.First(&p, id).Error
	return p, translate("find product", err)
}

// ListByOwner returns the user's products ordered by id.
func (r *ProductRepository) ListByOwner(ctx context.Context, owner uint) ([]models.Product, error) {
	defer metrics.ObserveDBQuery("select", time.Now())
	db, cancel := r.pool.Conn(ctx)
	defer cancel()

	out := []models.Product{}
	err := db.Where("user_id = ?", owner).Order("id ASC").Find(&out).Error
	return out, translate("list products by owner", err)
}

// Create persists a new product and fills in its id and timestamps.
func (r *ProductRepository) Create(ctx context.Context, p *models.Product) error {
	defer metrics.ObserveDBQuery("insert", time.Now())
	db, cancel := r.pool.Conn(ctx)
	defer cancel()

	return translate("create product", db.Create(p).Error)
}

// Update writes every field of p and refreshes updated_at.
func (r *ProductRepository) Update(ctx context.Context, p *models.Product) error {
	defer metrics.ObserveDBQuery("update", time.Now())
	db, cancel := r.pool.Conn(ctx)
	defer cancel()

	return translate("update product", db.Save(p).Error)
}

// Delete removes the product. ErrNotFound when no row matched.
func (r *ProductRepository) Delete(ctx context.Context, id uint) error {
	defer metrics.ObserveDBQuery("delete", time.Now())
	db, cancel := r.pool.Conn(ctx)
	defer cancel()

	res := db.Delete(&models.Product{}, id)
	if res.Error != nil {
		return translate("delete product", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
