package repositories

import (
	"context"
	"time"

	"github.com/shashiranjanraj/catalog/app/models"
	"github.com/shashiranjanraj/catalog/pkg/database"
	"github.com/shashiranjanraj/catalog/pkg/metrics"
)

// UserRepository handles database operations for User.
type UserRepository struct {
	pool *database.Pool
}

func NewUserRepository(pool *database.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

// FindByID looks up a user by primary key.
func (r *UserRepository) FindByID(ctx context.Context, id uint) (models.User, error) {
	defer metrics.ObserveDBQuery("select", time.Now())
	db, cancel := r.pool.Conn(ctx)
	defer cancel()

	var u models.User
	err := db.First(&u, id).Error
	return u, translate("find user", err)
}

// FindByUsername looks up a user by exact username.
func (r *UserRepository) FindByUsername(ctx context.Context, username string) (models.User, error) {
	defer metrics.ObserveDBQuery("select", time.Now())
	db, cancel := r.pool.Conn(ctx)
	defer cancel()

	var u models.User
	err := db.Where("username = ?", username).First(&u).Error
	return u, translate("find user by username", err)
}

// Create persists a new user. ErrDuplicate when the username is taken.
func (r *UserRepository) Create(ctx context.Context, u *models.User) error {
	defer metrics.ObserveDBQuery("insert", time.Now())
	db, cancel := r.pool.Conn(ctx)
	defer cancel()

	return translate("create user", db.Create(u).Error)
}
