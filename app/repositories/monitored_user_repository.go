package repositories

import (
	"context"
	"time"

	"gorm.io/gorm/clause"

	"github.com/shashiranjanraj/catalog/app/models"
	"github.com/shashiranjanraj/catalog/pkg/database"
	"github.com/shashiranjanraj/catalog/pkg/metrics"
)

// MonitoredUserRepository manages the monitored set.
type MonitoredUserRepository struct {
	pool *database.Pool
}

func NewMonitoredUserRepository(pool *database.Pool) *MonitoredUserRepository {
	return &MonitoredUserRepository{pool: pool}
}

// List returns every monitored user ordered by user id.
func (r *MonitoredUserRepository) List(ctx context.Context) ([]models.MonitoredUser, error) {
	defer metrics.ObserveDBQuery("select", time.Now())
	db, cancel := r.pool.Conn(ctx)
	defer cancel()

	out := []models.MonitoredUser{}
	err := db.Order("user_id ASC").Find(&out).Error
	return out, translate("list monitored users", err)
}

// Promote inserts m unless the user is already monitored. inserted is true
// only when this call created the row; a conflicting row is left as is.
func (r *MonitoredUserRepository) Promote(ctx context.Context, m models.MonitoredUser) (inserted bool, err error) {
	defer metrics.ObserveDBQuery("insert", time.Now())
	db, cancel := r.pool.Conn(ctx)
	defer cancel()

	res := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoNothing: true,
	}).Create(&m)
	if res.Error != nil {
		return false, translate("promote user", res.Error)
	}
	return res.RowsAffected == 1, nil
}

// Clear empties the monitored set and returns how many rows were removed.
func (r *MonitoredUserRepository) Clear(ctx context.Context) (int64, error) {
	defer metrics.ObserveDBQuery("delete", time.Now())
	db, cancel := r.pool.Conn(ctx)
	defer cancel()

	res := db.Where("1 = 1").Delete(&models.MonitoredUser{})
	return res.RowsAffected, translate("clear monitored users", res.Error)
}
