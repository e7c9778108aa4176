package repositories

import (
	"context"
	"time"

	"github.com/shashiranjanraj/catalog/app/models"
	"github.com/shashiranjanraj/catalog/pkg/database"
	"github.com/shashiranjanraj/catalog/pkg/metrics"
)

// LogRepository appends and aggregates activity events.
type LogRepository struct {
	pool *database.Pool
}

func NewLogRepository(pool *database.Pool) *LogRepository {
	return &LogRepository{pool: pool}
}

// Create appends one event.
func (r *LogRepository) Create(ctx context.Context, l *models.Log) error {
	defer metrics.ObserveDBQuery("insert", time.Now())
	db, cancel := r.pool.Conn(ctx)
	defer cancel()

	return translate("append log", db.Create(l).Error)
}

// CountSince counts the actor's events with from <= timestamp <= to.
func (r *LogRepository) CountSince(ctx context.Context, actor uint, from, to time.Time) (int64, error) {
	defer metrics.ObserveDBQuery("select", time.Now())
	db, cancel := r.pool.Conn(ctx)
	defer cancel()

	var n int64
	err := db.Model(&models.Log{}).
		Where("user_id = ? AND timestamp >= ? AND timestamp <= ?", actor, from, to).
		Count(&n).Error
	return n, translate("count logs", err)
}

// ActorsSince returns the distinct actors with events in [from, to],
// in ascending id order.
func (r *LogRepository) ActorsSince(ctx context.Context, from, to time.Time) ([]uint, error) {
	defer metrics.ObserveDBQuery("select", time.Now())
	db, cancel := r.pool.Conn(ctx)
	defer cancel()

	out := []uint{}
	err := db.Model(&models.Log{}).
		Where("timestamp >= ? AND timestamp <= ?", from, to).
		Distinct("user_id").
		Order("user_id ASC").
		Pluck("user_id", &out).Error
	return out, translate("list active actors", err)
}

// Recent returns the newest events first.
func (r *LogRepository) Recent(ctx context.Context, limit int) ([]models.Log, error) {
	defer metrics.ObserveDBQuery("select", time.Now())
	db, cancel := r.pool.Conn(ctx)
	defer cancel()

	out := []models.Log{}
	err := db.Order("timestamp DESC").Order("id DESC").Limit(limit).Find(&out).Error
	return out, translate("recent logs", err)
}
