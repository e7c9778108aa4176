package services

import (
	"context"
	"time"

	"github.com/shashiranjanraj/catalog/app/models"
)

// The store interfaces below are satisfied by the repositories package.
// Services depend on them so tests can swap in failing fakes.

type CategoryStore interface {
	List(ctx context.Context) ([]models.Category, error)
	Find(ctx context.Context, id uint) (models.Category, error)
	First(ctx context.Context) (models.Category, error)
	Exists(ctx context.Context, id uint) (bool, error)
	Create(ctx context.Context, c *models.Category) error
	Update(ctx context.Context, c *models.Category) error
	Delete(ctx context.Context, id uint) error
}

type ProductStore interface {
	ListWithCategory(ctx context.Context, owner *uint) ([]models.ProductWithCategory, error)
	FindWithCategory(ctx context.Context, id uint) (models.ProductWithCategory, error)
	Find(ctx context.Context, id uint) (models.Product, error)
	ListByOwner(ctx context.Context, owner uint) ([]models.Product, error)
	Create(ctx context.Context, p *models.Product) error
	Update(ctx context.Context, p *models.Product) error
	Delete(ctx context.Context, id uint) error
}

type UserStore interface {
	FindByID(ctx context.Context, id uint) (models.User, error)
	FindByUsername(ctx context.Context, username string) (models.User, error)
	Create(ctx context.Context, u *models.User) error
}

type LogStore interface {
	Create(ctx context.Context, l *models.Log) error
	CountSince(ctx context.Context, actor uint, from, to time.Time) (int64, error)
	ActorsSince(ctx context.Context, from, to time.Time) ([]uint, error)
	Recent(ctx context.Context, limit int) ([]models.Log, error)
}

type MonitoredStore interface {
	List(ctx context.Context) ([]models.MonitoredUser, error)
	Promote(ctx context.Context, m models.MonitoredUser) (bool, error)
	Clear(ctx context.Context) (int64, error)
}

type StatsStore interface {
	AvgPricePerCategory(ctx context.Context, owner uint) ([]models.CategoryAverage, error)
}

// Publisher is the event bus as seen by services.
type Publisher interface {
	FireAsync(event string, payload any)
}

// Event names published on the bus.
const (
	EventActivityRecorded = "activity.recorded"
	EventMonitorPromoted  = "monitor.promoted"
)

func publish(bus Publisher, event string, payload any) {
	if bus != nil {
		bus.FireAsync(event, payload)
	}
}
