package services_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/catalog/app/models"
	"github.com/shashiranjanraj/catalog/app/repositories"
	"github.com/shashiranjanraj/catalog/app/services"
	"github.com/shashiranjanraj/catalog/internal/testdb"
	"github.com/shashiranjanraj/catalog/pkg/event"
)

type countingEvaluator struct {
	mu     sync.Mutex
	actors []uint
}

func (e *countingEvaluator) EvaluateAndPromote(_ context.Context, actor uint) services.Promotion {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.actors = append(e.actors, actor)
	return services.Promotion{ActorID: actor, Outcome: services.BelowThreshold}
}

type failingAppend struct{ services.LogStore }

func (failingAppend) Create(context.Context, *models.Log) error {
	return errors.New("disk full")
}

func TestRecordAppendsAndEvaluates(t *testing.T) {
	logs := repositories.NewLogRepository(testdb.New(t))
	detector := &countingEvaluator{}
	bus := event.New()

	var seen []models.Log
	var mu sync.Mutex
	bus.Listen(services.EventActivityRecorded, func(p any) {
		mu.Lock()
		defer mu.Unlock()
		seen = append(seen, p.(models.Log))
	})

	stamp := now.Add(123456789 * time.Nanosecond)
	svc := services.NewActivityService(logs, detector, bus).WithClock(func() time.Time { return stamp })

	id := uint(5)
	a := svc.Record(context.Background(), 3, models.ActionCreate, models.EntityProduct, &id)
	assert.True(t, a.OK())
	assert.Equal(t, []uint{3}, detector.actors)

	recent, err := svc.Recent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, uint(3), recent[0].UserID)
	require.NotNil(t, recent[0].EntityID)
	assert.Equal(t, uint(5), *recent[0].EntityID)
	assert.True(t, recent[0].Timestamp.Equal(stamp.Truncate(time.Microsecond)))

	bus.Wait()
	require.Len(t, seen, 1)
	assert.Equal(t, models.ActionCreate, seen[0].Action)
}

func TestFailingAppendDoesNotFailRecord(t *testing.T) {
	detector := &countingEvaluator{}
	bus := event.New()
	fired := false
	bus.Listen(services.EventActivityRecorded, func(any) { fired = true })

	svc := services.NewActivityService(failingAppend{}, detector, bus)

	var a services.Attempt
	assert.NotPanics(t, func() {
		a = svc.Record(context.Background(), 8, models.ActionDelete, models.EntityProduct, nil)
	})
	assert.False(t, a.OK())
	assert.EqualError(t, a.Err, "disk full")

	// The detector still runs after a failed append.
	assert.Equal(t, []uint{8}, detector.actors)
	bus.Wait()
	assert.False(t, fired)
}
