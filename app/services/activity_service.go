package services

import (
	"context"
	"time"

	"github.com/shashiranjanraj/catalog/app/models"
	"github.com/shashiranjanraj/catalog/pkg/logger"
	"github.com/shashiranjanraj/catalog/pkg/metrics"
)

// Evaluator runs the inline abuse check for an actor.
type Evaluator interface {
	EvaluateAndPromote(ctx context.Context, actorID uint) Promotion
}

// Recorder appends activity events.
type Recorder interface {
	Record(ctx context.Context, actorID uint, action, entity string, entityID *uint) Attempt
}

// ActivityService appends audit events and runs the inline abuse check.
type ActivityService struct {
	logs     LogStore
	detector Evaluator
	bus      Publisher
	now      func() time.Time
}

func NewActivityService(logs LogStore, detector Evaluator, bus Publisher) *ActivityService {
	return &ActivityService{logs: logs, detector: detector, bus: bus, now: time.Now}
}

// WithClock replaces the time source used for event timestamps.
func (s *ActivityService) WithClock(now func() time.Time) *ActivityService {
	s.now = now
	return s
}

// Record appends one event stamped with the server clock, then evaluates
// the actor whether or not the append succeeded. The returned Attempt only
// describes the append.
func (s *ActivityService) Record(ctx context.Context, actorID uint, action, entity string, entityID *uint) Attempt {
	entry := &models.Log{
		UserID:    actorID,
		Action:    action,
		Entity:    entity,
		EntityID:  entityID,
		Timestamp: s.now().UTC().Truncate(time.Microsecond),
	}

	attempt := Attempt{Op: "record " + action + " " + entity}
	if err := s.logs.Create(ctx, entry); err != nil {
		attempt.Err = err
		metrics.ActivityRecorded.WithLabelValues("failed").Inc()
		logger.WithCtx(ctx).Warn("activity: append failed",
			"actor_id", actorID, "action", action, "entity", entity, "error", err)
	} else {
		metrics.ActivityRecorded.WithLabelValues("ok").Inc()
		publish(s.bus, EventActivityRecorded, *entry)
	}

	if s.detector != nil {
		s.detector.EvaluateAndPromote(ctx, actorID)
	}
	return attempt
}

// Recent returns the newest events first.
func (s *ActivityService) Recent(ctx context.Context, limit int) ([]models.Log, error) {
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	out, err := s.logs.Recent(ctx, limit)
	if err != nil {
		return nil, internal("recent activity", err)
	}
	return out, nil
}
