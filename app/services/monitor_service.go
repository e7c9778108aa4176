package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/shashiranjanraj/catalog/app/models"
	"github.com/shashiranjanraj/catalog/app/repositories"
	"github.com/shashiranjanraj/catalog/pkg/logger"
	"github.com/shashiranjanraj/catalog/pkg/metrics"
)

const (
	// Threshold is the number of events an actor may log within Window
	// without being promoted. One more promotes.
	Threshold = 10
	// Window is the trailing period counted, inclusive at both ends.
	Window = 60 * time.Second
)

// Triggers that run an evaluation.
const (
	TriggerInline = "inline"
	TriggerSweep  = "sweep"
)

// Outcome classifies one evaluation.
type Outcome string

const (
	BelowThreshold   Outcome = "below_threshold"
	Promoted         Outcome = "promoted"
	AlreadyMonitored Outcome = "already_monitored"
	UserMissing      Outcome = "user_missing"
	Failed           Outcome = "failed"
)

// Promotion is the result of evaluating one actor. Err is set for Failed.
type Promotion struct {
	ActorID uint
	Count   int64
	Outcome Outcome
	Err     error
}

// SweepResult aggregates the evaluations of one sweep.
type SweepResult struct {
	Actors   int
	Promoted []uint
	Missing  []uint
	Failures int
	Err      error
}

// MonitorService counts recent activity per actor and promotes actors over
// the threshold into the monitored set.
type MonitorService struct {
	logs      LogStore
	users     UserStore
	monitored MonitoredStore
	bus       Publisher
	now       func() time.Time
}

func NewMonitorService(logs LogStore, users UserStore, monitored MonitoredStore, bus Publisher) *MonitorService {
	return &MonitorService{
		logs:      logs,
		users:     users,
		monitored: monitored,
		bus:       bus,
		now:       time.Now,
	}
}

// WithClock replaces the time source.
func (s *MonitorService) WithClock(now func() time.Time) *MonitorService {
	s.now = now
	return s
}

// EvaluateAndPromote counts the actor's events in the trailing window and
// promotes the actor when the count exceeds Threshold.
func (s *MonitorService) EvaluateAndPromote(ctx context.Context, actorID uint) Promotion {
	return s.evaluate(ctx, actorID, TriggerInline)
}

func (s *MonitorService) evaluate(ctx context.Context, actorID uint, trigger string) Promotion {
	log := logger.WithCtx(ctx).With("actor_id", actorID, "trigger", trigger)
	now := s.now().UTC()

	n, err := s.logs.CountSince(ctx, actorID, now.Add(-Window), now)
	if err != nil {
		return s.fail(log, trigger, Promotion{ActorID: actorID}, err)
	}
	p := Promotion{ActorID: actorID, Count: n, Outcome: BelowThreshold}
	if n <= Threshold {
		return p
	}

	user, err := s.users.FindByID(ctx, actorID)
	if errors.Is(err, repositories.ErrNotFound) {
		log.Warn("monitor: actor over threshold has no user row", "count", n)
		p.Outcome = UserMissing
		return p
	}
	if err != nil {
		return s.fail(log, trigger, p, err)
	}

	entry := models.MonitoredUser{UserID: user.ID, Username: user.Username}
	inserted, err := s.monitored.Promote(ctx, entry)
	if err != nil {
		return s.fail(log, trigger, p, err)
	}
	if !inserted {
		p.Outcome = AlreadyMonitored
		return p
	}

	p.Outcome = Promoted
	metrics.MonitorPromotions.WithLabelValues(trigger).Inc()
	log.Info("monitor: actor promoted", "count", n, "username", user.Username)
	publish(s.bus, EventMonitorPromoted, entry)
	return p
}

func (s *MonitorService) fail(log *slog.Logger, trigger string, p Promotion, err error) Promotion {
	metrics.MonitorFailures.WithLabelValues(trigger).Inc()
	log.Warn("monitor: evaluation failed", "error", err)
	p.Outcome = Failed
	p.Err = err
	return p
}

// Sweep evaluates every actor with events in the trailing window. It never
// returns an error; failures are reported in the result.
func (s *MonitorService) Sweep(ctx context.Context) SweepResult {
	defer func(start time.Time) {
		metrics.SweepDuration.Observe(time.Since(start).Seconds())
	}(time.Now())

	now := s.now().UTC()
	actors, err := s.logs.ActorsSince(ctx, now.Add(-Window), now)
	if err != nil {
		metrics.MonitorFailures.WithLabelValues(TriggerSweep).Inc()
		logger.WithCtx(ctx).Warn("monitor: sweep could not list actors", "error", err)
		return SweepResult{Failures: 1, Err: err}
	}

	res := SweepResult{Actors: len(actors)}
	for _, id := range actors {
		if ctx.Err() != nil {
			break
		}
		p := s.evaluate(ctx, id, TriggerSweep)
		switch p.Outcome {
		case Promoted:
			res.Promoted = append(res.Promoted, id)
		case UserMissing:
			res.Missing = append(res.Missing, id)
		case Failed:
			res.Failures++
		}
	}

	logger.WithCtx(ctx).Debug("monitor: sweep finished",
		"actors", res.Actors, "promoted", len(res.Promoted), "failures", res.Failures)
	return res
}

// List returns the monitored set ordered by user id.
func (s *MonitorService) List(ctx context.Context) ([]models.MonitoredUser, error) {
	out, err := s.monitored.List(ctx)
	if err != nil {
		return nil, internal("list monitored users", err)
	}
	return out, nil
}

// ClearMonitored empties the monitored set. It is the only way an actor
// leaves it.
func (s *MonitorService) ClearMonitored(ctx context.Context) (int64, error) {
	n, err := s.monitored.Clear(ctx)
	if err != nil {
		return 0, internal("clear monitored users", err)
	}
	logger.WithCtx(ctx).Info("monitor: monitored set cleared", "removed", n)
	return n, nil
}
