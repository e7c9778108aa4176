package schedule_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/shashiranjanraj/catalog/pkg/schedule"
)

func TestRunsImmediatelyThenOnInterval(t *testing.T) {
	s := schedule.New(schedule.WithTick(5 * time.Millisecond))

	var runs atomic.Int32
	s.Interval(20 * time.Millisecond).Name("counter").Run(func(context.Context) { runs.Add(1) })

	ctx, cancel := context.WithCancel(context.Background())
	s.Start(ctx)

	assert.Eventually(t, func() bool { return runs.Load() >= 1 }, 50*time.Millisecond, time.Millisecond)
	assert.Eventually(t, func() bool { return runs.Load() >= 3 }, time.Second, 5*time.Millisecond)

	cancel()
	s.Wait()
}

func TestWithoutOverlapping(t *testing.T) {
	s := schedule.New(schedule.WithTick(2 * time.Millisecond))

	var concurrent, peak atomic.Int32
	s.Interval(time.Millisecond).WithoutOverlapping().Run(func(context.Context) {
		n := concurrent.Add(1)
		if n > peak.Load() {
			peak.Store(n)
		}
		time.Sleep(20 * time.Millisecond)
		concurrent.Add(-1)
	})

	ctx, cancel := context.WithTimeout(context.Background(), 80*time.Millisecond)
	defer cancel()
	s.Start(ctx)
	<-ctx.Done()
	s.Wait()

	assert.Equal(t, int32(1), peak.Load())
}

func TestTaskSeesCancellation(t *testing.T) {
	s := schedule.New(schedule.WithTick(time.Millisecond))

	stopped := make(chan struct{})
	s.Every(1).Hours().Run(func(ctx context.Context) {
		<-ctx.Done()
		close(stopped)
	})

	ctx, cancel := context.WithCancel(context.Background())
	s.Start(ctx)
	time.Sleep(5 * time.Millisecond)
	cancel()
	s.Wait()

	select {
	case <-stopped:
	default:
		t.Fatal("task did not observe cancellation before Wait returned")
	}
}

func TestPanicsAreRecovered(t *testing.T) {
	s := schedule.New(schedule.WithTick(2 * time.Millisecond))

	var after atomic.Int32
	s.Interval(time.Millisecond).Name("panicky").Run(func(context.Context) { panic("boom") })
	s.Interval(time.Millisecond).Name("healthy").Run(func(context.Context) { after.Add(1) })

	ctx, cancel := context.WithCancel(context.Background())
	s.Start(ctx)
	assert.Eventually(t, func() bool { return after.Load() >= 2 }, time.Second, time.Millisecond)
	cancel()
	s.Wait()
}

func TestListAndInvalidInterval(t *testing.T) {
	s := schedule.New()
	s.Every(30).Seconds().Name("monitor:sweep").Run(func(context.Context) {})
	s.Interval(0).Name("broken").Run(func(context.Context) {})

	assert.Equal(t, []string{"monitor:sweep  [every 30s]"}, s.List())
}
