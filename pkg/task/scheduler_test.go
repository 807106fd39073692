package task

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

func TestScheduleEveryRunsAndCancels(t *testing.T) {
	var runs atomic.Int32
	cancel := ScheduleEvery(context.Background(), 10*time.Millisecond, Task{
		Name: "counter",
		Fn:   func(time.Time) { runs.Add(1) },
	})

	deadline := time.After(2 * time.Second)
	for runs.Load() < 2 {
		select {
		case <-deadline:
			t.Fatalf("task did not run, runs=%d", runs.Load())
		case <-time.After(5 * time.Millisecond):
		}
	}

	cancel()
	cancel() // cancelamento repetido deve ser inofensivo
	settled := runs.Load()
	time.Sleep(50 * time.Millisecond)
	if runs.Load() > settled+1 {
		t.Fatalf("task kept running after cancel")
	}
}

func TestScheduleEveryStopsOnContext(t *testing.T) {
	ctx, cancelCtx := context.WithCancel(context.Background())
	var runs atomic.Int32
	ScheduleEvery(ctx, 10*time.Millisecond, Task{
		Name: "ctx",
		Fn:   func(time.Time) { runs.Add(1) },
	})

	cancelCtx()
	time.Sleep(30 * time.Millisecond)
	settled := runs.Load()
	time.Sleep(50 * time.Millisecond)
	if runs.Load() > settled {
		t.Fatalf("task kept running after context cancellation")
	}
}

func TestScheduleEverySurvivesPanic(t *testing.T) {
	var runs atomic.Int32
	cancel := ScheduleEvery(context.Background(), 10*time.Millisecond, Task{
		Name: "panicky",
		Fn: func(time.Time) {
			if runs.Add(1) == 1 {
				panic("boom")
			}
		},
	})
	defer cancel()

	deadline := time.After(2 * time.Second)
	for runs.Load() < 2 {
		select {
		case <-deadline:
			t.Fatalf("task did not survive panic, runs=%d", runs.Load())
		case <-time.After(5 * time.Millisecond):
		}
	}
}
