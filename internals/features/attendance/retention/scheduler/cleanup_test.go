package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	retService "attendance_backend/internals/features/attendance/retention/service"
)

type countingRunner struct {
	calls atomic.Int32
}

func (r *countingRunner) RunMonthlyCleanup(ctx context.Context) (retService.Result, error) {
	r.calls.Add(1)
	return retService.Result{Deleted: 3, Cutoff: "2024-02-01"}, nil
}

func TestScheduler_Start(t *testing.T) {
	tests := []struct {
		name        string
		schedule    string
		wantRunning bool
		wantError   bool
	}{
		{"monthly", "0 0 1 * *", true, false},
		{"empty schedule", "", false, false},
		{"invalid schedule", "every month", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := &countingRunner{}
			s := NewScheduler(runner, tt.schedule, time.FixedZone("IST", 19800))

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			err := s.Start(ctx)
			if tt.wantError {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.wantRunning, s.IsRunning())

			if tt.wantRunning {
				next := s.NextRun()
				require.NotNil(t, next)
				assert.Equal(t, 1, next.Day())
			}

			// purge awal dijalankan kalau jadwal valid
			if !tt.wantError {
				assert.Eventually(t, func() bool { return runner.calls.Load() >= 1 }, time.Second, 10*time.Millisecond)
			}

			s.Stop()
			assert.False(t, s.IsRunning())
		})
	}
}

// runner yang tertahan sampai release ditutup
type blockingRunner struct {
	started chan struct{}
	release chan struct{}
	done    atomic.Bool
}

func (r *blockingRunner) RunMonthlyCleanup(ctx context.Context) (retService.Result, error) {
	close(r.started)
	<-r.release
	r.done.Store(true)
	return retService.Result{Skipped: true, Reason: "already ran"}, nil
}

func TestScheduler_StopWaitsForInitialPurge(t *testing.T) {
	runner := &blockingRunner{started: make(chan struct{}), release: make(chan struct{})}
	s := NewScheduler(runner, "", nil)
	require.NoError(t, s.Start(context.Background()))
	<-runner.started

	stopped := make(chan struct{})
	go func() {
		s.Stop()
		close(stopped)
	}()

	select {
	case <-stopped:
		t.Fatal("Stop returned while initial purge still running")
	case <-time.After(50 * time.Millisecond):
	}

	close(runner.release)
	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("Stop did not return after purge finished")
	}
	assert.True(t, runner.done.Load())
}

func TestScheduler_InvalidScheduleRunsNothing(t *testing.T) {
	runner := &countingRunner{}
	s := NewScheduler(runner, "every month", nil)
	require.Error(t, s.Start(context.Background()))

	s.Stop()
	assert.Equal(t, int32(0), runner.calls.Load())
}

func TestScheduler_StopsOnContextCancel(t *testing.T) {
	s := NewScheduler(&countingRunner{}, "0 0 1 * *", nil)
	ctx, cancel := context.WithCancel(context.Background())

	require.NoError(t, s.Start(ctx))
	assert.True(t, s.IsRunning())

	cancel()
	assert.Eventually(t, func() bool { return !s.IsRunning() }, time.Second, 10*time.Millisecond)
}
