package worker

import (
	"context"
	"fmt"
	"testing"
	"time"

	familydomain "family-scheduler-go/internal/domain/family"
	"family-scheduler-go/pkg/logger"
)

type fakeRunner struct {
	calls []time.Time
	fail  bool
}

func (r *fakeRunner) MonthlyRollover(ctx context.Context, now time.Time) ([]familydomain.RolloverFailure, error) {
	r.calls = append(r.calls, now)
	if r.fail {
		return nil, fmt.Errorf("store unavailable")
	}
	return []familydomain.RolloverFailure{{FamilyID: "fam-1", Err: fmt.Errorf("boom")}}, nil
}

func testLogger() logger.Logger {
	return logger.New(discardWriter{}, 99, "text")
}

type discardWriter struct{}

func (discardWriter) Write(p []byte) (int, error) { return len(p), nil }

func TestNextMonthStart(t *testing.T) {
	cases := []struct {
		in   time.Time
		want time.Time
	}{
		{
			time.Date(2025, time.June, 10, 12, 30, 0, 0, time.UTC),
			time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			time.Date(2025, time.December, 31, 23, 59, 0, 0, time.UTC),
			time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			// A month boundary instant schedules the next month, not itself.
			time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2025, time.August, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tc := range cases {
		if got := nextMonthStart(tc.in); !got.Equal(tc.want) {
			t.Errorf("nextMonthStart(%s) = %s, want %s", tc.in, got, tc.want)
		}
	}
}

func TestRunOnceInvokesRollover(t *testing.T) {
	runner := &fakeRunner{}
	w := NewRollover(runner, 0, testLogger())
	fixed := time.Date(2025, time.July, 1, 0, 0, 1, 0, time.UTC)
	w.now = func() time.Time { return fixed }

	w.RunOnce(context.Background())

	if len(runner.calls) != 1 {
		t.Fatalf("expected one rollover call, got %d", len(runner.calls))
	}
	if !runner.calls[0].Equal(fixed) {
		t.Fatalf("expected rollover at %s, got %s", fixed, runner.calls[0])
	}
}

func TestRunOnceSurvivesBatchError(t *testing.T) {
	runner := &fakeRunner{fail: true}
	w := NewRollover(runner, 0, testLogger())

	// Must not panic; the error is logged and swallowed.
	w.RunOnce(context.Background())
	if len(runner.calls) != 1 {
		t.Fatalf("expected one call, got %d", len(runner.calls))
	}
}

func TestRunStopsOnContextCancel(t *testing.T) {
	runner := &fakeRunner{}
	w := NewRollover(runner, 0, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Run(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("worker did not stop on cancel")
	}
}
