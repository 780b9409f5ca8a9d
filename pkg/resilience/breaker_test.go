package resilience

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/PaperMindAI/papermind-mvp/pkg/fn"
)

var errBoom = errors.New("boom")

func failingCall(context.Context) error { return errBoom }
func okCall(context.Context) error      { return nil }

func tripped(t *testing.T, opts BreakerOpts) *Breaker {
	t.Helper()
	b := NewBreaker(opts)
	for i := 0; i < opts.FailThreshold; i++ {
		if err := b.Call(context.Background(), failingCall); !errors.Is(err, errBoom) {
			t.Fatalf("call %d: %v", i, err)
		}
	}
	return b
}

func TestBreakerTripsAfterThreshold(t *testing.T) {
	b := tripped(t, BreakerOpts{FailThreshold: 3, Cooldown: time.Minute})
	if b.State() != StateOpen {
		t.Fatalf("state = %v, want open", b.State())
	}
	if err := b.Call(context.Background(), okCall); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("open breaker returned %v", err)
	}
}

func TestBreakerRecoversThroughProbe(t *testing.T) {
	b := tripped(t, BreakerOpts{FailThreshold: 2, Cooldown: time.Minute})

	clock := time.Now()
	b.now = func() time.Time { return clock.Add(2 * time.Minute) }

	if b.State() != StateHalfOpen {
		t.Fatalf("state after cooldown = %v, want half-open", b.State())
	}
	if err := b.Call(context.Background(), okCall); err != nil {
		t.Fatalf("probe call: %v", err)
	}
	if b.State() != StateClosed {
		t.Fatalf("state after successful probe = %v, want closed", b.State())
	}
}

func TestBreakerReopensOnFailedProbe(t *testing.T) {
	b := tripped(t, BreakerOpts{FailThreshold: 2, Cooldown: time.Minute})

	clock := time.Now()
	b.now = func() time.Time { return clock.Add(2 * time.Minute) }

	if err := b.Call(context.Background(), failingCall); !errors.Is(err, errBoom) {
		t.Fatalf("probe call: %v", err)
	}

	b.now = func() time.Time { return clock.Add(2*time.Minute + time.Second) }
	if b.State() != StateOpen {
		t.Fatalf("state after failed probe = %v, want open", b.State())
	}
}

func TestBreakerProbeBudget(t *testing.T) {
	b := tripped(t, BreakerOpts{FailThreshold: 1, Cooldown: time.Minute, ProbeMax: 1})

	clock := time.Now()
	b.now = func() time.Time { return clock.Add(2 * time.Minute) }

	release := make(chan struct{})
	done := make(chan error, 1)
	go b.Call(context.Background(), func(context.Context) error {
		done <- nil
		<-release
		return nil
	})
	<-done

	if err := b.Call(context.Background(), okCall); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("second probe admitted: %v", err)
	}
	close(release)
}

func TestBreakerStage(t *testing.T) {
	b := NewBreaker(BreakerOpts{FailThreshold: 1, Cooldown: time.Minute})
	stage := BreakerStage(b, func(_ context.Context, s string) fn.Result[string] {
		return fn.Errf[string]("stage: %s", s)
	})

	if res := stage(context.Background(), "bad"); !res.IsErr() {
		t.Fatal("expected stage error")
	}
	res := stage(context.Background(), "any")
	_, err := res.Unwrap()
	if !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("tripped stage returned %v", err)
	}
}

func TestStateString(t *testing.T) {
	cases := map[State]string{
		StateClosed:   "closed",
		StateOpen:     "open",
		StateHalfOpen: "half-open",
		State(9):      "unknown",
	}
	for s, want := range cases {
		if s.String() != want {
			t.Errorf("State(%d).String() = %q, want %q", s, s.String(), want)
		}
	}
}
