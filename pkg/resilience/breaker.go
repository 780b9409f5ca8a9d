// Package resilience provides a circuit breaker for outbound collaborators.
package resilience

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/PaperMindAI/papermind-mvp/pkg/fn"
)

// State is the breaker state.
type State int

const (
	StateClosed State = iota
	StateOpen
	StateHalfOpen
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// ErrCircuitOpen is returned while the breaker rejects calls.
var ErrCircuitOpen = errors.New("circuit breaker is open")

// BreakerOpts configures a Breaker.
type BreakerOpts struct {
	// FailThreshold is the consecutive-failure count that trips the breaker.
	FailThreshold int
	// Cooldown is how long the breaker stays open before probing.
	Cooldown time.Duration
	// ProbeMax is the number of probe calls allowed while half-open.
	ProbeMax int
}

// DefaultBreakerOpts trips after 5 failures and probes after 30 seconds.
var DefaultBreakerOpts = BreakerOpts{
	FailThreshold: 5,
	Cooldown:      30 * time.Second,
	ProbeMax:      1,
}

// Breaker is a closed/open/half-open circuit breaker.
type Breaker struct {
	mu       sync.Mutex
	opts     BreakerOpts
	state    State
	failures int
	openedAt time.Time
	probes   int
	now      func() time.Time
}

// NewBreaker builds a breaker, filling non-positive options from defaults.
func NewBreaker(opts BreakerOpts) *Breaker {
	if opts.FailThreshold <= 0 {
		opts.FailThreshold = DefaultBreakerOpts.FailThreshold
	}
	if opts.Cooldown <= 0 {
		opts.Cooldown = DefaultBreakerOpts.Cooldown
	}
	if opts.ProbeMax <= 0 {
		opts.ProbeMax = DefaultBreakerOpts.ProbeMax
	}
	return &Breaker{opts: opts, now: time.Now}
}

// State returns the current state, transitioning open to half-open when the
// cooldown has elapsed.
func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.currentState()
}

// currentState must be called with mu held.
func (b *Breaker) currentState() State {
	if b.state == StateOpen && b.now().Sub(b.openedAt) >= b.opts.Cooldown {
		b.state = StateHalfOpen
		b.probes = 0
	}
	return b.state
}

// admit reserves a call slot; callers must report the outcome via settle.
func (b *Breaker) admit() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	switch b.currentState() {
	case StateOpen:
		return ErrCircuitOpen
	case StateHalfOpen:
		if b.probes >= b.opts.ProbeMax {
			return ErrCircuitOpen
		}
		b.probes++
	}
	return nil
}

func (b *Breaker) settle(failed bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if failed {
		b.failures++
		if b.state == StateHalfOpen || b.failures >= b.opts.FailThreshold {
			b.state = StateOpen
			b.openedAt = b.now()
			b.failures = 0
			b.probes = 0
		}
		return
	}
	if b.state == StateHalfOpen {
		b.state = StateClosed
	}
	b.failures = 0
}

// Call runs f through the breaker.
func (b *Breaker) Call(ctx context.Context, f func(context.Context) error) error {
	if err := b.admit(); err != nil {
		return err
	}
	err := f(ctx)
	b.settle(err != nil)
	return err
}

// CallResult runs a Result-producing function through the breaker.
func CallResult[T any](b *Breaker, ctx context.Context, f func(context.Context) fn.Result[T]) fn.Result[T] {
	if err := b.admit(); err != nil {
		return fn.Err[T](err)
	}
	result := f(ctx)
	b.settle(result.IsErr())
	return result
}

// BreakerStage wraps a pipeline stage with breaker protection.
func BreakerStage[In, Out any](b *Breaker, stage fn.Stage[In, Out]) fn.Stage[In, Out] {
	return func(ctx context.Context, in In) fn.Result[Out] {
		return CallResult(b, ctx, func(ctx context.Context) fn.Result[Out] {
			return stage(ctx, in)
		})
	}
}
