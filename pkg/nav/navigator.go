// Package nav owns the active screen and the rules for moving between
// screens, including the timed splash decision.
package nav

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"tableflip.dev/kickoff/pkg/kv"
	"tableflip.dev/kickoff/pkg/observe"
)

// DefaultSplashDelay is how long the splash screen stays up before the
// onboarding decision is made.
const DefaultSplashDelay = 2 * time.Second

var (
	// ErrStarted is returned when Start is called more than once.
	ErrStarted = errors.New("nav: already started")
	// ErrDisposed is returned when Start is called after Dispose.
	ErrDisposed = errors.New("nav: disposed")
)

// Decision records what the splash decision saw in storage.
type Decision int

// Decisions.
const (
	// DecisionSeen means seenOnboarding was true.
	DecisionSeen Decision = iota
	// DecisionNotSeen means seenOnboarding was false.
	DecisionNotSeen
	// DecisionAbsent means seenOnboarding was never written.
	DecisionAbsent
	// DecisionReadFailed means storage failed; onboarding is shown again.
	DecisionReadFailed
)

func (d Decision) String() string {
	switch d {
	case DecisionSeen:
		return "seen"
	case DecisionNotSeen:
		return "not-seen"
	case DecisionAbsent:
		return "absent"
	case DecisionReadFailed:
		return "read-failed"
	default:
		return "unknown"
	}
}

// Transition describes a change of the active screen.
type Transition struct {
	From Screen
	To   Screen
}

// Clock schedules the splash delay.
type Clock interface {
	After(d time.Duration) <-chan time.Time
}

type realClock struct{}

func (realClock) After(d time.Duration) <-chan time.Time { return time.After(d) }

// Option configures a Navigator.
type Option func(*Navigator)

// WithDelay overrides the splash delay.
func WithDelay(d time.Duration) Option {
	return func(n *Navigator) { n.delay = d }
}

// WithClock overrides the clock used for the splash delay.
func WithClock(c Clock) Option {
	return func(n *Navigator) { n.clock = c }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(n *Navigator) { n.log = l }
}

// WithRoutes replaces the route table.
func WithRoutes(r Routes) Option {
	return func(n *Navigator) { n.routes = r }
}

// WithInitial starts the machine on a screen other than Splash. The splash
// decision is then never applied.
func WithInitial(s Screen) Option {
	return func(n *Navigator) { n.initial = s }
}

// OnDecision registers a hook called with every scheduled splash decision
// that ran to completion. Cancelled decisions are not reported.
func OnDecision(fn func(Decision, error)) Option {
	return func(n *Navigator) { n.onDecision = fn }
}

// Navigator is the navigation state machine. The zero value is not usable;
// construct with New.
type Navigator struct {
	store  kv.Store
	log    *zap.Logger
	clock  Clock
	delay  time.Duration
	routes Routes

	initial    Screen
	onDecision func(Decision, error)

	state *observe.Value[Screen]

	mu       sync.Mutex
	history  []Screen
	started  bool
	disposed bool
	cancel   context.CancelFunc
	wg       sync.WaitGroup

	settled    chan struct{}
	settleOnce sync.Once
}

// New constructs a Navigator reading the onboarding flag from store.
func New(store kv.Store, opts ...Option) *Navigator {
	n := &Navigator{
		store:   store,
		log:     zap.NewNop(),
		clock:   realClock{},
		delay:   DefaultSplashDelay,
		routes:  DefaultRoutes(),
		initial: Splash,
		settled: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(n)
	}
	n.state = observe.NewValue(n.initial)
	n.history = []Screen{n.initial}
	return n
}

// Current returns the active screen.
func (n *Navigator) Current() Screen {
	return n.state.Get()
}

// History returns a copy of the navigation stack, oldest first.
func (n *Navigator) History() []Screen {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]Screen, len(n.history))
	copy(out, n.history)
	return out
}

// Subscribe registers fn for every transition. Subscribers only ever see
// resolved screens.
func (n *Navigator) Subscribe(fn func(Transition)) (cancel func()) {
	return n.state.Subscribe(func(prev, next Screen) {
		fn(Transition{From: prev, To: next})
	})
}

// Settled is closed once the splash decision has been applied or dropped,
// or the navigator was disposed.
func (n *Navigator) Settled() <-chan struct{} {
	return n.settled
}

// Decide reads seenOnboarding and returns the screen the splash should hand
// over to. A storage failure is logged and resolves to Onboarding so that a
// broken store never grants Home. Decide does not call the OnDecision hook;
// only the scheduled splash decision does.
func (n *Navigator) Decide(ctx context.Context) (Screen, Decision) {
	target, decision, err := n.decide(ctx)
	if err != nil && ctx.Err() == nil {
		n.warnReadFailed(err)
	}
	return target, decision
}

func (n *Navigator) decide(ctx context.Context) (Screen, Decision, error) {
	seen, ok, err := n.store.ReadBool(ctx, kv.KeySeenOnboarding)
	switch {
	case err != nil:
		return Onboarding, DecisionReadFailed, err
	case !ok:
		return Onboarding, DecisionAbsent, nil
	case seen:
		return Home, DecisionSeen, nil
	default:
		return Onboarding, DecisionNotSeen, nil
	}
}

func (n *Navigator) warnReadFailed(err error) {
	n.log.Warn("reading onboarding flag failed; showing onboarding",
		zap.String("key", kv.KeySeenOnboarding), zap.Error(err))
}

// Start schedules the splash decision after the configured delay. The
// decision runs on its own goroutine; Dispose cancels it.
func (n *Navigator) Start(ctx context.Context) error {
	n.mu.Lock()
	if n.disposed {
		n.mu.Unlock()
		return ErrDisposed
	}
	if n.started {
		n.mu.Unlock()
		return ErrStarted
	}
	n.started = true
	ctx, n.cancel = context.WithCancel(ctx)
	n.wg.Add(1)
	n.mu.Unlock()

	go n.runSplash(ctx)
	return nil
}

func (n *Navigator) runSplash(ctx context.Context) {
	defer n.wg.Done()
	defer n.settle()

	select {
	case <-ctx.Done():
		n.log.Debug("splash decision cancelled before delay elapsed")
		return
	case <-n.clock.After(n.delay):
	}

	target, decision, err := n.decide(ctx)
	if ctx.Err() != nil {
		n.log.Debug("splash decision cancelled during read")
		return
	}
	if err != nil {
		n.warnReadFailed(err)
	}
	if n.onDecision != nil {
		n.onDecision(decision, err)
	}

	applied := false
	n.state.Update(func(cur Screen) Screen {
		n.mu.Lock()
		defer n.mu.Unlock()
		if n.disposed || cur != Splash {
			return cur
		}
		n.history = []Screen{target}
		applied = true
		return target
	})
	if !applied {
		n.log.Info("splash decision dropped; screen already changed",
			zap.Stringer("target", target), zap.Stringer("current", n.Current()))
		return
	}
	n.log.Info("splash decision applied",
		zap.Stringer("decision", decision), zap.Stringer("screen", target))
}

func (n *Navigator) settle() {
	n.settleOnce.Do(func() { close(n.settled) })
}

// Replace navigates to route and discards the history, so back navigation
// to earlier screens is impossible. Unknown routes land on NotFound.
func (n *Navigator) Replace(route string) Screen {
	target, ok := n.routes.Resolve(route)
	if !ok {
		n.log.Info("unresolved route", zap.String("route", route))
	}
	return n.ReplaceScreen(target)
}

// ReplaceScreen is Replace for a known screen.
func (n *Navigator) ReplaceScreen(target Screen) Screen {
	next, _ := n.state.Update(func(cur Screen) Screen {
		n.mu.Lock()
		defer n.mu.Unlock()
		if n.disposed {
			return cur
		}
		n.history = []Screen{target}
		return target
	})
	return next
}

// Push navigates to route on top of the current history.
func (n *Navigator) Push(route string) Screen {
	target, ok := n.routes.Resolve(route)
	if !ok {
		n.log.Info("unresolved route", zap.String("route", route))
	}
	next, _ := n.state.Update(func(cur Screen) Screen {
		n.mu.Lock()
		defer n.mu.Unlock()
		if n.disposed {
			return cur
		}
		n.history = append(n.history, target)
		return target
	})
	return next
}

// Pop returns to the previous screen on the stack. It reports false when
// there is nothing to go back to.
func (n *Navigator) Pop() bool {
	popped := false
	n.state.Update(func(cur Screen) Screen {
		n.mu.Lock()
		defer n.mu.Unlock()
		if n.disposed || len(n.history) < 2 {
			return cur
		}
		n.history = n.history[:len(n.history)-1]
		popped = true
		return n.history[len(n.history)-1]
	})
	return popped
}

// Dispose cancels a pending splash decision and waits for it to exit. Once
// Dispose returns the decision never fires and navigation calls are no-ops.
func (n *Navigator) Dispose() {
	n.mu.Lock()
	if n.disposed {
		n.mu.Unlock()
		return
	}
	n.disposed = true
	cancel := n.cancel
	n.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	n.wg.Wait()
	n.settle()
}
