// Package onboarding drives the fixed, paged introduction shown on first
// launch and records its completion in the key-value store.
package onboarding

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"tableflip.dev/kickoff/pkg/kv"
	"tableflip.dev/kickoff/pkg/nav"
	"tableflip.dev/kickoff/pkg/observe"
)

// PageCount is the number of onboarding pages.
const PageCount = 3

// ErrPersist wraps a failure to record completion. Navigation does not
// happen when it is returned.
var ErrPersist = errors.New("onboarding: could not record completion")

// Progress is the transient position within the flow.
type Progress struct {
	Index int
	Count int
}

// IsLast reports whether the current page is the final one.
func (p Progress) IsLast() bool {
	return p.Index >= p.Count-1
}

// Navigator is the part of the navigation state machine the controller drives.
type Navigator interface {
	Replace(route string) nav.Screen
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Controller) { c.log = l }
}

// Controller tracks the page index and completes the flow.
type Controller struct {
	store kv.Store
	nav   Navigator
	log   *zap.Logger

	progress *observe.Value[Progress]
}

// New constructs a controller positioned on the first page.
func New(store kv.Store, navigator Navigator, opts ...Option) *Controller {
	c := &Controller{
		store:    store,
		nav:      navigator,
		log:      zap.NewNop(),
		progress: observe.NewValue(Progress{Index: 0, Count: PageCount}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Progress returns the current position.
func (c *Controller) Progress() Progress {
	return c.progress.Get()
}

// Subscribe registers fn for index changes.
func (c *Controller) Subscribe(fn func(prev, next Progress)) (cancel func()) {
	return c.progress.Subscribe(fn)
}

// Next advances one page, or completes the flow from the last page.
func (c *Controller) Next(ctx context.Context) error {
	advanced := false
	c.progress.Update(func(p Progress) Progress {
		if p.Index+1 < p.Count {
			p.Index++
			advanced = true
		}
		return p
	})
	if advanced {
		return nil
	}
	return c.Complete(ctx)
}

// JumpToLast moves to the final page without completing the flow.
func (c *Controller) JumpToLast() {
	c.progress.Update(func(p Progress) Progress {
		p.Index = p.Count - 1
		return p
	})
}

// UpdateIndex records that the visible page is now i, e.g. after a swipe.
// Out-of-range values are clamped and moves backwards are ignored so the
// index never decreases. It reports whether i was accepted as given.
func (c *Controller) UpdateIndex(i int) bool {
	accepted := true
	c.progress.Update(func(p Progress) Progress {
		next := i
		if next < 0 {
			next = 0
		}
		if next > p.Count-1 {
			next = p.Count - 1
		}
		if next < p.Index {
			accepted = false
			return p
		}
		accepted = next == i
		p.Index = next
		return p
	})
	if !accepted {
		c.log.Debug("page index adjusted", zap.Int("requested", i), zap.Int("index", c.Progress().Index))
	}
	return accepted
}

// Complete records that onboarding was seen and hands over to Home. The flag
// is written before navigating; a failed write leaves the screen unchanged.
// Calling Complete again rewrites the same value and re-navigates.
func (c *Controller) Complete(ctx context.Context) error {
	if err := c.store.SaveBool(ctx, kv.KeySeenOnboarding, true); err != nil {
		c.log.Error("recording onboarding completion failed", zap.Error(err))
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	screen := c.nav.Replace(nav.Home.Route())
	c.log.Info("onboarding complete", zap.Stringer("screen", screen))
	return nil
}
