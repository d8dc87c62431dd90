// Package login wraps the sign-in action: a loading flag, the entered
// credentials and a single terminal transition to Home.
package login

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"tableflip.dev/kickoff/pkg/nav"
	"tableflip.dev/kickoff/pkg/observe"
)

var (
	// ErrBusy is returned when Login is called while a login is in flight.
	ErrBusy = errors.New("login: already in progress")
	// ErrAuth wraps authentication failures.
	ErrAuth = errors.New("login: authentication failed")
	// ErrClosed is returned after Close.
	ErrClosed = errors.New("login: controller closed")
)

// State is the observable part of a login session.
type State struct {
	Loading bool
	Email   string
	// Err is the last failure, cleared when a new attempt starts.
	Err error
	// Token is set once login succeeded.
	Token Token
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

// Controller runs the login action and owns the input buffers.
type Controller struct {
	auth Authenticator
	nav  Navigator
	log  *zap.Logger

	state *observe.Value[State]

	mu       sync.Mutex
	password []byte
	closed   bool
	// cancel ends the attempt in flight, if any.
	cancel context.CancelFunc
}

// New constructs a controller.
func New(auth Authenticator, navigator Navigator, opts ...Option) *Controller {
	c := &Controller{
		auth:  auth,
		nav:   navigator,
		log:   zap.NewNop(),
		state: observe.NewValue(State{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns the current session state.
func (c *Controller) State() State {
	return c.state.Get()
}

// Subscribe registers fn for state changes.
func (c *Controller) Subscribe(fn func(prev, next State)) (cancel func()) {
	return c.state.Subscribe(fn)
}

// SetEmail replaces the email input.
func (c *Controller) SetEmail(email string) {
	c.state.Update(func(s State) State {
		s.Email = strings.TrimSpace(email)
		return s
	})
}

// SetPassword replaces the password input. The previous buffer is zeroed.
func (c *Controller) SetPassword(password string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	clear(c.password)
	c.password = []byte(password)
}

// HasPassword reports whether a password is buffered.
func (c *Controller) HasPassword() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.password) > 0
}

// Login authenticates with the buffered credentials. On success it replaces
// the screen with Home and then clears the loading flag. On failure the
// loading flag is cleared, the error is kept on the state, the password
// buffer is wiped and the screen stays on Login; calling Login again retries.
// Closing the controller cancels an attempt in flight; it then returns
// ErrClosed and never navigates.
func (c *Controller) Login(ctx context.Context) error {
	busy := false
	var started State
	c.state.Update(func(s State) State {
		if s.Loading {
			busy = true
			return s
		}
		started = s
		s.Loading = true
		s.Err = nil
		return s
	})
	if busy {
		return ErrBusy
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		c.finish(nil, "")
		return ErrClosed
	}
	ctx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	creds := Credentials{Email: started.Email, Password: append([]byte(nil), c.password...)}
	c.mu.Unlock()
	defer cancel()
	defer clear(creds.Password)

	token, err := c.auth.Authenticate(ctx, creds)

	c.mu.Lock()
	c.cancel = nil
	if c.closed {
		c.mu.Unlock()
		c.log.Info("login abandoned; controller closed", zap.String("email", creds.Email))
		c.finish(nil, "")
		return ErrClosed
	}
	if err != nil {
		clear(c.password)
		c.password = nil
		c.mu.Unlock()
		failure := fmt.Errorf("%w: %w", ErrAuth, err)
		c.log.Warn("login failed", zap.String("email", creds.Email), zap.Error(err))
		c.finish(failure, "")
		return failure
	}
	// Navigate under the lock so a concurrent Close either lands first and
	// stops this, or waits until Home has been requested.
	screen := c.nav.Replace(nav.Home.Route())
	clear(c.password)
	c.password = nil
	c.mu.Unlock()

	c.log.Info("login succeeded", zap.String("email", creds.Email), zap.Stringer("screen", screen))
	c.finish(nil, token)
	return nil
}

func (c *Controller) finish(err error, token Token) {
	c.state.Update(func(s State) State {
		s.Loading = false
		s.Err = err
		if token != "" {
			s.Token = token
		}
		return s
	})
}

// Close wipes the input buffers and cancels a login in flight. It is safe
// to call more than once and should be deferred by whoever created the
// controller.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	if c.cancel != nil {
		c.cancel()
	}
	clear(c.password)
	c.password = nil
}
