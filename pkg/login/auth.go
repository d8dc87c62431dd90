package login

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// DefaultDelay is how long the placeholder authenticator pretends to work.
const DefaultDelay = 2 * time.Second

// Credentials are handed to an Authenticator. Password is owned by the
// caller and zeroed after the call returns.
type Credentials struct {
	Email    string
	Password []byte
}

// Token identifies an authenticated session.
type Token string

// Authenticator checks credentials.
type Authenticator interface {
	Authenticate(ctx context.Context, creds Credentials) (Token, error)
}

// AuthenticatorFunc adapts a function to Authenticator.
type AuthenticatorFunc func(ctx context.Context, creds Credentials) (Token, error)

// Authenticate implements Authenticator.
func (f AuthenticatorFunc) Authenticate(ctx context.Context, creds Credentials) (Token, error) {
	return f(ctx, creds)
}

// Placeholder waits Delay and then accepts any credentials. It only fails
// when ctx ends first.
type Placeholder struct {
	Delay time.Duration
}

// Authenticate implements Authenticator.
func (p Placeholder) Authenticate(ctx context.Context, _ Credentials) (Token, error) {
	timer := time.NewTimer(p.Delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case <-timer.C:
	}
	return Token(uuid.NewString()), nil
}
