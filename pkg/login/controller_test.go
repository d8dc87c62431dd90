package login

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/kickoff/pkg/kv"
	"tableflip.dev/kickoff/pkg/nav"
)

func newLogin(auth Authenticator) (*Controller, *nav.Navigator) {
	n := nav.New(kv.NewMemory(), nav.WithInitial(nav.Login))
	return New(auth, n), n
}

func TestLoginSucceedsAndGoesHome(t *testing.T) {
	c, n := newLogin(Placeholder{Delay: time.Millisecond})
	c.SetEmail("  ada@example.com ")
	c.SetPassword("hunter2")

	var loading []bool
	c.Subscribe(func(_, next State) { loading = append(loading, next.Loading) })

	require.NoError(t, c.Login(context.Background()))

	assert.Equal(t, nav.Home, n.Current())
	st := c.State()
	assert.False(t, st.Loading)
	assert.NoError(t, st.Err)
	assert.NotEmpty(t, st.Token)
	assert.Equal(t, "ada@example.com", st.Email)
	assert.Equal(t, []bool{true, false}, loading)
	assert.False(t, c.HasPassword(), "password buffer is released after use")
}

func TestLoginIsLoadingWhileAuthenticating(t *testing.T) {
	release := make(chan struct{})
	entered := make(chan struct{})
	c, n := newLogin(AuthenticatorFunc(func(ctx context.Context, _ Credentials) (Token, error) {
		close(entered)
		<-release
		return "t", nil
	}))

	done := make(chan error, 1)
	go func() { done <- c.Login(context.Background()) }()

	<-entered
	assert.True(t, c.State().Loading)
	assert.Equal(t, nav.Login, n.Current())
	assert.ErrorIs(t, c.Login(context.Background()), ErrBusy)

	close(release)
	require.NoError(t, <-done)
	assert.False(t, c.State().Loading)
	assert.Equal(t, nav.Home, n.Current())
}

func TestLoginFailureStaysOnLogin(t *testing.T) {
	denied := errors.New("denied")
	attempts := 0
	c, n := newLogin(AuthenticatorFunc(func(_ context.Context, creds Credentials) (Token, error) {
		attempts++
		if attempts == 1 {
			assert.Equal(t, []byte("wrong"), creds.Password)
			return "", denied
		}
		return "ok", nil
	}))
	c.SetEmail("ada@example.com")
	c.SetPassword("wrong")

	err := c.Login(context.Background())
	assert.ErrorIs(t, err, ErrAuth)
	assert.ErrorIs(t, err, denied)
	assert.Equal(t, nav.Login, n.Current())

	st := c.State()
	assert.False(t, st.Loading)
	assert.ErrorIs(t, st.Err, denied)
	assert.Empty(t, st.Token)
	assert.False(t, c.HasPassword(), "failed attempts wipe the password")
	assert.Equal(t, "ada@example.com", st.Email, "email survives a failed attempt")

	c.SetPassword("right")
	require.NoError(t, c.Login(context.Background()))
	assert.NoError(t, c.State().Err)
	assert.Equal(t, nav.Home, n.Current())
}

func TestLoginCancelledContext(t *testing.T) {
	c, n := newLogin(Placeholder{Delay: time.Hour})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := c.Login(ctx)
	assert.ErrorIs(t, err, ErrAuth)
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, c.State().Loading)
	assert.Equal(t, nav.Login, n.Current())
}

func TestCloseReleasesInputs(t *testing.T) {
	var seen []byte
	c, _ := newLogin(AuthenticatorFunc(func(_ context.Context, creds Credentials) (Token, error) {
		seen = creds.Password
		return "t", nil
	}))
	c.SetPassword("secret")
	require.NoError(t, c.Login(context.Background()))
	assert.Equal(t, make([]byte, len("secret")), seen, "credentials are zeroed after the call")

	c.SetPassword("again")
	c.Close()
	c.Close()
	assert.False(t, c.HasPassword())
	assert.ErrorIs(t, c.Login(context.Background()), ErrClosed)
	c.SetPassword("ignored")
	assert.False(t, c.HasPassword())
}

func TestCloseOnAbnormalTeardown(t *testing.T) {
	c, _ := newLogin(Placeholder{})
	c.SetPassword("secret")

	func() {
		defer c.Close()
		defer func() { _ = recover() }()
		panic("screen torn down")
	}()

	assert.False(t, c.HasPassword())
}

func TestPlaceholderIssuesDistinctTokens(t *testing.T) {
	p := Placeholder{}
	var wg sync.WaitGroup
	tokens := make([]Token, 4)
	for i := range tokens {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			tok, err := p.Authenticate(context.Background(), Credentials{})
			assert.NoError(t, err)
			tokens[i] = tok
		}(i)
	}
	wg.Wait()
	seen := map[Token]bool{}
	for _, tok := range tokens {
		assert.False(t, seen[tok])
		seen[tok] = true
	}
}

func TestCloseDuringLoginNeverNavigates(t *testing.T) {
	c, n := newLogin(Placeholder{Delay: time.Hour})
	c.SetPassword("secret")

	done := make(chan error, 1)
	go func() { done <- c.Login(context.Background()) }()
	require.Eventually(t, func() bool { return c.State().Loading }, time.Second, time.Millisecond)

	c.Close()
	n.ReplaceScreen(nav.Onboarding)

	select {
	case err := <-done:
		assert.ErrorIs(t, err, ErrClosed)
	case <-time.After(2 * time.Second):
		t.Fatal("closing did not cancel the login in flight")
	}
	assert.Equal(t, nav.Onboarding, n.Current(), "an abandoned login must not move the app")
	assert.False(t, c.State().Loading)
}

func TestCloseAfterAuthenticateBeforeNavigate(t *testing.T) {
	var c *Controller
	c, n := newLogin(AuthenticatorFunc(func(context.Context, Credentials) (Token, error) {
		c.Close()
		return "t", nil
	}))

	assert.ErrorIs(t, c.Login(context.Background()), ErrClosed)
	assert.Equal(t, nav.Login, n.Current())
	assert.Empty(t, c.State().Token)
}
