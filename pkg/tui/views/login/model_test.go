package login

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/kickoff/pkg/kv"
	auth "tableflip.dev/kickoff/pkg/login"
	"tableflip.dev/kickoff/pkg/nav"
	"tableflip.dev/kickoff/pkg/tui/theme"
)

type recordingAuth struct {
	fail  bool
	creds []auth.Credentials
}

func (r *recordingAuth) Authenticate(_ context.Context, c auth.Credentials) (auth.Token, error) {
	r.creds = append(r.creds, auth.Credentials{Email: c.Email, Password: append([]byte(nil), c.Password...)})
	if r.fail {
		return "", errors.New("rejected")
	}
	return "token", nil
}

func setup(a auth.Authenticator) (*Model, *auth.Controller, *nav.Navigator) {
	n := nav.New(kv.NewMemory(), nav.WithInitial(nav.Login))
	ctrl := auth.New(a, n)
	return New(context.Background(), ctrl, theme.Default()), ctrl, n
}

func send(m *Model, msg tea.Msg) (*Model, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(*Model), cmd
}

func typeText(m *Model, s string) *Model {
	for _, r := range s {
		m, _ = send(m, tea.KeyPressMsg{Text: string(r), Code: r})
	}
	return m
}

func TestSubmitSignsIn(t *testing.T) {
	a := &recordingAuth{}
	m, ctrl, n := setup(a)
	m.Init()

	m = typeText(m, "ada@example.com")
	m, _ = send(m, tea.KeyPressMsg{Code: tea.KeyEnter})
	assert.Equal(t, fieldPassword, m.focus, "enter on email moves to password")
	m = typeText(m, "hunter2")
	assert.NotContains(t, m.View(), "hunter2")

	m, cmd := send(m, tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Contains(t, m.View(), "Signing in")
	m, _ = send(m, cmd())

	require.Len(t, a.creds, 1)
	assert.Equal(t, "ada@example.com", a.creds[0].Email)
	assert.Equal(t, "hunter2", string(a.creds[0].Password))
	assert.Equal(t, nav.Home, n.Current())
	assert.Equal(t, auth.Token("token"), ctrl.State().Token)
}

func TestFailureClearsPasswordAndShowsError(t *testing.T) {
	a := &recordingAuth{fail: true}
	m, ctrl, n := setup(a)
	m.Init()

	m = typeText(m, "ada@example.com")
	m, _ = send(m, tea.KeyPressMsg{Code: tea.KeyTab})
	m = typeText(m, "wrong")
	m, cmd := send(m, tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd)
	m, _ = send(m, cmd())

	assert.Equal(t, nav.Login, n.Current())
	assert.Empty(t, m.password.Value())
	assert.False(t, ctrl.HasPassword())
	assert.Contains(t, m.View(), "Sign in failed")
}

func TestKeysIgnoredWhileSubmitting(t *testing.T) {
	m, _, _ := setup(&recordingAuth{})
	m.Init()
	m, _ = send(m, tea.KeyPressMsg{Code: tea.KeyTab})
	m, cmd := send(m, tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd)

	_, again := send(m, tea.KeyPressMsg{Code: tea.KeyEnter})
	assert.Nil(t, again)
}

func TestCloseWipesInputs(t *testing.T) {
	m, ctrl, _ := setup(&recordingAuth{})
	m.Init()
	m = typeText(m, "ada@example.com")
	m, _ = send(m, tea.KeyPressMsg{Code: tea.KeyTab})
	m = typeText(m, "secret")
	require.True(t, ctrl.HasPassword())

	m.Close()
	assert.Empty(t, m.email.Value())
	assert.Empty(t, m.password.Value())
	assert.False(t, ctrl.HasPassword())
	assert.ErrorIs(t, ctrl.Login(context.Background()), auth.ErrClosed)
}
