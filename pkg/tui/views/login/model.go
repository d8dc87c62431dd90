// Package login renders the email and password form.
package login

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"

	auth "tableflip.dev/kickoff/pkg/login"
	"tableflip.dev/kickoff/pkg/tui/theme"
	"tableflip.dev/kickoff/pkg/tui/ui"
)

// Ensure Model satisfies the Screen interface.
var _ ui.Screen = (*Model)(nil)

// Controller is the login behaviour the view drives.
type Controller interface {
	State() auth.State
	SetEmail(email string)
	SetPassword(password string)
	Login(ctx context.Context) error
	Close()
}

type doneMsg struct{ err error }

const (
	fieldEmail = iota
	fieldPassword
)

// Model is the login form.
type Model struct {
	ctx   context.Context
	ctrl  Controller
	theme theme.Theme

	email    textinput.Model
	password textinput.Model
	focus    int

	submitting bool

	width  int
	height int
}

// New constructs the form with the email field focused.
func New(ctx context.Context, ctrl Controller, th theme.Theme) *Model {
	email := textinput.New()
	email.Placeholder = "you@example.com"
	email.Prompt = ""
	email.CharLimit = 254

	password := textinput.New()
	password.Placeholder = "password"
	password.Prompt = ""
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	return &Model{
		ctx:      ctx,
		ctrl:     ctrl,
		theme:    th,
		email:    email,
		password: password,
	}
}

// Init implements ui.Screen.
func (m *Model) Init() tea.Cmd {
	return m.email.Focus()
}

// SetSize implements ui.Screen.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	w := ui.FrameWidth(width) - 8
	m.email.SetWidth(w)
	m.password.SetWidth(w)
}

// Close wipes both inputs and releases the controller.
func (m *Model) Close() {
	m.email.Reset()
	m.password.Reset()
	m.ctrl.Close()
}

// Update implements ui.Screen.
func (m *Model) Update(msg tea.Msg) (ui.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case doneMsg:
		m.submitting = false
		if msg.err != nil {
			m.password.Reset()
			return m, m.setFocus(fieldPassword)
		}
		return m, nil
	case tea.KeyPressMsg:
		if m.submitting {
			return m, nil
		}
		switch msg.String() {
		case "tab", "down", "shift+tab", "up":
			return m, m.setFocus(1 - m.focus)
		case "enter":
			if m.focus == fieldEmail {
				return m, m.setFocus(fieldPassword)
			}
			return m, m.submit()
		}
	}

	var cmd tea.Cmd
	if m.focus == fieldEmail {
		m.email, cmd = m.email.Update(msg)
		m.ctrl.SetEmail(m.email.Value())
	} else {
		m.password, cmd = m.password.Update(msg)
		m.ctrl.SetPassword(m.password.Value())
	}
	return m, cmd
}

func (m *Model) setFocus(field int) tea.Cmd {
	m.focus = field
	if field == fieldEmail {
		m.password.Blur()
		return m.email.Focus()
	}
	m.email.Blur()
	return m.password.Focus()
}

func (m *Model) submit() tea.Cmd {
	m.submitting = true
	ctx, ctrl := m.ctx, m.ctrl
	return func() tea.Msg {
		return doneMsg{err: ctrl.Login(ctx)}
	}
}

// View implements ui.Screen.
func (m *Model) View() string {
	label := func(field int, text string) string {
		if m.focus == field {
			return m.theme.Form.Focused.Render("› " + text)
		}
		return m.theme.Form.Label.Render("  " + text)
	}

	state := m.ctrl.State()
	status := m.theme.Footer.Help.Render("tab switch field · enter sign in · esc back")
	switch {
	case m.submitting || state.Loading:
		status = m.theme.Form.Loading.Render("Signing in…")
	case state.Err != nil:
		text := "Sign in failed. Check your details and try again."
		if errors.Is(state.Err, context.Canceled) {
			text = "Sign in was cancelled."
		}
		status = m.theme.Form.Error.Render(text)
	}

	content := ui.Lines(
		m.theme.Page.Title.Render("Sign in"),
		"",
		label(fieldEmail, "Email"),
		"  "+m.email.View(),
		"",
		label(fieldPassword, "Password"),
		"  "+m.password.View(),
		"",
		status,
	)
	frame := m.theme.Page.Frame.Width(ui.FrameWidth(m.width))
	return ui.Center(m.width, m.height, frame.Render(content))
}
