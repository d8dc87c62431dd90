// Package home renders the home screen with the stored greeting.
package home

import (
	"context"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/muesli/reflow/wordwrap"

	"tableflip.dev/kickoff/pkg/kv"
	"tableflip.dev/kickoff/pkg/nav"
	"tableflip.dev/kickoff/pkg/tui/theme"
	"tableflip.dev/kickoff/pkg/tui/ui"
)

// Ensure Model satisfies the Screen interface.
var _ ui.Screen = (*Model)(nil)

// Greeter supplies the text shown on the home screen.
type Greeter interface {
	Display(ctx context.Context) string
}

// Navigator is the navigation the home screen can trigger.
type Navigator interface {
	Push(route string) nav.Screen
}

type greetingMsg struct{ text string }

// Model is the home screen.
type Model struct {
	ctx      context.Context
	greeter  Greeter
	nav      Navigator
	theme    theme.Theme
	greeting string
	loaded   bool

	width  int
	height int
}

// New constructs the home screen. The greeting loads in Init.
func New(ctx context.Context, greeter Greeter, navigator Navigator, th theme.Theme) *Model {
	return &Model{ctx: ctx, greeter: greeter, nav: navigator, theme: th}
}

// Init implements ui.Screen.
func (m *Model) Init() tea.Cmd {
	return m.load()
}

// SetSize implements ui.Screen.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Close implements ui.Screen.
func (m *Model) Close() {}

func (m *Model) load() tea.Cmd {
	ctx, g := m.ctx, m.greeter
	return func() tea.Msg {
		return greetingMsg{text: g.Display(ctx)}
	}
}

// Update implements ui.Screen.
func (m *Model) Update(msg tea.Msg) (ui.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case greetingMsg:
		m.greeting = msg.text
		m.loaded = true
	case ui.StoreChangedMsg:
		if msg.Key == kv.KeyGreeting {
			return m, m.load()
		}
	case tea.KeyPressMsg:
		switch msg.String() {
		case "l":
			m.nav.Push(nav.Login.Route())
		case "r":
			return m, m.load()
		}
	}
	return m, nil
}

// View implements ui.Screen.
func (m *Model) View() string {
	frameWidth := ui.FrameWidth(m.width)
	greeting := "…"
	if m.loaded {
		greeting = m.greeting
	}
	content := ui.Lines(
		m.theme.Page.Title.Render("Home"),
		"",
		m.theme.Page.Body.Render(wordwrap.String(greeting, frameWidth-6)),
		"",
		m.theme.Footer.Help.Render("l sign in · r refresh · q quit"),
	)
	return ui.Center(m.width, m.height, m.theme.Page.Frame.Width(frameWidth).Render(content))
}
