// Package app is the root Bubble Tea model. It follows the navigator and
// mounts one view per screen.
package app

import (
	"context"

	tea "github.com/charmbracelet/bubbletea/v2"
	"go.uber.org/zap"

	"tableflip.dev/kickoff/pkg/bootstrap"
	"tableflip.dev/kickoff/pkg/kv"
	"tableflip.dev/kickoff/pkg/nav"
	"tableflip.dev/kickoff/pkg/tui/theme"
	"tableflip.dev/kickoff/pkg/tui/ui"
	"tableflip.dev/kickoff/pkg/tui/views/home"
	loginview "tableflip.dev/kickoff/pkg/tui/views/login"
	onboardingview "tableflip.dev/kickoff/pkg/tui/views/onboarding"
	"tableflip.dev/kickoff/pkg/tui/views/static"
)

type navChangedMsg struct{}

// Model composes the active screen view.
type Model struct {
	ctx   context.Context
	app   *bootstrap.App
	log   *zap.Logger
	theme theme.Theme

	screen nav.Screen
	view   ui.Screen

	// changed holds at most one pending wake-up. The navigator subscriber
	// never blocks, so navigating from inside Update cannot deadlock.
	changed     chan struct{}
	unsubscribe func()
	events      <-chan kv.Event

	width  int
	height int
}

// New constructs the root model for a.
func New(ctx context.Context, a *bootstrap.App) *Model {
	m := &Model{
		ctx:     ctx,
		app:     a,
		log:     a.Logger.Named("tui"),
		theme:   theme.Default(),
		changed: make(chan struct{}, 1),
	}
	m.unsubscribe = a.Navigator.Subscribe(func(nav.Transition) {
		select {
		case m.changed <- struct{}{}:
		default:
		}
	})
	m.screen = a.Navigator.Current()
	m.view = m.viewFor(m.screen)

	if w := a.Backend.Watcher; w != nil {
		events, err := w.Watch(ctx)
		if err != nil {
			m.log.Warn("watching store failed; external changes will not refresh the UI", zap.Error(err))
		} else {
			m.events = events
		}
	}
	return m
}

// Screen reports the screen currently mounted.
func (m *Model) Screen() nav.Screen { return m.screen }

// Close releases the mounted view and stops following the navigator.
func (m *Model) Close() {
	m.view.Close()
	m.unsubscribe()
}

func (m *Model) viewFor(s nav.Screen) ui.Screen {
	switch s {
	case nav.Splash:
		return static.Splash(m.theme)
	case nav.Onboarding:
		return onboardingview.New(m.ctx, m.app.NewOnboarding(), m.theme, m.app.Config.Onboarding.Transition)
	case nav.Login:
		return loginview.New(m.ctx, m.app.NewLogin(), m.theme)
	case nav.Home:
		return home.New(m.ctx, m.app.Greeting, m.app.Navigator, m.theme)
	default:
		return static.NotFound(m.theme)
	}
}

func (m *Model) waitForNav() tea.Cmd {
	ctx, changed := m.ctx, m.changed
	return func() tea.Msg {
		select {
		case <-changed:
			return navChangedMsg{}
		case <-ctx.Done():
			return nil
		}
	}
}

func (m *Model) waitForStore() tea.Cmd {
	if m.events == nil {
		return nil
	}
	events := m.events
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return nil
		}
		return ui.StoreChangedMsg{Key: ev.Key}
	}
}

// sync mounts the view for the navigator's current screen.
func (m *Model) sync() tea.Cmd {
	cur := m.app.Navigator.Current()
	if cur == m.screen {
		return nil
	}
	m.log.Debug("mounting screen", zap.Stringer("from", m.screen), zap.Stringer("to", cur))
	m.view.Close()
	m.screen = cur
	m.view = m.viewFor(cur)
	m.view.SetSize(m.width, m.height)
	return m.view.Init()
}

// back pops the stack, or reruns the splash decision when there is nothing
// to pop.
func (m *Model) back() tea.Cmd {
	if m.app.Navigator.Pop() {
		return nil
	}
	ctx, n := m.ctx, m.app.Navigator
	return func() tea.Msg {
		target, decision := n.Decide(ctx)
		m.log.Debug("no screen to return to; decided again", zap.Stringer("decision", decision))
		n.ReplaceScreen(target)
		return nil
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.waitForNav(), m.waitForStore(), m.view.Init())
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.view.SetSize(m.width, m.height)
		return m, nil
	case navChangedMsg:
		return m, tea.Batch(m.sync(), m.waitForNav())
	case ui.StoreChangedMsg:
		view, cmd := m.view.Update(msg)
		m.view = view
		return m, tea.Batch(cmd, m.waitForStore())
	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "q":
			if m.screen != nav.Login {
				return m, tea.Quit
			}
		case "esc":
			if m.screen == nav.Login || m.screen == nav.NotFound {
				// Login state dies with the screen; a submit in flight
				// must not navigate after the user left.
				m.view.Close()
				return m, m.back()
			}
		}
	}
	view, cmd := m.view.Update(msg)
	m.view = view
	return m, cmd
}

// View implements tea.Model.
func (m *Model) View() string {
	return m.view.View()
}

// Run launches the Bubble Tea program and blocks until the user quits.
func Run(ctx context.Context, a *bootstrap.App) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	m := New(ctx, a)
	defer m.Close()

	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
