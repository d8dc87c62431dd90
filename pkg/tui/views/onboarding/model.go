// Package onboarding renders the paged introduction.
package onboarding

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/v2/paginator"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/muesli/reflow/wordwrap"

	flow "tableflip.dev/kickoff/pkg/onboarding"
	"tableflip.dev/kickoff/pkg/tui/theme"
	"tableflip.dev/kickoff/pkg/tui/ui"
)

// Ensure Model satisfies the Screen interface.
var _ ui.Screen = (*Model)(nil)

// Controller is the onboarding behaviour the view drives.
type Controller interface {
	Progress() flow.Progress
	Next(ctx context.Context) error
	JumpToLast()
}

type completedMsg struct{ err error }

type transitionDoneMsg struct{ seq int }

// Model shows one page at a time with page dots underneath.
type Model struct {
	ctx        context.Context
	ctrl       Controller
	pages      []flow.Page
	dots       paginator.Model
	theme      theme.Theme
	transition time.Duration

	animating  bool
	seq        int
	completing bool
	err        error

	width  int
	height int
}

// New constructs the view. transition is how long a page change blocks
// further input; zero disables it.
func New(ctx context.Context, ctrl Controller, th theme.Theme, transition time.Duration) *Model {
	pages := flow.Pages()
	dots := paginator.New()
	dots.Type = paginator.Dots
	dots.TotalPages = len(pages)
	dots.ActiveDot = th.Page.ActiveDot.Render("●")
	dots.InactiveDot = th.Page.InactiveDot.Render("○")
	return &Model{
		ctx:        ctx,
		ctrl:       ctrl,
		pages:      pages,
		dots:       dots,
		theme:      th,
		transition: transition,
	}
}

// Init implements ui.Screen.
func (m *Model) Init() tea.Cmd { return nil }

// SetSize implements ui.Screen.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Close implements ui.Screen.
func (m *Model) Close() {}

// Update implements ui.Screen.
func (m *Model) Update(msg tea.Msg) (ui.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case completedMsg:
		m.completing = false
		m.err = msg.err
	case transitionDoneMsg:
		if msg.seq == m.seq {
			m.animating = false
		}
	case tea.KeyPressMsg:
		switch msg.String() {
		case "right", "enter", "space":
			return m, m.next()
		case "s":
			if m.completing || m.ctrl.Progress().IsLast() {
				return m, nil
			}
			m.ctrl.JumpToLast()
			return m, m.animate()
		}
	}
	return m, nil
}

func (m *Model) next() tea.Cmd {
	if m.completing || m.animating {
		return nil
	}
	if m.ctrl.Progress().IsLast() {
		m.completing = true
		m.err = nil
		ctx, ctrl := m.ctx, m.ctrl
		return func() tea.Msg {
			return completedMsg{err: ctrl.Next(ctx)}
		}
	}
	if err := m.ctrl.Next(m.ctx); err != nil {
		m.err = err
		return nil
	}
	return m.animate()
}

func (m *Model) animate() tea.Cmd {
	if m.transition <= 0 {
		return nil
	}
	m.animating = true
	m.seq++
	seq := m.seq
	return tea.Tick(m.transition, func(time.Time) tea.Msg {
		return transitionDoneMsg{seq: seq}
	})
}

// View implements ui.Screen.
func (m *Model) View() string {
	p := m.ctrl.Progress()
	page := m.pages[p.Index]
	m.dots.Page = p.Index

	frameWidth := ui.FrameWidth(m.width)
	body := m.theme.Page.Body
	if m.animating {
		body = body.Faint(true)
	}

	hint := "→/enter next · s skip · q quit"
	if p.IsLast() {
		hint = "enter get started · q quit"
	}
	status := m.theme.Footer.Help.Render(hint)
	switch {
	case m.completing:
		status = m.theme.Footer.Status.Render("Saving…")
	case m.err != nil:
		status = m.theme.Form.Error.Render(fmt.Sprintf("Could not save your progress: %v. Press enter to retry.", m.err))
	}

	content := ui.Lines(
		m.theme.Page.Title.Render(page.Title),
		"",
		body.Render(wordwrap.String(page.Body, frameWidth-6)),
		"",
		m.dots.View(),
		"",
		wordwrap.String(status, frameWidth-6),
	)
	return ui.Center(m.width, m.height, m.theme.Page.Frame.Width(frameWidth).Render(content))
}
