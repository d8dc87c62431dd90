// Package static renders screens without behaviour of their own: the splash
// and the not-found page.
package static

import (
	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/kickoff/pkg/tui/theme"
	"tableflip.dev/kickoff/pkg/tui/ui"
)

// Ensure Model satisfies the Screen interface.
var _ ui.Screen = (*Model)(nil)

// Model renders fixed content centered in the window.
type Model struct {
	render func(width int) string

	width  int
	height int
}

// Splash shows the logo while the navigator decides where to go.
func Splash(th theme.Theme) *Model {
	return &Model{render: func(int) string {
		return ui.Lines(
			th.Splash.Logo.Render("kickoff"),
			"",
			th.Splash.Tagline.Render("getting things ready…"),
		)
	}}
}

// NotFound is shown for routes that resolve to nothing.
func NotFound(th theme.Theme) *Model {
	return &Model{render: func(width int) string {
		content := ui.Lines(
			th.Page.Title.Render("Nothing here"),
			"",
			th.Page.Body.Render("That screen does not exist."),
			"",
			th.Footer.Help.Render("esc back · q quit"),
		)
		return th.Page.Frame.Width(ui.FrameWidth(width)).Render(content)
	}}
}

// Init implements ui.Screen.
func (m *Model) Init() tea.Cmd { return nil }

// Update implements ui.Screen.
func (m *Model) Update(tea.Msg) (ui.Screen, tea.Cmd) { return m, nil }

// SetSize implements ui.Screen.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Close implements ui.Screen.
func (m *Model) Close() {}

// View implements ui.Screen.
func (m *Model) View() string {
	return ui.Center(m.width, m.height, m.render(m.width))
}
