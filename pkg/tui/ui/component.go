package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
)

// Screen is a full-window view bound to one navigation screen. The root
// model creates a Screen when its route becomes active and closes it when
// the route is left.
type Screen interface {
	Init() tea.Cmd
	Update(tea.Msg) (Screen, tea.Cmd)
	View() string
	SetSize(width, height int)
	// Close releases resources held for the visit, e.g. input buffers.
	Close()
}

// StoreChangedMsg reports that another process rewrote a stored key.
type StoreChangedMsg struct {
	Key string
}

// Center places content in the middle of a width x height area, falling
// back to 80x24 before the first resize.
func Center(width, height int, content string) string {
	if width <= 0 {
		width = 80
	}
	if height <= 0 {
		height = 24
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

// FrameWidth picks a frame width for the window width.
func FrameWidth(width int) int {
	if width <= 0 {
		width = 80
	}
	w := width - 8
	if w > 64 {
		w = 64
	}
	if w < 24 {
		w = width - 2
		if w < 10 {
			w = 10
		}
	}
	return w
}

// Lines joins lines with newlines.
func Lines(lines ...string) string {
	return strings.Join(lines, "\n")
}
