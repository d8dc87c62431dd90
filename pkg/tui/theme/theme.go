package theme

import "github.com/charmbracelet/lipgloss/v2"

// Theme centralizes Lip Gloss styles for the Bubble Tea UI.
type Theme struct {
	Splash SplashTheme
	Page   PageTheme
	Form   FormTheme
	Footer FooterTheme
}

// SplashTheme styles the splash screen.
type SplashTheme struct {
	Logo    lipgloss.Style
	Tagline lipgloss.Style
}

// PageTheme styles framed content pages (onboarding, home, not found).
type PageTheme struct {
	Frame       lipgloss.Style
	Title       lipgloss.Style
	Body        lipgloss.Style
	ActiveDot   lipgloss.Style
	InactiveDot lipgloss.Style
}

// FormTheme styles the login form.
type FormTheme struct {
	Label   lipgloss.Style
	Focused lipgloss.Style
	Error   lipgloss.Style
	Loading lipgloss.Style
}

// FooterTheme groups styles used by the bottom help line.
type FooterTheme struct {
	Help   lipgloss.Style
	Status lipgloss.Style
}

// Default returns the built-in theme used across the UI.
func Default() Theme {
	accent := lipgloss.Color("212")
	muted := lipgloss.Color("244")

	return Theme{
		Splash: SplashTheme{
			Logo: lipgloss.NewStyle().
				Foreground(accent).
				Bold(true).
				Padding(1, 4).
				Border(lipgloss.DoubleBorder()).
				BorderForeground(accent),
			Tagline: lipgloss.NewStyle().Foreground(muted).Italic(true),
		},
		Page: PageTheme{
			Frame: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				Padding(1, 2),
			Title:       lipgloss.NewStyle().Bold(true).Foreground(accent),
			Body:        lipgloss.NewStyle(),
			ActiveDot:   lipgloss.NewStyle().Foreground(accent),
			InactiveDot: lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
		},
		Form: FormTheme{
			Label:   lipgloss.NewStyle().Foreground(muted),
			Focused: lipgloss.NewStyle().Foreground(accent).Bold(true),
			Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
			Loading: lipgloss.NewStyle().Foreground(muted).Italic(true),
		},
		Footer: FooterTheme{
			Help:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			Status: lipgloss.NewStyle().Foreground(muted),
		},
	}
}
