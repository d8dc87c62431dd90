package nav

import "strings"

// Screen identifies the single active screen.
type Screen int

// Screens.
const (
	Splash Screen = iota
	Onboarding
	Login
	Home
	NotFound
)

var screenNames = map[Screen]string{
	Splash:     "splash",
	Onboarding: "onboarding",
	Login:      "login",
	Home:       "home",
	NotFound:   "not-found",
}

func (s Screen) String() string {
	if name, ok := screenNames[s]; ok {
		return name
	}
	return "unknown"
}

// Route returns the canonical route for the screen.
func (s Screen) Route() string {
	return "/" + s.String()
}

// Routes maps route names to screens.
type Routes map[string]Screen

// DefaultRoutes returns the static route table.
func DefaultRoutes() Routes {
	return Routes{
		"/":           Splash,
		"/splash":     Splash,
		"/onboarding": Onboarding,
		"/login":      Login,
		"/home":       Home,
		"/not-found":  NotFound,
	}
}

// Resolve maps route to a screen. Unknown routes resolve to NotFound; that is
// a defined fallback rather than an error.
func (r Routes) Resolve(route string) (Screen, bool) {
	route = strings.TrimSpace(route)
	if len(route) > 1 {
		route = strings.TrimSuffix(route, "/")
	}
	if s, ok := r[route]; ok {
		return s, true
	}
	return NotFound, false
}
