package onboarding

// Page is the static content of one onboarding page.
type Page struct {
	Title string
	Body  string
}

var pages = [PageCount]Page{
	{
		Title: "Welcome",
		Body:  "kickoff remembers where you left off. Everything stays on this machine, in a small key-value store next to your home directory.",
	},
	{
		Title: "Move at your pace",
		Body:  "Use the arrow keys or enter to move forward. Press s at any time to skip to the last page.",
	},
	{
		Title: "All set",
		Body:  "Finish the tour and you will land on the home screen. Next time kickoff starts it goes straight there.",
	},
}

// Pages returns the onboarding pages in order.
func Pages() []Page {
	out := make([]Page, len(pages))
	copy(out, pages[:])
	return out
}
