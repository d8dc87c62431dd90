// Package greeting stores the optional greeting shown on the home screen.
package greeting

import (
	"context"
	"strings"

	"tableflip.dev/kickoff/pkg/kv"
)

// Default is shown when no greeting has been stored.
const Default = "Welcome home."

// Repository reads and writes the greeting key.
type Repository struct {
	Store kv.Store
}

// Get returns the stored greeting and whether one was set.
func (r *Repository) Get(ctx context.Context) (string, bool, error) {
	return r.Store.Read(ctx, kv.KeyGreeting)
}

// Set stores a greeting. Surrounding whitespace is trimmed.
func (r *Repository) Set(ctx context.Context, greeting string) error {
	return r.Store.Save(ctx, kv.KeyGreeting, strings.TrimSpace(greeting))
}

// Display returns the greeting to render, falling back to Default when the
// key is absent, empty or unreadable.
func (r *Repository) Display(ctx context.Context) string {
	g, ok, err := r.Get(ctx)
	if err != nil || !ok || g == "" {
		return Default
	}
	return g
}
