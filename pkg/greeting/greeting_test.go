package greeting

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/kickoff/pkg/kv/kvtest"
)

func TestRepository(t *testing.T) {
	ctx := context.Background()
	store := kvtest.NewFaulty()
	r := &Repository{Store: store}

	_, ok, err := r.Get(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, Default, r.Display(ctx))

	require.NoError(t, r.Set(ctx, "  good morning  "))
	g, ok, err := r.Get(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "good morning", g)
	assert.Equal(t, "good morning", r.Display(ctx))

	store.FailReads(nil)
	assert.Equal(t, Default, r.Display(ctx))

	store.FailWrites(nil)
	assert.ErrorIs(t, r.Set(ctx, "x"), kvtest.ErrInjected)
}
