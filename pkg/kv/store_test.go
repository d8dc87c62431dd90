package kv

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type listingStore interface {
	Store
	Lister
}

func backends(t *testing.T) map[string]listingStore {
	t.Helper()
	disk, err := OpenDisk(filepath.Join(t.TempDir(), "kickoff.db"))
	require.NoError(t, err)
	lite, err := OpenSQLite(filepath.Join(t.TempDir(), "kickoff.sqlite"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = lite.Close() })
	return map[string]listingStore{
		"memory": NewMemory(),
		"diskv":  disk,
		"sqlite": lite,
	}
}

func TestStoreContract(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			_, ok, err := s.ReadBool(ctx, KeySeenOnboarding)
			require.NoError(t, err)
			assert.False(t, ok, "unset key must read as absent")

			require.NoError(t, s.SaveBool(ctx, KeySeenOnboarding, false))
			v, ok, err := s.ReadBool(ctx, KeySeenOnboarding)
			require.NoError(t, err)
			assert.True(t, ok, "false must be distinct from absent")
			assert.False(t, v)

			require.NoError(t, s.SaveBool(ctx, KeySeenOnboarding, true))
			v, ok, err = s.ReadBool(ctx, KeySeenOnboarding)
			require.NoError(t, err)
			assert.True(t, ok)
			assert.True(t, v)

			_, ok, err = s.Read(ctx, KeyGreeting)
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, s.Save(ctx, KeyGreeting, "hello, world"))
			g, ok, err := s.Read(ctx, KeyGreeting)
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, "hello, world", g)

			entries, err := s.List(ctx)
			require.NoError(t, err)
			assert.Equal(t, []Entry{
				{Key: KeyGreeting, Kind: KindString, Value: "hello, world"},
				{Key: KeySeenOnboarding, Kind: KindBool, Value: "true"},
			}, entries)
		})
	}
}

func TestStoreTypeMismatchIsAFailure(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, s.Save(ctx, KeySeenOnboarding, "yes"))

			_, ok, err := s.ReadBool(ctx, KeySeenOnboarding)
			assert.True(t, errors.Is(err, ErrTypeMismatch), "got %v", err)
			assert.False(t, ok)
		})
	}
}

func TestStoreRejectsEmptyKey(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			err := s.Save(context.Background(), "", "x")
			assert.ErrorIs(t, err, ErrInvalidKey)
		})
	}
}

func TestDiskSurvivesReopen(t *testing.T) {
	base := filepath.Join(t.TempDir(), "kickoff.db")
	ctx := context.Background()

	first, err := OpenDisk(base)
	require.NoError(t, err)
	require.NoError(t, first.SaveBool(ctx, KeySeenOnboarding, true))

	second, err := OpenDisk(base)
	require.NoError(t, err)
	v, ok, err := second.ReadBool(ctx, KeySeenOnboarding)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, v)
}

func TestSQLiteSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kickoff.sqlite")
	ctx := context.Background()

	first, err := OpenSQLite(path)
	require.NoError(t, err)
	require.NoError(t, first.Save(ctx, KeyGreeting, "hi"))
	require.NoError(t, first.Close())

	second, err := OpenSQLite(path)
	require.NoError(t, err)
	defer second.Close()
	g, ok, err := second.Read(ctx, KeyGreeting)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "hi", g)
}

func TestDiskKeysWithSeparators(t *testing.T) {
	s, err := OpenDisk(filepath.Join(t.TempDir(), "kickoff.db"))
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "a/b-c", "v"))
	got, ok, err := s.Read(ctx, "a/b-c")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", got)
}

func TestDiskWatchEmitsKeyChanges(t *testing.T) {
	s, err := OpenDisk(filepath.Join(t.TempDir(), "kickoff.db"))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := s.Watch(ctx)
	require.NoError(t, err)

	// Allow the watcher goroutine to start before writing.
	time.Sleep(50 * time.Millisecond)
	require.NoError(t, s.Save(context.Background(), KeyGreeting, "hello"))

	deadline := time.After(2 * time.Second)
	for {
		select {
		case evt, ok := <-ch:
			require.True(t, ok, "watch channel closed early")
			if evt.Key == KeyGreeting {
				return
			}
		case <-deadline:
			t.Fatal("timed out waiting for key change event")
		}
	}
}
