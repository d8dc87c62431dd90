package metrics

import (
	"context"
	"errors"

	"tableflip.dev/kickoff/pkg/kv"
)

// Store wraps a kv.Store and counts each call.
type Store struct {
	next kv.Store
	c    *Collector
}

var _ kv.Store = (*Store)(nil)
var _ kv.Lister = (*Store)(nil)

// Instrument returns next wrapped with call counting.
func Instrument(next kv.Store, c *Collector) *Store {
	return &Store{next: next, c: c}
}

func (s *Store) record(op string, err error) {
	result := "ok"
	switch {
	case errors.Is(err, kv.ErrUnavailable):
		result = "unavailable"
	case err != nil:
		result = "error"
	}
	s.c.StorageOps.WithLabelValues(op, result).Inc()
}

// Save implements kv.Store.
func (s *Store) Save(ctx context.Context, key, value string) error {
	err := s.next.Save(ctx, key, value)
	s.record("save", err)
	return err
}

// Read implements kv.Store.
func (s *Store) Read(ctx context.Context, key string) (string, bool, error) {
	v, ok, err := s.next.Read(ctx, key)
	s.record("read", err)
	return v, ok, err
}

// SaveBool implements kv.Store.
func (s *Store) SaveBool(ctx context.Context, key string, value bool) error {
	err := s.next.SaveBool(ctx, key, value)
	s.record("save_bool", err)
	return err
}

// ReadBool implements kv.Store.
func (s *Store) ReadBool(ctx context.Context, key string) (bool, bool, error) {
	v, ok, err := s.next.ReadBool(ctx, key)
	s.record("read_bool", err)
	return v, ok, err
}

// List forwards to the wrapped store when it can enumerate keys.
func (s *Store) List(ctx context.Context) ([]kv.Entry, error) {
	l, ok := s.next.(kv.Lister)
	if !ok {
		return nil, errors.New("metrics: wrapped store cannot list keys")
	}
	return l.List(ctx)
}
