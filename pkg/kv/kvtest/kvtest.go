// Package kvtest provides Store fakes for tests.
package kvtest

import (
	"context"
	"errors"
	"sync"

	"tableflip.dev/kickoff/pkg/kv"
)

// ErrInjected is the failure returned by Faulty when no custom error is set.
var ErrInjected = errors.New("kvtest: injected failure")

// Faulty wraps an in-memory store and fails reads or writes on demand. It
// also counts calls so tests can assert on access patterns.
type Faulty struct {
	kv.Store

	mu       sync.Mutex
	readErr  error
	writeErr error
	reads    int
	writes   int
}

// NewFaulty returns a Faulty backed by a fresh kv.Memory.
func NewFaulty() *Faulty {
	return &Faulty{Store: kv.NewMemory()}
}

// FailReads makes every subsequent read return err (ErrInjected if nil).
func (f *Faulty) FailReads(err error) {
	if err == nil {
		err = ErrInjected
	}
	f.mu.Lock()
	f.readErr = err
	f.mu.Unlock()
}

// FailWrites makes every subsequent write return err (ErrInjected if nil).
func (f *Faulty) FailWrites(err error) {
	if err == nil {
		err = ErrInjected
	}
	f.mu.Lock()
	f.writeErr = err
	f.mu.Unlock()
}

// Heal clears injected failures.
func (f *Faulty) Heal() {
	f.mu.Lock()
	f.readErr, f.writeErr = nil, nil
	f.mu.Unlock()
}

// Reads reports how many read calls reached the fake.
func (f *Faulty) Reads() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.reads
}

// Writes reports how many write calls reached the fake.
func (f *Faulty) Writes() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.writes
}

func (f *Faulty) beforeRead() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reads++
	return f.readErr
}

func (f *Faulty) beforeWrite() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writes++
	return f.writeErr
}

// Save implements kv.Store.
func (f *Faulty) Save(ctx context.Context, key, value string) error {
	if err := f.beforeWrite(); err != nil {
		return err
	}
	return f.Store.Save(ctx, key, value)
}

// Read implements kv.Store.
func (f *Faulty) Read(ctx context.Context, key string) (string, bool, error) {
	if err := f.beforeRead(); err != nil {
		return "", false, err
	}
	return f.Store.Read(ctx, key)
}

// SaveBool implements kv.Store.
func (f *Faulty) SaveBool(ctx context.Context, key string, value bool) error {
	if err := f.beforeWrite(); err != nil {
		return err
	}
	return f.Store.SaveBool(ctx, key, value)
}

// ReadBool implements kv.Store.
func (f *Faulty) ReadBool(ctx context.Context, key string) (bool, bool, error) {
	if err := f.beforeRead(); err != nil {
		return false, false, err
	}
	return f.Store.ReadBool(ctx, key)
}
