// Package kv defines the durable key-value contract shared by the navigation
// core and the backends that satisfy it.
package kv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Well-known keys.
const (
	// KeySeenOnboarding records whether the onboarding flow was completed.
	KeySeenOnboarding = "seenOnboarding"
	// KeyGreeting holds the sample greeting string.
	KeyGreeting = "greeting"
)

var (
	// ErrTypeMismatch is returned when a key holds a value of the other kind.
	ErrTypeMismatch = errors.New("kv: value type mismatch")
	// ErrUnavailable is returned when the store refuses calls after repeated failures.
	ErrUnavailable = errors.New("kv: store unavailable")
	// ErrInvalidKey is returned for empty keys.
	ErrInvalidKey = errors.New("kv: invalid key")
)

// Store is an asynchronous mapping from string keys to string or boolean
// values. A read reports ok=false with a nil error when the key is absent;
// any non-nil error is a storage failure and must not be read as absence.
type Store interface {
	Save(ctx context.Context, key, value string) error
	Read(ctx context.Context, key string) (string, bool, error)
	SaveBool(ctx context.Context, key string, value bool) error
	ReadBool(ctx context.Context, key string) (bool, bool, error)
}

// Kind tags the type of a stored value.
type Kind string

// Value kinds.
const (
	KindString Kind = "string"
	KindBool   Kind = "bool"
)

// record is the on-disk envelope used by the byte-oriented backends.
type record struct {
	Kind  Kind            `json:"kind"`
	Value json.RawMessage `json:"value"`
}

func encodeString(s string) ([]byte, error) {
	raw, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return json.Marshal(record{Kind: KindString, Value: raw})
}

func encodeBool(b bool) ([]byte, error) {
	raw, err := json.Marshal(b)
	if err != nil {
		return nil, err
	}
	return json.Marshal(record{Kind: KindBool, Value: raw})
}

func decode(key string, data []byte) (record, error) {
	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		return record{}, fmt.Errorf("kv: decode %q: %w", key, err)
	}
	return rec, nil
}

func decodeString(key string, data []byte) (string, error) {
	rec, err := decode(key, data)
	if err != nil {
		return "", err
	}
	if rec.Kind != KindString {
		return "", fmt.Errorf("kv: %q holds %s: %w", key, rec.Kind, ErrTypeMismatch)
	}
	var s string
	if err := json.Unmarshal(rec.Value, &s); err != nil {
		return "", fmt.Errorf("kv: decode %q: %w", key, err)
	}
	return s, nil
}

func decodeBool(key string, data []byte) (bool, error) {
	rec, err := decode(key, data)
	if err != nil {
		return false, err
	}
	if rec.Kind != KindBool {
		return false, fmt.Errorf("kv: %q holds %s: %w", key, rec.Kind, ErrTypeMismatch)
	}
	var b bool
	if err := json.Unmarshal(rec.Value, &b); err != nil {
		return false, fmt.Errorf("kv: decode %q: %w", key, err)
	}
	return b, nil
}

func checkKey(key string) error {
	if key == "" {
		return ErrInvalidKey
	}
	return nil
}

// Entry is a decoded key/value pair, used by listing helpers.
type Entry struct {
	Key   string `json:"key" yaml:"key"`
	Kind  Kind   `json:"kind" yaml:"kind"`
	Value string `json:"value" yaml:"value"`
}

// Lister is implemented by backends that can enumerate their keys.
type Lister interface {
	List(ctx context.Context) ([]Entry, error)
}

func entryFrom(key string, data []byte) (Entry, error) {
	rec, err := decode(key, data)
	if err != nil {
		return Entry{}, err
	}
	e := Entry{Key: key, Kind: rec.Kind}
	switch rec.Kind {
	case KindString:
		var s string
		if err := json.Unmarshal(rec.Value, &s); err != nil {
			return Entry{}, fmt.Errorf("kv: decode %q: %w", key, err)
		}
		e.Value = s
	default:
		e.Value = string(rec.Value)
	}
	return e, nil
}
