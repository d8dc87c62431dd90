package kv

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/peterbourgon/diskv/v3"
)

// Disk is a Store backed by diskv: one file per key under a base directory.
// Writes go through a temp directory and are renamed into place, so a reader
// never observes a partial value.
type Disk struct {
	d        *diskv.Diskv
	basePath string
}

// OpenDisk creates the base directory if needed and returns a Disk store.
func OpenDisk(basePath string) (*Disk, error) {
	if basePath == "" {
		return nil, errors.New("kv: base path required")
	}
	tempDir := basePath + ".tmp"
	for _, dir := range []string{basePath, tempDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("kv: ensure %s: %w", dir, err)
		}
	}
	return &Disk{
		d: diskv.New(diskv.Options{
			BasePath:          basePath,
			TempDir:           tempDir,
			AdvancedTransform: keyToPathTransform,
			InverseTransform:  pathToKeyTransform,
			// Values may be rewritten by another process (kickoff greeting set),
			// so reads always go to disk.
			CacheSizeMax: 0,
		}),
		basePath: basePath,
	}, nil
}

// BasePath reports the directory holding the key files.
func (p *Disk) BasePath() string { return p.basePath }

func (p *Disk) write(ctx context.Context, key string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	// sync so the value is on disk before Save returns.
	if err := p.d.WriteStream(key, bytes.NewReader(data), true); err != nil {
		return fmt.Errorf("kv: write %q: %w", key, err)
	}
	return nil
}

func (p *Disk) read(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	data, err := p.d.Read(key)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("kv: read %q: %w", key, err)
	}
	return data, true, nil
}

// Save implements Store.
func (p *Disk) Save(ctx context.Context, key, value string) error {
	if err := checkKey(key); err != nil {
		return err
	}
	data, err := encodeString(value)
	if err != nil {
		return err
	}
	return p.write(ctx, key, data)
}

// Read implements Store.
func (p *Disk) Read(ctx context.Context, key string) (string, bool, error) {
	if err := checkKey(key); err != nil {
		return "", false, err
	}
	data, ok, err := p.read(ctx, key)
	if err != nil || !ok {
		return "", false, err
	}
	s, err := decodeString(key, data)
	if err != nil {
		return "", false, err
	}
	return s, true, nil
}

// SaveBool implements Store.
func (p *Disk) SaveBool(ctx context.Context, key string, value bool) error {
	if err := checkKey(key); err != nil {
		return err
	}
	data, err := encodeBool(value)
	if err != nil {
		return err
	}
	return p.write(ctx, key, data)
}

// ReadBool implements Store.
func (p *Disk) ReadBool(ctx context.Context, key string) (bool, bool, error) {
	if err := checkKey(key); err != nil {
		return false, false, err
	}
	data, ok, err := p.read(ctx, key)
	if err != nil || !ok {
		return false, false, err
	}
	b, err := decodeBool(key, data)
	if err != nil {
		return false, false, err
	}
	return b, true, nil
}

// List implements Lister.
func (p *Disk) List(ctx context.Context) ([]Entry, error) {
	out := make([]Entry, 0)
	for key := range p.d.Keys(ctx.Done()) {
		data, ok, err := p.read(ctx, key)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		e, err := entryFrom(key, data)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

// keyForFile maps a file under the base path back to its key.
func (p *Disk) keyForFile(path string) (string, bool) {
	rel, err := filepath.Rel(p.basePath, path)
	if err != nil || rel == "." || filepath.Dir(rel) != "." {
		return "", false
	}
	return fromFileName(rel)
}

func keyToPathTransform(key string) *diskv.PathKey {
	return &diskv.PathKey{
		Path:     []string{},
		FileName: toFileName(key),
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	key, ok := fromFileName(pathKey.FileName)
	if !ok {
		return pathKey.FileName
	}
	return key
}

// Keys are arbitrary strings, so file names carry them base64-encoded.
func toFileName(key string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(key))
}

func fromFileName(name string) (string, bool) {
	key, err := base64.RawURLEncoding.DecodeString(name)
	if err != nil {
		return "", false
	}
	return string(key), true
}
