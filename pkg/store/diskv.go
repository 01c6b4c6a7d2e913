package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/peterbourgon/diskv/v3"
)

// KV is the persistence contract the layout rides on: string documents under
// string keys. Reads of absent keys report a miss rather than an error, and
// removes of absent keys succeed, so callers never need to distinguish
// "never written" from "already gone".
type KV interface {
	Get(key string) (string, bool)
	Set(key, value string) error
	Remove(key string) error
	Watch(ctx context.Context) (<-chan Event, error)
}

// Load creates a KV backed by diskv using the provided config. A nil config
// loads the ambient one.
func Load(cfg Config) (KV, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}

	basePath, err := homedir.Expand(cfg.BasePath())
	if err != nil {
		return nil, fmt.Errorf("store: expand base path: %w", err)
	}
	return &kvStore{d: diskv.New(diskv.Options{
		BasePath:          basePath,
		AdvancedTransform: keyToPathTransform,
		InverseTransform:  pathToKeyTransform,
		CacheSizeMax:      1024 * 1024, // 1MB
	}), basePath: basePath}, nil
}

type kvStore struct {
	d        *diskv.Diskv
	basePath string
}

func (s *kvStore) Get(key string) (string, bool) {
	val, err := s.d.Read(key)
	if err != nil {
		return "", false
	}
	return string(val), true
}

func (s *kvStore) Set(key, value string) error {
	if key == "" {
		return errors.New("store: key required")
	}
	if err := s.d.Write(key, []byte(value)); err != nil {
		return fmt.Errorf("store: write %s: %w", key, err)
	}
	return nil
}

func (s *kvStore) Remove(key string) error {
	if err := s.d.Erase(key); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("store: remove %s: %w", key, err)
	}
	return nil
}

// Keys with dashes shard into directories, one path segment per dash-separated
// part; flat keys like the layout documents stay flat files under the base
// path.
func keyToPathTransform(s string) *diskv.PathKey {
	parts := strings.Split(s, "-")
	return &diskv.PathKey{
		Path:     parts[:len(parts)-1],
		FileName: parts[len(parts)-1],
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	if len(pathKey.Path) == 0 {
		return pathKey.FileName
	}
	return fmt.Sprintf("%s-%s", strings.Join(pathKey.Path, "-"), pathKey.FileName)
}
