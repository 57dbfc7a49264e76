// Package registry persists the names of destinations whose subgraph has
// already been built.
package registry

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

type Registry interface {
	List(ctx context.Context) ([]string, error)
	Append(ctx context.Context, name string) error
}

// Contains reports whether name is one of names.
func Contains(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}

type entry struct {
	Name string `json:"name"`
}

// FileRegistry keeps destinations in a JSON array of {"name": ...} objects.
// A missing file is an empty registry and is created on first Append.
type FileRegistry struct {
	path string
	mu   sync.Mutex
}

func NewFileRegistry(path string) *FileRegistry {
	return &FileRegistry{path: path}
}

func (r *FileRegistry) List(_ context.Context) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entries, err := r.load()
	if err != nil {
		return nil, err
	}
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
	}
	return names, nil
}

// Append adds name unless it is already recorded.
func (r *FileRegistry) Append(_ context.Context, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	entries, err := r.load()
	if err != nil {
		return err
	}
	for _, e := range entries {
		if e.Name == name {
			return nil
		}
	}
	entries = append(entries, entry{Name: name})

	data, err := json.MarshalIndent(entries, "", "    ")
	if err != nil {
		return err
	}
	if dir := filepath.Dir(r.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create registry dir: %w", err)
		}
	}

	tmp := r.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write registry: %w", err)
	}
	return os.Rename(tmp, r.path)
}

func (r *FileRegistry) load() ([]entry, error) {
	data, err := os.ReadFile(r.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read registry: %w", err)
	}
	if len(data) == 0 {
		return nil, nil
	}

	var entries []entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse registry %s: %w", r.path, err)
	}
	return entries, nil
}

// RedisRegistry keeps destinations in a Redis list, guarded by a set so a
// name is only pushed once.
type RedisRegistry struct {
	client *redis.Client
	key    string
}

func NewRedisRegistry(client *redis.Client, key string) *RedisRegistry {
	if key == "" {
		key = "travelmate:destinations"
	}
	return &RedisRegistry{client: client, key: key}
}

func (r *RedisRegistry) List(ctx context.Context) ([]string, error) {
	names, err := r.client.LRange(ctx, r.key, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("list destinations: %w", err)
	}
	return names, nil
}

func (r *RedisRegistry) Append(ctx context.Context, name string) error {
	added, err := r.client.SAdd(ctx, r.key+":set", name).Result()
	if err != nil {
		return fmt.Errorf("append destination: %w", err)
	}
	if added == 0 {
		return nil
	}
	if err := r.client.RPush(ctx, r.key, name).Err(); err != nil {
		return fmt.Errorf("append destination: %w", err)
	}
	return nil
}

func (r *RedisRegistry) Close() error {
	return r.client.Close()
}
