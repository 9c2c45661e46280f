package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vportan/bacbot/internal/infrastructure/redis"
)

// Store persists one logical record set as a whole JSON document. Every Save
// overwrites the previous document; the last writer wins.
type Store interface {
	Load(v any) error
	Save(v any) error
}

// ForConcern picks the Redis backend when it is available and falls back to a
// flat file under dir otherwise.
func ForConcern(redisService *redis.Service, key, dir, filename string) Store {
	if redisService != nil {
		if err := redisService.Ping(context.Background()); err == nil {
			return NewRedisStore(redisService, key)
		}
	}
	return NewFileStore(filepath.Join(dir, filename))
}

// FileStore writes the document to a single file. The write is a plain
// overwrite, not an atomic rename, so a crash mid-write can lose the
// in-flight mutation.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads the document into v. A missing file leaves v untouched.
func (s *FileStore) Load(v any) error {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read snapshot %s: %w", s.path, err)
	}

	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to decode snapshot %s: %w", s.path, err)
	}
	return nil
}

// Save serialises v and overwrites the file.
func (s *FileStore) Save(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot %s: %w", s.path, err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create snapshot dir for %s: %w", s.path, err)
	}

	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write snapshot %s: %w", s.path, err)
	}
	return nil
}

// RedisStore keeps the document under a single key, preserving the
// whole-document read/overwrite semantics of the file backend.
type RedisStore struct {
	redisService *redis.Service
	key          string
}

func NewRedisStore(redisService *redis.Service, key string) *RedisStore {
	return &RedisStore{redisService: redisService, key: key}
}

func (s *RedisStore) Load(v any) error {
	data, err := s.redisService.Get(context.Background(), s.key)
	if err != nil {
		return fmt.Errorf("failed to read snapshot %s: %w", s.key, err)
	}
	if data == "" {
		return nil
	}

	if err := json.Unmarshal([]byte(data), v); err != nil {
		return fmt.Errorf("failed to decode snapshot %s: %w", s.key, err)
	}
	return nil
}

func (s *RedisStore) Save(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot %s: %w", s.key, err)
	}

	if err := s.redisService.Set(context.Background(), s.key, string(data)); err != nil {
		return fmt.Errorf("failed to write snapshot %s: %w", s.key, err)
	}
	return nil
}
