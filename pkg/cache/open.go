package cache

import (
	"fmt"
	"os"
	"path/filepath"
)

// Backend names accepted by Open.
const (
	BackendNone   = "none"
	BackendFile   = "file"
	BackendBadger = "badger"
	BackendRedis  = "redis"
)

// Config selects and configures a backend.
type Config struct {
	Backend string
	// Dir is the directory of the file and badger backends. Empty means
	// DefaultDir for files and an in-memory store for badger.
	Dir string
	// RedisURL takes precedence over RedisAddr when set.
	RedisURL  string
	RedisAddr string
}

// Open creates the backend named by cfg.Backend. An empty name selects
// the file backend.
func Open(cfg Config) (Cache, error) {
	switch cfg.Backend {
	case BackendNone:
		return NewNullCache(), nil
	case "", BackendFile:
		dir := cfg.Dir
		if dir == "" {
			var err error
			if dir, err = DefaultDir(); err != nil {
				return nil, err
			}
		}
		return NewFileCache(dir)
	case BackendBadger:
		return NewBadgerCache(cfg.Dir)
	case BackendRedis:
		if cfg.RedisURL != "" {
			return NewRedisCacheFromURL(cfg.RedisURL)
		}
		addr := cfg.RedisAddr
		if addr == "" {
			addr = "localhost:6379"
		}
		return NewRedisCache(addr, "", 0), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
}

// DefaultDir returns $XDG_CACHE_HOME/gridraw, falling back to the user
// cache directory.
func DefaultDir() (string, error) {
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return filepath.Join(xdg, "gridraw"), nil
	}
	base, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("cache dir: %w", err)
	}
	return filepath.Join(base, "gridraw"), nil
}
