// Package cache stores rendered evaluation results keyed by request digest,
// with in-memory and Redis backends.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/sarandavies/london-house-buying/internal/engine"
)

// Config selects and tunes the cache backend.
type Config struct {
	Backend      string        `yaml:"backend"`
	RedisAddress string        `yaml:"redisAddress"`
	TTL          time.Duration `yaml:"ttl"`
}

// Cache is the storage contract the server works against. Get misses are
// not errors; Set failures are surfaced so callers can log and move on.
type Cache interface {
	Get(key string) (string, bool)
	Set(key string, value string) error
}

// New builds the backend named by cfg. An empty backend selects memory.
func New(logger *zap.Logger, cfg Config) (Cache, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	backend := strings.ToLower(strings.TrimSpace(cfg.Backend))
	switch backend {
	case "", "memory":
		return NewMemoryCache(cfg.TTL), nil
	case "redis":
		logger.Info("using redis evaluation cache",
			zap.String("op", "cache.New"),
			zap.String("address", cfg.RedisAddress),
		)
		return NewRedisCache(cfg.RedisAddress, cfg.TTL), nil
	case "none":
		return Disabled{}, nil
	}
	return nil, fmt.Errorf("unknown cache backend %q, expected memory, redis, or none", cfg.Backend)
}

// Key digests an evaluation input into a stable cache key. Identical inputs
// produce identical keys, so a hit replays a deterministic result.
func Key(in engine.Input) string {
	payload, err := json.Marshal(in)
	if err != nil {
		return ""
	}
	digest := sha256.Sum256(payload)
	return "evaluate:" + hex.EncodeToString(digest[:])
}

// Disabled is the no-op backend: every lookup misses and writes vanish.
type Disabled struct{}

// Get always misses.
func (Disabled) Get(string) (string, bool) { return "", false }

// Set discards the value.
func (Disabled) Set(string, string) error { return nil }
