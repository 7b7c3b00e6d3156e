// Package cache stores rendered fusion reports so batch re-runs of unchanged
// scenarios skip recomputation. Keys derive from the scenario content digest,
// which already folds in the fusion rule and source order, so a changed
// scenario always misses.
package cache

import "time"

// Cache defines the interface for report caching.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key builds the cache key for a scenario digest. The prefix versions the
// report schema; bump it when the report shape changes.
func Key(digest string) string {
	return "newsroom:v1:" + digest
}
