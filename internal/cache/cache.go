package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache stores rendered decisions keyed by document content, so
// reprocessing an unchanged intake folder skips extraction and routing
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// ContentKey derives a cache key from raw document text. Identical text
// always maps to the same key regardless of filename.
func ContentKey(text string) string {
	hash := sha256.Sum256([]byte(text))
	return "fnoltriage:v1:" + hex.EncodeToString(hash[:])
}
