package embedding

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCache wraps an EmbeddingProvider and caches vectors in Redis keyed
// by a hash of the input text. Embedding the same chunk or query twice is
// common (re-processing documents, repeated questions), and the backend
// call is the expensive part.
type RedisCache struct {
	inner EmbeddingProvider
	rdb   *redis.Client
	ttl   time.Duration
}

func NewRedisCache(inner EmbeddingProvider, rdb *redis.Client, ttl time.Duration) EmbeddingProvider {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &RedisCache{
		inner: inner,
		rdb:   rdb,
		ttl:   ttl,
	}
}

func (c *RedisCache) Generate(text string, taskType string) (*EmbeddingResponse, error) {
	ctx := context.Background()
	key := cacheKey(text, taskType)

	cached, err := c.rdb.Get(ctx, key).Bytes()
	if err == nil {
		var resp EmbeddingResponse
		if jsonErr := json.Unmarshal(cached, &resp); jsonErr == nil {
			return &resp, nil
		}
		// Corrupt entry, fall through and overwrite it.
	}

	resp, err := c.inner.Generate(text, taskType)
	if err != nil {
		return nil, err
	}

	if payload, jsonErr := json.Marshal(resp); jsonErr == nil {
		// Cache write failures are not fatal, the vector is already in hand.
		c.rdb.Set(ctx, key, payload, c.ttl)
	}

	return resp, nil
}

func cacheKey(text string, taskType string) string {
	sum := sha256.Sum256([]byte(taskType + ":" + text))
	return "embedding:" + hex.EncodeToString(sum[:])
}
