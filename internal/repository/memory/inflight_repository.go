package memory

import (
	"time"

	"github.com/patrickmn/go-cache"
)

// InflightRepository tracks sessions that currently have a pipeline run in
// flight, enforcing one request at a time per session. The TTL is a safety
// net: if a release is ever lost (panic, crash mid-request), the session
// unlocks itself instead of being stuck busy forever.
type InflightRepository struct {
	cache *cache.Cache
}

func NewInflightRepository() *InflightRepository {
	// Expire stale locks after 5 minutes, purge every minute.
	c := cache.New(5*time.Minute, 1*time.Minute)
	return &InflightRepository{
		cache: c,
	}
}

// TryAcquire marks the session busy. Returns false if a run is already in
// flight for it.
func (r *InflightRepository) TryAcquire(sessionID string) bool {
	err := r.cache.Add(sessionID, struct{}{}, cache.DefaultExpiration)
	return err == nil
}

// Release frees the session for the next request.
func (r *InflightRepository) Release(sessionID string) {
	r.cache.Delete(sessionID)
}
