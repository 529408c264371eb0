package discord

import (
	"sync"
	"time"
)

type cachedIdentity struct {
	name    string
	expires time.Time
}

// IdentityCache is a thread-safe in-memory cache of Discord user id -> display name.
type IdentityCache struct {
	mu    sync.RWMutex
	ttl   time.Duration
	now   func() time.Time
	cache map[string]cachedIdentity
}

func NewIdentityCache(ttl time.Duration) *IdentityCache {
	return &IdentityCache{
		ttl:   ttl,
		now:   time.Now,
		cache: make(map[string]cachedIdentity),
	}
}

func (c *IdentityCache) Get(userID string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, found := c.cache[userID]
	if !found || c.now().After(e.expires) {
		return "", false
	}
	return e.name, true
}

func (c *IdentityCache) Set(userID, name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache[userID] = cachedIdentity{name: name, expires: c.now().Add(c.ttl)}
}

func (c *IdentityCache) Delete(userID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.cache, userID)
}

// Size returns the number of cached entries, expired ones included.
func (c *IdentityCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.cache)
}
