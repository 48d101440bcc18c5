package cache

import (
	"sync"
	"time"

	"portfolio/models"
)

// SessionCache keeps resolved admin sessions by session id, with the
// bearer token already unsealed.
type SessionCache struct {
	mu       sync.RWMutex
	sessions map[string]models.Session
}

func NewSessionCache() *SessionCache {
	return &SessionCache{sessions: make(map[string]models.Session)}
}

func (c *SessionCache) Add(s models.Session) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sessions[s.ID] = s
}

func (c *SessionCache) Find(id string) (models.Session, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s, ok := c.sessions[id]
	return s, ok
}

func (c *SessionCache) Delete(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.sessions, id)
}

// PurgeExpired drops sessions whose expiry is before now and returns how
// many were removed.
func (c *SessionCache) PurgeExpired(now time.Time) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for id, s := range c.sessions {
		if now.After(s.ExpiresAt) {
			delete(c.sessions, id)
			n++
		}
	}
	return n
}

func (c *SessionCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.sessions)
}
