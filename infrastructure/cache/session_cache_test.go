package cache

import (
	"sync"
	"testing"
	"time"

	"portfolio/models"
)

func TestSessionCacheAddFindDelete(t *testing.T) {
	c := NewSessionCache()
	c.Add(models.Session{ID: "a", Username: "admin", Token: "tok"})

	got, ok := c.Find("a")
	if !ok || got.Token != "tok" {
		t.Fatalf("expected cached session, got %+v ok=%v", got, ok)
	}
	c.Delete("a")
	if _, ok := c.Find("a"); ok {
		t.Fatalf("expected session to be evicted")
	}
}

func TestSessionCachePurgeExpired(t *testing.T) {
	now := time.Now()
	c := NewSessionCache()
	c.Add(models.Session{ID: "old", ExpiresAt: now.Add(-time.Minute)})
	c.Add(models.Session{ID: "live", ExpiresAt: now.Add(time.Hour)})

	if n := c.PurgeExpired(now); n != 1 {
		t.Fatalf("expected 1 purged, got %d", n)
	}
	if c.Len() != 1 {
		t.Fatalf("expected 1 remaining, got %d", c.Len())
	}
	if _, ok := c.Find("live"); !ok {
		t.Fatalf("live session must survive purge")
	}
}

func TestSessionCacheConcurrentAccess(t *testing.T) {
	c := NewSessionCache()
	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := string(rune('a' + i))
			c.Add(models.Session{ID: id})
			c.Find(id)
		}(i)
	}
	wg.Wait()
	if c.Len() != 20 {
		t.Fatalf("expected 20 sessions, got %d", c.Len())
	}
}
