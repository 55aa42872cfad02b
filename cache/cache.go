// Package cache holds recently scraped leads in memory so repeated requests
// for the same domain within a session can skip the network entirely.
package cache

import (
	"sync"
	"time"

	"github.com/prospectkit/prospect/models"
)

// entry holds a cached lead with its creation timestamp.
type entry struct {
	lead      *models.Lead
	createdAt time.Time
}

// Cache is a simple in-memory lead cache keyed by normalized domain.
// It is safe for concurrent use.
type Cache struct {
	mu         sync.RWMutex
	store      map[string]*entry
	maxEntries int
}

// New creates a Cache with the given maximum number of entries.
// A background goroutine evicts entries older than 1 hour every 5 minutes.
func New(maxEntries int) *Cache {
	c := &Cache{
		store:      make(map[string]*entry),
		maxEntries: maxEntries,
	}
	go c.cleanupLoop()
	return c
}

// Get retrieves a cached lead if it exists and is younger than maxAgeMs.
// If maxAgeMs <= 0, no lookup is performed.
func (c *Cache) Get(domain string, maxAgeMs int) (*models.Lead, bool) {
	if maxAgeMs <= 0 {
		return nil, false
	}

	c.mu.RLock()
	e, ok := c.store[domain]
	c.mu.RUnlock()

	if !ok {
		return nil, false
	}
	if time.Since(e.createdAt) > time.Duration(maxAgeMs)*time.Millisecond {
		return nil, false
	}
	return e.lead, true
}

// Set stores a lead. At capacity, one arbitrary entry is evicted to make
// room (map iteration order is random in Go).
func (c *Cache) Set(domain string, lead *models.Lead) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.store) >= c.maxEntries {
		for k := range c.store {
			delete(c.store, k)
			break
		}
	}

	c.store[domain] = &entry{lead: lead, createdAt: time.Now()}
}

// cleanupLoop evicts entries older than 1 hour every 5 minutes.
func (c *Cache) cleanupLoop() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		cutoff := time.Now().Add(-1 * time.Hour)
		c.mu.Lock()
		for k, e := range c.store {
			if e.createdAt.Before(cutoff) {
				delete(c.store, k)
			}
		}
		c.mu.Unlock()
	}
}
