package cache

import (
	"fmt"
	"sort"
	"sync"

	"github.com/pfrederiksen/nps-sites/internal/logger"
)

// Fetcher performs a live request for url and returns the response body.
type Fetcher interface {
	Fetch(url string) (string, error)
}

// Store persists the whole URL to body mapping.
type Store interface {
	Load() (map[string]string, error)
	Save(entries map[string]string) error
}

// Cache is a write-through, never-expiring response cache.
type Cache struct {
	mu      sync.Mutex
	entries map[string]string
	store   Store
	fetcher Fetcher
}

// New loads the stored mapping and returns a Cache backed by fetcher.
// A missing or unreadable store yields an empty cache.
func New(store Store, fetcher Fetcher) *Cache {
	entries, err := store.Load()
	if err != nil {
		logger.Debug("starting with empty cache", logger.Fields{"reason": err.Error()})
		entries = nil
	}
	if entries == nil {
		entries = make(map[string]string)
	}

	return &Cache{
		entries: entries,
		store:   store,
		fetcher: fetcher,
	}
}

// Get returns the body for url, fetching and persisting it on a miss.
// A failed fetch leaves the cache untouched.
func (c *Cache) Get(url string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if body, ok := c.entries[url]; ok {
		logger.Debug("using cache", logger.Fields{"url": url})
		logger.IncrCounter("cache.hit")
		return body, nil
	}

	logger.Debug("fetching", logger.Fields{"url": url})
	logger.IncrCounter("cache.miss")

	body, err := c.fetcher.Fetch(url)
	if err != nil {
		return "", fmt.Errorf("fetching %s: %w", url, err)
	}

	c.entries[url] = body
	if err := c.store.Save(c.entries); err != nil {
		logger.IncrCounter("cache.persist_error")
		logger.Error("cache entry kept in memory only", logger.Fields{"url": url}, err)
	}

	return body, nil
}

// Lookup returns a stored body without touching the network.
func (c *Cache) Lookup(url string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	body, ok := c.entries[url]
	return body, ok
}

// Len returns the number of cached URLs.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// URLs returns the cached URLs in sorted order.
func (c *Cache) URLs() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	urls := make([]string, 0, len(c.entries))
	for u := range c.entries {
		urls = append(urls, u)
	}
	sort.Strings(urls)
	return urls
}

// Clear drops every entry and persists the empty mapping.
func (c *Cache) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	empty := make(map[string]string)
	if err := c.store.Save(empty); err != nil {
		return fmt.Errorf("persisting empty cache: %w", err)
	}
	c.entries = empty
	return nil
}
