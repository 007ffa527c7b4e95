// Package catalog keeps the category filter options warm. Options change
// only when an admin edits them, so the gateway serves a cached copy and
// refreshes it on a schedule instead of hitting the backend per request.
package catalog

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sorplus/public-gateway/internal/models"
)

// Source provides the authoritative category list.
type Source interface {
	Categories(ctx context.Context) ([]models.Category, error)
}

// Store is what handlers read options from.
type Store interface {
	Options(ctx context.Context) []models.Category
	Refresh(ctx context.Context) error
}

// Cache is an in-memory Store refreshed from a Source. Concurrent refreshes
// are last-write-wins; readers never block on a refresh in flight.
type Cache struct {
	source Source

	mu        sync.RWMutex
	options   []models.Category
	loaded    bool
	refreshed time.Time
}

// Ensure Cache implements Store
var _ Store = (*Cache)(nil)

// NewCache creates an empty cache backed by source.
func NewCache(source Source) *Cache {
	return &Cache{source: source}
}

// Options returns the cached active categories. A cold cache tries one
// fill; if the backend is down the result is an empty list, never an error,
// so the filter UI degrades instead of failing.
func (c *Cache) Options(ctx context.Context) []models.Category {
	c.mu.RLock()
	loaded := c.loaded
	options := c.options
	c.mu.RUnlock()

	if loaded {
		return options
	}

	if err := c.Refresh(ctx); err != nil {
		logrus.Warnf("Category options unavailable: %v", err)
		return nil
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.options
}

// Refresh replaces the cached options with a fresh fetch, keeping only
// active categories.
func (c *Cache) Refresh(ctx context.Context) error {
	categories, err := c.source.Categories(ctx)
	if err != nil {
		return fmt.Errorf("failed to refresh categories: %w", err)
	}

	active := make([]models.Category, 0, len(categories))
	for _, cat := range categories {
		if cat.Active() {
			active = append(active, cat)
		}
	}

	c.mu.Lock()
	c.options = active
	c.loaded = true
	c.refreshed = time.Now()
	c.mu.Unlock()

	logrus.Debugf("Category cache refreshed with %d options", len(active))
	return nil
}

// RefreshedAt reports when the cache last filled successfully.
func (c *Cache) RefreshedAt() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.refreshed
}
