// internal/domain/catalog/cache.go
package catalog

import (
	"context"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

// UnavailableMessage is shown in place of the product grid after a failed load
const UnavailableMessage = "Unable to load products. Please try again later."

// Cache holds the catalog in memory. It is loaded once and read-only afterwards.
type Cache struct {
	mu       sync.RWMutex
	source   *Source
	location string
	deriver  *Deriver
	logger   logrus.FieldLogger

	products []Product
	loadErr  error
}

// NewCache creates an empty catalog cache
func NewCache(source *Source, location string, deriver *Deriver, logger logrus.FieldLogger) *Cache {
	return &Cache{
		source:   source,
		location: location,
		deriver:  deriver,
		logger:   logger,
	}
}

// Load fetches the catalog and derives display fields. On failure the cache
// stays empty and the error is kept for LoadError.
func (c *Cache) Load(ctx context.Context) error {
	var src []sourceProduct
	err := c.source.FetchJSON(ctx, c.location, &src)

	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		c.products = nil
		c.loadErr = err
		c.logger.WithError(err).WithField("source", c.location).Error("Failed to load catalog")
		return err
	}

	c.products = c.deriver.Apply(src)
	c.loadErr = nil
	c.logger.WithFields(logrus.Fields{
		"source":   c.location,
		"products": len(c.products),
	}).Info("Catalog loaded")
	return nil
}

// LoadError returns the error of the last load, if any
func (c *Cache) LoadError() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loadErr
}

// Ready reports whether a load has succeeded
func (c *Cache) Ready() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loadErr == nil && c.products != nil
}

// Products returns a copy of every product in load order
func (c *Cache) Products() []Product {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]Product, len(c.products))
	for i, p := range c.products {
		out[i] = p.clone()
	}
	return out
}

// Find returns the product with id
func (c *Cache) Find(id int) (Product, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, p := range c.products {
		if p.ID == id {
			return p.clone(), true
		}
	}
	return Product{}, false
}

// FindByName returns the first product whose name matches, ignoring case
func (c *Cache) FindByName(name string) (Product, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, p := range c.products {
		if strings.EqualFold(p.Name, name) {
			return p.clone(), true
		}
	}
	return Product{}, false
}

// Categories returns the distinct categories in first-seen order
func (c *Cache) Categories() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	seen := make(map[string]bool)
	out := make([]string, 0)
	for _, p := range c.products {
		if p.Category == "" || seen[p.Category] {
			continue
		}
		seen[p.Category] = true
		out = append(out, p.Category)
	}
	return out
}
