// Package catalog loads the landing page's product catalog from a
// products.json file and builds per-product launch URLs for the host the
// page is served from.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/jleboube/AI-Toolkit/internal/model"
)

type SiteConfig struct {
	Title   string `json:"title"`
	Tagline string `json:"tagline"`
}

type productFile struct {
	Config   SiteConfig        `json:"config"`
	Products []productInternal `json:"products"`
}

type productInternal struct {
	Name           string `json:"name"`
	Description    string `json:"description"`
	Icon           string `json:"icon"`
	Subdomain      string `json:"subdomain"`
	Port           int    `json:"port"`
	Enabled        bool   `json:"enabled"`
	AnimationDelay int    `json:"animationDelay"`
}

type Catalog struct {
	mu       sync.RWMutex
	path     string
	config   SiteConfig
	products []model.Product
}

// Load reads the catalog file and returns a catalog over it.
func Load(path string) (*Catalog, error) {
	c := &Catalog{path: path}
	if err := c.Reload(); err != nil {
		return nil, err
	}
	return c, nil
}

// Reload re-reads the catalog file and swaps the product list atomically.
func (c *Catalog) Reload() error {
	data, err := os.ReadFile(c.path)
	if err != nil {
		return fmt.Errorf("failed to read catalog file: %w", err)
	}
	var file productFile
	if err = json.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to parse catalog file: %w", err)
	}

	products := make([]model.Product, 0, len(file.Products))
	for _, p := range file.Products {
		products = append(
			products, model.Product{
				Name:           p.Name,
				Description:    p.Description,
				Icon:           p.Icon,
				Subdomain:      p.Subdomain,
				Port:           p.Port,
				Enabled:        p.Enabled,
				AnimationDelay: p.AnimationDelay,
			},
		)
	}

	c.mu.Lock()
	c.config = file.Config
	c.products = products
	c.mu.Unlock()
	return nil
}

// Config returns the site-wide catalog settings.
func (c *Catalog) Config() SiteConfig {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.config
}

// Products returns the enabled products in file order.
func (c *Catalog) Products() []model.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()
	products := make([]model.Product, 0, len(c.products))
	for _, p := range c.products {
		if p.Enabled {
			products = append(products, p)
		}
	}
	return products
}

// ProductURL builds the launch URL for a product: port-based on localhost,
// subdomain-based everywhere else.
func ProductURL(p model.Product, scheme, host string) string {
	if host == "localhost" || host == "127.0.0.1" {
		return fmt.Sprintf("%s//%s:%d", scheme, host, p.Port)
	}
	return fmt.Sprintf("%s//%s.%s", scheme, p.Subdomain, host)
}

// Watch reloads the catalog whenever its file changes, until ctx is done.
func (c *Catalog) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory: editors often replace the file instead of
	// writing it in place.
	if err = watcher.Add(filepath.Dir(c.path)); err != nil {
		return fmt.Errorf("failed to watch catalog dir: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != filepath.Clean(c.path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if err := c.Reload(); err != nil {
				log.Printf("failed to reload catalog: %v\n", err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("catalog watch error: %v\n", err)
		}
	}
}
