// Package siteconfig caches the site configuration blob for the lifetime of
// the process.
package siteconfig

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Fetcher reads the configuration blob from the store
type Fetcher interface {
	Get(ctx context.Context) (json.RawMessage, error)
}

// Loader fetches the configuration at most once and keeps it until Reset
type Loader struct {
	fetcher Fetcher
	group   singleflight.Group

	mu      sync.RWMutex
	config  json.RawMessage
	err     error
	loading bool
}

// NewLoader creates an empty Loader
func NewLoader(fetcher Fetcher) *Loader {
	return &Loader{fetcher: fetcher}
}

// Fetch loads the configuration unless it is already cached. Callers that
// arrive while a fetch is in flight share its result instead of starting
// another one. A failure is stored, logged and returned.
func (l *Loader) Fetch(ctx context.Context) error {
	if l.Loaded() {
		return nil
	}

	_, err, _ := l.group.Do("config", func() (any, error) {
		if l.Loaded() {
			return nil, nil
		}

		l.mu.Lock()
		l.loading = true
		l.mu.Unlock()

		config, err := l.fetcher.Get(ctx)

		l.mu.Lock()
		defer l.mu.Unlock()
		l.loading = false
		if err != nil {
			l.err = err
			log.Printf("❌ Error al cargar la configuración del sitio: %v", err)
			return nil, err
		}
		l.config = config
		l.err = nil
		return nil, nil
	})
	return err
}

// Config returns the cached blob and whether one is present
func (l *Loader) Config() (json.RawMessage, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.config, l.config != nil
}

// Loaded reports whether a configuration is cached
func (l *Loader) Loaded() bool {
	_, ok := l.Config()
	return ok
}

// Loading reports whether a fetch is in flight
func (l *Loader) Loading() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.loading
}

// Err returns the error of the last failed fetch, or nil
func (l *Loader) Err() error {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.err
}

// Reset drops the cached configuration so the next Fetch reloads it
func (l *Loader) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.config = nil
	l.err = nil
}
