package tame

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/tameorm/tame/connection"
	"github.com/tameorm/tame/logger"
	"github.com/tameorm/tame/schema"
)

// Config tame config
type Config struct {
	// NamingStrategy tables, columns and backward relations naming strategy
	NamingStrategy schema.Namer
	// Logger
	Logger logger.Interface
	// NowFunc the function to be used when creating a new timestamp, follows the loaded timezone when nil
	NowFunc func() time.Time
	// Opener opens connection pools, sql.Open by default
	Opener connection.Opener
}

// Tame holds loaded apps, their models and the connections they use
type Tame struct {
	*Config

	Connections *connection.Registry

	mu       sync.RWMutex
	apps     schema.Apps
	loaded   map[string][]string
	catalog  map[string][]interface{}
	location *time.Location
	useTZ    bool
	inited   bool
}

// New initialize an instance without any loaded app
func New(opts ...ConfigOption) *Tame {
	config := &Config{}
	for _, opt := range opts {
		opt(config)
	}

	if config.NamingStrategy == nil {
		config.NamingStrategy = schema.NamingStrategy{}
	}

	if config.Logger == nil {
		config.Logger = logger.Default
	}

	registry := connection.NewRegistry(config.Logger)
	if config.Opener != nil {
		registry.Open = config.Opener
	}

	return &Tame{
		Config:      config,
		Connections: registry,
		apps:        schema.Apps{},
		loaded:      map[string][]string{},
		catalog:     map[string][]interface{}{},
		location:    time.UTC,
	}
}

// Inited reports whether at least one app has been loaded
func (t *Tame) Inited() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.inited
}

// Apps returns the names of loaded apps
func (t *Tame) Apps() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	names := make([]string, 0, len(t.loaded))
	for name := range t.loaded {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Models returns the models of a loaded app in registration order
func (t *Tame) Models(app string) []*schema.Model {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if a, ok := t.apps[app]; ok {
		return append([]*schema.Model(nil), a.Models...)
	}
	return nil
}

// GetModel returns the model `<app>.<model>` of a loaded app
func (t *Tame) GetModel(app, model string) (*schema.Model, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if a, ok := t.apps[app]; ok {
		if m, ok := a.Model(model); ok {
			return m, nil
		}
	}
	return nil, fmt.Errorf("%w %s.%s", ErrUnknownModel, app, model)
}

// Close closes every connection pool
func (t *Tame) Close() error {
	return t.Connections.Close()
}
