package connection

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tameorm/tame/dialect"
	"github.com/tameorm/tame/logger"
	"github.com/tameorm/tame/schema"
)

// DefaultAlias alias of the first database url registered
const DefaultAlias = "default"

// ErrUnknownConnection connection alias not initialised
var ErrUnknownConnection = errors.New("unknown connection")

// Opener opens a database handle, sql.Open by default
type Opener func(driverName, dataSourceName string) (*sql.DB, error)

// Conn an initialised connection pool
type Conn struct {
	Alias   string
	DSN     DSN
	DB      *sql.DB
	Dialect dialect.Dialector
}

// Registry maps database urls to connection aliases and holds their pools.
// An alias is assigned once per canonical url and never changes.
type Registry struct {
	Open   Opener
	Logger logger.Interface

	mu      sync.RWMutex
	aliases map[string]string
	configs map[string]DSN
	conns   map[string]*Conn
}

// NewRegistry returns an empty registry opening pools with sql.Open
func NewRegistry(log logger.Interface) *Registry {
	if log == nil {
		log = logger.Discard
	}
	return &Registry{
		Open:    sql.Open,
		Logger:  log,
		aliases: map[string]string{},
		configs: map[string]DSN{},
		conns:   map[string]*Conn{},
	}
}

// Register returns the alias of rawURL, registering it for app when unseen.
// The first url ever registered is aliased `default`, later urls take the
// name of the app introducing them.
func (r *Registry) Register(rawURL, app string) (string, error) {
	dsn, err := ParseURL(rawURL)
	if err != nil {
		return "", err
	}
	key := dsn.Canonical()

	r.mu.Lock()
	defer r.mu.Unlock()

	if alias, ok := r.aliases[key]; ok {
		return alias, nil
	}

	alias := app
	if len(r.aliases) == 0 {
		alias = DefaultAlias
	}
	if _, ok := r.configs[alias]; ok {
		return "", schema.ConfigErrorf("connection alias %q is already bound to another database url", alias)
	}

	r.aliases[key] = alias
	r.configs[alias] = *dsn
	return alias, nil
}

// Alias returns the alias registered for rawURL
func (r *Registry) Alias(rawURL string) (string, bool) {
	dsn, err := ParseURL(rawURL)
	if err != nil {
		return "", false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	alias, ok := r.aliases[dsn.Canonical()]
	return alias, ok
}

// Config returns the dsn registered under alias
func (r *Registry) Config(alias string) (DSN, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	dsn, ok := r.configs[alias]
	return dsn, ok
}

// Init opens the pools of configs concurrently, creating their databases first
// when createDB is set. Aliases with an open pool are kept.
func (r *Registry) Init(ctx context.Context, configs map[string]DSN, createDB bool) error {
	g, ctx := errgroup.WithContext(ctx)
	for alias, dsn := range configs {
		alias, dsn := alias, dsn
		if _, err := r.Get(alias); err == nil {
			continue
		}

		g.Go(func() error {
			conn, err := r.open(ctx, alias, dsn, createDB)
			if err != nil {
				return err
			}

			r.mu.Lock()
			r.conns[alias] = conn
			r.mu.Unlock()
			return nil
		})
	}
	return g.Wait()
}

func (r *Registry) open(ctx context.Context, alias string, dsn DSN, createDB bool) (*Conn, error) {
	d, err := dialect.Open(dsn.Dialect())
	if err != nil {
		return nil, err
	}

	if createDB {
		if err := r.createDatabase(ctx, d, dsn); err != nil {
			return nil, fmt.Errorf("failed to create database %q for connection %q: %w", dsn.DB, alias, err)
		}
	}

	db, err := r.Open(dsn.Driver(), dsn.String())
	if err != nil {
		return nil, fmt.Errorf("failed to open connection %q: %w", alias, err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect %q: %w", alias, err)
	}

	r.Logger.Info(ctx, "connection initialised", "alias", alias, "driver", dsn.Driver(), "database", dsn.DB)
	return &Conn{Alias: alias, DSN: dsn, DB: db, Dialect: d}, nil
}

func (r *Registry) createDatabase(ctx context.Context, d dialect.Dialector, dsn DSN) error {
	stmt := d.CreateDatabaseSQL(dsn.DB)
	if stmt == "" {
		return nil
	}

	server, err := r.Open(dsn.Driver(), dsn.Server().String())
	if err != nil {
		return err
	}
	defer server.Close()

	begin := time.Now()
	result, err := server.ExecContext(ctx, stmt)
	r.Logger.Trace(ctx, begin, func() (string, int64) {
		if result == nil {
			return stmt, -1
		}
		rows, _ := result.RowsAffected()
		return stmt, rows
	}, err)
	return err
}

// Get returns the pool of alias
func (r *Registry) Get(alias string) (*Conn, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if conn, ok := r.conns[alias]; ok {
		return conn, nil
	}
	return nil, fmt.Errorf("%w %q", ErrUnknownConnection, alias)
}

// All returns every open pool sorted by alias
func (r *Registry) All() []*Conn {
	r.mu.RLock()
	defer r.mu.RUnlock()

	conns := make([]*Conn, 0, len(r.conns))
	for _, conn := range r.conns {
		conns = append(conns, conn)
	}
	sort.Slice(conns, func(i, j int) bool { return conns[i].Alias < conns[j].Alias })
	return conns
}

// Close closes every pool, aliases stay registered
func (r *Registry) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var errs []error
	for alias, conn := range r.conns {
		if err := conn.DB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close connection %q: %w", alias, err))
		}
		delete(r.conns, alias)
	}
	return errors.Join(errs...)
}
