package connection

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tameorm/tame/utils/tests"
)

type mocks struct {
	mu    sync.Mutex
	dbs   map[string]sqlmock.Sqlmock
	opens []string
}

// opener returns one sqlmock per data source name
func (m *mocks) opener(driverName, dataSourceName string) (*sql.DB, error) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.dbs[dataSourceName] = mock
	m.opens = append(m.opens, driverName+" "+dataSourceName)
	return db, nil
}

func newMockRegistry(t *testing.T) (*Registry, *mocks) {
	m := &mocks{dbs: map[string]sqlmock.Sqlmock{}}
	r := NewRegistry(nil)
	r.Open = m.opener
	return r, m
}

func TestRegisterAliases(t *testing.T) {
	r := NewRegistry(nil)

	alias, err := r.Register("postgres://localhost/blog", "blog")
	require.NoError(t, err)
	assert.Equal(t, DefaultAlias, alias)

	alias, err = r.Register("mysql://root@localhost/shop", "shop")
	require.NoError(t, err)
	assert.Equal(t, "shop", alias)

	// a url keeps its first alias, whatever app registers it again
	alias, err = r.Register("POSTGRES://LOCALHOST:5432/blog", "forum")
	require.NoError(t, err)
	assert.Equal(t, DefaultAlias, alias)

	alias, ok := r.Alias("mysql://root@localhost:3306/shop")
	assert.True(t, ok)
	assert.Equal(t, "shop", alias)

	dsn, ok := r.Config("shop")
	require.True(t, ok)
	assert.Equal(t, "mysql", dsn.Driver())

	_, err = r.Register("sqlite://shop.sqlite3", "shop")
	tests.AssertConfigurationError(t, err, `connection alias "shop" is already bound to another database url`)

	_, err = r.Register("ftp://host/file", "files")
	tests.AssertConfigurationError(t, err, "unsupported database url scheme")
}

func TestInit(t *testing.T) {
	r, m := newMockRegistry(t)
	ctx := context.Background()

	_, err := r.Register("postgres://localhost/blog", "blog")
	require.NoError(t, err)
	_, err = r.Register("sqlite://:memory:", "cache")
	require.NoError(t, err)

	blog, _ := r.Config(DefaultAlias)
	cache, _ := r.Config("cache")
	require.NoError(t, r.Init(ctx, map[string]DSN{DefaultAlias: blog, "cache": cache}, false))

	conn, err := r.Get(DefaultAlias)
	require.NoError(t, err)
	assert.Equal(t, "postgres", conn.Dialect.Name())
	conn, err = r.Get("cache")
	require.NoError(t, err)
	assert.Equal(t, "sqlite", conn.Dialect.Name())
	assert.ElementsMatch(t, []string{"pgx postgres://localhost:5432/blog", "sqlite :memory:"}, m.opens)

	// initialised aliases are not opened again
	require.NoError(t, r.Init(ctx, map[string]DSN{DefaultAlias: blog}, false))
	assert.Len(t, m.opens, 2)

	all := r.All()
	require.Len(t, all, 2)
	assert.Equal(t, "cache", all[0].Alias)
	assert.Equal(t, DefaultAlias, all[1].Alias)

	_, err = r.Get("shop")
	assert.True(t, errors.Is(err, ErrUnknownConnection))

	for _, mock := range m.dbs {
		mock.ExpectClose()
	}
	require.NoError(t, r.Close())
	assert.Empty(t, r.All())
	for _, mock := range m.dbs {
		assert.NoError(t, mock.ExpectationsWereMet())
	}
}

func TestInitCreateDatabase(t *testing.T) {
	r, m := newMockRegistry(t)
	opener := m.opener
	r.Open = func(driverName, dataSourceName string) (*sql.DB, error) {
		db, err := opener(driverName, dataSourceName)
		if dataSourceName == "postgres://localhost:5432/postgres" {
			m.dbs[dataSourceName].ExpectExec(`CREATE DATABASE "blog"`).WillReturnResult(sqlmock.NewResult(0, 1))
			m.dbs[dataSourceName].ExpectClose()
		}
		return db, err
	}

	_, err := r.Register("postgres://localhost/blog", "blog")
	require.NoError(t, err)
	dsn, _ := r.Config(DefaultAlias)
	require.NoError(t, r.Init(context.Background(), map[string]DSN{DefaultAlias: dsn}, true))

	assert.Equal(t, []string{"pgx postgres://localhost:5432/postgres", "pgx postgres://localhost:5432/blog"}, m.opens)
	assert.NoError(t, m.dbs["postgres://localhost:5432/postgres"].ExpectationsWereMet())
}

func TestInitOpenError(t *testing.T) {
	r := NewRegistry(nil)
	r.Open = func(string, string) (*sql.DB, error) {
		return nil, errors.New("driver missing")
	}

	_, err := r.Register("mysql://root@localhost/shop", "shop")
	require.NoError(t, err)
	dsn, _ := r.Config(DefaultAlias)

	err = r.Init(context.Background(), map[string]DSN{DefaultAlias: dsn}, false)
	assert.EqualError(t, err, `failed to open connection "default": driver missing`)
	_, err = r.Get(DefaultAlias)
	assert.Error(t, err)
}
