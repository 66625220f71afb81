package tame_test

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tameorm/tame"
	"github.com/tameorm/tame/contrib/validation"
	"github.com/tameorm/tame/logger"
	"github.com/tameorm/tame/schema"
	"github.com/tameorm/tame/utils/tests"
)

type Author struct {
	ID   int
	Name string `tame:"type:text"`
}

type Post struct {
	ID     int
	Title  string  `tame:"type:text"`
	Author *Author `tame:"fk:blog.Author"`
}

type Order struct {
	ID     int
	Author *Author `tame:"fk:blog.Author;related_name:orders"`
}

type mockOpener struct {
	mu    sync.Mutex
	mocks []sqlmock.Sqlmock
	dsns  []string
}

func (m *mockOpener) open(driverName, dataSourceName string) (*sql.DB, error) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.mocks = append(m.mocks, mock)
	m.dsns = append(m.dsns, driverName+" "+dataSourceName)
	return db, nil
}

func newTame(t *testing.T) (*tame.Tame, *mockOpener) {
	m := &mockOpener{}
	tm := tame.New(tame.WithOpener(m.open), tame.WithLogger(logger.Discard))
	tm.RegisterModels("blog.models", &Author{}, &Post{})
	tm.RegisterModels("shop.models", &Order{})
	t.Cleanup(func() { tm.Close() })
	return tm, m
}

func loadBlog(t *testing.T, tm *tame.Tame) {
	err := tm.LoadApp(context.Background(), tame.LoadOptions{
		App:    "blog",
		Models: []string{"blog.models"},
		DBURL:  "postgres://localhost/blog",
	})
	require.NoError(t, err)
}

func TestLoadApp(t *testing.T) {
	tm, m := newTame(t)
	loadBlog(t, tm)

	assert.True(t, tm.Inited())
	assert.Equal(t, []string{"blog"}, tm.Apps())
	assert.Equal(t, []string{"pgx postgres://localhost:5432/blog"}, m.dsns)

	post, err := tm.GetModel("blog", "Post")
	require.NoError(t, err)
	tests.AssertFieldNames(t, post, "id", "title", "author", "author_id")
	assert.Equal(t, "default", post.DefaultConnection)
	assert.True(t, post.Inited())
	assert.True(t, post.Finalised())

	author, err := tm.GetModel("blog", "Author")
	require.NoError(t, err)
	assert.Equal(t, author.PK().DataType, post.FieldsMap["author_id"].DataType)
	tests.AssertFieldNames(t, author, "id", "name", "posts")
	assert.Equal(t, schema.BackwardFKField, author.FieldsMap["posts"].Kind)

	sql, _ := post.SelectAll()
	assert.Equal(t, `SELECT "post"."id","post"."title","post"."author_id" FROM "post"`, sql)

	vm, err := validation.Build(author, validation.Options{})
	require.NoError(t, err)
	assert.Equal(t, "AuthorSchema", vm.Name)
	assert.Equal(t, []string{"id", "name", "posts"}, vm.FieldNames())
	assert.Equal(t, "string", vm.Field("name").Type.String())
	assert.Equal(t, "[]map[string]interface {}", vm.Field("posts").Type.String())

	_, err = tm.GetModel("blog", "Comment")
	assert.True(t, errors.Is(err, tame.ErrUnknownModel))
}

func TestLoadAppTimezone(t *testing.T) {
	tm, _ := newTame(t)
	loadBlog(t, tm)

	assert.Equal(t, tame.DefaultTimezone, tm.Location().String())
	assert.False(t, tm.UseTZ())

	shanghai, _ := time.LoadLocation(tame.DefaultTimezone)
	assert.Equal(t, shanghai.String(), tm.Now().Location().String())
	assert.Equal(t, 0, tm.BeginningOfDay().Hour())

	err := tm.LoadApp(context.Background(), tame.LoadOptions{
		App:    "shop",
		Models: []string{"shop.models"},
		DBURL:  "postgres://localhost/shop",
		UseTZ:  true,
	})
	require.NoError(t, err)
	assert.True(t, tm.UseTZ())
	assert.Equal(t, time.UTC, tm.Now().Location())
}

func TestLoadAppTwice(t *testing.T) {
	tm, _ := newTame(t)
	loadBlog(t, tm)

	err := tm.LoadApp(context.Background(), tame.LoadOptions{App: "blog", DBURL: "postgres://localhost/blog"})
	assert.True(t, errors.Is(err, tame.ErrAppLoaded))
	assert.True(t, errors.Is(err, schema.ErrConfiguration))
	assert.EqualError(t, err, "configuration error: blog has already been initialized")
}

func TestLoadAppUnknownLocation(t *testing.T) {
	tm, _ := newTame(t)

	err := tm.LoadApp(context.Background(), tame.LoadOptions{
		App:    "blog",
		Models: []string{"blog.missing"},
		DBURL:  "postgres://localhost/blog",
	})
	assert.True(t, errors.Is(err, tame.ErrUnknownLocation))
	assert.True(t, errors.Is(err, schema.ErrConfiguration))
}

func TestLoadAppBadURL(t *testing.T) {
	tm, _ := newTame(t)

	err := tm.LoadApp(context.Background(), tame.LoadOptions{App: "blog", DBURL: "ftp://localhost/blog"})
	assert.True(t, errors.Is(err, schema.ErrConfiguration))
	assert.False(t, tm.Inited())
}

func TestLoadAppsAcrossConnections(t *testing.T) {
	tm, m := newTame(t)
	loadBlog(t, tm)

	err := tm.LoadApp(context.Background(), tame.LoadOptions{
		App:    "shop",
		Models: []string{"shop.models"},
		DBURL:  "mysql://root@localhost/shop",
	})
	require.NoError(t, err)
	assert.Len(t, m.mocks, 2)

	order, err := tm.GetModel("shop", "Order")
	require.NoError(t, err)
	assert.Equal(t, "shop", order.DefaultConnection)
	assert.Equal(t, "shop.Order", order.Qualified())

	author, err := tm.GetModel("blog", "Author")
	require.NoError(t, err)
	tests.AssertFieldNames(t, author, "id", "name", "posts", "orders")

	// the blog models are not resolved again
	post, _ := tm.GetModel("blog", "Post")
	tests.AssertFieldNames(t, post, "id", "title", "author", "author_id")

	sql, _ := order.SelectAll()
	assert.Equal(t, "SELECT `order`.`id`,`order`.`author_id` FROM `order`", sql)
}

func TestLoadAppSharedURL(t *testing.T) {
	tm, m := newTame(t)
	loadBlog(t, tm)

	err := tm.LoadApp(context.Background(), tame.LoadOptions{
		App:    "shop",
		Models: []string{"shop.models"},
		DBURL:  "postgres://localhost:5432/blog",
	})
	require.NoError(t, err)

	// same database, the pool of the blog app is reused
	assert.Len(t, m.mocks, 1)
	order, _ := tm.GetModel("shop", "Order")
	assert.Equal(t, "default", order.DefaultConnection)
}

func TestGenerateAppSchemas(t *testing.T) {
	tm, m := newTame(t)
	ctx := context.Background()

	err := tm.GenerateAppSchemas(ctx, "blog", true)
	tests.AssertConfigurationError(t, err, "You have to call LoadApp(blog, ...) first before generating schemas")

	loadBlog(t, tm)
	require.Len(t, m.mocks, 1)

	mock := m.mocks[0]
	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS "author" ("id" serial NOT NULL PRIMARY KEY, "name" text NOT NULL)`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS "post" ("id" serial NOT NULL PRIMARY KEY, "title" text NOT NULL, "author_id" integer NOT NULL, CONSTRAINT "fk_post_author_id" FOREIGN KEY ("author_id") REFERENCES "author"("id") ON DELETE CASCADE)`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, tm.GenerateAppSchemas(ctx, "blog", true))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoadAppGenerateSchemas(t *testing.T) {
	tm, m := newTame(t)

	// no statement is expected by the mock, the first one fails
	err := tm.LoadApp(context.Background(), tame.LoadOptions{
		App:             "blog",
		Models:          []string{"blog.models"},
		DBURL:           "sqlite://blog.sqlite3",
		GenerateSchemas: true,
		Safe:            true,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `failed to generate schema on connection "default"`)
	assert.Equal(t, []string{"sqlite blog.sqlite3"}, m.dsns)
	assert.True(t, tm.Inited())
}
