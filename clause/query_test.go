package clause_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tameorm/tame/clause"
	"github.com/tameorm/tame/utils/tests"
)

func TestQuery(t *testing.T) {
	base := clause.NewQuery(clause.Table{Name: "post"})

	sql, vars := base.ToSQL(tests.DummyDialector{})
	assert.Equal(t, "SELECT * FROM `post`", sql)
	assert.Empty(t, vars)

	all := base.Columns("id", "title", "author_id")
	sql, _ = all.ToSQL(tests.DummyDialector{})
	assert.Equal(t, "SELECT `post`.`id`,`post`.`title`,`post`.`author_id` FROM `post`", sql)

	filtered := all.Filter(clause.Eq{Column: clause.Column{Table: "post", Name: "author_id"}, Value: 1})
	sql, vars = filtered.ToSQL(tests.DummyDialector{})
	assert.Equal(t, "SELECT `post`.`id`,`post`.`title`,`post`.`author_id` FROM `post` WHERE `post`.`author_id` = ?", sql)
	assert.Equal(t, []interface{}{1}, vars)

	// queries are values, the base query is untouched
	sql, _ = base.ToSQL(tests.DummyDialector{})
	assert.Equal(t, "SELECT * FROM `post`", sql)
}

func TestQueryWithSchema(t *testing.T) {
	query := clause.NewQuery(clause.Table{Name: "author", Schema: "blog"})
	sql, _ := query.ToSQL(tests.DummyDialector{})
	assert.Equal(t, "SELECT * FROM `blog`.`author`", sql)
}
