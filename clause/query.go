package clause

// Query a select statement bound to a single table. Queries are values,
// every method returns a modified copy.
type Query struct {
	From   Table
	Select Select
	Where  Where
}

// NewQuery returns a query selecting every column of table
func NewQuery(table Table) Query {
	return Query{From: table}
}

// Columns returns a copy of the query selecting only the given columns
func (q Query) Columns(names ...string) Query {
	columns := make([]Column, 0, len(names))
	for _, name := range names {
		columns = append(columns, Column{Table: q.From.Name, Name: name})
	}
	q.Select = Select{Distinct: q.Select.Distinct, Columns: columns}
	return q
}

// Filter returns a copy of the query with the expressions appended to its where clause
func (q Query) Filter(exprs ...Expression) Query {
	where := make([]Expression, 0, len(q.Where.Exprs)+len(exprs))
	where = append(where, q.Where.Exprs...)
	q.Where = Where{Exprs: append(where, exprs...)}
	return q
}

// Build build select statement
func (q Query) Build(builder Builder) {
	builder.Write("SELECT ")
	q.Select.Build(builder)
	builder.Write(" FROM ")
	From{Tables: []Table{q.From}}.Build(builder)

	if len(q.Where.Exprs) > 0 {
		builder.Write(" WHERE ")
		q.Where.Build(builder)
	}
}

// ToSQL renders the query with dialect
func (q Query) ToSQL(dialect Dialect) (string, []interface{}) {
	stmt := NewStatement(dialect)
	q.Build(stmt)
	return stmt.SQL.String(), stmt.Vars
}
