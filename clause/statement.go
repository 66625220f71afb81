package clause

import (
	"fmt"
	"strings"
)

// Statement collects SQL text and bind variables while clauses are built
type Statement struct {
	Dialect Dialect
	Table   string
	SQL     strings.Builder
	Vars    []interface{}
}

// NewStatement returns a statement writing for dialect
func NewStatement(dialect Dialect) *Statement {
	return &Statement{Dialect: dialect}
}

// Write write string
func (stmt *Statement) Write(sql ...string) {
	for _, s := range sql {
		stmt.SQL.WriteString(s)
	}
}

// WriteByte write byte
func (stmt *Statement) WriteByte(c byte) error {
	return stmt.SQL.WriteByte(c)
}

// WriteQuoted write quoted field
func (stmt *Statement) WriteQuoted(field interface{}) {
	stmt.QuoteTo(&stmt.SQL, field)
}

// Quote returns quoted value
func (stmt *Statement) Quote(field interface{}) string {
	var builder strings.Builder
	stmt.QuoteTo(&builder, field)
	return builder.String()
}

// QuoteTo write quoted value to writer
func (stmt *Statement) QuoteTo(writer Writer, field interface{}) {
	switch v := field.(type) {
	case Table:
		name := v.Name
		if name == CurrentTable {
			name = stmt.Table
		}

		if v.Raw {
			writer.WriteString(name)
		} else {
			if v.Schema != "" {
				stmt.Dialect.QuoteTo(writer, v.Schema)
				writer.WriteByte('.')
			}
			stmt.Dialect.QuoteTo(writer, name)
		}

		if v.Alias != "" {
			writer.WriteString(" AS ")
			stmt.Dialect.QuoteTo(writer, v.Alias)
		}
	case Column:
		if v.Table != "" {
			if v.Table == CurrentTable {
				stmt.Dialect.QuoteTo(writer, stmt.Table)
			} else {
				stmt.Dialect.QuoteTo(writer, v.Table)
			}
			writer.WriteByte('.')
		}

		if v.Raw {
			writer.WriteString(v.Name)
		} else {
			stmt.Dialect.QuoteTo(writer, v.Name)
		}

		if v.Alias != "" {
			writer.WriteString(" AS ")
			stmt.Dialect.QuoteTo(writer, v.Alias)
		}
	case string:
		stmt.Dialect.QuoteTo(writer, v)
	default:
		stmt.Dialect.QuoteTo(writer, fmt.Sprint(field))
	}
}

// AddVar add bind variables, returns their placeholders
func (stmt *Statement) AddVar(vars ...interface{}) string {
	var placeholders strings.Builder
	for idx, v := range vars {
		if idx > 0 {
			placeholders.WriteByte(',')
		}

		switch v := v.(type) {
		case Column, Table:
			stmt.QuoteTo(&placeholders, v)
		case []interface{}:
			if len(v) > 0 {
				placeholders.WriteByte('(')
				placeholders.WriteString(stmt.AddVar(v...))
				placeholders.WriteByte(')')
			} else {
				placeholders.WriteString("(NULL)")
			}
		default:
			stmt.Vars = append(stmt.Vars, v)
			placeholders.WriteString(stmt.Dialect.BindVar(len(stmt.Vars)))
		}
	}
	return placeholders.String()
}
