package migrator

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/tameorm/tame/clause"
	"github.com/tameorm/tame/connection"
	"github.com/tameorm/tame/logger"
	"github.com/tameorm/tame/schema"
)

// Migrator generates the schema of models on one connection
type Migrator struct {
	Conn   *connection.Conn
	Namer  schema.Namer
	Logger logger.Interface
}

// New returns a migrator for conn
func New(conn *connection.Conn) *Migrator {
	return &Migrator{Conn: conn, Namer: schema.NamingStrategy{}, Logger: logger.Discard}
}

// CreateTables creates the tables of models bound to the connection, their indexes
// and the through tables of their many to many relations. With safe set, existing
// tables are left untouched.
func (m *Migrator) CreateTables(ctx context.Context, models []*schema.Model, safe bool) error {
	stmts, err := m.Statements(models, safe)
	if err != nil {
		return err
	}

	for _, stmt := range stmts {
		begin := time.Now()
		result, err := m.Conn.DB.ExecContext(ctx, stmt)
		m.Logger.Trace(ctx, begin, func() (string, int64) {
			if result == nil {
				return stmt, -1
			}
			rows, _ := result.RowsAffected()
			return stmt, rows
		}, err)
		if err != nil {
			return fmt.Errorf("failed to generate schema on connection %q: %w", m.Conn.Alias, err)
		}
	}
	return nil
}

// Statements returns the DDL creating models, a referenced table is created before the tables referencing it
func (m *Migrator) Statements(models []*schema.Model, safe bool) ([]string, error) {
	var (
		stmts    []string
		throughs = map[string]bool{}
		joins    []*schema.Model
	)

	for _, model := range sortByDependency(models) {
		stmts = append(stmts, m.createTableSQL(model, safe))
		stmts = append(stmts, m.createIndexesSQL(model, safe)...)

		for _, field := range model.Fields {
			if field.Kind != schema.ManyToManyField || field.Implicit || throughs[field.Through] {
				continue
			}
			join, err := schema.JoinModel(field)
			if err != nil {
				return nil, err
			}
			throughs[field.Through] = true
			joins = append(joins, join)
		}
	}

	for _, join := range joins {
		stmts = append(stmts, m.createTableSQL(join, safe))
	}
	return stmts, nil
}

func (m *Migrator) createTableSQL(model *schema.Model, safe bool) string {
	stmt := clause.NewStatement(m.Conn.Dialect)
	stmt.Write("CREATE TABLE ")
	if safe {
		stmt.Write("IF NOT EXISTS ")
	}
	stmt.WriteQuoted(clause.Table{Name: model.Table, Schema: model.Schema})
	stmt.Write(" (")

	var defs []string
	for _, field := range model.Fields {
		if field.Persisted() {
			defs = append(defs, m.columnSQL(stmt, field))
		}
	}

	if m.Conn.Dialect.Name() == "mysql" {
		for _, idx := range model.ParseIndexes(m.Namer) {
			defs = append(defs, "INDEX "+stmt.Quote(idx.Name)+" ("+stmt.Quote(idx.Field.SourceField)+")")
		}
	}

	for _, constraint := range model.ParseForeignKeyConstraints(m.Namer) {
		if !sameConnection(model, constraint.References) {
			continue
		}
		sql, vars := constraint.Build()
		constraintStmt := clause.NewStatement(m.Conn.Dialect)
		clause.Expr{SQL: sql, Vars: vars}.Build(constraintStmt)
		defs = append(defs, constraintStmt.SQL.String())
	}

	stmt.Write(strings.Join(defs, ", "), ")")
	return stmt.SQL.String()
}

func (m *Migrator) columnSQL(stmt *clause.Statement, field *schema.Field) string {
	sqlType := m.Conn.Dialect.DataTypeOf(field)
	def := stmt.Quote(field.SourceField) + " " + sqlType

	if !field.Null {
		def += " NOT NULL"
	}

	switch {
	case field.PrimaryKey && !strings.Contains(strings.ToUpper(sqlType), "PRIMARY KEY"):
		def += " PRIMARY KEY"
	case field.Unique && !field.PrimaryKey:
		def += " UNIQUE"
	}

	if field.HasDefault && field.Default != nil {
		def += " DEFAULT " + defaultSQL(field.Default)
	}
	return def
}

func (m *Migrator) createIndexesSQL(model *schema.Model, safe bool) []string {
	if m.Conn.Dialect.Name() == "mysql" {
		return nil
	}

	var stmts []string
	for _, idx := range model.ParseIndexes(m.Namer) {
		stmt := clause.NewStatement(m.Conn.Dialect)
		stmt.Write("CREATE INDEX ")
		if safe {
			stmt.Write("IF NOT EXISTS ")
		}
		stmt.WriteQuoted(idx.Name)
		stmt.Write(" ON ")
		stmt.WriteQuoted(clause.Table{Name: model.Table, Schema: model.Schema})
		stmt.Write(" (")
		stmt.WriteQuoted(idx.Field.SourceField)
		stmt.Write(")")
		stmts = append(stmts, stmt.SQL.String())
	}
	return stmts
}

func defaultSQL(value interface{}) string {
	switch v := value.(type) {
	case string:
		if strings.EqualFold(v, "now") || strings.EqualFold(v, "current_timestamp") {
			return "CURRENT_TIMESTAMP"
		}
		if strings.Contains(v, "(") && strings.Contains(v, ")") {
			return v
		}
		return "'" + strings.ReplaceAll(v, "'", "''") + "'"
	case bool:
		if v {
			return "TRUE"
		}
		return "FALSE"
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case time.Time:
		return "'" + v.Format("2006-01-02 15:04:05") + "'"
	}
	return "'" + strings.ReplaceAll(fmt.Sprint(value), "'", "''") + "'"
}

func sameConnection(model, other *schema.Model) bool {
	return model.DefaultConnection == other.DefaultConnection
}

// sortByDependency orders models so referenced models come first, keeping the
// given order otherwise. Models on a cycle keep their given order.
func sortByDependency(models []*schema.Model) []*schema.Model {
	index := make(map[*schema.Model]int, len(models))
	for i, model := range models {
		index[model] = i
	}

	var (
		sorted  = make([]*schema.Model, 0, len(models))
		visited = make(map[*schema.Model]int, len(models)) // 1 visiting, 2 done
		visit   func(model *schema.Model)
	)

	visit = func(model *schema.Model) {
		if visited[model] != 0 {
			return
		}
		visited[model] = 1
		for _, field := range model.Fields {
			if !field.IsKeyField() {
				continue
			}
			if target := field.Reference.RelatedModel; target != nil && target != model {
				if _, ok := index[target]; ok {
					visit(target)
				}
			}
		}
		visited[model] = 2
		sorted = append(sorted, model)
	}

	for _, model := range models {
		visit(model)
	}
	return sorted
}
