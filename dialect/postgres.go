package dialect

import (
	"strconv"

	"github.com/tameorm/tame/clause"
	"github.com/tameorm/tame/schema"
)

type Postgres struct{}

func (Postgres) Name() string {
	return "postgres"
}

func (Postgres) QuoteTo(writer clause.Writer, str string) {
	quoteTo(writer, str, '"') // "name"
}

func (Postgres) BindVar(idx int) string {
	return "$" + strconv.Itoa(idx)
}

func (Postgres) DataTypeOf(field *schema.Field) string {
	switch field.DataType {
	case schema.Int:
		if field.Generated {
			return "serial"
		}
		return "integer"
	case schema.BigInt:
		if field.Generated {
			return "bigserial"
		}
		return "bigint"
	case schema.SmallInt:
		if field.Generated {
			return "smallserial"
		}
		return "smallint"
	case schema.Float:
		return "double precision"
	case schema.Decimal:
		return "numeric"
	case schema.Bool:
		return "boolean"
	case schema.Char:
		return varchar(field, "text")
	case schema.Text:
		return "text"
	case schema.Datetime:
		return "timestamptz"
	case schema.Date:
		return "date"
	case schema.JSON:
		return "jsonb"
	case schema.UUID:
		return "uuid"
	case schema.Binary:
		return "bytea"
	}
	return string(field.DataType)
}

func (d Postgres) CreateDatabaseSQL(name string) string {
	stmt := clause.NewStatement(d)
	stmt.Write("CREATE DATABASE ")
	stmt.WriteQuoted(name)
	return stmt.SQL.String()
}
