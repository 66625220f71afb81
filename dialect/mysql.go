package dialect

import (
	"github.com/tameorm/tame/clause"
	"github.com/tameorm/tame/schema"
)

type MySQL struct{}

func (MySQL) Name() string {
	return "mysql"
}

func (MySQL) QuoteTo(writer clause.Writer, str string) {
	quoteTo(writer, str, '`') // `name`
}

func (MySQL) BindVar(int) string {
	return "?"
}

func (MySQL) DataTypeOf(field *schema.Field) string {
	var sqlType string
	switch field.DataType {
	case schema.Int:
		sqlType = "int"
	case schema.BigInt:
		sqlType = "bigint"
	case schema.SmallInt:
		sqlType = "smallint"
	case schema.Float:
		return "double"
	case schema.Decimal:
		return "decimal(38,10)"
	case schema.Bool:
		return "boolean"
	case schema.Char:
		return varchar(field, "longtext")
	case schema.Text:
		return "longtext"
	case schema.Datetime:
		return "datetime(6)"
	case schema.Date:
		return "date"
	case schema.JSON:
		return "json"
	case schema.UUID:
		return "char(36)"
	case schema.Binary:
		return "longblob"
	default:
		return string(field.DataType)
	}

	if field.Generated {
		sqlType += " AUTO_INCREMENT"
	}
	return sqlType
}

func (d MySQL) CreateDatabaseSQL(name string) string {
	stmt := clause.NewStatement(d)
	stmt.Write("CREATE DATABASE IF NOT EXISTS ")
	stmt.WriteQuoted(name)
	return stmt.SQL.String()
}
