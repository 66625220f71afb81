package dialect

import (
	"github.com/tameorm/tame/clause"
	"github.com/tameorm/tame/schema"
)

type SQLite struct{}

func (SQLite) Name() string {
	return "sqlite"
}

func (SQLite) QuoteTo(writer clause.Writer, str string) {
	quoteTo(writer, str, '`') // `name`
}

func (SQLite) BindVar(int) string {
	return "?"
}

func (SQLite) DataTypeOf(field *schema.Field) string {
	switch field.DataType {
	case schema.Int, schema.BigInt, schema.SmallInt:
		if field.Generated && field.PrimaryKey {
			// https://www.sqlite.org/autoinc.html
			return "integer PRIMARY KEY AUTOINCREMENT"
		}
		return "integer"
	case schema.Float:
		return "real"
	case schema.Decimal, schema.Bool:
		return "numeric"
	case schema.Char:
		return varchar(field, "text")
	case schema.Text, schema.JSON:
		return "text"
	case schema.Datetime:
		return "datetime"
	case schema.Date:
		return "date"
	case schema.UUID:
		return "char(36)"
	case schema.Binary:
		return "blob"
	}
	return string(field.DataType)
}

// CreateDatabaseSQL sqlite databases are created when opened
func (SQLite) CreateDatabaseSQL(string) string {
	return ""
}
