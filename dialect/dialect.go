package dialect

import (
	"fmt"
	"strings"

	"github.com/tameorm/tame/clause"
	"github.com/tameorm/tame/schema"
)

// Dialector renders identifiers, bind variables and column types of one database family
type Dialector interface {
	clause.Dialect
	DataTypeOf(field *schema.Field) string
	// CreateDatabaseSQL returns the statement creating database name, empty when
	// the database is created on open
	CreateDatabaseSQL(name string) string
}

// Open returns the dialector named name
func Open(name string) (Dialector, error) {
	switch strings.ToLower(name) {
	case "postgres", "postgresql":
		return Postgres{}, nil
	case "mysql":
		return MySQL{}, nil
	case "sqlite", "sqlite3":
		return SQLite{}, nil
	}
	return nil, fmt.Errorf("unsupported dialect %q", name)
}

func quoteTo(writer clause.Writer, str string, quote byte) {
	writer.WriteByte(quote)
	writer.WriteString(strings.ReplaceAll(str, string(quote), string([]byte{quote, quote})))
	writer.WriteByte(quote)
}

func varchar(field *schema.Field, fallback string) string {
	if field.MaxLength > 0 && field.MaxLength < 65532 {
		return fmt.Sprintf("varchar(%d)", field.MaxLength)
	}
	return fallback
}
