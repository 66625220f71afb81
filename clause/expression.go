package clause

const (
	PrimaryKey   string = "@@@primary_key@@@"
	CurrentTable string = "@@@table@@@"
)

// Expression expression interface
type Expression interface {
	Build(builder Builder)
}

// NegationExpressionBuilder negation expression builder
type NegationExpressionBuilder interface {
	NegationBuild(builder Builder)
}

// Column quote with name
type Column struct {
	Table string
	Name  string
	Alias string
	Raw   bool
}

// Table quote with name, Schema is written in front of the table name when set
type Table struct {
	Name   string
	Schema string
	Alias  string
	Raw    bool
}

// Expr raw expression
type Expr struct {
	SQL  string
	Vars []interface{}
}

// Build build raw expression, every `?` is replaced by a bind variable
func (expr Expr) Build(builder Builder) {
	var idx int
	for i := 0; i < len(expr.SQL); i++ {
		if expr.SQL[i] == '?' && idx < len(expr.Vars) {
			builder.Write(builder.AddVar(expr.Vars[idx]))
			idx++
		} else {
			builder.WriteByte(expr.SQL[i])
		}
	}
}
