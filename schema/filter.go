package schema

import (
	"github.com/tameorm/tame/clause"
)

// FilterOperator operator applied by a filter
type FilterOperator string

const (
	OpEq    FilterOperator = "eq"
	OpNe    FilterOperator = "ne"
	OpIn    FilterOperator = "in"
	OpNotIn FilterOperator = "not_in"
)

// Filter a named predicate of a model, e.g. `tags__in`
type Filter struct {
	Name string
	// Field is the column compared, BackwardKey the column joined on the model
	Field       string
	BackwardKey string
	Operator    FilterOperator
	Table       clause.Table
}

// Expr returns the predicate of the filter applied to values
func (f *Filter) Expr(values ...interface{}) clause.Expression {
	column := clause.Column{Table: f.Table.Name, Name: f.Field}
	switch f.Operator {
	case OpNe:
		return clause.Neq{Column: column, Value: first(values)}
	case OpIn:
		return clause.IN{Column: column, Values: values}
	case OpNotIn:
		return clause.Not(clause.IN{Column: column, Values: values})
	default:
		return clause.Eq{Column: column, Value: first(values)}
	}
}

// ManyToManyFilters filters registered for the many to many field of a model
func ManyToManyFilters(field *Field) map[string]*Filter {
	table := clause.Table{Name: field.Through}
	filters := make(map[string]*Filter, 4)
	for suffix, op := range map[string]FilterOperator{"": OpEq, "__not": OpNe, "__in": OpIn, "__not_in": OpNotIn} {
		name := field.Name + suffix
		filters[name] = &Filter{
			Name:        name,
			Field:       field.ForwardKey,
			BackwardKey: field.BackwardKey,
			Operator:    op,
			Table:       table,
		}
	}
	return filters
}

func first(values []interface{}) interface{} {
	if len(values) == 0 {
		return nil
	}
	return values[0]
}
