package schema

import (
	"github.com/tameorm/tame/clause"
)

// Finalize freezes the column list of the model and builds its query handles.
// The model must be resolved first.
func (m *Model) Finalize(dialect clause.Dialect) {
	m.DBFields = m.DBFields[:0]
	m.FieldsDBProjection = make(map[string]string, len(m.Fields))
	for _, field := range m.Fields {
		if !field.Persisted() {
			continue
		}
		m.DBFields = append(m.DBFields, field.SourceField)
		m.FieldsDBProjection[field.Name] = field.SourceField
	}

	m.Dialect = dialect
	m.BaseTable = clause.Table{Name: m.Table, Schema: m.Schema}
	m.BaseQuery = clause.NewQuery(m.BaseTable)
	m.BaseQueryAllFields = m.BaseQuery.Columns(m.DBFields...)
	m.finalised = true
}

// Finalize finalizes every model with dialect
func Finalize(models []*Model, dialect clause.Dialect) {
	for _, model := range models {
		model.Finalize(dialect)
	}
}

// SelectAll renders the select all persisted columns query of the model
func (m *Model) SelectAll() (string, []interface{}) {
	return m.BaseQueryAllFields.ToSQL(m.Dialect)
}
