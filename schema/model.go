package schema

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/tameorm/tame/clause"
)

// Model metadata of a mapped entity: its table, its field registry and,
// once finalised, its query handles
type Model struct {
	Name        string
	App         string
	Table       string
	Schema      string
	Description string
	PKAttr      string
	ModelType   reflect.Type

	// Fields keeps declaration order, FieldsMap indexes it by name
	Fields    []*Field
	FieldsMap map[string]*Field
	Filters   map[string]*Filter

	DefaultConnection string

	DBFields           []string
	FieldsDBProjection map[string]string
	BaseTable          clause.Table
	BaseQuery          clause.Query
	BaseQueryAllFields clause.Query
	Dialect            clause.Dialect

	inited    bool
	finalised bool
}

// NewModel returns an empty model, fields are added with AddField
func NewModel(name, table string) *Model {
	return &Model{
		Name:      name,
		Table:     table,
		FieldsMap: map[string]*Field{},
		Filters:   map[string]*Filter{},
	}
}

func (m *Model) String() string {
	return m.Qualified()
}

// Qualified returns the `<app>.<model>` reference of the model
func (m *Model) Qualified() string {
	if m.App == "" {
		return m.Name
	}
	return m.App + "." + m.Name
}

// Inited reports whether relations of the model have been resolved
func (m *Model) Inited() bool {
	return m.inited
}

// Finalised reports whether the query surface of the model has been built
func (m *Model) Finalised() bool {
	return m.finalised
}

// PK returns the primary key field
func (m *Model) PK() *Field {
	return m.FieldsMap[m.PKAttr]
}

// LookUpField returns the field registered under name or with the column name
func (m *Model) LookUpField(name string) *Field {
	if field, ok := m.FieldsMap[name]; ok {
		return field
	}
	for _, field := range m.Fields {
		if field.Persisted() && field.SourceField == name {
			return field
		}
	}
	return nil
}

// AddField registers field under name, a name can be registered only once
func (m *Model) AddField(name string, field *Field) error {
	if _, ok := m.FieldsMap[name]; ok {
		return ConfigErrorf("field %q already present in model %q", name, m.Name)
	}

	field.Name = name
	field.Model = m
	if field.SourceField == "" && field.Persisted() {
		field.SourceField = name
	}

	m.Fields = append(m.Fields, field)
	m.FieldsMap[name] = field
	return nil
}

// FieldNames returns a snapshot of the names of fields with one of the kinds, in declaration order
func (m *Model) FieldNames(kinds ...FieldKind) []string {
	var names []string
	for _, field := range m.Fields {
		for _, kind := range kinds {
			if field.Kind == kind {
				names = append(names, field.Name)
				break
			}
		}
	}
	return names
}

// FKFields returns the foreign key field names, sorted
func (m *Model) FKFields() []string {
	names := m.FieldNames(ForeignKeyField)
	sort.Strings(names)
	return names
}

func (m *Model) O2OFields() []string {
	return m.FieldNames(OneToOneField)
}

func (m *Model) M2MFields() []string {
	return m.FieldNames(ManyToManyField)
}

func (m *Model) BackwardFKFields() []string {
	return m.FieldNames(BackwardFKField)
}

func (m *Model) BackwardO2OFields() []string {
	return m.FieldNames(BackwardOneToOneField)
}

// Field returns the field registered under name or an error naming the model
func (m *Model) Field(name string) (*Field, error) {
	if field, ok := m.FieldsMap[name]; ok {
		return field, nil
	}
	return nil, fmt.Errorf("%w: no field %q in model %q", ErrConfiguration, name, m.Name)
}
