// Package validation derives validation models from resolved models: one field
// per column, backward relation, many to many relation and computed property.
package validation

import (
	"reflect"
	"sort"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/tameorm/tame/schema"
)

// Options filters and names the fields of a validation model
type Options struct {
	// Name defaults to `<Model>Schema`
	Name     string
	Exclude  []string
	Include  []string
	Computed []string
	Optional []string
	Required []string
	// AllowCycles is recorded on the result only, relations are never expanded
	AllowCycles        bool
	SortAlphabetically bool
}

// Field one field of a validation model
type Field struct {
	Name   string
	GoName string
	// Type of the value when present, Go type of the struct field is a pointer to it when optional
	Type        reflect.Type
	Source      schema.FieldKind
	Computed    bool
	Description string
	Required    bool
	Default     interface{}
	MaxLength   int
	// Format json schema format of strings, e.g. date-time
	Format       string
	RelatedModel string
}

// List reports whether the field holds many related objects
func (f *Field) List() bool {
	return f.Type.Kind() == reflect.Slice && f.Type != bytesType
}

// Model a validation model
type Model struct {
	Name        string
	Doc         string
	Fields      []*Field
	Type        reflect.Type
	AllowCycles bool

	fieldsByName map[string]*Field
}

// Field returns the field named name, nil if absent
func (m *Model) Field(name string) *Field {
	return m.fieldsByName[name]
}

// FieldNames returns field names in order
func (m *Model) FieldNames() []string {
	names := make([]string, 0, len(m.Fields))
	for _, f := range m.Fields {
		names = append(names, f.Name)
	}
	return names
}

// New returns a pointer to a zero value of Type
func (m *Model) New() interface{} {
	return reflect.New(m.Type).Interface()
}

var (
	anyType   = reflect.TypeOf((*interface{})(nil)).Elem()
	bytesType = reflect.TypeOf([]byte(nil))
	objType   = reflect.TypeOf(map[string]interface{}(nil))
	listType  = reflect.SliceOf(objType)
	timeType  = reflect.TypeOf(time.Time{})

)

// goTypes maps column types to value types
var goTypes = map[schema.DataType]reflect.Type{
	schema.Int:      reflect.TypeOf(int64(0)),
	schema.BigInt:   reflect.TypeOf(int64(0)),
	schema.SmallInt: reflect.TypeOf(int64(0)),
	schema.Float:    reflect.TypeOf(float64(0)),
	schema.Decimal:  reflect.TypeOf(float64(0)),
	schema.Bool:     reflect.TypeOf(false),
	schema.Char:     reflect.TypeOf(""),
	schema.Text:     reflect.TypeOf(""),
	schema.UUID:     reflect.TypeOf(""),
	schema.Datetime: timeType,
	schema.Date:     timeType,
	schema.JSON:     anyType,
	schema.Binary:   bytesType,
}

var formats = map[schema.DataType]string{
	schema.Datetime: "date-time",
	schema.Date:     "date",
	schema.UUID:     "uuid",
	schema.Binary:   "byte",
}

// ComputedDescriber describes the computed properties of a model
type ComputedDescriber interface {
	ComputedDescriptions() map[string]string
}

// Build creates the validation model of model. Computed names must match a
// method of the model's Go type taking no argument, `full_name` is looked up as
// `FullName`.
func Build(model *schema.Model, opts Options) (*Model, error) {
	name := opts.Name
	if name == "" {
		name = model.Name + "Schema"
	}

	fields, err := fieldMap(model, opts)
	if err != nil {
		return nil, err
	}

	if opts.SortAlphabetically {
		sort.SliceStable(fields, func(i, j int) bool { return fields[i].Name < fields[j].Name })
	}

	var (
		exclude  = set(opts.Exclude)
		include  = set(opts.Include)
		optional = set(opts.Optional)
		required = set(opts.Required)
		result   = &Model{Name: name, Doc: model.Description, AllowCycles: opts.AllowCycles, fieldsByName: map[string]*Field{}}
		goNames  = map[string]bool{}
	)

	for _, f := range fields {
		if exclude[f.Name] || len(include) > 0 && !include[f.Name] {
			continue
		}

		switch {
		case required[f.Name]:
			f.Required = true
		case optional[f.Name]:
			f.Required = false
		}

		f.GoName = goName(f.Name)
		for goNames[f.GoName] {
			f.GoName += "_"
		}
		goNames[f.GoName] = true

		result.Fields = append(result.Fields, f)
		result.fieldsByName[f.Name] = f
	}

	result.Type = structOf(result.Fields)
	return result, nil
}

func fieldMap(model *schema.Model, opts Options) ([]*Field, error) {
	var fields []*Field
	for _, field := range model.Fields {
		f := &Field{
			Name:        field.Name,
			Source:      field.Kind,
			Description: field.Description,
			Required:    !field.Null,
			Default:     field.Default,
		}
		if field.RelatedModel != nil {
			f.RelatedModel = field.RelatedModel.Qualified()
		}

		switch field.Kind {
		case schema.ScalarField:
			f.Type = goTypes[field.DataType]
			if f.Type == nil {
				f.Type = anyType
			}
			f.Format = formats[field.DataType]
			if field.DataType == schema.Char {
				f.MaxLength = field.MaxLength
			}
		case schema.ForeignKeyField, schema.OneToOneField:
			f.Type = anyType
		case schema.BackwardFKField:
			f.Type = listType
			f.Required = false
			f.Description = "Backward relation to " + relatedName(field)
		case schema.BackwardOneToOneField:
			f.Type = objType
			f.Required = false
			f.Description = "Backward relation to " + relatedName(field)
		case schema.ManyToManyField:
			f.Type = listType
			f.Required = false
			f.Description = "Many-to-many relation with " + relatedName(field)
		}

		fields = append(fields, f)
	}

	var descriptions map[string]string
	if model.ModelType != nil {
		if describer, ok := reflect.New(model.ModelType).Interface().(ComputedDescriber); ok {
			descriptions = describer.ComputedDescriptions()
		}
	}

	for _, name := range opts.Computed {
		if !hasComputed(model, name) {
			return nil, schema.ConfigErrorf("computed field %q is not declared on model %q", name, model.Name)
		}

		description := descriptions[name]
		if description == "" {
			description = "Computed field"
		}
		fields = append(fields, &Field{
			Name:        name,
			Type:        anyType,
			Computed:    true,
			Description: description,
		})
	}
	return fields, nil
}

func relatedName(field *schema.Field) string {
	if field.RelatedModel != nil {
		return field.RelatedModel.Name
	}
	if _, model, err := schema.SplitReference(field.ModelName); err == nil {
		return model
	}
	return field.ModelName
}

func hasComputed(model *schema.Model, name string) bool {
	if model.ModelType == nil {
		return false
	}

	method, ok := reflect.PointerTo(model.ModelType).MethodByName(goName(name))
	if !ok {
		return false
	}
	// receiver, then no argument
	return method.Type.NumIn() == 1 && method.Type.NumOut() > 0
}

func structOf(fields []*Field) reflect.Type {
	structFields := make([]reflect.StructField, 0, len(fields))
	for _, f := range fields {
		typ, tag := f.Type, f.Name
		if !f.Required {
			tag += ",omitempty"
			switch typ.Kind() {
			case reflect.Interface, reflect.Slice, reflect.Map:
			default:
				typ = reflect.PointerTo(typ)
			}
		}

		structFields = append(structFields, reflect.StructField{
			Name: f.GoName,
			Type: typ,
			Tag:  reflect.StructTag(`json:"` + tag + `"`),
		})
	}
	return reflect.StructOf(structFields)
}

// goName returns the exported Go name of a field, `author_id` becomes `AuthorID`
func goName(name string) string {
	var sb strings.Builder
	caser := cases.Title(language.English)
	for _, part := range strings.FieldsFunc(name, func(r rune) bool { return r == '_' || r == '-' || r == ' ' }) {
		if upper := strings.ToUpper(part); commonInitialisms[upper] {
			sb.WriteString(upper)
			continue
		}
		sb.WriteString(caser.String(part))
	}

	s := sb.String()
	if s == "" || s[0] >= '0' && s[0] <= '9' {
		s = "X" + s
	}
	return s
}

var commonInitialisms = map[string]bool{"ID": true, "URL": true, "UUID": true, "API": true, "HTTP": true, "JSON": true, "SQL": true}

func set(names []string) map[string]bool {
	s := make(map[string]bool, len(names))
	for _, name := range names {
		s[name] = true
	}
	return s
}
