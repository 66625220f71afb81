package schema

import (
	"reflect"
)

// FieldKind kind of a field descriptor
type FieldKind int

const (
	ScalarField FieldKind = iota
	ForeignKeyField
	OneToOneField
	BackwardFKField
	BackwardOneToOneField
	ManyToManyField
)

func (kind FieldKind) String() string {
	switch kind {
	case ScalarField:
		return "scalar"
	case ForeignKeyField:
		return "foreign_key"
	case OneToOneField:
		return "one_to_one"
	case BackwardFKField:
		return "backward_foreign_key"
	case BackwardOneToOneField:
		return "backward_one_to_one"
	case ManyToManyField:
		return "many_to_many"
	}
	return "unknown"
}

// Relational reports whether fields of this kind point at another model
func (kind FieldKind) Relational() bool {
	return kind != ScalarField
}

// Forward reports whether fields of this kind own a key column
func (kind FieldKind) Forward() bool {
	return kind == ForeignKeyField || kind == OneToOneField
}

// Backward reports whether fields of this kind are synthesized reverse relations
func (kind FieldKind) Backward() bool {
	return kind == BackwardFKField || kind == BackwardOneToOneField
}

// DataType storage type of a column
type DataType string

const (
	Int      DataType = "int"
	BigInt   DataType = "bigint"
	SmallInt DataType = "smallint"
	Float    DataType = "float"
	Decimal  DataType = "decimal"
	Bool     DataType = "bool"
	Char     DataType = "char"
	Text     DataType = "text"
	Datetime DataType = "datetime"
	Date     DataType = "date"
	JSON     DataType = "json"
	UUID     DataType = "uuid"
	Binary   DataType = "binary"
)

// NoBackwardRelation set as RelatedName to suppress the backward relation
const NoBackwardRelation = "-"

// Default on_delete action of foreign keys
const DefaultOnDelete = "CASCADE"

// Field describes one column or relationship of a model
type Field struct {
	Name        string
	Kind        FieldKind
	DataType    DataType
	SourceField string
	PrimaryKey  bool
	Generated   bool
	Unique      bool
	Index       bool
	Null        bool
	HasDefault  bool
	Default     interface{}
	MaxLength   int
	Description string
	GoName      string
	FieldType   reflect.Type
	TagSettings map[string]string
	Model       *Model

	// ModelName is the `<app>.<model>` reference of relational fields
	ModelName       string
	RelatedName     string
	ToField         string
	OnDelete        string
	RelatedModel    *Model
	ToFieldInstance *Field

	// KeyField is the synthesized key column of a forward relation,
	// Reference points from that key column back to its relation
	KeyField  *Field
	Reference *Field

	// RelationField is the key field name a backward relation joins on
	RelationField string

	Through     string
	ForwardKey  string
	BackwardKey string
	// Implicit marks many to many mirrors synthesized on the target model
	Implicit bool
}

// Clone returns an independent copy of the field. Pointers to other models
// and fields are shared, everything owned by the field is copied.
func (field *Field) Clone() *Field {
	clone := *field
	if field.TagSettings != nil {
		clone.TagSettings = make(map[string]string, len(field.TagSettings))
		for k, v := range field.TagSettings {
			clone.TagSettings[k] = v
		}
	}

	if field.Default != nil {
		if v := reflect.ValueOf(field.Default); v.Kind() == reflect.Slice {
			copied := reflect.MakeSlice(v.Type(), v.Len(), v.Len())
			reflect.Copy(copied, v)
			clone.Default = copied.Interface()
		}
	}
	return &clone
}

// IsKeyField reports whether the field stores the key of a forward relation
func (field *Field) IsKeyField() bool {
	return field.Kind == ScalarField && field.Reference != nil
}

// Persisted reports whether the field is backed by a column of its own table
func (field *Field) Persisted() bool {
	return field.Kind == ScalarField
}

func (field *Field) String() string {
	if field.Model != nil {
		return field.Model.Name + "." + field.Name
	}
	return field.Name
}
