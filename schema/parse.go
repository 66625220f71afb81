package schema

import (
	"encoding/json"
	"go/ast"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/now"

	"github.com/tameorm/tame/utils"
)

// TagName struct tag read by Parse
const TagName = "tame"

// Tabler overrides the table name of a model
type Tabler interface {
	TableName() string
}

// SchemaTabler places the table of a model in a database schema
type SchemaTabler interface {
	TableSchema() string
}

// Commenter describes a model
type Commenter interface {
	TableComment() string
}

var (
	timeReflectType = reflect.TypeOf(time.Time{})
	uuidReflectType = reflect.TypeOf(uuid.UUID{})
	jsonReflectType = reflect.TypeOf(json.RawMessage{})
)

// Parser parses tagged structs into models
type Parser struct {
	Namer Namer
	// TimeLocation location used to parse datetime defaults
	TimeLocation *time.Location
}

// Parse parses dest with the default parser
func Parse(dest interface{}, namer Namer) (*Model, error) {
	return Parser{Namer: namer}.Parse(dest)
}

// Parse builds the model of dest, a struct, a pointer to a struct or a slice of them
func (p Parser) Parse(dest interface{}) (*Model, error) {
	if dest == nil {
		return nil, ConfigErrorf("unsupported data %+v when parsing model", dest)
	}

	if p.Namer == nil {
		p.Namer = NamingStrategy{}
	}

	modelType := reflect.ValueOf(dest).Type()
	for modelType.Kind() == reflect.Slice || modelType.Kind() == reflect.Ptr {
		modelType = modelType.Elem()
	}

	if modelType.Kind() != reflect.Struct {
		if modelType.PkgPath() == "" {
			return nil, ConfigErrorf("unsupported data %+v when parsing model", dest)
		}
		return nil, ConfigErrorf("unsupported data type %v when parsing model", modelType.PkgPath())
	}

	model := NewModel(modelType.Name(), p.Namer.TableName(modelType.Name()))
	model.ModelType = modelType

	modelValue := reflect.New(modelType).Interface()
	if tabler, ok := modelValue.(Tabler); ok {
		model.Table = tabler.TableName()
	}
	if tabler, ok := modelValue.(SchemaTabler); ok {
		model.Schema = tabler.TableSchema()
	}
	if commenter, ok := modelValue.(Commenter); ok {
		model.Description = commenter.TableComment()
	}

	if err := p.parseFields(model, modelType); err != nil {
		return nil, err
	}

	if err := p.parsePrimaryKey(model); err != nil {
		return nil, err
	}

	return model, nil
}

func (p Parser) parseFields(model *Model, modelType reflect.Type) error {
	for i := 0; i < modelType.NumField(); i++ {
		fieldStruct := modelType.Field(i)
		if !ast.IsExported(fieldStruct.Name) {
			continue
		}

		tag, hasTag := fieldStruct.Tag.Lookup(TagName)
		if tag == "-" {
			continue
		}

		if fieldStruct.Anonymous && !hasTag {
			if embedded := indirectType(fieldStruct.Type); embedded.Kind() == reflect.Struct && embedded != timeReflectType {
				if err := p.parseFields(model, embedded); err != nil {
					return err
				}
				continue
			}
		}

		field, err := p.ParseField(model, fieldStruct)
		if err != nil {
			return err
		}

		if err := model.AddField(field.Name, field); err != nil {
			return err
		}
	}
	return nil
}

// ParseField parse a struct field of model into a field descriptor
func (p Parser) ParseField(model *Model, fieldStruct reflect.StructField) (*Field, error) {
	settings := ParseTagSetting(fieldStruct.Tag.Get(TagName), ";")
	field := &Field{
		Name:        p.Namer.ColumnName(fieldStruct.Name),
		GoName:      fieldStruct.Name,
		FieldType:   fieldStruct.Type,
		TagSettings: settings,
	}

	if name, ok := settings["NAME"]; ok && name != "" {
		field.Name = name
	}

	if column, ok := lookupSetting(settings, "COLUMN", "SOURCE_FIELD"); ok {
		field.SourceField = column
	}

	if val, ok := lookupSetting(settings, "PK", "PRIMARYKEY", "PRIMARY_KEY"); ok {
		field.PrimaryKey = utils.CheckTruth(val)
	}

	if val, ok := settings["UNIQUE"]; ok {
		field.Unique = utils.CheckTruth(val)
	}

	if val, ok := settings["INDEX"]; ok {
		field.Index = utils.CheckTruth(val)
	}

	if val, ok := settings["NULL"]; ok {
		field.Null = utils.CheckTruth(val)
	}

	if val, ok := lookupSetting(settings, "GENERATED", "AUTOINCREMENT"); ok {
		field.Generated = utils.CheckTruth(val)
	}

	if val, ok := lookupSetting(settings, "DESCRIPTION", "COMMENT"); ok {
		field.Description = val
	}

	if num, ok := lookupSetting(settings, "SIZE", "MAX_LENGTH"); ok {
		size, err := strconv.Atoi(num)
		if err != nil || size <= 0 {
			return nil, ConfigErrorf("invalid max length %q for field %v on model %v", num, fieldStruct.Name, model.Name)
		}
		field.MaxLength = size
	}

	switch {
	case hasAny(settings, "FK", "FOREIGNKEY", "FOREIGN_KEY"):
		field.Kind = ForeignKeyField
		field.ModelName, _ = lookupSetting(settings, "FK", "FOREIGNKEY", "FOREIGN_KEY")
	case hasAny(settings, "O2O", "ONETOONE", "ONE_TO_ONE"):
		field.Kind = OneToOneField
		field.ModelName, _ = lookupSetting(settings, "O2O", "ONETOONE", "ONE_TO_ONE")
		field.Unique = true
	case hasAny(settings, "M2M", "MANY2MANY", "MANY_TO_MANY"):
		field.Kind = ManyToManyField
		field.ModelName, _ = lookupSetting(settings, "M2M", "MANY2MANY", "MANY_TO_MANY")
	}

	if field.Kind.Relational() {
		field.RelatedName = settings["RELATED_NAME"]
		field.ToField = settings["TO_FIELD"]
		field.OnDelete = strings.ToUpper(settings["ON_DELETE"])
		if field.Kind.Forward() && field.OnDelete == "" {
			field.OnDelete = DefaultOnDelete
		}

		if field.Kind == ManyToManyField {
			field.Through = settings["THROUGH"]
			field.ForwardKey = settings["FORWARD_KEY"]
			field.BackwardKey = settings["BACKWARD_KEY"]
			if field.ForwardKey == "" {
				if idx := strings.LastIndexByte(field.ModelName, '.'); idx >= 0 && idx < len(field.ModelName)-1 {
					field.ForwardKey = p.Namer.JoinKeyName(strings.ToLower(field.ModelName[idx+1:]))
				}
			}
		}
	} else {
		if fieldStruct.Type.Kind() == reflect.Ptr {
			field.Null = true
		}

		dataType, err := dataTypeOf(indirectType(fieldStruct.Type), settings)
		if err != nil {
			return nil, ConfigErrorf("unsupported data type %v for %v on field %v: %v", fieldStruct.Type, model.Name, fieldStruct.Name, err)
		}
		field.DataType = dataType

		if field.DataType == Char && field.MaxLength == 0 {
			field.MaxLength = 255
		}
	}

	if value, ok := settings["DEFAULT"]; ok {
		if err := p.parseDefault(field, value); err != nil {
			return nil, ConfigErrorf("failed to parse %v as default value for %v on model %v, got error: %v", value, fieldStruct.Name, model.Name, err)
		}
	}

	return field, nil
}

func (p Parser) parseDefault(field *Field, value string) (err error) {
	field.HasDefault = true

	// default value is function, null, blank or a database keyword
	if strings.EqualFold(value, "null") {
		field.Default = nil
		return nil
	}
	if value == "" || strings.Contains(value, "(") && strings.Contains(value, ")") ||
		strings.EqualFold(value, "now") || strings.EqualFold(value, "current_timestamp") {
		field.Default = value
		return nil
	}

	switch field.DataType {
	case Bool:
		field.Default, err = strconv.ParseBool(value)
	case Int, BigInt, SmallInt:
		field.Default, err = strconv.ParseInt(value, 0, 64)
	case Float, Decimal:
		field.Default, err = strconv.ParseFloat(value, 64)
	case Datetime, Date:
		config := &now.Config{WeekStartDay: now.WeekStartDay, TimeLocation: p.TimeLocation, TimeFormats: now.TimeFormats}
		field.Default, err = config.Parse(value)
	default:
		field.Default = value
	}
	return err
}

func (p Parser) parsePrimaryKey(model *Model) error {
	var primaryFields []*Field
	for _, field := range model.Fields {
		if field.PrimaryKey {
			primaryFields = append(primaryFields, field)
		}
	}

	var pk *Field
	switch len(primaryFields) {
	case 0:
		if field := model.FieldsMap["id"]; field != nil && field.Kind == ScalarField {
			pk = field
		} else if field != nil {
			return ConfigErrorf("field \"id\" of model %q can not be used as primary key", model.Name)
		} else {
			pk = &Field{Kind: ScalarField, DataType: Int, GoName: "ID", Generated: true}
			if err := model.AddField("id", pk); err != nil {
				return err
			}
			model.Fields = append([]*Field{pk}, model.Fields[:len(model.Fields)-1]...)
		}

		if _, ok := lookupSetting(pk.TagSettings, "GENERATED", "AUTOINCREMENT"); !ok {
			switch pk.DataType {
			case Int, BigInt, SmallInt:
				pk.Generated = true
			}
		}
	case 1:
		pk = primaryFields[0]
		if _, ok := lookupSetting(pk.TagSettings, "GENERATED", "AUTOINCREMENT"); !ok && pk.Kind == ScalarField {
			switch pk.DataType {
			case Int, BigInt, SmallInt:
				pk.Generated = true
			}
		}
	default:
		return ConfigErrorf("model %q has more than one primary key", model.Name)
	}

	if pk.Kind == ManyToManyField {
		return ConfigErrorf("many to many field %q of model %q can not be primary key", pk.Name, model.Name)
	}

	pk.PrimaryKey = true
	pk.Unique = true
	pk.Null = false
	model.PKAttr = pk.Name
	return nil
}

func dataTypeOf(fieldType reflect.Type, settings map[string]string) (DataType, error) {
	if typ, ok := settings["TYPE"]; ok {
		switch dataType := DataType(strings.ToLower(typ)); dataType {
		case Int, BigInt, SmallInt, Float, Decimal, Bool, Char, Text, Datetime, Date, JSON, UUID, Binary:
			return dataType, nil
		}
		return "", ConfigErrorf("unknown type %q", typ)
	}

	switch fieldType {
	case timeReflectType:
		return Datetime, nil
	case uuidReflectType:
		return UUID, nil
	case jsonReflectType:
		return JSON, nil
	}

	switch fieldType.Kind() {
	case reflect.Bool:
		return Bool, nil
	case reflect.Int, reflect.Int32, reflect.Uint, reflect.Uint32:
		return Int, nil
	case reflect.Int64, reflect.Uint64:
		return BigInt, nil
	case reflect.Int8, reflect.Int16, reflect.Uint8, reflect.Uint16:
		return SmallInt, nil
	case reflect.Float32, reflect.Float64:
		return Float, nil
	case reflect.String:
		return Char, nil
	case reflect.Map, reflect.Interface:
		return JSON, nil
	case reflect.Slice:
		if fieldType.Elem().Kind() == reflect.Uint8 {
			return Binary, nil
		}
	}

	return "", ConfigErrorf("declare it as a relation or set its type")
}

func indirectType(t reflect.Type) reflect.Type {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t
}

func hasAny(settings map[string]string, keys ...string) bool {
	_, ok := lookupSetting(settings, keys...)
	return ok
}
