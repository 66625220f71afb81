package validation

import (
	"encoding/json"
	"reflect"
	"time"
)

// JSONSchema renders the model as a JSON schema document
func (m *Model) JSONSchema() ([]byte, error) {
	type property map[string]interface{}

	var (
		properties = make(map[string]property, len(m.Fields))
		required   = []string{}
	)

	for _, f := range m.Fields {
		prop := property{}
		switch f.Type {
		case anyType:
		case timeType, bytesType:
			prop["type"] = "string"
		case objType:
			prop["type"] = "object"
		case listType:
			prop["type"] = "array"
			prop["items"] = property{"type": "object"}
		default:
			switch f.Type.Kind() {
			case reflect.Int64:
				prop["type"] = "integer"
			case reflect.Float64:
				prop["type"] = "number"
			case reflect.Bool:
				prop["type"] = "boolean"
			case reflect.String:
				prop["type"] = "string"
			}
		}

		if f.Format != "" {
			prop["format"] = f.Format
		}
		if f.MaxLength > 0 {
			prop["maxLength"] = f.MaxLength
		}
		if f.Description != "" {
			prop["description"] = f.Description
		}
		if f.Default != nil {
			if t, ok := f.Default.(time.Time); ok {
				prop["default"] = t.Format(time.RFC3339)
			} else {
				prop["default"] = f.Default
			}
		}

		properties[f.Name] = prop
		if f.Required {
			required = append(required, f.Name)
		}
	}

	doc := map[string]interface{}{
		"$schema":    "https://json-schema.org/draft/2020-12/schema",
		"title":      m.Name,
		"type":       "object",
		"properties": properties,
		"required":   required,
	}
	if m.Doc != "" {
		doc["description"] = m.Doc
	}
	return json.MarshalIndent(doc, "", "  ")
}
