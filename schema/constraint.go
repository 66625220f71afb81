package schema

import (
	"fmt"

	"github.com/tameorm/tame/clause"
)

// ForeignKeyConstraint constraint of a key field on the column it references
type ForeignKeyConstraint struct {
	Name       string
	Field      *Field
	References *Model
	Column     string
	OnDelete   string
}

func (fk *ForeignKeyConstraint) GetName() string { return fk.Name }

func (fk *ForeignKeyConstraint) Build() (sql string, vars []interface{}) {
	sql = "CONSTRAINT ? FOREIGN KEY (?) REFERENCES ?(?)"
	if fk.OnDelete != "" {
		sql += fmt.Sprintf(" ON DELETE %s", fk.OnDelete)
	}
	return sql, []interface{}{
		clause.Column{Name: fk.Name},
		clause.Column{Name: fk.Field.SourceField},
		clause.Table{Name: fk.References.Table, Schema: fk.References.Schema},
		clause.Column{Name: fk.Column},
	}
}

// ParseForeignKeyConstraints returns the constraints of the key fields of a resolved model
func (m *Model) ParseForeignKeyConstraints(namer Namer) []ForeignKeyConstraint {
	var constraints []ForeignKeyConstraint
	for _, field := range m.Fields {
		if !field.IsKeyField() {
			continue
		}
		rel := field.Reference
		if rel.RelatedModel == nil || rel.ToFieldInstance == nil {
			continue
		}
		constraints = append(constraints, ForeignKeyConstraint{
			Name:       namer.RelationshipFKName(m.Table, field.SourceField),
			Field:      field,
			References: rel.RelatedModel,
			Column:     rel.ToFieldInstance.SourceField,
			OnDelete:   rel.OnDelete,
		})
	}
	return constraints
}
