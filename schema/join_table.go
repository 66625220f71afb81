package schema

// JoinModel returns the model of the through table of a resolved many to many
// field, keyed by the primary key types of both sides
func JoinModel(rel *Field) (*Model, error) {
	if rel.Kind != ManyToManyField || rel.RelatedModel == nil || rel.Model == nil {
		return nil, ConfigErrorf("field %v is not a resolved many to many relation", rel)
	}

	join := NewModel(rel.Through, rel.Through)
	join.App = rel.Model.App
	join.Schema = rel.Model.Schema
	join.DefaultConnection = rel.Model.DefaultConnection

	for _, side := range []struct {
		name  string
		model *Model
	}{
		{rel.BackwardKey, rel.Model},
		{rel.ForwardKey, rel.RelatedModel},
	} {
		pk := side.model.PK()
		if pk == nil {
			return nil, ConfigErrorf("model %q has no primary key", side.model.Qualified())
		}
		key := pk.Clone()
		key.PrimaryKey, key.Unique, key.Generated, key.Null, key.HasDefault = false, false, false, false, false
		key.Default, key.Description, key.GoName, key.FieldType = nil, "", "", nil
		key.SourceField = ""
		key.Reference = &Field{Kind: ForeignKeyField, RelatedModel: side.model, ToFieldInstance: pk, OnDelete: DefaultOnDelete}
		if err := join.AddField(side.name, key); err != nil {
			return nil, err
		}
	}
	join.inited = true
	return join, nil
}
