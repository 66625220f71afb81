package schema

// Index a non unique index on one column
type Index struct {
	Name  string
	Field *Field
}

// ParseIndexes returns the indexes of the model, unique and primary columns are indexed by their constraints
func (m *Model) ParseIndexes(namer Namer) []Index {
	var indexes []Index
	for _, field := range m.Fields {
		if field.Persisted() && field.Index && !field.Unique && !field.PrimaryKey {
			indexes = append(indexes, Index{
				Name:  namer.IndexName(m.Table, field.SourceField),
				Field: field,
			})
		}
	}
	return indexes
}
