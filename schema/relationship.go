package schema

// App a named collection of models resolved together
type App struct {
	Name   string
	Models []*Model
	byName map[string]*Model
}

// NewApp returns an empty app
func NewApp(name string) *App {
	return &App{Name: name, byName: map[string]*Model{}}
}

// Register adds model to the app, stamping its App
func (app *App) Register(model *Model) error {
	if _, ok := app.byName[model.Name]; ok {
		return ConfigErrorf("model %q already registered in app %q", model.Name, app.Name)
	}
	model.App = app.Name
	app.Models = append(app.Models, model)
	app.byName[model.Name] = model
	return nil
}

// Model returns the model registered under name
func (app *App) Model(name string) (*Model, bool) {
	model, ok := app.byName[name]
	return model, ok
}

// Apps registered apps by name
type Apps map[string]*App

// Lookup finds the model named by a `<app>.<model>` reference
func (apps Apps) Lookup(reference string) (*Model, error) {
	appName, modelName, err := SplitReference(reference)
	if err != nil {
		return nil, err
	}
	return apps.Get(appName, modelName)
}

// Get finds model modelName of app appName
func (apps Apps) Get(appName, modelName string) (*Model, error) {
	app, ok := apps[appName]
	if !ok {
		return nil, ConfigErrorf("No app with name '%s' registered. Please check your model names in ForeignKeyFields and configurations.", appName)
	}
	model, ok := app.Model(modelName)
	if !ok {
		return nil, ConfigErrorf("No model with name '%s' registered in app '%s'.", modelName, appName)
	}
	return model, nil
}

// Resolver wires relations of the models of an app against every registered app
type Resolver struct {
	Apps  Apps
	Namer Namer
}

// Resolve resolves relations of the models of app that are not resolved yet.
// Models are resolved in registration order, each at most once. A model whose
// key column is the target of a relation is resolved before its referrers.
func (r *Resolver) Resolve(appName string) error {
	app, ok := r.Apps[appName]
	if !ok {
		return ConfigErrorf("No app with name '%s' registered. Please check your model names in ForeignKeyFields and configurations.", appName)
	}
	if r.Namer == nil {
		r.Namer = NamingStrategy{}
	}

	models := make([]*Model, len(app.Models))
	copy(models, app.Models)

	for _, model := range models {
		if err := r.resolveModel(model); err != nil {
			return err
		}
	}
	return nil
}

func (r *Resolver) resolveModel(model *Model) error {
	if model.inited {
		return nil
	}
	model.inited = true
	if model.Table == "" {
		model.Table = r.Namer.TableName(model.Name)
	}

	// key fields added below are scalars, snapshot before adding them
	fks, o2os, m2ms := model.FKFields(), model.O2OFields(), model.M2MFields()

	for _, name := range fks {
		if err := r.resolveForward(model, model.FieldsMap[name]); err != nil {
			return err
		}
	}

	for _, name := range o2os {
		if err := r.resolveForward(model, model.FieldsMap[name]); err != nil {
			return err
		}
	}

	for _, name := range m2ms {
		if err := r.resolveManyToMany(model, model.FieldsMap[name]); err != nil {
			return err
		}
	}
	return nil
}

// keyTarget returns the column a relation to target points at. A target that is
// itself a forward relation is replaced by its key field, resolving its model
// first when needed.
func (r *Resolver) keyTarget(relatedModel *Model, target *Field) (*Field, error) {
	if target.Kind != ForeignKeyField && target.Kind != OneToOneField {
		return target, nil
	}
	if target.KeyField == nil {
		if err := r.resolveModel(relatedModel); err != nil {
			return nil, err
		}
	}
	if target.KeyField == nil {
		return nil, ConfigErrorf("key of model %q references a model that is still being resolved", relatedModel.Qualified())
	}
	return target.KeyField, nil
}

func (r *Resolver) resolveForward(model *Model, rel *Field) error {
	relatedApp, relatedModelName, err := SplitReference(rel.ModelName)
	if err != nil {
		return err
	}
	relatedModel, err := r.Apps.Get(relatedApp, relatedModelName)
	if err != nil {
		return err
	}

	var target *Field
	if rel.ToField != "" {
		var ok bool
		if target, ok = relatedModel.FieldsMap[rel.ToField]; !ok {
			return ConfigErrorf("there is no field named \"%s\" in model \"%s\"", rel.ToField, relatedModelName)
		}
		if !target.Unique {
			return ConfigErrorf("field \"%s\" in model \"%s\" is not unique", rel.ToField, relatedModelName)
		}
		if target, err = r.keyTarget(relatedModel, target); err != nil {
			return err
		}
		rel.ToField = target.Name
	} else {
		if target = relatedModel.PK(); target == nil {
			return ConfigErrorf("model %q has no primary key", relatedModel.Qualified())
		}
		if target, err = r.keyTarget(relatedModel, target); err != nil {
			return err
		}
		rel.ToField = relatedModel.PKAttr
	}
	key := target.Clone()
	rel.ToFieldInstance = target
	rel.DataType = target.DataType

	keyName := r.Namer.KeyFieldName(rel.Name)
	applyKeyFieldOverrides(key, rel)
	if rel.SourceField != "" {
		key.SourceField = rel.SourceField
	} else {
		key.SourceField = keyName
	}
	if err := model.AddField(keyName, key); err != nil {
		return err
	}

	rel.RelatedModel = relatedModel
	rel.SourceField = keyName
	rel.KeyField = key

	if rel.RelatedName != NoBackwardRelation {
		backwardName := rel.RelatedName
		if backwardName == "" {
			backwardName = r.Namer.RelatedName(model.Table, rel.Kind)
		}
		if _, ok := relatedModel.FieldsMap[backwardName]; ok {
			return ConfigErrorf("backward relation \"%s\" duplicates in model %s", backwardName, relatedModelName)
		}

		backward := &Field{
			Kind:            BackwardFKField,
			ModelName:       model.Qualified(),
			RelatedModel:    model,
			RelationField:   keyName,
			SourceField:     key.SourceField,
			Null:            rel.Null,
			Description:     rel.Description,
			ToFieldInstance: rel.ToFieldInstance,
		}
		if rel.Kind == OneToOneField {
			backward.Kind = BackwardOneToOneField
			backward.Null = true
		}
		if err := relatedModel.AddField(backwardName, backward); err != nil {
			return err
		}
	}

	if rel.Kind == OneToOneField && rel.PrimaryKey {
		model.PKAttr = keyName
	}
	return nil
}

// applyKeyFieldOverrides patches the clone of the target column into the key
// field of rel. Every attribute the key field does not take from its target
// column is set here.
func applyKeyFieldOverrides(key, rel *Field) {
	switch rel.Kind {
	case OneToOneField:
		key.PrimaryKey = rel.PrimaryKey
		key.Unique = rel.Unique
	default:
		key.PrimaryKey = false
		key.Unique = false
	}
	key.Index = rel.Index
	key.HasDefault = rel.HasDefault
	key.Default = rel.Default
	key.Null = rel.Null
	key.Generated = rel.Generated
	key.Description = rel.Description
	key.Reference = rel
	key.GoName = ""
	key.FieldType = nil
	key.TagSettings = map[string]string{}
}

func (r *Resolver) resolveManyToMany(model *Model, rel *Field) error {
	if rel.Implicit {
		return nil
	}

	if rel.BackwardKey == "" {
		rel.BackwardKey = r.Namer.JoinKeyName(model.Table)
		if rel.BackwardKey == rel.ForwardKey {
			rel.BackwardKey = r.Namer.JoinKeyName(model.Table + "_rel")
		}
	}

	relatedApp, relatedModelName, err := SplitReference(rel.ModelName)
	if err != nil {
		return err
	}
	relatedModel, err := r.Apps.Get(relatedApp, relatedModelName)
	if err != nil {
		return err
	}
	rel.RelatedModel = relatedModel

	if rel.ForwardKey == "" {
		rel.ForwardKey = r.Namer.JoinKeyName(relatedModel.Table)
	}

	if rel.RelatedName == "" {
		rel.RelatedName = r.Namer.RelatedName(model.Table, ManyToManyField)
	}
	if _, ok := relatedModel.FieldsMap[rel.RelatedName]; ok {
		return ConfigErrorf("backward relation \"%s\" duplicates in model %s", rel.RelatedName, relatedModelName)
	}

	if rel.Through == "" {
		relatedTable := relatedModel.Table
		if relatedTable == "" {
			relatedTable = r.Namer.TableName(relatedModel.Name)
		}
		rel.Through = r.Namer.JoinTableName(model.Table, relatedTable)
	}

	mirror := &Field{
		Kind:         ManyToManyField,
		ModelName:    model.Qualified(),
		Through:      rel.Through,
		ForwardKey:   rel.BackwardKey,
		BackwardKey:  rel.ForwardKey,
		RelatedName:  rel.Name,
		RelatedModel: model,
		Description:  rel.Description,
		Implicit:     true,
	}

	for name, filter := range ManyToManyFilters(rel) {
		model.Filters[name] = filter
	}

	return relatedModel.AddField(rel.RelatedName, mirror)
}
