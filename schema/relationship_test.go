package schema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tameorm/tame/schema"
	"github.com/tameorm/tame/utils/tests"
)

type Essay struct {
	Author *tests.Author `tame:"fk:blog.Author;related_name:writings"`
}

type Poem struct {
	Author *tests.Author `tame:"fk:blog.Author;related_name:writings"`
}

type Review struct {
	Post *tests.Post `tame:"fk:blog.Post;to_field:title"`
}

type Draft struct {
	Post *tests.Post `tame:"fk:blog.Post;to_field:missing"`
}

type Address struct {
	Profile *tests.Profile `tame:"fk:blog.Profile"`
}

type Zone struct {
	Profile *tests.Profile `tame:"fk:blog.Profile"`
}

type Badge struct {
	Profile *tests.Profile `tame:"fk:blog.Profile;to_field:author"`
}

type Person struct {
	Friends []*Person `tame:"m2m:blog.Person"`
}

type Order struct {
	Buyer *tests.Author `tame:"fk:blog.Author;related_name:orders;column:buyer"`
	Items []*tests.Tag  `tame:"m2m:blog.Tag;through:order_items;related_name:orders"`
}

func newApp(t *testing.T, name string, dests ...interface{}) *schema.App {
	t.Helper()
	app := schema.NewApp(name)
	for _, dest := range dests {
		model, err := schema.Parse(dest, schema.NamingStrategy{})
		require.NoError(t, err)
		require.NoError(t, app.Register(model))
	}
	return app
}

func resolve(t *testing.T, dests ...interface{}) (schema.Apps, error) {
	t.Helper()
	apps := schema.Apps{"blog": newApp(t, "blog", dests...)}
	resolver := &schema.Resolver{Apps: apps, Namer: schema.NamingStrategy{}}
	return apps, resolver.Resolve("blog")
}

func model(t *testing.T, apps schema.Apps, ref string) *schema.Model {
	t.Helper()
	m, err := apps.Lookup(ref)
	require.NoError(t, err)
	return m
}

func TestResolveForeignKey(t *testing.T) {
	apps, err := resolve(t, &tests.Author{}, &tests.Post{}, &tests.Tag{})
	require.NoError(t, err)

	author, post := model(t, apps, "blog.Author"), model(t, apps, "blog.Post")

	rel := post.FieldsMap["author"]
	assert.Same(t, author, rel.RelatedModel)
	assert.Equal(t, "id", rel.ToField)
	assert.Same(t, author.PK(), rel.ToFieldInstance)
	assert.Equal(t, author.PK().DataType, rel.DataType)
	assert.Equal(t, "author_id", rel.SourceField)

	key := post.FieldsMap["author_id"]
	require.NotNil(t, key)
	assert.Equal(t, author.PK().DataType, key.DataType)
	assert.Equal(t, "author_id", key.SourceField)
	assert.False(t, key.PrimaryKey)
	assert.False(t, key.Unique)
	assert.False(t, key.Generated)
	assert.Same(t, rel, key.Reference)
	assert.Same(t, key, rel.KeyField)
	assert.True(t, key.IsKeyField())
	assert.Same(t, post, key.Model)

	backward := author.FieldsMap["posts"]
	require.NotNil(t, backward)
	assert.Equal(t, schema.BackwardFKField, backward.Kind)
	assert.Same(t, post, backward.RelatedModel)
	assert.Equal(t, "author_id", backward.RelationField)
	assert.Equal(t, "author_id", backward.SourceField)
	assert.Same(t, author.PK(), backward.ToFieldInstance)
	assert.Equal(t, []string{"posts"}, author.BackwardFKFields())
}

func TestResolveKeyFieldIsIndependentCopy(t *testing.T) {
	apps, err := resolve(t, &tests.Author{}, &tests.Post{}, &tests.Tag{})
	require.NoError(t, err)

	author, post := model(t, apps, "blog.Author"), model(t, apps, "blog.Post")
	key := post.FieldsMap["author_id"]
	key.MaxLength = 99
	key.Description = "changed"

	assert.Zero(t, author.PK().MaxLength)
	assert.Empty(t, author.PK().Description)
	assert.True(t, author.PK().PrimaryKey)
	assert.Equal(t, "id", author.PK().Name)
}

func TestResolveTwiceIsNoop(t *testing.T) {
	apps, err := resolve(t, &tests.Author{}, &tests.Post{}, &tests.Tag{})
	require.NoError(t, err)

	author, post, tag := model(t, apps, "blog.Author"), model(t, apps, "blog.Post"), model(t, apps, "blog.Tag")
	counts := []int{len(author.Fields), len(post.Fields), len(tag.Fields)}
	for _, m := range []*schema.Model{author, post, tag} {
		assert.True(t, m.Inited())
	}

	resolver := &schema.Resolver{Apps: apps}
	require.NoError(t, resolver.Resolve("blog"))
	assert.Equal(t, counts, []int{len(author.Fields), len(post.Fields), len(tag.Fields)})
}

func TestResolveManyToMany(t *testing.T) {
	apps, err := resolve(t, &tests.Author{}, &tests.Post{}, &tests.Tag{})
	require.NoError(t, err)

	post, tag := model(t, apps, "blog.Post"), model(t, apps, "blog.Tag")

	tags := post.FieldsMap["tags"]
	assert.Equal(t, "post_tag", tags.Through)
	assert.Equal(t, "tag_id", tags.ForwardKey)
	assert.Equal(t, "post_id", tags.BackwardKey)
	assert.Equal(t, "posts", tags.RelatedName)
	assert.Same(t, tag, tags.RelatedModel)
	assert.False(t, tags.Implicit)

	mirror := tag.FieldsMap["posts"]
	require.NotNil(t, mirror)
	assert.Equal(t, schema.ManyToManyField, mirror.Kind)
	assert.True(t, mirror.Implicit)
	assert.Equal(t, "blog.Post", mirror.ModelName)
	assert.Equal(t, "post_tag", mirror.Through)
	assert.Equal(t, "post_id", mirror.ForwardKey)
	assert.Equal(t, "tag_id", mirror.BackwardKey)
	assert.Equal(t, "tags", mirror.RelatedName)
	assert.Same(t, post, mirror.RelatedModel)

	for _, name := range []string{"tags", "tags__not", "tags__in", "tags__not_in"} {
		filter, ok := post.Filters[name]
		if assert.True(t, ok, name) {
			assert.Equal(t, "tag_id", filter.Field)
			assert.Equal(t, "post_id", filter.BackwardKey)
			assert.Equal(t, "post_tag", filter.Table.Name)
		}
	}
	assert.Empty(t, tag.Filters)
}

func TestResolveSelfManyToMany(t *testing.T) {
	apps, err := resolve(t, &Person{})
	require.NoError(t, err)

	person := model(t, apps, "blog.Person")
	friends := person.FieldsMap["friends"]
	assert.Equal(t, "person_id", friends.ForwardKey)
	assert.Equal(t, "person_rel_id", friends.BackwardKey)
	assert.Equal(t, "person_person", friends.Through)

	mirror := person.FieldsMap["persons"]
	require.NotNil(t, mirror)
	assert.True(t, mirror.Implicit)
	assert.Equal(t, "person_rel_id", mirror.ForwardKey)
	assert.Equal(t, "person_id", mirror.BackwardKey)
	assert.Equal(t, []string{"friends", "persons"}, person.M2MFields())
}

func TestResolveOneToOnePrimaryKey(t *testing.T) {
	apps, err := resolve(t, &tests.Author{}, &tests.Profile{})
	require.NoError(t, err)

	author, profile := model(t, apps, "blog.Author"), model(t, apps, "blog.Profile")
	assert.Equal(t, "author_id", profile.PKAttr)

	key := profile.PK()
	assert.True(t, key.PrimaryKey)
	assert.True(t, key.Unique)
	assert.Equal(t, author.PK().DataType, key.DataType)

	backward := author.FieldsMap["profile"]
	require.NotNil(t, backward)
	assert.Equal(t, schema.BackwardOneToOneField, backward.Kind)
	assert.True(t, backward.Null)
	assert.Equal(t, []string{"profile"}, author.BackwardO2OFields())
}

func TestResolveKeyTargetIsRelation(t *testing.T) {
	cases := []struct {
		name  string
		dests []interface{}
		ref   string
	}{
		{"referrer first", []interface{}{&tests.Author{}, &Address{}, &tests.Profile{}}, "blog.Address"},
		{"referrer last", []interface{}{&tests.Author{}, &tests.Profile{}, &Address{}}, "blog.Address"},
		{"sorts after target", []interface{}{&Zone{}, &tests.Author{}, &tests.Profile{}}, "blog.Zone"},
		{"sorts after target last", []interface{}{&tests.Author{}, &tests.Profile{}, &Zone{}}, "blog.Zone"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			apps, err := resolve(t, c.dests...)
			require.NoError(t, err)

			author, profile, referrer := model(t, apps, "blog.Author"), model(t, apps, "blog.Profile"), model(t, apps, c.ref)
			assert.Equal(t, "author_id", profile.PKAttr)
			assert.Equal(t, []string{"profile"}, author.BackwardO2OFields())
			assert.Empty(t, referrer.O2OFields())

			key := referrer.FieldsMap["profile_id"]
			require.NotNil(t, key)
			assert.Equal(t, schema.ScalarField, key.Kind)
			assert.Equal(t, author.PK().DataType, key.DataType)
			assert.False(t, key.PrimaryKey)
			assert.False(t, key.Unique)

			rel := referrer.FieldsMap["profile"]
			assert.Equal(t, "author_id", rel.ToField)
			assert.Same(t, profile.PK(), rel.ToFieldInstance)
			assert.Equal(t, author.PK().DataType, rel.DataType)
		})
	}
}

func TestResolveToFieldIsRelation(t *testing.T) {
	apps, err := resolve(t, &Badge{}, &tests.Author{}, &tests.Profile{})
	require.NoError(t, err)

	author, profile, badge := model(t, apps, "blog.Author"), model(t, apps, "blog.Profile"), model(t, apps, "blog.Badge")
	rel := badge.FieldsMap["profile"]
	assert.Equal(t, "author_id", rel.ToField)
	assert.Same(t, profile.FieldsMap["author_id"], rel.ToFieldInstance)

	key := badge.FieldsMap["profile_id"]
	require.NotNil(t, key)
	assert.Equal(t, schema.ScalarField, key.Kind)
	assert.Equal(t, author.PK().DataType, key.DataType)
}

func TestResolveToField(t *testing.T) {
	apps, err := resolve(t, &tests.Author{}, &tests.Post{}, &tests.Tag{}, &tests.Comment{})
	require.NoError(t, err)

	post, comment := model(t, apps, "blog.Post"), model(t, apps, "blog.Comment")

	key := comment.FieldsMap["post_id"]
	require.NotNil(t, key)
	assert.Equal(t, schema.Char, key.DataType)
	assert.Equal(t, 64, key.MaxLength)
	assert.True(t, key.Null)
	assert.False(t, key.Unique)
	assert.Same(t, post.FieldsMap["slug"], comment.FieldsMap["post"].ToFieldInstance)
	assert.Equal(t, schema.BackwardFKField, post.FieldsMap["comments"].Kind)

	parent := comment.FieldsMap["parent_id"]
	require.NotNil(t, parent)
	assert.Equal(t, schema.UUID, parent.DataType)
	assert.Nil(t, comment.FieldsMap["comments"])
	assert.Equal(t, []string{"parent", "post"}, comment.FKFields())
}

func TestResolveToFieldErrors(t *testing.T) {
	_, err := resolve(t, &tests.Author{}, &tests.Post{}, &tests.Tag{}, &Review{})
	tests.AssertConfigurationError(t, err, `field "title" in model "Post" is not unique`)

	_, err = resolve(t, &tests.Author{}, &tests.Post{}, &tests.Tag{}, &Draft{})
	tests.AssertConfigurationError(t, err, `there is no field named "missing" in model "Post"`)
}

func TestResolveDuplicateBackwardRelation(t *testing.T) {
	_, err := resolve(t, &tests.Author{}, &Essay{}, &Poem{})
	tests.AssertConfigurationError(t, err, `backward relation "writings" duplicates in model Author`)
}

func TestResolveBadReferences(t *testing.T) {
	for _, ref := range []string{"blog", "blog.Author.Extra", ".Author", "blog."} {
		t.Run(ref, func(t *testing.T) {
			app := newApp(t, "blog", &tests.Author{})
			post, err := schema.Parse(&Essay{}, nil)
			require.NoError(t, err)
			post.FieldsMap["author"].ModelName = ref
			require.NoError(t, app.Register(post))

			err = (&schema.Resolver{Apps: schema.Apps{"blog": app}}).Resolve("blog")
			tests.AssertConfigurationError(t, err, "'"+ref+"' is not a valid model reference")
		})
	}
}

func TestResolveUnknownReferences(t *testing.T) {
	apps := schema.Apps{"blog": newApp(t, "blog", &tests.Author{})}

	_, err := apps.Lookup("shop.Item")
	tests.AssertConfigurationError(t, err, "No app with name 'shop' registered.")

	_, err = apps.Lookup("blog.Item")
	tests.AssertConfigurationError(t, err, "No model with name 'Item' registered in app 'blog'.")
}

func TestResolveAcrossApps(t *testing.T) {
	apps := schema.Apps{"blog": newApp(t, "blog", &tests.Author{}, &tests.Post{}, &tests.Tag{})}
	resolver := &schema.Resolver{Apps: apps}
	require.NoError(t, resolver.Resolve("blog"))

	author, tag := model(t, apps, "blog.Author"), model(t, apps, "blog.Tag")
	tagFields := len(tag.Fields)

	apps["shop"] = newApp(t, "shop", &Order{})
	require.NoError(t, resolver.Resolve("shop"))

	order := model(t, apps, "shop.Order")
	assert.Equal(t, "buyer", order.FieldsMap["buyer_id"].SourceField)
	assert.Equal(t, "buyer_id", author.FieldsMap["orders"].RelationField)
	assert.Equal(t, "buyer", author.FieldsMap["orders"].SourceField)

	mirror := tag.FieldsMap["orders"]
	require.NotNil(t, mirror)
	assert.Equal(t, "shop.Order", mirror.ModelName)
	assert.Equal(t, "order_items", mirror.Through)
	assert.Equal(t, tagFields+1, len(tag.Fields))

	// blog models are not resolved again
	require.NoError(t, resolver.Resolve("blog"))
	assert.Len(t, author.BackwardFKFields(), 2)
}

func TestRegisterDuplicateModel(t *testing.T) {
	app := newApp(t, "blog", &tests.Author{})
	author, err := schema.Parse(&tests.Author{}, nil)
	require.NoError(t, err)
	tests.AssertConfigurationError(t, app.Register(author), `model "Author" already registered in app "blog"`)
}
