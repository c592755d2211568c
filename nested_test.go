package schemazoid

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func nestedSchemas(t *testing.T) (post, author *Schema) {
	t.Helper()
	post = NewSchema("Post", Def("title", StringField{}))
	author = NewSchema("Author",
		Def("name", StringField{}),
		Def("posts", ModelListField{Schema: post, RelatedName: "author"}),
	)
	return post, author
}

func TestModelField(t *testing.T) {
	inner := NewSchema("Inner", Def("nested_item", StringField{}))
	outer := NewSchema("Outer",
		Def("first_item", StringField{}),
		Def("second_item", ModelField{Schema: inner}),
	)

	m, err := outer.New(map[string]any{
		"first_item":  "Some value",
		"second_item": map[string]any{"nested_item": "Some nested value"},
	})
	require.NoError(t, err)

	value, ok := m.Get("second_item")
	require.True(t, ok)
	nested := value.(*Model)
	require.Equal(t, inner, nested.Schema())

	item, ok := nested.Get("nested_item")
	require.True(t, ok)
	require.Equal(t, "Some nested value", item)
}

func TestModelFieldPassthroughAndNil(t *testing.T) {
	inner := NewSchema("Inner", Def("value", StringField{}))
	f := ModelField{Schema: inner}

	existing, err := inner.New(map[string]any{"value": "x"})
	require.NoError(t, err)

	native, err := f.ToNative(existing)
	require.NoError(t, err)
	require.Same(t, existing, native)

	// nil constructs an empty instance
	native, err = f.ToNative(nil)
	require.NoError(t, err)
	require.Empty(t, native.(*Model).ToDict())

	// an instance of a different schema is not coerced
	other := NewSchema("Other", Def("value", StringField{}))
	stranger, err := other.New()
	require.NoError(t, err)
	_, err = f.ToNative(stranger)
	require.ErrorIs(t, err, ErrConversion)
}

func TestModelListFieldRoundTrip(t *testing.T) {
	post := NewSchema("Post", Def("title", StringField{}))
	blog := NewSchema("Blog", Def("posts", ModelListField{Schema: post}))

	data := map[string]any{
		"posts": []any{
			map[string]any{"title": "A"},
			map[string]any{"title": "B"},
		},
	}

	m, err := blog.New(data)
	require.NoError(t, err)

	value, ok := m.Get("posts")
	require.True(t, ok)
	posts := value.([]*Model)
	require.Len(t, posts, 2)

	serial, err := m.ToSerial()
	require.NoError(t, err)
	require.Equal(t, data, serial)
}

func TestBackReference(t *testing.T) {
	_, author := nestedSchemas(t)

	m, err := author.New(map[string]any{
		"name": "X",
		"posts": []any{
			map[string]any{"title": "A"},
			map[string]any{"title": "B"},
		},
	})
	require.NoError(t, err)

	value, _ := m.Get("posts")
	for _, nested := range value.([]*Model) {
		backref, ok := nested.Get("author")
		require.True(t, ok)
		require.Same(t, m, backref)
	}

	// the back-reference must not appear in the serialized form
	serial, err := m.ToSerial()
	require.NoError(t, err)
	require.Equal(t, []any{
		map[string]any{"title": "A"},
		map[string]any{"title": "B"},
	}, serial["posts"])
}

func TestBackReferenceExcludedEvenWhenDeclared(t *testing.T) {
	// pathological case: the nested schema declares a field under the
	// back-reference name
	post := NewSchema("Post",
		Def("title", StringField{}),
		Def("author", StringField{}),
	)
	author := NewSchema("Author",
		Def("name", StringField{}),
		Def("posts", ModelListField{Schema: post, RelatedName: "author"}),
	)

	m, err := author.New(map[string]any{
		"name":  "X",
		"posts": []any{map[string]any{"title": "A"}},
	})
	require.NoError(t, err)

	value, _ := m.Get("posts")
	nested := value.([]*Model)[0]

	backref, ok := nested.Get("author")
	require.True(t, ok)
	require.Same(t, m, backref)

	serial, err := nested.ToSerial()
	require.NoError(t, err)
	require.NotContains(t, serial, "author")
	require.NotContains(t, nested.ToDict(), "author")
}

func TestModelListFieldRequiresSequence(t *testing.T) {
	post := NewSchema("Post", Def("title", StringField{}))
	f := ModelListField{Schema: post}

	for _, input := range []any{nil, "text", map[string]any{"title": "A"}} {
		_, err := f.ToNative(input)
		require.ErrorIs(t, err, ErrConversion, "input %v", input)
	}
}

func TestNestedConversionFailurePropagates(t *testing.T) {
	inner := NewSchema("Inner", Def("count", IntegerField{}))
	outer := NewSchema("Outer", Def("item", ModelField{Schema: inner}))

	_, err := outer.New(map[string]any{
		"item": map[string]any{"count": "not a number"},
	})
	require.Error(t, err)

	// the failure stays attributed to the nested field
	var convErr *ConversionError
	require.ErrorAs(t, err, &convErr)
	require.Equal(t, "count", convErr.Field)
}
