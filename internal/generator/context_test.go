package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schungx/loco/internal/inflect"
)

func TestBuildContext(t *testing.T) {
	id, err := inflect.Resolve("blog_post")
	require.NoError(t, err)

	fields := []FieldSpec{
		{Name: "title", Type: "string", Nullable: false},
		{Name: "body", Type: "text", Nullable: true},
		{Name: "author", Type: "references", Reference: true},
	}

	rc, err := BuildContext(id, fields, map[string]string{"app": "myapp"})
	require.NoError(t, err)

	assert.Equal(t, "blog_post", rc.Name.Singular)
	assert.Equal(t, "blog_posts", rc.Name.Plural)
	assert.Equal(t, "BlogPost", rc.Name.Pascal)
	assert.Equal(t, "BlogPosts", rc.Name.PascalPlural)
	assert.Equal(t, "blogPost", rc.Name.Camel)
	assert.Equal(t, "blog-post", rc.Name.Kebab)
	assert.Equal(t, "myapp", rc.App)
	assert.False(t, rc.Timestamp.IsZero())

	require.Len(t, rc.Fields, 3)
	assert.Equal(t, "Title", rc.Fields[0].Pascal)
	assert.Equal(t, "title", rc.Fields[0].Name)
	assert.True(t, rc.Fields[2].Reference)
}

func TestBuildContextFieldNamesAreSnakeCase(t *testing.T) {
	id, err := inflect.Resolve("user")
	require.NoError(t, err)

	rc, err := BuildContext(id, []FieldSpec{
		{Name: "FirstName", Type: "string"},
		{Name: "lastName", Type: "string"},
		{Name: "api_key", Type: "string"},
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, "first_name", rc.Fields[0].Name)
	assert.Equal(t, "last_name", rc.Fields[1].Name)
	assert.Equal(t, "api_key", rc.Fields[2].Name)
}

func TestBuildContextPreservesFieldOrder(t *testing.T) {
	id, err := inflect.Resolve("post")
	require.NoError(t, err)

	fields := []FieldSpec{
		{Name: "zeta", Type: "string"},
		{Name: "alpha", Type: "string"},
		{Name: "mid", Type: "int"},
	}
	rc, err := BuildContext(id, fields, nil)
	require.NoError(t, err)

	names := make([]string, 0, len(rc.Fields))
	for _, f := range rc.Fields {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"zeta", "alpha", "mid"}, names)
}

func TestBuildContextDuplicateField(t *testing.T) {
	id, err := inflect.Resolve("post")
	require.NoError(t, err)

	tests := []struct {
		name   string
		fields []FieldSpec
	}{
		{
			name: "exact duplicate",
			fields: []FieldSpec{
				{Name: "title", Type: "string"},
				{Name: "title", Type: "text"},
			},
		},
		{
			name: "case folded duplicate",
			fields: []FieldSpec{
				{Name: "title", Type: "string"},
				{Name: "Title", Type: "string"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildContext(id, tt.fields, nil)
			assert.ErrorIs(t, err, ErrDuplicateField)
		})
	}
}

func TestBuildContextCopiesOptions(t *testing.T) {
	id, err := inflect.Resolve("post")
	require.NoError(t, err)

	opts := map[string]string{"app": "a"}
	rc, err := BuildContext(id, nil, opts)
	require.NoError(t, err)

	opts["app"] = "mutated"
	assert.Equal(t, "a", rc.Options["app"])
}
