package generator

import (
	"fmt"
	"strings"
	"time"

	"github.com/schungx/loco/internal/inflect"
)

// FieldSpec is one user-supplied field: a name, a type tag from the type
// registry, and modifier flags. Order matters: it determines the emitted
// column/property order.
type FieldSpec struct {
	Name      string
	Type      string
	Nullable  bool
	Unique    bool
	Indexed   bool
	Reference bool
}

// NameContext exposes every identifier variant under a fixed key, so
// templates can write {{.Name.Pascal}} or {{.Name.Plural}}.
type NameContext struct {
	Raw          string
	Singular     string
	Plural       string
	Camel        string
	CamelPlural  string
	Pascal       string
	PascalPlural string
	Kebab        string
	KebabPlural  string
	Scream       string
	Human        string
}

// FieldContext is one field as seen by templates: its own name variants
// plus type tag and flags.
type FieldContext struct {
	Name      string // snake_case, as given
	Pascal    string
	Camel     string
	Plural    string
	Type      string
	Nullable  bool
	Unique    bool
	Indexed   bool
	Reference bool
}

// RenderContext is the environment handed to the renderer. It is built
// once per invocation and must not be mutated afterwards. Every job in
// an invocation sees the identical context, including the timestamp.
type RenderContext struct {
	Name      NameContext
	Fields    []FieldContext
	Options   map[string]string
	Flags     map[string]bool
	App       string // package/app name from project config
	Timestamp time.Time
}

// BuildContext assembles a RenderContext from a resolved identifier, an
// ordered field list and free-form options. Field names that collide
// after case-folding are rejected with ErrDuplicateField.
func BuildContext(id inflect.Identifier, fields []FieldSpec, options map[string]string) (*RenderContext, error) {
	seen := make(map[string]string, len(fields))
	fieldCtxs := make([]FieldContext, 0, len(fields))

	for _, f := range fields {
		folded := strings.ToLower(f.Name)
		if prev, ok := seen[folded]; ok {
			return nil, fmt.Errorf("%w: %q collides with %q", ErrDuplicateField, f.Name, prev)
		}
		seen[folded] = f.Name

		fid, err := inflect.Resolve(f.Name)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", f.Name, err)
		}

		fieldCtxs = append(fieldCtxs, FieldContext{
			Name:      inflect.SnakeCase(f.Name),
			Pascal:    fid.Get(inflect.Pascal),
			Camel:     fid.Get(inflect.Camel),
			Plural:    fid.Get(inflect.Plural),
			Type:      f.Type,
			Nullable:  f.Nullable,
			Unique:    f.Unique,
			Indexed:   f.Indexed,
			Reference: f.Reference,
		})
	}

	opts := make(map[string]string, len(options))
	flags := make(map[string]bool)
	for k, v := range options {
		opts[k] = v
	}

	return &RenderContext{
		Name: NameContext{
			Raw:          id.Raw,
			Singular:     id.Get(inflect.Singular),
			Plural:       id.Get(inflect.Plural),
			Camel:        id.Get(inflect.Camel),
			CamelPlural:  id.Get(inflect.CamelPlural),
			Pascal:       id.Get(inflect.Pascal),
			PascalPlural: id.Get(inflect.PascalPlural),
			Kebab:        id.Get(inflect.Kebab),
			KebabPlural:  id.Get(inflect.KebabPlural),
			Scream:       id.Get(inflect.Scream),
			Human:        id.Get(inflect.Human),
		},
		Fields:    fieldCtxs,
		Options:   opts,
		Flags:     flags,
		App:       opts["app"],
		Timestamp: time.Now().UTC(),
	}, nil
}

// EnableFlag marks a feature flag before the context is handed to the
// pipeline. Must not be called once rendering has started.
func (c *RenderContext) EnableFlag(name string) {
	c.Flags[name] = true
}
