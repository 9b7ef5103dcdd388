// Package types is the registry of field type tags a generator request
// may use. It maps each tag to the Go type emitted in models and the
// column type emitted in migrations.
package types

import (
	"fmt"
	"sort"
)

// Info contains metadata about one field type tag.
type Info struct {
	GoType string // "string", "time.Time", "uuid.UUID"
	Column string // migration column type
	Import string // import path needed by the Go type, "" for builtins
}

var registry = map[string]Info{
	"string": {GoType: "string", Column: "varchar(255)"},
	"text":   {GoType: "string", Column: "text"},
	"int":    {GoType: "int", Column: "integer"},
	"bigint": {GoType: "int64", Column: "bigint"},
	"float":  {GoType: "float64", Column: "double precision"},
	"bool":   {GoType: "bool", Column: "boolean"},
	"ts":     {GoType: "time.Time", Column: "timestamp", Import: "time"},
	"date":   {GoType: "time.Time", Column: "date", Import: "time"},
	"uuid":   {GoType: "uuid.UUID", Column: "uuid", Import: "github.com/google/uuid"},
	"json":   {GoType: "json.RawMessage", Column: "jsonb", Import: "encoding/json"},
	"binary": {GoType: "[]byte", Column: "bytea"},
}

// ignoredFields are generated automatically by the runtime; user-supplied
// duplicates are dropped with a warning, matching loco's behavior.
var ignoredFields = map[string]bool{
	"created_at": true,
	"updated_at": true,
	"create_at":  true,
	"update_at":  true,
}

// Lookup retrieves type info by tag.
func Lookup(tag string) (Info, bool) {
	info, ok := registry[tag]
	return info, ok
}

// GoType returns the Go type for a tag. Exposed as a template filter, so
// an unknown tag fails the render rather than emitting bad code.
func GoType(tag string) (string, error) {
	info, ok := registry[tag]
	if !ok {
		return "", fmt.Errorf("unknown field type: %s", tag)
	}
	return info.GoType, nil
}

// ColumnType returns the migration column type for a tag.
func ColumnType(tag string) (string, error) {
	info, ok := registry[tag]
	if !ok {
		return "", fmt.Errorf("unknown field type: %s", tag)
	}
	return info.Column, nil
}

// IsIgnored reports whether a field name is auto-generated and should be
// dropped from user input.
func IsIgnored(name string) bool {
	return ignoredFields[name]
}

// Tags returns all known type tags, sorted, for error messages.
func Tags() []string {
	tags := make([]string, 0, len(registry))
	for tag := range registry {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// CollectImports gathers the unique import paths needed by a list of tags.
func CollectImports(tags []string) []string {
	set := make(map[string]bool)
	for _, tag := range tags {
		if info, ok := registry[tag]; ok && info.Import != "" {
			set[info.Import] = true
		}
	}

	imports := make([]string, 0, len(set))
	for imp := range set {
		imports = append(imports, imp)
	}
	sort.Strings(imports)
	return imports
}
