package commands

import (
	"fmt"
	"strings"

	"github.com/schungx/loco/internal/generator"
	"github.com/schungx/loco/internal/output"
	"github.com/schungx/loco/internal/types"
)

// ParseFields converts command-line field arguments into FieldSpecs.
//
// The syntax follows loco's generator grammar:
//
//	title:string        nullable string column
//	title:string!       required (NOT NULL)
//	slug:string^        unique
//	views:int@          indexed
//	note:text?          explicitly nullable
//	user:references     foreign key to the users table
//	email:string:index  spelled-out modifiers after the type
//
// Auto-generated fields (created_at, updated_at) are dropped with a
// warning. Field order is preserved.
func ParseFields(args []string) ([]generator.FieldSpec, error) {
	fields := make([]generator.FieldSpec, 0, len(args))

	for _, arg := range args {
		parts := strings.Split(arg, ":")
		if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
			return nil, fmt.Errorf("invalid field %q: expected name:type[:modifier]", arg)
		}

		name := parts[0]
		if types.IsIgnored(strings.ToLower(name)) {
			output.Warn(fmt.Sprintf("field %q is generated automatically and was ignored", name))
			continue
		}

		spec := generator.FieldSpec{Name: name, Nullable: true}

		typeTag := parts[1]
	suffixes:
		for {
			switch {
			case strings.HasSuffix(typeTag, "!"):
				typeTag = strings.TrimSuffix(typeTag, "!")
				spec.Nullable = false
			case strings.HasSuffix(typeTag, "^"):
				typeTag = strings.TrimSuffix(typeTag, "^")
				spec.Unique = true
				spec.Nullable = false
			case strings.HasSuffix(typeTag, "@"):
				typeTag = strings.TrimSuffix(typeTag, "@")
				spec.Indexed = true
			case strings.HasSuffix(typeTag, "?"):
				typeTag = strings.TrimSuffix(typeTag, "?")
				spec.Nullable = true
			default:
				break suffixes
			}
		}
		spec.Type = typeTag

		if typeTag == "references" {
			spec.Reference = true
			spec.Nullable = false
		} else if _, ok := types.Lookup(typeTag); !ok {
			return nil, fmt.Errorf("field %q: unknown type %q (known: %s)", name, typeTag, strings.Join(types.Tags(), ", "))
		}

		for _, modifier := range parts[2:] {
			switch modifier {
			case "index":
				spec.Indexed = true
			case "unique":
				spec.Unique = true
				spec.Nullable = false
			case "required":
				spec.Nullable = false
			default:
				return nil, fmt.Errorf("field %q: unknown modifier %q", name, modifier)
			}
		}

		fields = append(fields, spec)
	}

	return fields, nil
}
