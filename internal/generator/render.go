package generator

import (
	"bytes"
	"embed"
	"fmt"
	"os"
	"strings"
	"sync"
	"text/template"

	"github.com/schungx/loco/internal/inflect"
	"github.com/schungx/loco/internal/types"
)

// Renderer parses and executes templates with caching. Rendering is pure:
// identical (template, context) pairs always produce identical bytes;
// timestamps and other per-invocation values come from the context, never
// from the renderer itself.
type Renderer struct {
	funcMap template.FuncMap
	cache   map[string]*template.Template
	mu      sync.RWMutex
}

// NewRenderer creates a renderer with the built-in filter functions.
func NewRenderer() *Renderer {
	return &Renderer{
		funcMap: defaultFuncMap(),
		cache:   make(map[string]*template.Template),
	}
}

// RenderString renders a template given as a string. The name identifies
// the template in cache keys and error messages.
func (r *Renderer) RenderString(name, templateStr string, data any) ([]byte, error) {
	return r.render("string", name, func() (string, error) {
		return templateStr, nil
	}, data)
}

// RenderFS renders a template from an embedded filesystem.
func (r *Renderer) RenderFS(fsys embed.FS, path string, data any) ([]byte, error) {
	return r.render("fs", path, func() (string, error) {
		b, err := fsys.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("reading template from fs %q: %w", path, err)
		}
		return string(b), nil
	}, data)
}

// RenderFile renders a template from disk (for --template overrides).
func (r *Renderer) RenderFile(path string, data any) ([]byte, error) {
	return r.render("file", path, func() (string, error) {
		b, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("reading template file %q: %w", path, err)
		}
		return string(b), nil
	}, data)
}

// ClearCache drops all parsed templates.
func (r *Renderer) ClearCache() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cache = make(map[string]*template.Template)
}

func (r *Renderer) render(kind, name string, load func() (string, error), data any) ([]byte, error) {
	cacheKey := kind + ":" + name

	r.mu.RLock()
	tmpl, ok := r.cache[cacheKey]
	r.mu.RUnlock()

	if !ok {
		body, err := load()
		if err != nil {
			return nil, err
		}

		tmpl, err = template.New(name).Funcs(r.funcMap).Option("missingkey=error").Parse(body)
		if err != nil {
			return nil, &TemplateError{Template: name, Message: err.Error(), Err: err}
		}

		r.mu.Lock()
		r.cache[cacheKey] = tmpl
		r.mu.Unlock()
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, &TemplateError{Template: name, Message: err.Error(), Err: err}
	}
	return buf.Bytes(), nil
}

// defaultFuncMap wires the inflection and type-registry filters templates
// use to request a different variant of the current value inline.
func defaultFuncMap() template.FuncMap {
	return template.FuncMap{
		// Inflection
		"singular": inflect.Singularize,
		"plural":   inflect.Pluralize,
		"camel":    inflect.CamelCase,
		"pascal":   inflect.PascalCase,
		"snake":    inflect.SnakeCase,
		"kebab":    inflect.KebabCase,

		// String manipulation
		"upper":     strings.ToUpper,
		"lower":     strings.ToLower,
		"trim":      strings.TrimSpace,
		"quote":     Quote,
		"join":      strings.Join,
		"contains":  strings.Contains,
		"hasPrefix": strings.HasPrefix,
		"hasSuffix": strings.HasSuffix,
		"replace":   strings.ReplaceAll,

		// Type registry
		"goType":  types.GoType,
		"colType": types.ColumnType,
		"imports": FieldImports,

		// Utilities
		"default": Default,
	}
}

// FieldImports returns the extra import paths a field list needs, for
// the import blocks of generated models.
func FieldImports(fields []FieldContext) []string {
	tags := make([]string, 0, len(fields))
	for _, f := range fields {
		tags = append(tags, f.Type)
	}
	return types.CollectImports(tags)
}

// Quote wraps a string in double quotes.
func Quote(s string) string {
	return fmt.Sprintf("%q", s)
}

// Default returns defaultVal when val is nil or an empty string.
func Default(defaultVal, val any) any {
	if val == nil {
		return defaultVal
	}
	if s, ok := val.(string); ok && s == "" {
		return defaultVal
	}
	return val
}
