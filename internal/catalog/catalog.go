// Package catalog maps generator names to their ordered job lists.
//
// Each built-in generator lives under builtin/<name>/ as a manifest.yml
// plus templates. The catalog is immutable once loaded and is handed to
// the pipeline as a plain dependency, so tests can run against synthetic
// catalogs instead of the built-in set.
package catalog

import (
	"embed"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/schungx/loco/internal/generator"
)

//go:embed builtin
var builtinFS embed.FS

// jobSpec is one job entry in a manifest.
type jobSpec struct {
	Template  string `yaml:"template"`  // template path relative to builtin/
	Path      string `yaml:"path"`      // destination path template
	Mode      string `yaml:"mode"`      // "create" or "inject"
	Anchor    string `yaml:"anchor"`    // inject only
	Placement string `yaml:"placement"` // "before", "after", "replace-block"
	Index     int    `yaml:"index"`     // 1-based anchor occurrence, 0 = unique
	Overwrite bool   `yaml:"overwrite"` // create only
}

// manifest is the YAML layout of builtin/<name>/manifest.yml.
type manifest struct {
	Description string    `yaml:"description"`
	Jobs        []jobSpec `yaml:"jobs"`
}

// Entry is one registered generator.
type Entry struct {
	Name        string
	Description string
	Jobs        []generator.TemplateJob
}

// Catalog is an immutable registry of generators.
type Catalog struct {
	entries map[string]Entry
}

// New creates an empty catalog, for tests and embedding callers.
func New() *Catalog {
	return &Catalog{entries: make(map[string]Entry)}
}

// Register adds a generator. Registering a duplicate name is an error.
func (c *Catalog) Register(e Entry) error {
	if _, ok := c.entries[e.Name]; ok {
		return fmt.Errorf("generator %q already registered", e.Name)
	}
	c.entries[e.Name] = e
	return nil
}

// Jobs returns a copy of the named generator's job list, in catalog order.
func (c *Catalog) Jobs(name string) ([]generator.TemplateJob, error) {
	e, ok := c.entries[name]
	if !ok {
		return nil, fmt.Errorf("unknown generator %q (available: %v)", name, c.Names())
	}
	jobs := make([]generator.TemplateJob, len(e.Jobs))
	copy(jobs, e.Jobs)
	return jobs, nil
}

// Describe returns the generator's one-line description.
func (c *Catalog) Describe(name string) string {
	return c.entries[name].Description
}

// Names lists registered generators, sorted.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.entries))
	for name := range c.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// builtinGenerators is the fixed set shipped with loco.
var builtinGenerators = []string{
	"controller", "mailer", "migration", "model", "scaffold", "task", "worker",
}

// Builtin loads the embedded generator set.
func Builtin() (*Catalog, error) {
	c := New()
	for _, name := range builtinGenerators {
		entry, err := loadEntry(name)
		if err != nil {
			return nil, err
		}
		if err := c.Register(entry); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func loadEntry(name string) (Entry, error) {
	raw, err := builtinFS.ReadFile("builtin/" + name + "/manifest.yml")
	if err != nil {
		return Entry{}, fmt.Errorf("reading manifest for generator %q: %w", name, err)
	}

	var m manifest
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return Entry{}, fmt.Errorf("parsing manifest for generator %q: %w", name, err)
	}
	if len(m.Jobs) == 0 {
		return Entry{}, fmt.Errorf("generator %q declares no jobs", name)
	}

	jobs := make([]generator.TemplateJob, 0, len(m.Jobs))
	for i, spec := range m.Jobs {
		job, err := buildJob(name, i, spec)
		if err != nil {
			return Entry{}, err
		}
		jobs = append(jobs, job)
	}

	return Entry{Name: name, Description: m.Description, Jobs: jobs}, nil
}

func buildJob(genName string, i int, spec jobSpec) (generator.TemplateJob, error) {
	body, err := builtinFS.ReadFile("builtin/" + spec.Template)
	if err != nil {
		return generator.TemplateJob{}, fmt.Errorf("generator %q job %d: reading template %q: %w", genName, i, spec.Template, err)
	}
	if spec.Path == "" {
		return generator.TemplateJob{}, fmt.Errorf("generator %q job %d: missing destination path", genName, i)
	}

	job := generator.TemplateJob{
		Template:     spec.Template,
		Body:         string(body),
		PathTemplate: spec.Path,
		Index:        spec.Index,
		Overwrite:    spec.Overwrite,
	}

	switch spec.Mode {
	case "create", "":
		job.Mode = generator.Create
	case "inject":
		job.Mode = generator.InjectAt
		if spec.Anchor == "" {
			return generator.TemplateJob{}, fmt.Errorf("generator %q job %d: inject mode requires an anchor", genName, i)
		}
		job.Anchor = spec.Anchor
		switch spec.Placement {
		case "before":
			job.Placement = generator.Before
		case "after", "":
			job.Placement = generator.After
		case "replace-block":
			job.Placement = generator.ReplaceBlock
		default:
			return generator.TemplateJob{}, fmt.Errorf("generator %q job %d: unknown placement %q", genName, i, spec.Placement)
		}
	default:
		return generator.TemplateJob{}, fmt.Errorf("generator %q job %d: unknown mode %q", genName, i, spec.Mode)
	}

	return job, nil
}
