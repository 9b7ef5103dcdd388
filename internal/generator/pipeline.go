package generator

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Mode says whether a job creates a new file or edits an existing one.
type Mode int

const (
	Create Mode = iota
	InjectAt
)

func (m Mode) String() string {
	if m == Create {
		return "create"
	}
	return "inject"
}

// TemplateJob is one generator step as supplied by the catalog: a template
// body, a destination path template, and the materialization mode. Jobs
// are immutable and consumed exactly once per invocation.
type TemplateJob struct {
	Template     string // template identifier for error messages
	Body         string // template text
	PathTemplate string // destination path, expanded with the same context
	Mode         Mode
	Anchor       string    // InjectAt only
	Placement    Placement // InjectAt only
	Index        int       // 1-based anchor occurrence; 0 requires a unique anchor
	Overwrite    bool      // Create only
}

// BuildOperations renders every job against the shared context and
// returns the ordered operations. Rendering happens for the whole list
// before anything touches the filesystem, so a TemplateError always
// aborts the invocation with zero writes.
func BuildOperations(r *Renderer, root string, jobs []TemplateJob, rc *RenderContext) ([]Operation, error) {
	ops := make([]Operation, 0, len(jobs))

	for _, job := range jobs {
		content, err := r.RenderString(job.Template, job.Body, rc)
		if err != nil {
			return nil, err
		}

		rawPath, err := r.RenderString(job.Template+":path", job.PathTemplate, rc)
		if err != nil {
			return nil, err
		}
		dest := filepath.Join(root, filepath.FromSlash(strings.TrimSpace(string(rawPath))))

		switch job.Mode {
		case Create:
			ops = append(ops, &CreateFileOp{
				DestPath:  dest,
				Content:   content,
				Mode:      0644,
				Overwrite: job.Overwrite,
			})
		case InjectAt:
			index := -1
			if job.Index > 0 {
				index = job.Index - 1
			}
			ops = append(ops, &InjectFileOp{
				DestPath:  dest,
				Anchor:    job.Anchor,
				Placement: job.Placement,
				Content:   content,
				Index:     index,
			})
		default:
			return nil, fmt.Errorf("template %s: unknown job mode %d", job.Template, job.Mode)
		}
	}

	return ops, nil
}
