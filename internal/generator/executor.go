package generator

import (
	"context"
	"fmt"
	"io"
	"os"
)

// OutcomeKind tags the terminal state of one job.
type OutcomeKind int

const (
	OutcomeWritten OutcomeKind = iota
	OutcomeSkipped
	OutcomeWouldWrite
	OutcomeFailed
)

func (o OutcomeKind) String() string {
	switch o {
	case OutcomeWritten:
		return "written"
	case OutcomeSkipped:
		return "skipped"
	case OutcomeWouldWrite:
		return "would write"
	case OutcomeFailed:
		return "failed"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// ExecutionResult is the per-job entry in the invocation report.
type ExecutionResult struct {
	Path    string
	Outcome OutcomeKind
	Reason  string // set for OutcomeSkipped
	Diff    string // set for OutcomeWouldWrite
	Err     error  // set for OutcomeFailed
}

// Report aggregates every job's result in execution order. No job is ever
// dropped from the report, failures included.
type Report struct {
	Results []ExecutionResult
}

// Failed reports whether any job ended in OutcomeFailed.
func (r *Report) Failed() bool {
	for _, res := range r.Results {
		if res.Outcome == OutcomeFailed {
			return true
		}
	}
	return false
}

// ExecuteOptions configures an invocation.
type ExecuteOptions struct {
	DryRun bool
	Force  bool      // overwrite existing files on Create
	Writer io.Writer // progress output, defaults to os.Stdout
}

// preview is one job's simulated result from the validation pass.
type preview struct {
	old     []byte
	next    []byte
	outcome OutcomeKind
	reason  string
}

// Execute runs the job list sequentially. The whole list is first
// validated against a simulated snapshot of the filesystem; any
// foreseeable error (missing anchor, existing file, conflicting jobs)
// aborts the invocation before a single byte is written. Real I/O errors
// during the write phase are reported per file and do not stop
// independent jobs, but any later job targeting a failed path is aborted.
func Execute(ctx context.Context, ops []Operation, opts ExecuteOptions) (*Report, error) {
	if opts.Writer == nil {
		opts.Writer = os.Stdout
	}

	previews, err := validate(ops, opts.Force)
	if err != nil {
		return nil, err
	}

	report := &Report{Results: make([]ExecutionResult, 0, len(ops))}

	if opts.DryRun {
		for i, op := range ops {
			p := previews[i]
			res := ExecutionResult{Path: op.Path()}
			switch p.outcome {
			case OutcomeSkipped:
				res.Outcome = OutcomeSkipped
				res.Reason = p.reason
				fmt.Fprintf(opts.Writer, "- [dry-run] skip %s (%s)\n", op.Path(), p.reason)
			default:
				res.Outcome = OutcomeWouldWrite
				res.Diff = UnifiedDiff(op.Path(), op.Path(), p.old, p.next)
				fmt.Fprintf(opts.Writer, "✓ [dry-run] %s\n", op.Description())
			}
			report.Results = append(report.Results, res)
		}
		return report, nil
	}

	failedPaths := make(map[string]bool)
	for _, op := range ops {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		if failedPaths[op.Path()] {
			res := ExecutionResult{
				Path:    op.Path(),
				Outcome: OutcomeFailed,
				Err:     fmt.Errorf("target %s was not produced by an earlier job", op.Path()),
			}
			report.Results = append(report.Results, res)
			fmt.Fprintf(opts.Writer, "✗ %s (skipped: earlier job failed)\n", op.Description())
			continue
		}

		res, err := op.Execute(ctx, opts.Force)
		report.Results = append(report.Results, res)
		if err != nil {
			failedPaths[op.Path()] = true
			fmt.Fprintf(opts.Writer, "✗ %s: %v\n", op.Description(), err)
			continue
		}
		if res.Outcome == OutcomeSkipped {
			fmt.Fprintf(opts.Writer, "- skip %s (%s)\n", op.Path(), res.Reason)
		} else {
			fmt.Fprintf(opts.Writer, "✓ %s\n", op.Description())
		}
	}

	return report, nil
}

// validate simulates the whole job list against an overlay of the current
// filesystem and returns each job's preview. It performs no writes.
func validate(ops []Operation, force bool) ([]preview, error) {
	// First Create job per path, for distinguishing PlanConflict from
	// TargetNotFound and for catching duplicate creates.
	createIndex := make(map[string]int)
	for i, op := range ops {
		if _, ok := op.(*CreateFileOp); !ok {
			continue
		}
		if first, dup := createIndex[op.Path()]; dup {
			return nil, fmt.Errorf("%w: jobs %d and %d both create %s", ErrPlanConflict, first, i, op.Path())
		}
		createIndex[op.Path()] = i
	}

	overlay := make(map[string][]byte)
	present := make(map[string]bool)

	load := func(path string) ([]byte, bool, error) {
		if exists, ok := present[path]; ok {
			return overlay[path], exists, nil
		}
		content, err := os.ReadFile(path)
		switch {
		case err == nil:
			overlay[path] = content
			present[path] = true
		case os.IsNotExist(err):
			present[path] = false
		default:
			return nil, false, fmt.Errorf("%w: reading %s: %v", ErrIOFailure, path, err)
		}
		return overlay[path], present[path], nil
	}

	previews := make([]preview, len(ops))
	for i, op := range ops {
		current, exists, err := load(op.Path())
		if err != nil {
			return nil, err
		}

		next, outcome, reason, err := op.Preview(current, exists, force)
		if err != nil {
			if ci, ok := createIndex[op.Path()]; ok && ci > i {
				return nil, fmt.Errorf("%w: job %d injects into %s before job %d creates it", ErrPlanConflict, i, op.Path(), ci)
			}
			return nil, fmt.Errorf("validating %s: %w", op.Description(), err)
		}

		previews[i] = preview{old: current, next: next, outcome: outcome, reason: reason}
		overlay[op.Path()] = next
		present[op.Path()] = true
	}
	return previews, nil
}
