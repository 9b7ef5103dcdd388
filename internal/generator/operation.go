package generator

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Operation is one file materialization step.
//
// Preview is the pure half: given the target's current contents (exists
// reports whether the file is present), it computes the would-be contents
// without touching the filesystem. The executor uses it for the up-front
// validation pass and for dry-run reporting.
//
// Execute is the only mutating half. It re-reads the target, previews
// against the real state and writes all-or-nothing, so a file is never
// left partially spliced.
type Operation interface {
	Path() string
	Description() string
	Preview(current []byte, exists, force bool) (next []byte, outcome OutcomeKind, reason string, err error)
	Execute(ctx context.Context, force bool) (ExecutionResult, error)
}

// CreateFileOp creates a new file. It fails with ErrAlreadyExists when the
// target is present, unless Overwrite (or the executor's force flag) is set.
type CreateFileOp struct {
	DestPath  string
	Content   []byte
	Mode      fs.FileMode
	Overwrite bool
}

func (op *CreateFileOp) Path() string { return op.DestPath }

func (op *CreateFileOp) Description() string {
	return fmt.Sprintf("create %s (%d bytes)", op.DestPath, len(op.Content))
}

func (op *CreateFileOp) Preview(current []byte, exists, force bool) ([]byte, OutcomeKind, string, error) {
	if op.Content == nil {
		return nil, OutcomeFailed, "", fmt.Errorf("content is nil for file %s", op.DestPath)
	}
	if exists && !op.Overwrite && !force {
		return nil, OutcomeFailed, "", fmt.Errorf("%w: %s", ErrAlreadyExists, op.DestPath)
	}
	return op.Content, OutcomeWritten, "", nil
}

func (op *CreateFileOp) Execute(ctx context.Context, force bool) (ExecutionResult, error) {
	current, err := os.ReadFile(op.DestPath)
	exists := err == nil
	if err != nil && !os.IsNotExist(err) {
		return failed(op.DestPath, err), fmt.Errorf("%w: reading %s: %v", ErrIOFailure, op.DestPath, err)
	}

	next, outcome, reason, err := op.Preview(current, exists, force)
	if err != nil {
		return failed(op.DestPath, err), err
	}
	if outcome == OutcomeSkipped {
		return ExecutionResult{Path: op.DestPath, Outcome: OutcomeSkipped, Reason: reason}, nil
	}

	if err := os.MkdirAll(filepath.Dir(op.DestPath), 0755); err != nil {
		return failed(op.DestPath, err), fmt.Errorf("%w: creating directory for %s: %v", ErrIOFailure, op.DestPath, err)
	}
	if err := writeFileAtomic(op.DestPath, next, op.Mode); err != nil {
		return failed(op.DestPath, err), err
	}
	return ExecutionResult{Path: op.DestPath, Outcome: OutcomeWritten}, nil
}

// InjectFileOp edits an existing file at an anchor marker. The target must
// already exist; a missing file is ErrTargetNotFound, never silently
// created.
type InjectFileOp struct {
	DestPath  string
	Anchor    string
	Placement Placement
	Content   []byte
	Index     int // anchor occurrence, -1 requires a unique anchor
}

func (op *InjectFileOp) Path() string { return op.DestPath }

func (op *InjectFileOp) Description() string {
	return fmt.Sprintf("inject %s at %s%s (%s)", op.DestPath, AnchorPrefix, op.Anchor, op.Placement)
}

func (op *InjectFileOp) Preview(current []byte, exists, force bool) ([]byte, OutcomeKind, string, error) {
	if !exists {
		return nil, OutcomeFailed, "", fmt.Errorf("%w: %s (anchor %s%s)", ErrTargetNotFound, op.DestPath, AnchorPrefix, op.Anchor)
	}

	plan, err := PlanAt(op.DestPath, current, op.Anchor, op.Placement, string(op.Content), op.Index)
	if err != nil {
		return nil, OutcomeFailed, "", err
	}
	if plan.NoOp {
		return current, OutcomeSkipped, "already present", nil
	}
	return plan.Apply(current), OutcomeWritten, "", nil
}

func (op *InjectFileOp) Execute(ctx context.Context, force bool) (ExecutionResult, error) {
	current, err := os.ReadFile(op.DestPath)
	if err != nil {
		if os.IsNotExist(err) {
			err = fmt.Errorf("%w: %s (anchor %s%s)", ErrTargetNotFound, op.DestPath, AnchorPrefix, op.Anchor)
		} else {
			err = fmt.Errorf("%w: reading %s: %v", ErrIOFailure, op.DestPath, err)
		}
		return failed(op.DestPath, err), err
	}

	next, outcome, reason, err := op.Preview(current, true, force)
	if err != nil {
		return failed(op.DestPath, err), err
	}
	if outcome == OutcomeSkipped {
		return ExecutionResult{Path: op.DestPath, Outcome: OutcomeSkipped, Reason: reason}, nil
	}

	info, err := os.Stat(op.DestPath)
	if err != nil {
		return failed(op.DestPath, err), fmt.Errorf("%w: stat %s: %v", ErrIOFailure, op.DestPath, err)
	}
	if err := writeFileAtomic(op.DestPath, next, info.Mode()); err != nil {
		return failed(op.DestPath, err), err
	}
	return ExecutionResult{Path: op.DestPath, Outcome: OutcomeWritten}, nil
}

func failed(path string, err error) ExecutionResult {
	return ExecutionResult{Path: path, Outcome: OutcomeFailed, Err: err}
}

// writeFileAtomic writes via a temp file in the same directory plus
// rename, so a crash mid-write leaves either the old or the new content.
func writeFileAtomic(path string, content []byte, mode fs.FileMode) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("%w: creating temp file for %s: %v", ErrIOFailure, path, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: writing %s: %v", ErrIOFailure, path, err)
	}
	if err := tmp.Chmod(mode); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: setting mode on %s: %v", ErrIOFailure, path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: closing temp file for %s: %v", ErrIOFailure, path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: replacing %s: %v", ErrIOFailure, path, err)
	}
	return nil
}
