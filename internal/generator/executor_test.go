package generator_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/schungx/loco/internal/generator"
)

func TestExecuteDryRun(t *testing.T) {
	ctx := context.Background()
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "model.go")

	ops := []generator.Operation{
		&generator.CreateFileOp{DestPath: path, Content: []byte("package models\n"), Mode: 0644},
	}

	var buf bytes.Buffer
	report, err := generator.Execute(ctx, ops, generator.ExecuteOptions{DryRun: true, Writer: &buf})
	if err != nil {
		t.Fatalf("dry run failed: %v", err)
	}

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("dry run created a file")
	}
	if len(report.Results) != 1 || report.Results[0].Outcome != generator.OutcomeWouldWrite {
		t.Errorf("unexpected report: %+v", report.Results)
	}
	if report.Results[0].Diff == "" {
		t.Error("dry run result missing diff")
	}
	if !strings.Contains(buf.String(), "[dry-run]") {
		t.Errorf("output missing dry-run marker: %s", buf.String())
	}
}

func TestExecuteCreatesFile(t *testing.T) {
	ctx := context.Background()
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "models", "post.go")

	ops := []generator.Operation{
		&generator.CreateFileOp{DestPath: path, Content: []byte("package models\n"), Mode: 0644},
	}

	report, err := generator.Execute(ctx, ops, generator.ExecuteOptions{Writer: &bytes.Buffer{}})
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if report.Failed() {
		t.Fatalf("report has failures: %+v", report.Results)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("file not created: %v", err)
	}
	if string(content) != "package models\n" {
		t.Errorf("wrong content: %q", content)
	}
}

func TestExecuteExistingFileAborts(t *testing.T) {
	ctx := context.Background()
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "post.go")

	original := []byte("hand-written\n")
	if err := os.WriteFile(path, original, 0644); err != nil {
		t.Fatal(err)
	}

	ops := []generator.Operation{
		&generator.CreateFileOp{DestPath: path, Content: []byte("generated\n"), Mode: 0644},
	}

	report, err := generator.Execute(ctx, ops, generator.ExecuteOptions{Writer: &bytes.Buffer{}})
	if !errors.Is(err, generator.ErrAlreadyExists) {
		t.Fatalf("want ErrAlreadyExists, got %v", err)
	}
	if report != nil {
		t.Error("aborted invocation should not produce a report")
	}

	content, _ := os.ReadFile(path)
	if !bytes.Equal(content, original) {
		t.Error("existing file was modified")
	}
}

func TestExecuteForceOverwrites(t *testing.T) {
	ctx := context.Background()
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "post.go")

	if err := os.WriteFile(path, []byte("old\n"), 0644); err != nil {
		t.Fatal(err)
	}

	ops := []generator.Operation{
		&generator.CreateFileOp{DestPath: path, Content: []byte("new\n"), Mode: 0644},
	}

	_, err := generator.Execute(ctx, ops, generator.ExecuteOptions{Force: true, Writer: &bytes.Buffer{}})
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}

	content, _ := os.ReadFile(path)
	if string(content) != "new\n" {
		t.Errorf("file not overwritten: %q", content)
	}
}

func TestExecuteInjectTwiceIsIdempotent(t *testing.T) {
	ctx := context.Background()
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "routes.go")

	if err := os.WriteFile(path, []byte("// loco:generator:routes\n"), 0644); err != nil {
		t.Fatal(err)
	}

	ops := []generator.Operation{
		&generator.InjectFileOp{
			DestPath:  path,
			Anchor:    "routes",
			Placement: generator.After,
			Content:   []byte("r.Resource(\"/posts\")\n"),
			Index:     -1,
		},
	}

	report, err := generator.Execute(ctx, ops, generator.ExecuteOptions{Writer: &bytes.Buffer{}})
	if err != nil {
		t.Fatalf("first run failed: %v", err)
	}
	if report.Results[0].Outcome != generator.OutcomeWritten {
		t.Fatalf("first run outcome: %v", report.Results[0].Outcome)
	}
	afterFirst, _ := os.ReadFile(path)

	report, err = generator.Execute(ctx, ops, generator.ExecuteOptions{Writer: &bytes.Buffer{}})
	if err != nil {
		t.Fatalf("second run failed: %v", err)
	}
	res := report.Results[0]
	if res.Outcome != generator.OutcomeSkipped || res.Reason != "already present" {
		t.Errorf("second run should skip: %+v", res)
	}

	afterSecond, _ := os.ReadFile(path)
	if !bytes.Equal(afterFirst, afterSecond) {
		t.Error("second run changed the file")
	}
}

func TestExecuteInjectMissingTarget(t *testing.T) {
	ctx := context.Background()
	tmpDir := t.TempDir()

	ops := []generator.Operation{
		&generator.InjectFileOp{
			DestPath:  filepath.Join(tmpDir, "missing.go"),
			Anchor:    "routes",
			Placement: generator.After,
			Content:   []byte("x\n"),
			Index:     -1,
		},
	}

	_, err := generator.Execute(ctx, ops, generator.ExecuteOptions{Writer: &bytes.Buffer{}})
	if !errors.Is(err, generator.ErrTargetNotFound) {
		t.Fatalf("want ErrTargetNotFound, got %v", err)
	}
}

func TestExecuteCreateThenInjectSameInvocation(t *testing.T) {
	ctx := context.Background()
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "routes.go")

	ops := []generator.Operation{
		&generator.CreateFileOp{
			DestPath: path,
			Content:  []byte("// loco:generator:routes\n"),
			Mode:     0644,
		},
		&generator.InjectFileOp{
			DestPath:  path,
			Anchor:    "routes",
			Placement: generator.After,
			Content:   []byte("registered\n"),
			Index:     -1,
		},
	}

	report, err := generator.Execute(ctx, ops, generator.ExecuteOptions{Writer: &bytes.Buffer{}})
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if report.Failed() {
		t.Fatalf("report has failures: %+v", report.Results)
	}

	content, _ := os.ReadFile(path)
	want := "// loco:generator:routes\nregistered\n"
	if string(content) != want {
		t.Errorf("got %q, want %q", content, want)
	}
}

func TestExecuteInjectBeforeCreateIsPlanConflict(t *testing.T) {
	ctx := context.Background()
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "routes.go")

	ops := []generator.Operation{
		&generator.InjectFileOp{
			DestPath:  path,
			Anchor:    "routes",
			Placement: generator.After,
			Content:   []byte("x\n"),
			Index:     -1,
		},
		&generator.CreateFileOp{
			DestPath: path,
			Content:  []byte("// loco:generator:routes\n"),
			Mode:     0644,
		},
	}

	_, err := generator.Execute(ctx, ops, generator.ExecuteOptions{Writer: &bytes.Buffer{}})
	if !errors.Is(err, generator.ErrPlanConflict) {
		t.Fatalf("want ErrPlanConflict, got %v", err)
	}
	if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
		t.Error("conflicting plan wrote a file")
	}
}

func TestExecuteDuplicateCreatesIsPlanConflict(t *testing.T) {
	ctx := context.Background()
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "dup.go")

	ops := []generator.Operation{
		&generator.CreateFileOp{DestPath: path, Content: []byte("a\n"), Mode: 0644},
		&generator.CreateFileOp{DestPath: path, Content: []byte("b\n"), Mode: 0644},
	}

	_, err := generator.Execute(ctx, ops, generator.ExecuteOptions{Writer: &bytes.Buffer{}})
	if !errors.Is(err, generator.ErrPlanConflict) {
		t.Fatalf("want ErrPlanConflict, got %v", err)
	}
}

func TestExecuteValidationFailureWritesNothing(t *testing.T) {
	ctx := context.Background()
	tmpDir := t.TempDir()
	goodPath := filepath.Join(tmpDir, "good.go")
	targetPath := filepath.Join(tmpDir, "target.go")

	if err := os.WriteFile(targetPath, []byte("no anchors here\n"), 0644); err != nil {
		t.Fatal(err)
	}

	ops := []generator.Operation{
		&generator.CreateFileOp{DestPath: goodPath, Content: []byte("fine\n"), Mode: 0644},
		&generator.InjectFileOp{
			DestPath:  targetPath,
			Anchor:    "routes",
			Placement: generator.After,
			Content:   []byte("x\n"),
			Index:     -1,
		},
	}

	_, err := generator.Execute(ctx, ops, generator.ExecuteOptions{Writer: &bytes.Buffer{}})
	if !errors.Is(err, generator.ErrAnchorNotFound) {
		t.Fatalf("want ErrAnchorNotFound, got %v", err)
	}
	if _, statErr := os.Stat(goodPath); !os.IsNotExist(statErr) {
		t.Error("earlier op wrote its file despite a later validation failure")
	}
}
