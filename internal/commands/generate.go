package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/schungx/loco/internal/catalog"
	"github.com/schungx/loco/internal/exec"
	"github.com/schungx/loco/internal/generator"
	"github.com/schungx/loco/internal/inflect"
	"github.com/schungx/loco/internal/output"
)

// GenerateCmd creates the generate command.
func GenerateCmd() *cobra.Command {
	var (
		dryRun bool
		force  bool
		skip   bool
		diff   bool
		root   string
		noFmt  bool
	)

	cmd := &cobra.Command{
		Use:     "generate <type> <name> [field:type]...",
		Aliases: []string{"g", "gen"},
		Short:   "Generate code from a built-in generator",
		Long: `Generate renders a generator's templates against the given name and
fields, creating new files and injecting snippets into existing ones at
anchor markers. The whole invocation is validated up front: a missing
anchor, a conflicting job or a bad template aborts before any file is
touched. Re-running the same invocation is safe: injections that are
already present are skipped.`,
		Example: `  loco generate model post title:string body:text
  loco generate scaffold post title:string! published:bool
  loco generate controller comments --dry-run
  loco generate worker mailer_dispatch --force`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := generateOptions{
				DryRun: dryRun,
				Force:  force,
				Skip:   skip,
				Diff:   diff,
				Root:   root,
				NoFmt:  noFmt,
			}
			return runGenerate(cmd, args[0], args[1], args[2:], opts)
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show what would be generated without writing")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite existing files without prompting")
	cmd.Flags().BoolVar(&skip, "skip", false, "Keep existing files without prompting")
	cmd.Flags().BoolVar(&diff, "diff", false, "Show a diff before deciding on existing files")
	cmd.Flags().StringVar(&root, "root", ".", "Project root to generate into")
	cmd.Flags().BoolVar(&noFmt, "no-fmt", false, "Skip running go fmt after generation")

	return cmd
}

type generateOptions struct {
	DryRun bool
	Force  bool
	Skip   bool
	Diff   bool
	Root   string
	NoFmt  bool
}

func runGenerate(cmd *cobra.Command, genType, rawName string, fieldArgs []string, opts generateOptions) error {
	ctx := cmd.Context()

	cat, err := catalog.Builtin()
	if err != nil {
		return err
	}
	jobs, err := cat.Jobs(genType)
	if err != nil {
		return err
	}

	id, err := inflect.Resolve(rawName)
	if err != nil {
		return fmt.Errorf("name %q: %w", rawName, err)
	}

	fields, err := ParseFields(fieldArgs)
	if err != nil {
		return err
	}

	cfg, err := LoadAppConfig(opts.Root)
	if err != nil {
		return err
	}

	rc, err := generator.BuildContext(id, fields, map[string]string{"app": cfg.Name})
	if err != nil {
		return err
	}

	ops, err := generator.BuildOperations(generator.NewRenderer(), opts.Root, jobs, rc)
	if err != nil {
		return err
	}

	output.Info(fmt.Sprintf("Generating %s %q (%d jobs)", genType, id.Get(inflect.Singular), len(ops)))

	// Existing Create targets go through conflict resolution before the
	// executor runs, so the up-front validation never trips AlreadyExists
	// for a file the user has already decided about. Dry runs report the
	// would-be conflict instead of prompting.
	var kept []generator.ExecutionResult
	if !opts.DryRun && !opts.Force {
		ops, kept, err = resolveConflicts(ops, opts)
		if err != nil {
			return err
		}
		if ops == nil {
			output.Warn("Cancelled, nothing was written")
			return nil
		}
	}

	report, err := generator.Execute(ctx, ops, generator.ExecuteOptions{
		DryRun: opts.DryRun,
		Force:  opts.Force,
		Writer: cmd.OutOrStdout(),
	})
	if err != nil {
		return err
	}
	report.Results = append(report.Results, kept...)

	summarize(report, opts.DryRun)
	if report.Failed() {
		return fmt.Errorf("generation finished with errors")
	}

	if !opts.DryRun && !opts.NoFmt {
		runner := exec.NewRunner(&exec.Options{Dir: opts.Root})
		if err := (exec.GoFmt{}).Run(ctx, runner); err != nil {
			output.Warn(fmt.Sprintf("go fmt failed: %v", err))
		}
	}
	return nil
}

// resolveConflicts asks the configured strategy about every Create job
// whose target already exists. It returns the (possibly shortened) job
// list plus a Skipped result for each file the user chose to keep, so
// the final report still accounts for every job. A nil job list means
// the user cancelled the invocation.
func resolveConflicts(ops []generator.Operation, opts generateOptions) ([]generator.Operation, []generator.ExecutionResult, error) {
	resolver, err := generator.NewConflictResolver(opts.Force, opts.Skip, opts.Diff)
	if err != nil {
		return nil, nil, err
	}

	remaining := make([]generator.Operation, 0, len(ops))
	var skipped []generator.ExecutionResult
	for _, op := range ops {
		create, ok := op.(*generator.CreateFileOp)
		if !ok || create.Overwrite {
			remaining = append(remaining, op)
			continue
		}
		existing, err := os.ReadFile(create.DestPath)
		if os.IsNotExist(err) {
			remaining = append(remaining, op)
			continue
		}
		if err != nil {
			return nil, nil, fmt.Errorf("reading %s: %w", create.DestPath, err)
		}

		resolution, err := resolver.Resolve(create.DestPath, existing, create.Content)
		if err != nil {
			return nil, nil, err
		}
		switch resolution {
		case generator.ResolutionOverwrite:
			create.Overwrite = true
			remaining = append(remaining, op)
		case generator.ResolutionSkip:
			skipped = append(skipped, generator.ExecutionResult{
				Path:    create.DestPath,
				Outcome: generator.OutcomeSkipped,
				Reason:  "kept existing file",
			})
			output.Verbose(fmt.Sprintf("keeping existing %s", create.DestPath))
		case generator.ResolutionCancel:
			return nil, nil, nil
		}
	}
	return remaining, skipped, nil
}

func summarize(report *generator.Report, dryRun bool) {
	var written, skipped, failed int
	for _, res := range report.Results {
		switch res.Outcome {
		case generator.OutcomeWritten, generator.OutcomeWouldWrite:
			written++
		case generator.OutcomeSkipped:
			skipped++
		case generator.OutcomeFailed:
			failed++
		}
	}

	switch {
	case failed > 0:
		output.Error(fmt.Sprintf("%d written, %d skipped, %d failed", written, skipped, failed))
	case dryRun:
		output.Info(fmt.Sprintf("Dry run: %d would be written, %d skipped", written, skipped))
	default:
		output.Success(fmt.Sprintf("%d written, %d skipped", written, skipped))
	}
}
