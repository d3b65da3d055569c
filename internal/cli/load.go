package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/formulary/internal/arith"
	"github.com/roach88/formulary/internal/compiler"
	"github.com/roach88/formulary/internal/formula"
	"github.com/roach88/formulary/internal/store"
)

// LoadOptions holds flags for the load command.
type LoadOptions struct {
	*RootOptions
	Replace bool
}

// LoadSummary holds the output of the load command.
type LoadSummary struct {
	Loaded  []string `json:"loaded"`
	Skipped []string `json:"skipped,omitempty"`
}

// NewLoadCommand creates the load command.
func NewLoadCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &LoadOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "load <defs-dir>",
		Short: "Load CUE formula definitions into the store",
		Long: `Load formula definitions from a directory of CUE files.

Each formula is validated (identifier rules, non-empty expression), then
dry-run evaluated with every variable bound to 1. Formulas that fail either
step are rejected and nothing is stored for them. Names that already exist
are skipped unless --replace is given.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLoad(opts, args[0], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Replace, "replace", false, "overwrite formulas whose names already exist")

	return cmd
}

func runLoad(opts *LoadOptions, defsDir string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	loadResult, loadErrors := LoadDefinitions(defsDir)
	if loadResult == nil && len(loadErrors) > 0 {
		var loadErr *LoadError
		if errors.As(loadErrors[0], &loadErr) {
			_ = formatter.Error(loadErr.Code, loadErr.Message, nil)
			return WrapExitError(ExitCommandError, "load definitions", loadErr)
		}
		_ = formatter.Error(ErrCodeGeneric, loadErrors[0].Error(), nil)
		return WrapExitError(ExitCommandError, "load definitions", loadErrors[0])
	}

	formatter.VerboseLog("Found %d CUE file(s) in %s", loadResult.FileCount, defsDir)

	// Collect validation errors across all formulas before touching the store
	var validationErrs []compiler.ValidationError
	eng := formula.NewEngine(arith.New())
	for i := range loadResult.Formulas {
		f := &loadResult.Formulas[i]
		errs := compiler.Validate(f)

		// Dry-run only formulas that passed the schema checks
		if len(errs) == 0 && !eng.Test(f.Expression, f.Variables) {
			errs = append(errs, compiler.ValidationError{
				Field:   "expression",
				Message: fmt.Sprintf("formula %q failed test evaluation", f.Name),
				Code:    compiler.ErrExpressionRejected,
			})
		}
		validationErrs = append(validationErrs, errs...)
	}
	for _, err := range loadErrors {
		validationErrs = append(validationErrs, compiler.ValidationError{
			Field:   "load",
			Message: err.Error(),
			Code:    ErrCodeBuildFailed,
		})
	}

	if len(validationErrs) > 0 {
		return outputValidationErrors(formatter, validationErrs)
	}

	s, err := openStore(opts.RootOptions)
	if err != nil {
		_ = formatter.Error(ErrCodeNotFound, err.Error(), nil)
		return err
	}
	defer s.Close()

	summary := LoadSummary{}
	ctx := cmd.Context()
	for _, f := range loadResult.Formulas {
		var saveErr error
		if opts.Replace {
			saveErr = s.ReplaceFormula(ctx, f)
		} else {
			saveErr = s.SaveFormula(ctx, f)
		}

		if store.IsDuplicateName(saveErr) {
			formatter.VerboseLog("skipping duplicate formula %q", f.Name)
			summary.Skipped = append(summary.Skipped, f.Name)
			continue
		}
		if saveErr != nil {
			_ = formatter.Error(ErrCodeWriteFailed, saveErr.Error(), nil)
			return WrapExitError(ExitCommandError, "save formula", saveErr)
		}
		summary.Loaded = append(summary.Loaded, f.Name)
	}

	if formatter.Format == "json" {
		return formatter.JSON(summary)
	}

	fmt.Fprintf(formatter.Writer, "✓ Loaded %d formula(s)\n", len(summary.Loaded))
	for _, name := range summary.Skipped {
		fmt.Fprintf(formatter.Writer, "  skipped %s (already exists)\n", name)
	}
	return nil
}

// outputValidationErrors reports validation failures and returns exit code 1.
func outputValidationErrors(formatter *OutputFormatter, errs []compiler.ValidationError) error {
	if formatter.Format == "json" {
		_ = formatter.Error(errs[0].Code, errs[0].Message, errs)
		return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(errs)))
	}

	fmt.Fprintln(formatter.Writer, "✗ Validation failed")
	fmt.Fprintln(formatter.Writer)
	for _, err := range errs {
		if err.Line > 0 {
			fmt.Fprintf(formatter.Writer, "line %d\n", err.Line)
		}
		fmt.Fprintf(formatter.Writer, "  %s: %s\n", err.Code, err.Message)
	}

	return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(errs)))
}
