package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/roach88/formulary/internal/arith"
	"github.com/roach88/formulary/internal/compiler"
	"github.com/roach88/formulary/internal/formula"
	"github.com/roach88/formulary/internal/store"
)

// ImportOptions holds flags for the import command.
type ImportOptions struct {
	*RootOptions
	Replace bool
}

// NewImportCommand creates the import command.
func NewImportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ImportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import formulas from a YAML export",
		Long: `Import formulas from a YAML file produced by export.

Imported formulas go through the same validation and dry-run evaluation as
CUE definitions. Names that already exist are skipped unless --replace.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(opts, args[0], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Replace, "replace", false, "overwrite formulas whose names already exist")

	return cmd
}

func runImport(opts *ImportOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	data, err := os.ReadFile(path)
	if err != nil {
		_ = formatter.Error(ErrCodeNotFound, err.Error(), nil)
		return WrapExitError(ExitCommandError, "read import file", err)
	}

	var doc formulaDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		_ = formatter.Error(ErrCodeLoadFailed, err.Error(), nil)
		return WrapExitError(ExitCommandError, "parse import file", err)
	}
	if len(doc.Formulas) == 0 {
		_ = formatter.Error(ErrCodeNoFiles, "no formulas in import file", nil)
		return NewExitError(ExitCommandError, "no formulas in import file")
	}

	// Same validation path as CUE definitions
	var validationErrs []compiler.ValidationError
	eng := formula.NewEngine(arith.New())
	formulas := make([]formula.Formula, 0, len(doc.Formulas))
	for _, entry := range doc.Formulas {
		f := entry.toFormula()
		errs := compiler.Validate(&f)
		if len(errs) == 0 && !eng.Test(f.Expression, f.Variables) {
			errs = append(errs, compiler.ValidationError{
				Field:   "expression",
				Message: fmt.Sprintf("formula %q failed test evaluation", f.Name),
				Code:    compiler.ErrExpressionRejected,
			})
		}
		validationErrs = append(validationErrs, errs...)
		formulas = append(formulas, f)
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
	for _, f := range formulas {
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

	fmt.Fprintf(formatter.Writer, "✓ Imported %d formula(s)\n", len(summary.Loaded))
	for _, name := range summary.Skipped {
		fmt.Fprintf(formatter.Writer, "  skipped %s (already exists)\n", name)
	}
	return nil
}
