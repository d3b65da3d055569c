package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/roach88/formulary/internal/arith"
	"github.com/roach88/formulary/internal/formula"
	"github.com/roach88/formulary/internal/store"
)

// EvalResult holds the output of the eval command.
type EvalResult struct {
	Formula     string             `json:"formula"`
	Bindings    map[string]float64 `json:"bindings,omitempty"`
	Substituted string             `json:"substituted"`
	Result      float64            `json:"result"`
}

// NewEvalCommand creates the eval command.
func NewEvalCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eval <name> [var=value ...]",
		Short: "Evaluate a stored formula with variable bindings",
		Long: `Evaluate a stored formula.

Bindings are given as var=value pairs and must only name variables the
formula declares. The evaluation is appended to the history log.

Example:
  formulary eval circle_area r=2
  formulary eval cylinder_volume r=3 h=5`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEval(rootOpts, args[0], args[1:], cmd)
		},
	}

	return cmd
}

func runEval(opts *RootOptions, name string, pairs []string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd.OutOrStdout(), cmd.ErrOrStderr())

	bindings, err := parseBindings(pairs)
	if err != nil {
		_ = formatter.Error(ErrCodeBadBinding, err.Error(), nil)
		return WrapExitError(ExitCommandError, "parse bindings", err)
	}

	s, err := openStore(opts)
	if err != nil {
		_ = formatter.Error(ErrCodeNotFound, err.Error(), nil)
		return err
	}
	defer s.Close()

	ctx := cmd.Context()
	f, err := s.GetFormula(ctx, name)
	if err != nil {
		if store.IsNotFound(err) {
			_ = formatter.Error(ErrCodeNotFound, err.Error(), nil)
			return WrapExitError(ExitCommandError, "formula not found", err)
		}
		_ = formatter.Error(ErrCodeGeneric, err.Error(), nil)
		return WrapExitError(ExitCommandError, "read formula", err)
	}

	eng := formula.NewEngine(arith.New())
	result, err := eng.EvaluateFormula(f, bindings)
	if err != nil {
		var unbound *formula.UnboundVariableError
		if errors.As(err, &unbound) {
			_ = formatter.Error(ErrCodeBadBinding, err.Error(), nil)
			return WrapExitError(ExitCommandError, "invalid binding", err)
		}
		_ = formatter.Error(ErrCodeEvaluation, err.Error(), nil)
		return WrapExitError(ExitFailure, "evaluation failed", err)
	}

	substituted := formula.Substitute(f.Expression, bindings)

	// History write failures don't invalidate the computed result
	ev := store.Evaluation{
		ID:          uuid.Must(uuid.NewV7()).String(),
		FormulaName: f.Name,
		Expression:  substituted,
		Result:      result,
		Created:     time.Now().UTC(),
	}
	if err := s.WriteEvaluation(ctx, ev); err != nil {
		formatter.VerboseLog("warning: failed to record evaluation: %v", err)
	}

	if formatter.Format == "json" {
		return formatter.JSON(EvalResult{
			Formula:     f.Name,
			Bindings:    bindings,
			Substituted: substituted,
			Result:      result,
		})
	}

	fmt.Fprintf(formatter.Writer, "%s\n", formula.FormatNumber(result))
	return nil
}

// parseBindings parses var=value pairs into Bindings.
func parseBindings(pairs []string) (formula.Bindings, error) {
	bindings := make(formula.Bindings, len(pairs))
	for _, pair := range pairs {
		key, value, found := strings.Cut(pair, "=")
		if !found {
			return nil, fmt.Errorf("binding %q is not of the form var=value", pair)
		}
		if !formula.ValidIdentifier(key) {
			return nil, &formula.InvalidIdentifierError{Name: key, Field: "variable"}
		}
		num, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, fmt.Errorf("binding %q: %q is not a number", pair, value)
		}
		bindings[key] = num
	}
	return bindings, nil
}
