package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/formulary/internal/arith"
	"github.com/roach88/formulary/internal/formula"
)

// CheckOptions holds flags for the check command.
type CheckOptions struct {
	*RootOptions
	Vars string
}

// CheckResult holds the output of the check command.
type CheckResult struct {
	Expression string   `json:"expression"`
	Variables  []string `json:"variables,omitempty"`
	Valid      bool     `json:"valid"`
}

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CheckOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "check <expression>",
		Short: "Check that an expression evaluates with placeholder values",
		Long: `Check an expression without saving it.

Every declared variable is bound to the placeholder value 1 and the result
is discarded; only whether the evaluator accepts the expression is reported.

Example:
  formulary check "π * r²" --vars r
  formulary check "base * height / 2" --vars base,height`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Vars, "vars", "", "comma-separated declared variables")

	return cmd
}

func runCheck(opts *CheckOptions, expression string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	variables := splitVars(opts.Vars)
	for _, name := range variables {
		if !formula.ValidIdentifier(name) {
			ierr := &formula.InvalidIdentifierError{Name: name, Field: "variable"}
			_ = formatter.Error(ErrCodeBadBinding, ierr.Error(), nil)
			return WrapExitError(ExitCommandError, "invalid variable", ierr)
		}
	}

	eng := formula.NewEngine(arith.New())
	valid := eng.Test(expression, variables)

	if formatter.Format == "json" {
		if err := formatter.JSON(CheckResult{
			Expression: expression,
			Variables:  variables,
			Valid:      valid,
		}); err != nil {
			return err
		}
	} else if valid {
		fmt.Fprintln(formatter.Writer, "✓ Expression is valid")
	} else {
		fmt.Fprintln(formatter.Writer, "✗ Expression was rejected by the evaluator")
	}

	if !valid {
		return NewExitError(ExitFailure, "expression was rejected by the evaluator")
	}
	return nil
}

// splitVars parses the --vars flag into a variable list.
func splitVars(vars string) []string {
	if strings.TrimSpace(vars) == "" {
		return nil
	}
	parts := strings.Split(vars, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
