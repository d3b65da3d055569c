package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/formulary/internal/arith"
	"github.com/roach88/formulary/internal/formula"
)

// CalcResult holds the output of the calc command.
type CalcResult struct {
	Expression  string  `json:"expression"`
	Substituted string  `json:"substituted"`
	Result      float64 `json:"result"`
}

// NewCalcCommand creates the calc command.
func NewCalcCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calc <expression>",
		Short: "Evaluate an expression directly",
		Long: `Evaluate an arithmetic expression without storing anything.

Mathematical symbols are expanded before evaluation: π, ², ³, and √.

Example:
  formulary calc "π * 2²"
  formulary calc "√(16) + 1"`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCalc(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runCalc(opts *RootOptions, expression string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd.OutOrStdout(), cmd.ErrOrStderr())

	eng := formula.NewEngine(arith.New())

	// No bindings: calc only expands symbols
	substituted := formula.Substitute(expression, nil)
	formatter.VerboseLog("substituted: %s", substituted)

	result, err := eng.Evaluate(expression, nil)
	if err != nil {
		_ = formatter.Error(ErrCodeEvaluation, err.Error(), nil)
		return WrapExitError(ExitFailure, "evaluation failed", err)
	}

	if formatter.Format == "json" {
		return formatter.JSON(CalcResult{
			Expression:  expression,
			Substituted: substituted,
			Result:      result,
		})
	}

	fmt.Fprintf(formatter.Writer, "%s\n", formula.FormatNumber(result))
	return nil
}
