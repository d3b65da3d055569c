package cli

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/formulary/internal/formula"
	"github.com/roach88/formulary/internal/store"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	Limit int
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           "history",
		Short:         "Show recent evaluations, newest first",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(opts, cmd)
		},
	}

	cmd.Flags().IntVar(&opts.Limit, "limit", 20, "maximum records to show (0 for all)")

	return cmd
}

func runHistory(opts *HistoryOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	s, err := openStore(opts.RootOptions)
	if err != nil {
		_ = formatter.Error(ErrCodeNotFound, err.Error(), nil)
		return err
	}
	defer s.Close()

	evals, err := s.ListEvaluations(cmd.Context(), opts.Limit)
	if err != nil {
		_ = formatter.Error(ErrCodeGeneric, err.Error(), nil)
		return WrapExitError(ExitCommandError, "list evaluations", err)
	}

	if formatter.Format == "json" {
		if evals == nil {
			evals = []store.Evaluation{}
		}
		return formatter.JSON(evals)
	}

	if len(evals) == 0 {
		fmt.Fprintln(formatter.Writer, "No evaluations recorded.")
		return nil
	}

	w := tabwriter.NewWriter(formatter.Writer, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "WHEN\tFORMULA\tEXPRESSION\tRESULT")
	for _, ev := range evals {
		name := ev.FormulaName
		if name == "" {
			name = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			ev.Created.Format(time.RFC3339),
			name,
			ev.Expression,
			formula.FormatNumber(ev.Result),
		)
	}
	return w.Flush()
}
