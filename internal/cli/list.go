package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/roach88/formulary/internal/formula"
)

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "list",
		Short:         "List stored formulas in insertion order",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(rootOpts, cmd)
		},
	}

	return cmd
}

func runList(opts *RootOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd.OutOrStdout(), cmd.ErrOrStderr())

	s, err := openStore(opts)
	if err != nil {
		_ = formatter.Error(ErrCodeNotFound, err.Error(), nil)
		return err
	}
	defer s.Close()

	formulas, err := s.GetFormulas(cmd.Context())
	if err != nil {
		_ = formatter.Error(ErrCodeGeneric, err.Error(), nil)
		return WrapExitError(ExitCommandError, "list formulas", err)
	}

	if formatter.Format == "json" {
		if formulas == nil {
			formulas = []formula.Formula{}
		}
		return formatter.JSON(formulas)
	}

	if len(formulas) == 0 {
		fmt.Fprintln(formatter.Writer, "No formulas stored.")
		return nil
	}

	w := tabwriter.NewWriter(formatter.Writer, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tEXPRESSION\tVARIABLES")
	for _, f := range formulas {
		vars := strings.Join(f.Variables, ", ")
		if vars == "" {
			vars = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", f.Name, f.Expression, vars)
	}
	return w.Flush()
}
