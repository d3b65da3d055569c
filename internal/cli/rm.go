package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/formulary/internal/store"
)

// NewRemoveCommand creates the rm command.
func NewRemoveCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "rm <name>",
		Short:         "Delete a stored formula",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRemove(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runRemove(opts *RootOptions, name string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd.OutOrStdout(), cmd.ErrOrStderr())

	s, err := openStore(opts)
	if err != nil {
		_ = formatter.Error(ErrCodeNotFound, err.Error(), nil)
		return err
	}
	defer s.Close()

	if err := s.DeleteFormula(cmd.Context(), name); err != nil {
		if store.IsNotFound(err) {
			_ = formatter.Error(ErrCodeNotFound, err.Error(), nil)
			return WrapExitError(ExitCommandError, "formula not found", err)
		}
		_ = formatter.Error(ErrCodeGeneric, err.Error(), nil)
		return WrapExitError(ExitCommandError, "delete formula", err)
	}

	if formatter.Format == "json" {
		return formatter.JSON(map[string]string{"deleted": name})
	}

	fmt.Fprintf(formatter.Writer, "✓ Deleted %s\n", name)
	return nil
}
