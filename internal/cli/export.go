package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/roach88/formulary/internal/formula"
)

// formulaDocument is the YAML file format for formula import/export.
type formulaDocument struct {
	Formulas []formulaEntry `yaml:"formulas"`
}

// formulaEntry is one formula in the YAML document.
type formulaEntry struct {
	Name       string    `yaml:"name"`
	Expression string    `yaml:"expression"`
	Variables  []string  `yaml:"variables,omitempty"`
	Created    time.Time `yaml:"created,omitempty"`
}

// ExportOptions holds flags for the export command.
type ExportOptions struct {
	*RootOptions
	Out string
}

// NewExportCommand creates the export command.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ExportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           "export",
		Short:         "Export the formula collection to YAML",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(opts, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Out, "out", "o", "", "output file (default stdout)")

	return cmd
}

func runExport(opts *ExportOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	s, err := openStore(opts.RootOptions)
	if err != nil {
		_ = formatter.Error(ErrCodeNotFound, err.Error(), nil)
		return err
	}
	defer s.Close()

	formulas, err := s.GetFormulas(cmd.Context())
	if err != nil {
		_ = formatter.Error(ErrCodeGeneric, err.Error(), nil)
		return WrapExitError(ExitCommandError, "read formulas", err)
	}

	doc := formulaDocument{Formulas: make([]formulaEntry, 0, len(formulas))}
	for _, f := range formulas {
		doc.Formulas = append(doc.Formulas, formulaEntry{
			Name:       f.Name,
			Expression: f.Expression,
			Variables:  f.Variables,
			Created:    f.Created,
		})
	}

	data, err := yaml.Marshal(&doc)
	if err != nil {
		_ = formatter.Error(ErrCodeGeneric, err.Error(), nil)
		return WrapExitError(ExitCommandError, "marshal formulas", err)
	}

	if opts.Out == "" {
		_, err := formatter.Writer.Write(data)
		return err
	}

	if err := os.WriteFile(opts.Out, data, 0o644); err != nil {
		_ = formatter.Error(ErrCodeWriteFailed, err.Error(), nil)
		return WrapExitError(ExitCommandError, "write export file", err)
	}

	formatter.VerboseLog("wrote %d formula(s) to %s", len(doc.Formulas), opts.Out)
	fmt.Fprintf(formatter.Writer, "✓ Exported %d formula(s) to %s\n", len(doc.Formulas), opts.Out)
	return nil
}

// toFormula converts a YAML entry to the domain type.
func (e formulaEntry) toFormula() formula.Formula {
	created := e.Created
	if created.IsZero() {
		created = time.Now().UTC()
	}
	return formula.Formula{
		Name:       e.Name,
		Expression: e.Expression,
		Variables:  e.Variables,
		Created:    created,
	}
}
