package cli

import (
	"fmt"
	"io"
	"os"

	"portfolio/internal/codec"
	"portfolio/internal/domain"
	"portfolio/internal/service"

	"github.com/spf13/cobra"
)

// NewExportCommand creates the export command.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		as     string
		output string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the current portfolio content to a file",
		Long: `Export skills, projects, experience, and education from the selected
backend. An empty store is seeded first.

A YAML export can be used as SEED_FILE for another deployment.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(rootOpts, as, output, cmd)
		},
	}

	cmd.Flags().StringVar(&as, "as", "yaml", "export format (json|yaml|xlsx)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")

	return cmd
}

func runExport(opts *RootOptions, as, output string, cmd *cobra.Command) error {
	exporter, err := codec.ExporterFor(as)
	if err != nil {
		return &ExitError{Code: ExitCommandError, Message: "invalid --as", Err: err}
	}

	a, err := bootstrap(opts, cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	if _, err := a.seedStore(cmd); err != nil {
		return err
	}

	ds, err := service.NewPortfolioService(a.store, nil).Snapshot(cmd.Context())
	if err != nil {
		return &ExitError{Code: ExitFailure, Message: "read content", Err: err}
	}

	if output == "" {
		if err := exporter.Export(ds, cmd.OutOrStdout()); err != nil {
			return &ExitError{Code: ExitFailure, Message: fmt.Sprintf("export %s", exporter.Format()), Err: err}
		}
		return nil
	}

	f, err := os.Create(output)
	if err != nil {
		return &ExitError{Code: ExitCommandError, Message: "create output", Err: err}
	}
	return exportAndClose(exporter, ds, f)
}

// exportAndClose writes ds to wc and reports a failed close as a failed export
func exportAndClose(exporter codec.Exporter, ds *domain.Dataset, wc io.WriteCloser) error {
	if err := exporter.Export(ds, wc); err != nil {
		wc.Close()
		return &ExitError{Code: ExitFailure, Message: fmt.Sprintf("export %s", exporter.Format()), Err: err}
	}
	if err := wc.Close(); err != nil {
		return &ExitError{Code: ExitFailure, Message: "write output", Err: err}
	}
	return nil
}
