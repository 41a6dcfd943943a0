package cli

import (
	"encoding/json"
	"fmt"

	"portfolio/internal/repository"
	"portfolio/internal/seed"

	"github.com/spf13/cobra"
)

// SeedOutput is the JSON form of the seed command's result
type SeedOutput struct {
	Backend repository.Kind `json:"backend"`
	seed.Result
}

// NewSeedCommand creates the seed command.
func NewSeedCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Populate an empty store and report what was written",
		Long: `Select the storage backend and seed it if it holds no skills.

Useful for preparing a database file before deployment. With the memory
backend the data is discarded when the command exits.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(rootOpts, cmd)
		},
	}

	return cmd
}

func runSeed(opts *RootOptions, cmd *cobra.Command) error {
	a, err := bootstrap(opts, cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	res, err := a.seedStore(cmd)
	if err != nil {
		return err
	}

	out := SeedOutput{Backend: a.store.Kind(), Result: res}
	w := cmd.OutOrStdout()

	if opts.Format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	if !res.Seeded {
		fmt.Fprintf(w, "backend %s already seeded, nothing written\n", out.Backend)
		return nil
	}
	fmt.Fprintf(w, "seeded backend %s\n", out.Backend)
	fmt.Fprintf(w, "  skills:     %d\n", res.Counts.Skills)
	fmt.Fprintf(w, "  projects:   %d\n", res.Counts.Projects)
	fmt.Fprintf(w, "  experience: %d\n", res.Counts.Experience)
	fmt.Fprintf(w, "  education:  %d\n", res.Counts.Education)
	return nil
}
