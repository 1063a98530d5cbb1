package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kilianp07/ridesim/pkg/dataset"
)

var genOpts struct {
	dataset.GenerateOptions
	output string
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Write a random dataset",
	Args:  cobra.NoArgs,
	RunE:  runGenerate,
}

func init() {
	f := generateCmd.Flags()
	f.IntVar(&genOpts.Rows, "rows", 0, "grid rows (default 100)")
	f.IntVar(&genOpts.Cols, "cols", 0, "grid columns (default 100)")
	f.IntVar(&genOpts.Vehicles, "vehicles", 0, "fleet size (default 10)")
	f.IntVar(&genOpts.Jobs, "jobs", 0, "number of rides (default 200)")
	f.IntVar(&genOpts.Bonus, "bonus", 0, "on-time start bonus")
	f.IntVar(&genOpts.MaxTicks, "ticks", 0, "simulation horizon (default 1000)")
	f.IntVar(&genOpts.Slack, "slack", 0, "maximum extra ticks in each window (default 50)")
	f.Uint64Var(&genOpts.Seed, "seed", 1, "random seed")
	f.StringVarP(&genOpts.output, "output", "o", "-", `destination file, "-" for stdout`)
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	opts := genOpts.GenerateOptions
	opts.SetDefaults()
	p, err := dataset.Generate(opts)
	if err != nil {
		return fmt.Errorf("generate: %w", err)
	}
	if genOpts.output == "-" {
		return dataset.Write(cmd.OutOrStdout(), p)
	}
	f, err := os.Create(genOpts.output)
	if err != nil {
		return err
	}
	if err := dataset.Write(f, p); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
