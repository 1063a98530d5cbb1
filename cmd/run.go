package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kilianp07/ridesim/app"
	"github.com/kilianp07/ridesim/infra/logger"
)

var runOpts struct {
	output       string
	exportDir    string
	exportFormat string
	journal      bool
	tickInterval int
}

var runCmd = &cobra.Command{
	Use:   "run [dataset...]",
	Short: "Simulate datasets and write their solutions",
	Long: `Simulate each dataset and write <name>.out into the output directory.
Without arguments every input file of simulation.input_dir is run.`,
	RunE: runRun,
}

func init() {
	f := runCmd.Flags()
	f.StringVarP(&runOpts.output, "output", "o", "", `output directory, "-" for stdout`)
	f.StringVar(&runOpts.exportDir, "export-dir", "", "write per-job outcome reports to this directory")
	f.StringVar(&runOpts.exportFormat, "export-format", "", "outcome report format (csv|json)")
	f.BoolVar(&runOpts.journal, "journal", false, "record every assignment in the journal")
	f.IntVar(&runOpts.tickInterval, "tick-interval", 0, "publish tick samples every n ticks")
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	f := cmd.Flags()
	if f.Changed("export-dir") {
		cfg.Export.Dir = runOpts.exportDir
	}
	if f.Changed("export-format") {
		cfg.Export.Format = runOpts.exportFormat
	}
	if f.Changed("journal") {
		cfg.Journal.Enabled = runOpts.journal
	}
	if f.Changed("tick-interval") {
		cfg.Simulation.TickInterval = runOpts.tickInterval
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	opts := []app.Option{app.WithStdout(cmd.OutOrStdout())}
	if runOpts.output != "" {
		opts = append(opts, app.WithOutput(runOpts.output))
	}
	svc, err := app.New(cfg, opts...)
	if err != nil {
		return err
	}
	defer func() {
		if err := svc.Close(); err != nil {
			logger.New("cli").Errorf("service close: %v", err)
		}
	}()

	paths, err := svc.Datasets(args)
	if err != nil {
		return err
	}
	results, err := svc.Run(cmd.Context(), paths)
	table := cmd.OutOrStdout()
	if runOpts.output == app.StdoutPath {
		table = cmd.ErrOrStderr()
	}
	if werr := writeTotals(table, results); werr != nil && err == nil {
		err = werr
	}
	return err
}

func writeTotals(w io.Writer, results []app.DatasetResult) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "DATASET\tSCORE\tASSIGNED\tREMAINING\tRUN ID")
	total := 0
	for _, r := range results {
		total += r.Result.Score
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%s\n",
			r.Name, r.Result.Score, r.Report.Assigned, len(r.Result.Remaining), r.Result.RunID)
	}
	fmt.Fprintf(tw, "TOTAL\t%d\t\t\t\n", total)
	return tw.Flush()
}
