package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	apijournal "github.com/kilianp07/ridesim/api/journal"
	"github.com/kilianp07/ridesim/core/journal"
	"github.com/kilianp07/ridesim/infra/logger"
)

var journalOpts struct {
	vehicle int
	job     int
	run     string
	dataset string
	serve   string
	token   string
}

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Query recorded assignments",
	RunE:  runJournal,
}

func init() {
	f := journalCmd.Flags()
	f.IntVar(&journalOpts.vehicle, "vehicle", 0, "only assignments to this vehicle")
	f.IntVar(&journalOpts.job, "job", 0, "only assignments of this job")
	f.StringVar(&journalOpts.run, "run", "", "only assignments of this run id")
	f.StringVar(&journalOpts.dataset, "dataset", "", "only assignments of this dataset")
	f.StringVar(&journalOpts.serve, "serve", "", "serve "+apijournal.Path+" on this address instead of printing")
	f.StringVar(&journalOpts.token, "token", "", "bearer token required by the HTTP endpoint")
	rootCmd.AddCommand(journalCmd)
}

func runJournal(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	jc := cfg.Journal
	store, err := journal.Open(journal.Options{
		Backend:    jc.Backend,
		Path:       jc.Path,
		MaxSizeMB:  jc.MaxSizeMB,
		MaxBackups: jc.MaxBackups,
		MaxAgeDays: jc.MaxAgeDays,
	})
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	defer store.Close()

	if journalOpts.serve != "" {
		return serveJournal(cmd.Context(), store)
	}
	q := journal.Query{RunID: journalOpts.run, Dataset: journalOpts.dataset}
	if cmd.Flags().Changed("vehicle") {
		q.Vehicle = &journalOpts.vehicle
	}
	if cmd.Flags().Changed("job") {
		q.Job = &journalOpts.job
	}
	records, err := store.Query(cmd.Context(), q)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	for _, r := range records {
		if err := enc.Encode(r); err != nil {
			return err
		}
	}
	return nil
}

func serveJournal(ctx context.Context, store journal.Store) error {
	mux := http.NewServeMux()
	mux.Handle(apijournal.Path, apijournal.NewHandler(store, journalOpts.token))
	srv := &http.Server{Addr: journalOpts.serve, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	logger.New("journal").Infof("serving %s on %s", apijournal.Path, journalOpts.serve)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
