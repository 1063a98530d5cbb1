// Package app wires configuration, the simulation engine and its outer
// collaborators into a multi-dataset runner.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/kilianp07/ridesim/auth"
	"github.com/kilianp07/ridesim/config"
	"github.com/kilianp07/ridesim/core/dispatch"
	"github.com/kilianp07/ridesim/core/events"
	"github.com/kilianp07/ridesim/core/journal"
	coremetrics "github.com/kilianp07/ridesim/core/metrics"
	"github.com/kilianp07/ridesim/core/model"
	coremon "github.com/kilianp07/ridesim/core/monitoring"
	"github.com/kilianp07/ridesim/core/report"
	"github.com/kilianp07/ridesim/core/simulation"
	"github.com/kilianp07/ridesim/infra/logger"
	"github.com/kilianp07/ridesim/infra/metrics"
	"github.com/kilianp07/ridesim/infra/mqtt"
	"github.com/kilianp07/ridesim/internal/eventbus"
	"github.com/kilianp07/ridesim/pkg/dataset"
	"github.com/kilianp07/ridesim/pkg/export"
)

// StdoutPath sends solutions to the service's stdout writer instead of
// OutputDir.
const StdoutPath = "-"

// DatasetResult summarises one simulated dataset.
type DatasetResult struct {
	Name      string
	Input     string
	Output    string
	Result    *simulation.Result
	Report    report.Report
	Journaled int
}

// Service runs datasets with the configured journal, metrics sinks and
// event stream.
type Service struct {
	cfg       *config.Config
	log       logger.Logger
	sink      coremetrics.MetricsSink
	store     journal.Store
	publisher mqtt.Publisher
	client    *mqtt.PahoClient
	stdout    io.Writer
	output    string
}

// Option customises a Service.
type Option func(*Service)

// WithLogger replaces the service logger.
func WithLogger(l logger.Logger) Option { return func(s *Service) { s.log = l } }

// WithSink replaces the sinks built from cfg.Metrics.
func WithSink(sink coremetrics.MetricsSink) Option { return func(s *Service) { s.sink = sink } }

// WithPublisher replaces the MQTT client built from cfg.MQTT.
func WithPublisher(p mqtt.Publisher) Option { return func(s *Service) { s.publisher = p } }

// WithStdout sets the writer used when the output directory is StdoutPath.
func WithStdout(w io.Writer) Option { return func(s *Service) { s.stdout = w } }

// WithOutput overrides cfg.Simulation.OutputDir. StdoutPath writes every
// solution to stdout.
func WithOutput(dir string) Option { return func(s *Service) { s.output = dir } }

// New creates a Service from the configuration.
func New(cfg *config.Config, opts ...Option) (*Service, error) {
	s := &Service{
		cfg:    cfg,
		stdout: os.Stdout,
		output: cfg.Simulation.OutputDir,
	}
	for _, o := range opts {
		o(s)
	}
	if s.log == nil {
		s.log = logger.New("service")
	}
	if s.sink == nil {
		sink, err := coremetrics.NewMetricsSink(cfg.Metrics.Sinks)
		if err != nil {
			return nil, fmt.Errorf("metrics sink: %w", err)
		}
		if cfg.Metrics.PushGateway != "" {
			pusher := metrics.NewPusher(cfg.Metrics.PushGateway, cfg.Metrics.PushJob, prometheus.DefaultGatherer)
			if pa := cfg.Metrics.PushAuth; pa.Enabled() {
				pusher.WithClient(auth.NewClientCred(pa).HTTPClient(context.Background()))
			}
			sink = coremetrics.NewMultiSink(sink, pusher)
		}
		s.sink = sink
	}
	if cfg.Journal.Enabled {
		store, err := journal.Open(journal.Options{
			Backend:    cfg.Journal.Backend,
			Path:       cfg.Journal.Path,
			MaxSizeMB:  cfg.Journal.MaxSizeMB,
			MaxBackups: cfg.Journal.MaxBackups,
			MaxAgeDays: cfg.Journal.MaxAgeDays,
		})
		if err != nil {
			return nil, fmt.Errorf("journal: %w", err)
		}
		s.store = store
	}
	if s.publisher == nil && cfg.MQTT.Enabled() {
		client, err := mqtt.NewPahoClient(cfg.MQTT)
		if err != nil {
			s.closeStore()
			return nil, fmt.Errorf("mqtt client: %w", err)
		}
		s.client = client
		s.publisher = client
	}
	return s, nil
}

// Datasets resolves the input files to run. Explicit names win over the
// configured list; an empty selection scans InputDir for InputExt files.
func (s *Service) Datasets(names []string) ([]string, error) {
	sc := s.cfg.Simulation
	if len(names) == 0 {
		names = sc.Datasets
	}
	if len(names) == 0 {
		paths, err := filepath.Glob(filepath.Join(sc.InputDir, "*"+sc.InputExt))
		if err != nil {
			return nil, err
		}
		if len(paths) == 0 {
			return nil, fmt.Errorf("no %s files in %s", sc.InputExt, sc.InputDir)
		}
		sort.Strings(paths)
		return paths, nil
	}
	paths := make([]string, len(names))
	for i, n := range names {
		if filepath.IsAbs(n) || fileExists(n) {
			paths[i] = n
			continue
		}
		paths[i] = filepath.Join(sc.InputDir, n)
	}
	return paths, nil
}

// Run simulates every path in order and stops at the first failure. The
// Prometheus listener, when configured, serves for the whole call.
func (s *Service) Run(ctx context.Context, paths []string) ([]DatasetResult, error) {
	if addr := s.cfg.Metrics.Listen; addr != "" {
		srvCtx, cancel := context.WithCancel(ctx)
		defer cancel()
		go func() {
			if err := metrics.StartPromServer(srvCtx, addr, prometheus.DefaultGatherer); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}
	results := make([]DatasetResult, 0, len(paths))
	total := 0
	for _, p := range paths {
		res, err := s.RunDataset(ctx, p)
		if err != nil {
			return results, err
		}
		results = append(results, res)
		total += res.Result.Score
		s.log.Infow("dataset done", map[string]any{
			"dataset": res.Name,
			"score":   res.Result.Score,
			"total":   total,
		})
	}
	s.log.Infow("all datasets done", map[string]any{"datasets": len(results), "total": total})
	return results, nil
}

// RunDataset parses, simulates and reports one dataset.
func (s *Service) RunDataset(ctx context.Context, path string) (DatasetResult, error) {
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	out := DatasetResult{Name: name, Input: path}

	problem, err := dataset.ReadFile(path)
	if err != nil {
		return out, err
	}

	runID := uuid.NewString()
	bus := eventbus.NewTyped[events.Event](s.cfg.Simulation.BusBuffer)
	streamCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	collected := metrics.StartEventCollector(streamCtx, bus, s.sink)
	streamed := mqtt.StartEventStream(streamCtx, bus, s.publisher, s.cfg.MQTT.TopicPrefix)

	var observer dispatch.Observer
	var rec *journal.Recorder
	if s.store != nil {
		rec = journal.NewRecorder(ctx, s.store, runID, name)
		observer = rec
	}
	engine, err := simulation.New(problem, simulation.Config{
		Dataset:      name,
		RunID:        runID,
		Logger:       logger.New("simulation"),
		Observer:     observer,
		Bus:          bus,
		TickInterval: s.cfg.Simulation.TickInterval,
	})
	if err != nil {
		bus.Close()
		return out, fmt.Errorf("%s: %w", name, err)
	}
	res, err := engine.Run(ctx)
	bus.Close()
	<-collected
	<-streamed
	if dropped := bus.Dropped(); dropped > 0 {
		s.log.Warnf("%s: %d events dropped by slow subscribers", name, dropped)
	}
	if err != nil {
		if errors.Is(err, model.ErrInvariant) {
			coremon.CaptureException(err, map[string]string{"dataset": name, "run_id": runID})
		}
		return out, fmt.Errorf("%s: %w", name, err)
	}
	out.Result = res
	out.Report = report.FromResult(res)

	if rec != nil {
		if err := rec.Err(); err != nil {
			s.log.Errorf("journal %s: %v", name, err)
		}
		out.Journaled = rec.Count()
	}
	if out.Output, err = s.writeSolution(name, res); err != nil {
		return out, err
	}
	if err := s.exportOutcomes(name, res); err != nil {
		return out, err
	}
	if err := s.sink.RecordRun(summary(res, out.Report)); err != nil {
		s.log.Warnf("record run %s: %v", name, err)
	}
	s.log.Infow("run report", out.Report.Fields())
	return out, nil
}

// Close flushes the sinks and releases the journal and broker connection.
func (s *Service) Close() error {
	var errs []error
	if f, ok := s.sink.(coremetrics.Flusher); ok {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		errs = append(errs, f.Flush(ctx))
		cancel()
	}
	errs = append(errs, s.closeStore())
	if s.client != nil {
		s.client.Disconnect()
	}
	return errors.Join(errs...)
}

func (s *Service) closeStore() error {
	if s.store == nil {
		return nil
	}
	return s.store.Close()
}

func (s *Service) writeSolution(name string, res *simulation.Result) (string, error) {
	if s.output == StdoutPath {
		return StdoutPath, export.WriteSolution(s.stdout, res.Assignments)
	}
	if err := os.MkdirAll(s.output, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(s.output, name+s.cfg.Simulation.OutputExt)
	return path, writeFile(path, func(w io.Writer) error {
		return export.WriteSolution(w, res.Assignments)
	})
}

func (s *Service) exportOutcomes(name string, res *simulation.Result) error {
	ec := s.cfg.Export
	if ec.Dir == "" {
		return nil
	}
	if err := os.MkdirAll(ec.Dir, 0o755); err != nil {
		return err
	}
	path := filepath.Join(ec.Dir, name+".outcomes."+ec.Format)
	return writeFile(path, func(w io.Writer) error {
		return export.WriteOutcomes(w, export.Format(ec.Format), res.Outcomes)
	})
}

func summary(res *simulation.Result, r report.Report) coremetrics.RunSummary {
	return coremetrics.RunSummary{
		RunID:     res.RunID,
		Dataset:   res.Dataset,
		Vehicles:  res.Vehicles,
		Jobs:      res.Jobs,
		Ticks:     res.Ticks,
		Score:     res.Score,
		Assigned:  r.Assigned,
		Remaining: len(res.Remaining),
		Completed: r.Completed,
		OnTime:    r.OnTime,
		Late:      r.Late,
		Bonus:     r.Bonus,
		Elapsed:   res.Elapsed,
		Time:      time.Now(),
	}
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

func fileExists(path string) bool {
	st, err := os.Stat(path)
	return err == nil && !st.IsDir()
}
