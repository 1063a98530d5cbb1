package monitoring

import (
	"fmt"
	"time"

	"github.com/getsentry/sentry-go"

	"github.com/kilianp07/ridesim/config"
	coremon "github.com/kilianp07/ridesim/core/monitoring"
)

// Option adjusts the Sentry client options before Init.
type Option func(*sentry.ClientOptions)

// NewSentryMonitor initializes Sentry using the provided configuration and
// returns a Monitor implementation. An empty DSN disables reporting.
func NewSentryMonitor(cfg config.SentryConfig, opts ...Option) (coremon.Monitor, error) {
	if cfg.DSN == "" {
		return coremon.NopMonitor{}, nil
	}
	co := sentry.ClientOptions{
		Dsn:              cfg.DSN,
		Environment:      cfg.Environment,
		TracesSampleRate: cfg.TracesSampleRate,
		Release:          cfg.Release,
	}
	for _, o := range opts {
		o(&co)
	}
	if err := sentry.Init(co); err != nil {
		return nil, fmt.Errorf("sentry init: %w", err)
	}
	return &sentryMonitor{}, nil
}

type sentryMonitor struct{}

func withTags(tags map[string]string, f func(hub *sentry.Hub)) {
	hub := sentry.CurrentHub()
	if len(tags) == 0 {
		f(hub)
		return
	}
	hub.WithScope(func(scope *sentry.Scope) {
		scope.SetTags(tags)
		f(hub)
	})
}

func (s *sentryMonitor) CaptureException(err error, tags map[string]string) {
	if err == nil {
		return
	}
	withTags(tags, func(hub *sentry.Hub) { hub.CaptureException(err) })
}

func (s *sentryMonitor) CapturePanic(v any, tags map[string]string) {
	withTags(tags, func(hub *sentry.Hub) { hub.Recover(v) })
}

func (s *sentryMonitor) Flush(timeout time.Duration) { sentry.Flush(timeout) }
