package metrics

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"

	coremetrics "github.com/kilianp07/ridesim/core/metrics"
)

// Pusher sends a Prometheus registry to a push gateway after every run. The
// run metrics already carry a dataset label, so only the job groups them.
type Pusher struct {
	url      string
	job      string
	gatherer prometheus.Gatherer
	client   push.HTTPDoer
	ctx      context.Context
}

// NewPusher returns a Pusher for the gateway at url. A nil gatherer selects
// the default registry.
func NewPusher(url, job string, g prometheus.Gatherer) *Pusher {
	if g == nil {
		g = prometheus.DefaultGatherer
	}
	return &Pusher{url: url, job: job, gatherer: g, ctx: context.Background()}
}

// WithClient sends pushes through c, for example an OAuth2 client.
func (p *Pusher) WithClient(c push.HTTPDoer) *Pusher {
	p.client = c
	return p
}

// RecordRun replaces the job's metrics on the gateway.
func (p *Pusher) RecordRun(r coremetrics.RunSummary) error {
	pusher := push.New(p.url, p.job).Gatherer(p.gatherer)
	if p.client != nil {
		pusher = pusher.Client(p.client)
	}
	if err := pusher.PushContext(p.ctx); err != nil {
		return fmt.Errorf("push %s for %s: %w", p.url, r.Dataset, err)
	}
	return nil
}
