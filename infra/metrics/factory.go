package metrics

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kilianp07/ridesim/auth"
	"github.com/kilianp07/ridesim/core/factory"
	coremetrics "github.com/kilianp07/ridesim/core/metrics"
)

// init registers built-in metrics sinks.
func init() {
	_ = coremetrics.RegisterMetricsSink("nop", func(map[string]any) (coremetrics.MetricsSink, error) {
		return coremetrics.NopSink{}, nil
	})

	_ = coremetrics.RegisterMetricsSink("prometheus", func(map[string]any) (coremetrics.MetricsSink, error) {
		return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
	})

	_ = coremetrics.RegisterMetricsSink("pushgateway", func(conf map[string]any) (coremetrics.MetricsSink, error) {
		var c struct {
			URL  string    `json:"url"`
			Job  string    `json:"job"`
			Auth auth.Conf `json:"auth"`
		}
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		if c.Job == "" {
			c.Job = "ridesim"
		}
		p := NewPusher(c.URL, c.Job, prometheus.DefaultGatherer)
		if c.Auth.Enabled() {
			p.WithClient(auth.NewClientCred(c.Auth).HTTPClient(context.Background()))
		}
		return p, nil
	})

	_ = coremetrics.RegisterMetricsSink("influx", func(conf map[string]any) (coremetrics.MetricsSink, error) {
		var c struct {
			URL    string `json:"url"`
			Token  string `json:"token"`
			Org    string `json:"org"`
			Bucket string `json:"bucket"`
		}
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		return NewInfluxSinkWithFallback(c.URL, c.Token, c.Org, c.Bucket), nil
	})
}
