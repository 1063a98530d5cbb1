package metrics

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	coremetrics "github.com/kilianp07/ridesim/core/metrics"
	"github.com/kilianp07/ridesim/infra/logger"
)

// InfluxSink writes run summaries and tick samples to an InfluxDB instance
// using the official client.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	log      logger.Logger
}

// NewInfluxSink creates a new sink configured for the given InfluxDB endpoint.
func NewInfluxSink(url, token, org, bucket string) *InfluxSink {
	base := strings.TrimSuffix(url, "/api/v2/write")
	client := influxdb2.NewClientWithOptions(base, token,
		influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: 5 * time.Second}))
	return &InfluxSink{
		client:   client,
		writeAPI: client.WriteAPIBlocking(org, bucket),
		log:      logger.New("influx-sink"),
	}
}

// NewInfluxSinkWithFallback tries to ping the InfluxDB instance and
// returns a NopSink if the health check fails.
func NewInfluxSinkWithFallback(url, token, org, bucket string) coremetrics.MetricsSink {
	sink := NewInfluxSink(url, token, org, bucket)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	health, err := sink.client.Health(ctx)
	if err != nil || health.Status != "pass" {
		if err != nil {
			sink.log.Errorf("influx health check error: %v", err)
		} else {
			sink.log.Errorf("influx health status: %s", health.Status)
		}
		sink.client.Close()
		return coremetrics.NopSink{}
	}
	return sink
}

// RecordRun writes one simulation_run point.
func (s *InfluxSink) RecordRun(r coremetrics.RunSummary) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("simulation_run").
		AddTag("dataset", r.Dataset).
		AddTag("run_id", r.RunID).
		AddField("vehicles", r.Vehicles).
		AddField("jobs", r.Jobs).
		AddField("ticks", r.Ticks).
		AddField("score", r.Score).
		AddField("assigned", r.Assigned).
		AddField("remaining", r.Remaining).
		AddField("completed", r.Completed).
		AddField("on_time", r.OnTime).
		AddField("late", r.Late).
		AddField("bonus", r.Bonus).
		AddField("elapsed_ms", round3(float64(r.Elapsed)/float64(time.Millisecond))).
		SetTime(r.Time)
	return s.writeAPI.WritePoint(ctx, p)
}

// RecordTick writes one simulation_tick point. The tick number is a tag so
// successive runs of a dataset line up.
func (s *InfluxSink) RecordTick(t coremetrics.TickSample) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("simulation_tick").
		AddTag("dataset", t.Dataset).
		AddTag("run_id", t.RunID).
		AddTag("tick", strconv.Itoa(t.Tick)).
		AddField("idle", t.Idle).
		AddField("pending", t.Pending).
		AddField("assigned", t.Assigned).
		AddField("started", t.Started).
		AddField("completed", t.Completed).
		AddField("score", t.Score).
		SetTime(t.Time)
	return s.writeAPI.WritePoint(ctx, p)
}

// Flush releases the client. Writes are blocking, so nothing is pending;
// the sink must not be used afterwards.
func (s *InfluxSink) Flush(context.Context) error {
	s.client.Close()
	return nil
}

func round3(f float64) float64 {
	return math.Round(f*1000) / 1000
}
