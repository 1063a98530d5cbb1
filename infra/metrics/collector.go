package metrics

import (
	"context"
	"time"

	"github.com/kilianp07/ridesim/core/events"
	coremetrics "github.com/kilianp07/ridesim/core/metrics"
	"github.com/kilianp07/ridesim/internal/eventbus"
)

// StartEventCollector subscribes to the event bus and forwards tick and
// assignment events to the sink's optional recorders. It stops when ctx is
// canceled or the bus closes; the returned channel is closed on exit.
func StartEventCollector(ctx context.Context, bus *eventbus.TypedBus[events.Event], sink coremetrics.MetricsSink) <-chan struct{} {
	done := make(chan struct{})
	if bus == nil || sink == nil {
		close(done)
		return done
	}
	ticks, _ := sink.(coremetrics.TickRecorder)
	assigns, _ := sink.(coremetrics.AssignmentRecorder)
	sub := bus.Subscribe()
	go func() {
		defer close(done)
		defer bus.Unsubscribe(sub)
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-sub:
				if !ok {
					return
				}
				switch e := ev.(type) {
				case events.TickEvent:
					if ticks != nil {
						_ = ticks.RecordTick(coremetrics.TickSample{
							RunID:     e.RunID,
							Dataset:   e.Dataset,
							Tick:      e.Tick,
							Idle:      e.Idle,
							Pending:   e.Pending,
							Assigned:  e.Assigned,
							Started:   e.Started,
							Completed: e.Completed,
							Score:     e.Score,
							Time:      time.Now(),
						})
					}
				case events.AssignmentEvent:
					if assigns != nil {
						_ = assigns.RecordAssignment(coremetrics.AssignmentSample{
							RunID:      e.RunID,
							Dataset:    e.Dataset,
							Tick:       e.Assignment.Tick,
							Vehicle:    e.Assignment.Vehicle,
							Job:        e.Assignment.Job.ID,
							Distance:   e.Assignment.Distance,
							Relaxation: e.Assignment.Relaxation.String(),
							Time:       time.Now(),
						})
					}
				}
			}
		}
	}()
	return done
}
