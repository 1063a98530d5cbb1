package simulation

import (
	"github.com/kilianp07/ridesim/core/dispatch"
	"github.com/kilianp07/ridesim/core/events"
)

// observer forwards dispatch decisions to the configured observer and the
// event bus.
type observer struct {
	engine *Engine
	next   dispatch.Observer
}

func (o *observer) OnAssign(a dispatch.Assignment) {
	if o.next != nil {
		o.next.OnAssign(a)
	}
	o.engine.publish(events.AssignmentEvent{Meta: o.engine.meta, Assignment: a})
}

func (o *observer) OnRelax(tick int, level dispatch.Relaxation) {
	if o.next != nil {
		o.next.OnRelax(tick, level)
	}
	o.engine.publish(events.RelaxationEvent{Meta: o.engine.meta, Tick: tick, Level: level})
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...any)         {}
func (nopLogger) Debugw(string, map[string]any) {}
func (nopLogger) Infof(string, ...any)          {}
func (nopLogger) Infow(string, map[string]any)  {}
func (nopLogger) Warnf(string, ...any)          {}
func (nopLogger) Errorf(string, ...any)         {}
