package mqtt

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/kilianp07/ridesim/core/events"
	coremqtt "github.com/kilianp07/ridesim/core/mqtt"
	"github.com/kilianp07/ridesim/infra/logger"
	"github.com/kilianp07/ridesim/internal/eventbus"
)

// Publisher mirrors the core mqtt.Publisher interface.
type Publisher = coremqtt.Publisher

// Message converts a bus event into its topic and payload. ok is false for
// events that are not streamed.
func Message(prefix string, ev events.Event) (topic string, payload any, ok bool) {
	switch e := ev.(type) {
	case events.AssignmentEvent:
		a := e.Assignment
		dist := a.Distance
		return coremqtt.VehicleTopic(prefix, a.Vehicle, coremqtt.KindAssigned), coremqtt.VehicleMessage{
			RunID:      e.RunID,
			Dataset:    e.Dataset,
			Vehicle:    a.Vehicle,
			Kind:       coremqtt.KindAssigned,
			Tick:       a.Tick,
			Job:        a.Job.ID,
			Distance:   &dist,
			Relaxation: a.Relaxation.String(),
		}, true
	case events.RideEvent:
		kind := e.Event.Kind.String()
		return coremqtt.VehicleTopic(prefix, e.Event.Vehicle, kind), coremqtt.VehicleMessage{
			RunID:   e.RunID,
			Dataset: e.Dataset,
			Vehicle: e.Event.Vehicle,
			Kind:    kind,
			Tick:    e.Event.Step,
			Job:     e.Event.Job.ID,
		}, true
	case events.RunEvent:
		return coremqtt.RunTopic(prefix, e.RunID, string(e.Phase)), coremqtt.RunMessage{
			RunID:     e.RunID,
			Dataset:   e.Dataset,
			Phase:     string(e.Phase),
			Vehicles:  e.Vehicles,
			Jobs:      e.Jobs,
			Ticks:     e.Ticks,
			Score:     e.Score,
			Remaining: e.Remaining,
		}, true
	}
	return "", nil, false
}

// StartEventStream publishes streamed bus events as JSON until ctx is
// canceled or the bus closes. The returned channel is closed on exit.
// Publish failures are logged and do not stop the stream.
func StartEventStream(ctx context.Context, bus *eventbus.TypedBus[events.Event], pub Publisher, prefix string) <-chan struct{} {
	done := make(chan struct{})
	if bus == nil || pub == nil {
		close(done)
		return done
	}
	log := logger.New("mqtt_stream")
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
				topic, msg, ok := Message(prefix, ev)
				if !ok {
					continue
				}
				payload, err := json.Marshal(msg)
				if err != nil {
					log.Errorf("encode %s: %v", topic, err)
					continue
				}
				if err := pub.Publish(topic, payload); err != nil {
					log.Warnf("%v", err)
				}
			}
		}
	}()
	return done
}

// MockPublisher records published messages. FailTopics makes Publish fail
// for the listed topics.
type MockPublisher struct {
	mu         sync.Mutex
	Messages   map[string][][]byte
	Order      []string
	FailTopics map[string]bool
}

// NewMockPublisher creates a new MockPublisher.
func NewMockPublisher() *MockPublisher {
	return &MockPublisher{
		Messages:   make(map[string][][]byte),
		FailTopics: make(map[string]bool),
	}
}

// Publish records the message or returns an error if configured to fail.
func (m *MockPublisher) Publish(topic string, payload []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailTopics[topic] {
		return fmt.Errorf("publish to %s failed", topic)
	}
	m.Messages[topic] = append(m.Messages[topic], payload)
	m.Order = append(m.Order, topic)
	return nil
}

// Count returns the number of messages recorded.
func (m *MockPublisher) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Order)
}
