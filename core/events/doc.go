// Package events defines the simulation events emitted on the event bus.
//
// Available event types:
//   - RunEvent: a dataset run began or ended
//   - TickEvent: periodic engine counters
//   - RideEvent: a vehicle departed or arrived
//   - AssignmentEvent: the dispatcher handed a job to a vehicle
//   - RelaxationEvent: the dispatcher dropped a timing constraint
package events
