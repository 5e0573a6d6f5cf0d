// Package events defines the scheduling events emitted on the event bus.
//
// Available event types:
//   - HearingScheduledEvent: a hearing was committed
//   - HearingRescheduledEvent: a hearing was moved
package events
