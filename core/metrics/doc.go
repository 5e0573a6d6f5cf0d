// Package metrics defines the observability events emitted by the scheduling
// core and the sink interfaces infra adapters implement.
package metrics
