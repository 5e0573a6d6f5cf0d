package metrics

import "time"

// ScheduleEvent records the outcome of a schedule or reschedule attempt.
type ScheduleEvent struct {
	Operation   string // "schedule" or "reschedule"
	CaseID      string
	JudgeID     string
	CourtroomID string
	Committed   bool
	Conflicts   int
	Time        time.Time
}

// ScheduleRecorder records mutating scheduling attempts.
type ScheduleRecorder interface {
	RecordSchedule(ev ScheduleEvent) error
}

// SlotSearchEvent records a slot search run.
type SlotSearchEvent struct {
	CaseID     string
	Candidates int // conflict-free candidates before the result cap
	Returned   int
	Elapsed    time.Duration
	Time       time.Time
}

// SlotSearchRecorder records slot search runs.
type SlotSearchRecorder interface {
	RecordSlotSearch(ev SlotSearchEvent) error
}

// Sink aggregates every scheduling observability concern.
type Sink interface {
	ScheduleRecorder
	SlotSearchRecorder
}

// NopSink discards all events.
type NopSink struct{}

func (NopSink) RecordSchedule(ScheduleEvent) error     { return nil }
func (NopSink) RecordSlotSearch(SlotSearchEvent) error { return nil }
