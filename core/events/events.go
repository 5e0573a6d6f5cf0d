package events

import (
	"time"

	"github.com/courtflow/courtflow/core/model"
)

// HearingScheduledEvent is published when a hearing is committed for a case.
type HearingScheduledEvent struct {
	Hearing model.Hearing
	CaseID  string
	JudgeID string
	Actor   string
	Time    time.Time
}

// HearingRescheduledEvent is published when an existing hearing is moved to a
// new time or courtroom.
type HearingRescheduledEvent struct {
	Hearing       model.Hearing
	PreviousStart time.Time
	PreviousRoom  string
	Reason        string
	Actor         string
	Time          time.Time
}
