package model

import "time"

// HearingStatus tracks a hearing through its lifecycle. A hearing is never
// deleted, only transitioned to a terminal status.
type HearingStatus string

const (
	HearingScheduled  HearingStatus = "scheduled"
	HearingInProgress HearingStatus = "hearing"
	HearingCompleted  HearingStatus = "completed"
	HearingAdjourned  HearingStatus = "adjourned"
	HearingCancelled  HearingStatus = "cancelled"
)

// Active reports whether the hearing occupies its resources. Only active
// hearings participate in conflict checks.
func (s HearingStatus) Active() bool {
	return s == HearingScheduled || s == HearingInProgress
}

// ActiveHearingStatuses lists the statuses that occupy resources.
var ActiveHearingStatuses = []HearingStatus{HearingScheduled, HearingInProgress}

// Hearing is a committed (judge, courtroom, time) occupancy for a case. The
// judge is derived through the case's assigned judge.
type Hearing struct {
	ID                     string        `json:"id"`
	CaseID                 string        `json:"case_id"`
	CourtroomID            string        `json:"courtroom_id"`
	ScheduledDate          time.Time     `json:"scheduled_date"`
	ScheduledDurationHours float64       `json:"scheduled_duration_hours"`
	Status                 HearingStatus `json:"status"`
	AdjournmentReason      string        `json:"adjournment_reason,omitempty"`
	Notes                  string        `json:"notes,omitempty"`
	CreatedAt              time.Time     `json:"created_at"`
}

// Interval returns the occupancy window of the hearing.
func (h Hearing) Interval() Interval {
	return Interval{Start: h.ScheduledDate, DurationHours: h.ScheduledDurationHours}
}

// Validate checks that the hearing data is sound.
func (h Hearing) Validate() error {
	if h.ScheduledDurationHours <= 0 {
		return &ValidationError{Field: "scheduled_duration_hours", Reason: "must be positive"}
	}
	if h.CaseID == "" {
		return &ValidationError{Field: "case_id", Reason: "is required"}
	}
	if h.CourtroomID == "" {
		return &ValidationError{Field: "courtroom_id", Reason: "is required"}
	}
	return nil
}

// CandidateSlot is an unpersisted, ranked (time, judge, courtroom) proposal
// for a case. It becomes a Hearing only when explicitly committed.
type CandidateSlot struct {
	Time          time.Time `json:"datetime"`
	JudgeID       string    `json:"judge_id"`
	JudgeName     string    `json:"judge_name"`
	CourtroomID   string    `json:"courtroom_id"`
	CourtroomName string    `json:"courtroom_name"`
	DurationHours float64   `json:"estimated_duration"`
	PriorityScore float64   `json:"priority_score"`
}
