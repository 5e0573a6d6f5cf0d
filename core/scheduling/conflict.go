package scheduling

import (
	"context"
	"time"

	"github.com/courtflow/courtflow/core/model"
	"github.com/courtflow/courtflow/core/store"
)

// ResourceKind names the side of a conflict.
type ResourceKind string

const (
	ResourceJudge     ResourceKind = "judge"
	ResourceCourtroom ResourceKind = "courtroom"
)

// Conflict describes an existing active occupancy colliding with a candidate
// assignment. Each conflicting hearing is reported once, on the first side
// that detected it.
type Conflict struct {
	HearingID     string       `json:"hearing_id"`
	CaseID        string       `json:"case_id"`
	CaseNumber    string       `json:"case_number,omitempty"`
	Resource      ResourceKind `json:"resource"`
	ResourceID    string       `json:"resource_id"`
	Start         time.Time    `json:"scheduled_time"`
	DurationHours float64      `json:"duration"`
}

// Detector scans committed hearings for occupancy collisions. It is a pure
// read over the store state as seen by the caller.
type Detector struct {
	st store.Store
}

// NewDetector creates a Detector over the given store.
func NewDetector(st store.Store) *Detector {
	return &Detector{st: st}
}

// Check returns every active hearing whose interval overlaps the candidate
// (judge, courtroom, start, duration) assignment. The judge and courtroom
// sides are scanned independently and unioned; an empty id skips that side.
// excludeHearingID lets a reschedule ignore the hearing being moved. An empty
// result is an explicit empty slice meaning "safe to commit".
func (d *Detector) Check(ctx context.Context, judgeID, courtroomID string, start time.Time, durationHours float64, excludeHearingID string) ([]Conflict, error) {
	iv, err := model.NewInterval(start, durationHours)
	if err != nil {
		return nil, err
	}

	conflicts := []Conflict{}
	seen := map[string]bool{}
	if excludeHearingID != "" {
		seen[excludeHearingID] = true
	}

	scan := func(kind ResourceKind, f store.HearingFilter, resourceID string) error {
		hearings, err := d.st.ListHearings(ctx, f)
		if err != nil {
			return err
		}
		for _, h := range hearings {
			if seen[h.ID] || !iv.Overlaps(h.Interval()) {
				continue
			}
			seen[h.ID] = true
			conflicts = append(conflicts, d.describe(ctx, h, kind, resourceID))
		}
		return nil
	}

	if judgeID != "" {
		f := store.HearingFilter{JudgeID: judgeID, Statuses: model.ActiveHearingStatuses}
		if err := scan(ResourceJudge, f, judgeID); err != nil {
			return nil, err
		}
	}
	if courtroomID != "" {
		f := store.HearingFilter{CourtroomID: courtroomID, Statuses: model.ActiveHearingStatuses}
		if err := scan(ResourceCourtroom, f, courtroomID); err != nil {
			return nil, err
		}
	}
	return conflicts, nil
}

func (d *Detector) describe(ctx context.Context, h model.Hearing, kind ResourceKind, resourceID string) Conflict {
	c := Conflict{
		HearingID:     h.ID,
		CaseID:        h.CaseID,
		Resource:      kind,
		ResourceID:    resourceID,
		Start:         h.ScheduledDate,
		DurationHours: h.ScheduledDurationHours,
	}
	if cs, err := d.st.GetCase(ctx, h.CaseID); err == nil {
		c.CaseNumber = cs.CaseNumber
	}
	return c
}
