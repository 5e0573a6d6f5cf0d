package scheduling

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/courtflow/courtflow/core/events"
	corelogger "github.com/courtflow/courtflow/core/logger"
	coremetrics "github.com/courtflow/courtflow/core/metrics"
	"github.com/courtflow/courtflow/core/model"
	"github.com/courtflow/courtflow/core/store"
	"github.com/courtflow/courtflow/internal/eventbus"
)

// ScheduleRequest asks to commit a hearing for a case.
type ScheduleRequest struct {
	CaseID        string    `json:"case_id"`
	CourtroomID   string    `json:"courtroom_id"`
	Start         time.Time `json:"scheduled_date"`
	DurationHours float64   `json:"scheduled_duration_hours"`
	Actor         string    `json:"-"`
}

// RescheduleRequest asks to move an existing hearing. NewCourtroomID empty
// keeps the current courtroom. The drag-and-drop path uses the same request:
// the new interval end is derived from the hearing's existing duration.
type RescheduleRequest struct {
	HearingID      string    `json:"hearing_id"`
	NewStart       time.Time `json:"new_datetime"`
	NewCourtroomID string    `json:"new_courtroom_id,omitempty"`
	Reason         string    `json:"reason,omitempty"`
	Actor          string    `json:"-"`
}

// Outcome is the structured result of a mutating scheduling call. When
// Committed is false, Conflicts explains the rejection and the store is
// untouched; a conflict rejection is not an error.
type Outcome struct {
	Hearing   model.Hearing `json:"hearing"`
	Committed bool          `json:"success"`
	Conflicts []Conflict    `json:"conflicts"`
}

// Coordinator is the only mutating path into the hearing schedule. Every
// write runs conflict detection first, inside a per-resource critical
// section.
type Coordinator struct {
	st       store.Store
	detector *Detector
	locks    *resourceLocks
	bus      eventbus.EventBus
	sink     coremetrics.ScheduleRecorder
	log      corelogger.Logger
	now      func() time.Time
}

// NewCoordinator creates a Coordinator. bus and sink may be nil.
func NewCoordinator(st store.Store, bus eventbus.EventBus, sink coremetrics.ScheduleRecorder, log corelogger.Logger) *Coordinator {
	return &Coordinator{
		st:       st,
		detector: NewDetector(st),
		locks:    newResourceLocks(),
		bus:      bus,
		sink:     sink,
		log:      log,
		now:      time.Now,
	}
}

// SetClock overrides the time source. Intended for tests.
func (co *Coordinator) SetClock(now func() time.Time) { co.now = now }

// Schedule commits a new hearing after conflict detection passes. The check
// and the write happen under the judge and courtroom locks, all-or-nothing.
func (co *Coordinator) Schedule(ctx context.Context, req ScheduleRequest) (Outcome, error) {
	out := Outcome{Conflicts: []Conflict{}}
	if _, err := model.NewInterval(req.Start, req.DurationHours); err != nil {
		return out, err
	}
	c, err := co.st.GetCase(ctx, req.CaseID)
	if err != nil {
		return out, err
	}
	if _, err := co.st.GetCourtroom(ctx, req.CourtroomID); err != nil {
		return out, err
	}
	judgeID := c.AssignedJudgeID

	release := co.locks.acquire(judgeKey(judgeID), roomKey(req.CourtroomID))
	defer release()

	conflicts, err := co.detector.Check(ctx, judgeID, req.CourtroomID, req.Start, req.DurationHours, "")
	if err != nil {
		return out, err
	}
	if len(conflicts) > 0 {
		out.Conflicts = conflicts
		co.record("schedule", req.CaseID, judgeID, req.CourtroomID, false, len(conflicts))
		return out, nil
	}

	h := model.Hearing{
		ID:                     uuid.NewString(),
		CaseID:                 req.CaseID,
		CourtroomID:            req.CourtroomID,
		ScheduledDate:          req.Start,
		ScheduledDurationHours: req.DurationHours,
		Status:                 model.HearingScheduled,
		Notes:                  auditNote("scheduled", req.Actor, co.now()),
		CreatedAt:              co.now(),
	}
	if err := co.st.CreateHearing(ctx, h); err != nil {
		return out, fmt.Errorf("create hearing: %w", err)
	}
	if c.Status == model.CaseAdmitted && c.Status.CanTransition(model.CaseListed) {
		c.Status = model.CaseListed
		if err := co.st.UpdateCase(ctx, c); err != nil {
			return out, fmt.Errorf("update case status: %w", err)
		}
	}

	co.publish(events.HearingScheduledEvent{Hearing: h, CaseID: c.ID, JudgeID: judgeID, Actor: req.Actor, Time: co.now()})
	co.record("schedule", req.CaseID, judgeID, req.CourtroomID, true, 0)
	co.log.Infof("scheduled hearing %s for case %s at %s", h.ID, c.ID, h.ScheduledDate.Format(time.RFC3339))

	out.Hearing = h
	out.Committed = true
	return out, nil
}

// Reschedule moves an existing hearing to a new time and optionally a new
// courtroom, re-validating conflicts with the hearing itself excluded.
func (co *Coordinator) Reschedule(ctx context.Context, req RescheduleRequest) (Outcome, error) {
	out := Outcome{Conflicts: []Conflict{}}
	h, err := co.st.GetHearing(ctx, req.HearingID)
	if err != nil {
		return out, err
	}
	if _, err := model.NewInterval(req.NewStart, h.ScheduledDurationHours); err != nil {
		return out, err
	}
	target := req.NewCourtroomID
	if target == "" {
		target = h.CourtroomID
	} else if _, err := co.st.GetCourtroom(ctx, target); err != nil {
		return out, err
	}
	c, err := co.st.GetCase(ctx, h.CaseID)
	if err != nil {
		return out, err
	}
	judgeID := c.AssignedJudgeID

	release := co.locks.acquire(judgeKey(judgeID), roomKey(target))
	defer release()

	conflicts, err := co.detector.Check(ctx, judgeID, target, req.NewStart, h.ScheduledDurationHours, h.ID)
	if err != nil {
		return out, err
	}
	if len(conflicts) > 0 {
		out.Hearing = h
		out.Conflicts = conflicts
		co.record("reschedule", h.CaseID, judgeID, target, false, len(conflicts))
		return out, nil
	}

	prevStart, prevRoom := h.ScheduledDate, h.CourtroomID
	h.ScheduledDate = req.NewStart
	h.CourtroomID = target
	if req.Reason != "" {
		h.AdjournmentReason = req.Reason
	}
	h.Notes = auditNote("rescheduled", req.Actor, co.now())
	if err := co.st.UpdateHearing(ctx, h); err != nil {
		return out, fmt.Errorf("update hearing: %w", err)
	}

	co.publish(events.HearingRescheduledEvent{
		Hearing:       h,
		PreviousStart: prevStart,
		PreviousRoom:  prevRoom,
		Reason:        req.Reason,
		Actor:         req.Actor,
		Time:          co.now(),
	})
	co.record("reschedule", h.CaseID, judgeID, target, true, 0)
	co.log.Infof("rescheduled hearing %s to %s", h.ID, h.ScheduledDate.Format(time.RFC3339))

	out.Hearing = h
	out.Committed = true
	return out, nil
}

func (co *Coordinator) publish(ev eventbus.Event) {
	if co.bus != nil {
		co.bus.Publish(ev)
	}
}

func (co *Coordinator) record(op, caseID, judgeID, roomID string, committed bool, conflicts int) {
	if co.sink == nil {
		return
	}
	ev := coremetrics.ScheduleEvent{
		Operation:   op,
		CaseID:      caseID,
		JudgeID:     judgeID,
		CourtroomID: roomID,
		Committed:   committed,
		Conflicts:   conflicts,
		Time:        co.now(),
	}
	if err := co.sink.RecordSchedule(ev); err != nil {
		co.log.Warnf("schedule metrics: %v", err)
	}
}

func auditNote(action, actor string, at time.Time) string {
	if actor == "" {
		actor = "system"
	}
	return fmt.Sprintf("%s by %s at %s", action, actor, at.UTC().Format(time.RFC3339))
}

func judgeKey(id string) string {
	if id == "" {
		return ""
	}
	return "judge:" + id
}

func roomKey(id string) string {
	if id == "" {
		return ""
	}
	return "room:" + id
}
