package scheduling

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/courtflow/courtflow/core/events"
	"github.com/courtflow/courtflow/core/model"
	"github.com/courtflow/courtflow/core/store"
	"github.com/courtflow/courtflow/infra/logger"
	"github.com/courtflow/courtflow/internal/eventbus"
)

func TestCoordinator_ScheduleThenConflictVisible(t *testing.T) {
	s := testStore(t)
	co := NewCoordinator(s, nil, nil, logger.NopLogger{})
	ctx := context.Background()
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	out, err := co.Schedule(ctx, ScheduleRequest{CaseID: "c1", CourtroomID: "r1", Start: start, DurationHours: 2, Actor: "registrar"})
	if err != nil {
		t.Fatalf("schedule: %v", err)
	}
	if !out.Committed || out.Hearing.ID == "" {
		t.Fatalf("expected committed hearing, got %+v", out)
	}

	conflicts, err := NewDetector(s).Check(ctx, "j1", "r1", start, 2, "")
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if len(conflicts) != 1 || conflicts[0].HearingID != out.Hearing.ID {
		t.Fatalf("expected the committed hearing as the only conflict, got %v", conflicts)
	}
}

func TestCoordinator_ScheduleRejectsConflict(t *testing.T) {
	s := testStore(t)
	co := NewCoordinator(s, nil, nil, logger.NopLogger{})
	ctx := context.Background()
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	if _, err := co.Schedule(ctx, ScheduleRequest{CaseID: "c1", CourtroomID: "r1", Start: start, DurationHours: 2}); err != nil {
		t.Fatalf("first schedule: %v", err)
	}
	out, err := co.Schedule(ctx, ScheduleRequest{CaseID: "c2", CourtroomID: "r1", Start: start.Add(time.Hour), DurationHours: 1})
	if err != nil {
		t.Fatalf("conflicting schedule must not error: %v", err)
	}
	if out.Committed {
		t.Fatalf("conflicting schedule must not commit")
	}
	if len(out.Conflicts) == 0 {
		t.Fatalf("expected conflicts in the outcome")
	}
	hearings, err := s.ListHearings(ctx, store.HearingFilter{})
	if err != nil {
		t.Fatalf("list hearings: %v", err)
	}
	if len(hearings) != 1 {
		t.Fatalf("rejected schedule must not write, have %d hearings", len(hearings))
	}
}

func TestCoordinator_ConcurrentScheduleSameSlot(t *testing.T) {
	s := testStore(t)
	co := NewCoordinator(s, nil, nil, logger.NopLogger{})
	ctx := context.Background()
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	// Two racing requests for the same courtroom and slot. Exactly one may
	// win; the loser must see a conflict outcome, not a second write.
	outcomes := make([]Outcome, 2)
	errs := make([]error, 2)
	var wg sync.WaitGroup
	for i, caseID := range []string{"c1", "c2"} {
		wg.Add(1)
		go func(i int, caseID string) {
			defer wg.Done()
			outcomes[i], errs[i] = co.Schedule(ctx, ScheduleRequest{
				CaseID: caseID, CourtroomID: "r1", Start: start, DurationHours: 2,
			})
		}(i, caseID)
	}
	wg.Wait()

	committed := 0
	for i := range outcomes {
		if errs[i] != nil {
			t.Fatalf("schedule %d: %v", i, errs[i])
		}
		if outcomes[i].Committed {
			committed++
		} else if len(outcomes[i].Conflicts) == 0 {
			t.Fatalf("losing outcome %d has no conflicts: %+v", i, outcomes[i])
		}
	}
	if committed != 1 {
		t.Fatalf("expected exactly one committed hearing, got %d", committed)
	}
	hearings, err := s.ListHearings(ctx, store.HearingFilter{})
	if err != nil {
		t.Fatalf("list hearings: %v", err)
	}
	if len(hearings) != 1 {
		t.Fatalf("expected a single stored hearing, got %d", len(hearings))
	}
}

func TestCoordinator_ScheduleTransitionsAdmittedCase(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	c, _ := s.GetCase(ctx, "c1")
	c.Status = model.CaseAdmitted
	if err := s.UpdateCase(ctx, c); err != nil {
		t.Fatalf("update case: %v", err)
	}
	co := NewCoordinator(s, nil, nil, logger.NopLogger{})
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	if _, err := co.Schedule(ctx, ScheduleRequest{CaseID: "c1", CourtroomID: "r1", Start: start, DurationHours: 1}); err != nil {
		t.Fatalf("schedule: %v", err)
	}
	c, _ = s.GetCase(ctx, "c1")
	if c.Status != model.CaseListed {
		t.Fatalf("admitted case should move to listed, got %s", c.Status)
	}
}

func TestCoordinator_RescheduleOccupiedLeavesStateUnchanged(t *testing.T) {
	s := testStore(t)
	co := NewCoordinator(s, nil, nil, logger.NopLogger{})
	ctx := context.Background()
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	first, err := co.Schedule(ctx, ScheduleRequest{CaseID: "c1", CourtroomID: "r1", Start: start, DurationHours: 1})
	if err != nil || !first.Committed {
		t.Fatalf("schedule first: %v %+v", err, first)
	}
	second, err := co.Schedule(ctx, ScheduleRequest{CaseID: "c2", CourtroomID: "r1", Start: start.Add(2 * time.Hour), DurationHours: 1})
	if err != nil || !second.Committed {
		t.Fatalf("schedule second: %v %+v", err, second)
	}

	// Move the second hearing onto the first one's slot in the same room.
	out, err := co.Reschedule(ctx, RescheduleRequest{HearingID: second.Hearing.ID, NewStart: start.Add(30 * time.Minute)})
	if err != nil {
		t.Fatalf("reschedule: %v", err)
	}
	if out.Committed || len(out.Conflicts) == 0 {
		t.Fatalf("expected conflict rejection, got %+v", out)
	}
	stored, err := s.GetHearing(ctx, second.Hearing.ID)
	if err != nil {
		t.Fatalf("get hearing: %v", err)
	}
	if !stored.ScheduledDate.Equal(start.Add(2 * time.Hour)) {
		t.Fatalf("rejected reschedule must leave the stored time unchanged, got %v", stored.ScheduledDate)
	}
}

func TestCoordinator_RescheduleMovesHearing(t *testing.T) {
	s := testStore(t)
	bus := eventbus.New()
	sub := bus.Subscribe()
	co := NewCoordinator(s, bus, nil, logger.NopLogger{})
	ctx := context.Background()
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	out, err := co.Schedule(ctx, ScheduleRequest{CaseID: "c1", CourtroomID: "r1", Start: start, DurationHours: 1})
	if err != nil || !out.Committed {
		t.Fatalf("schedule: %v %+v", err, out)
	}
	<-sub // HearingScheduledEvent

	newStart := start.Add(3 * time.Hour)
	moved, err := co.Reschedule(ctx, RescheduleRequest{HearingID: out.Hearing.ID, NewStart: newStart, NewCourtroomID: "r2", Reason: "courtroom maintenance", Actor: "registrar"})
	if err != nil {
		t.Fatalf("reschedule: %v", err)
	}
	if !moved.Committed {
		t.Fatalf("expected commit, got %+v", moved)
	}
	stored, _ := s.GetHearing(ctx, out.Hearing.ID)
	if !stored.ScheduledDate.Equal(newStart) || stored.CourtroomID != "r2" {
		t.Fatalf("hearing not moved: %+v", stored)
	}
	if stored.AdjournmentReason != "courtroom maintenance" {
		t.Fatalf("reason not recorded: %q", stored.AdjournmentReason)
	}
	if stored.Notes == "" {
		t.Fatalf("audit note missing")
	}

	ev := <-sub
	re, ok := ev.(events.HearingRescheduledEvent)
	if !ok {
		t.Fatalf("expected HearingRescheduledEvent got %T", ev)
	}
	if !re.PreviousStart.Equal(start) || re.PreviousRoom != "r1" {
		t.Fatalf("event carries wrong previous values: %+v", re)
	}
}

func TestCoordinator_RescheduleNotFound(t *testing.T) {
	s := testStore(t)
	co := NewCoordinator(s, nil, nil, logger.NopLogger{})
	_, err := co.Reschedule(context.Background(), RescheduleRequest{HearingID: "missing", NewStart: time.Now()})
	if !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("expected ErrNotFound got %v", err)
	}
}

func TestCoordinator_ScheduleValidatesDuration(t *testing.T) {
	s := testStore(t)
	co := NewCoordinator(s, nil, nil, logger.NopLogger{})
	_, err := co.Schedule(context.Background(), ScheduleRequest{CaseID: "c1", CourtroomID: "r1", Start: time.Now(), DurationHours: 0})
	if !model.IsValidation(err) {
		t.Fatalf("expected validation error got %v", err)
	}
}
