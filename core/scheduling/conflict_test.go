package scheduling

import (
	"context"
	"testing"
	"time"

	"github.com/courtflow/courtflow/core/model"
	"github.com/courtflow/courtflow/core/store"
)

func testStore(t *testing.T) *store.MemoryStore {
	t.Helper()
	s := store.NewMemoryStore()
	ctx := context.Background()
	cases := []model.Case{
		{ID: "c1", CaseNumber: "CRM-001", CourtID: "court-1", Jurisdiction: model.JurisdictionCriminal,
			Status: model.CaseListed, UrgencyLevel: model.UrgencyBail, ComplexityScore: 4, PublicInterestScore: 5,
			EstimatedDurationHours: 2, FilingDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), AssignedJudgeID: "j1"},
		{ID: "c2", CaseNumber: "CIV-002", CourtID: "court-1", Jurisdiction: model.JurisdictionCivil,
			Status: model.CaseListed, UrgencyLevel: model.UrgencyRegular, ComplexityScore: 3, PublicInterestScore: 4,
			EstimatedDurationHours: 1, FilingDate: time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC), AssignedJudgeID: "j2"},
	}
	for _, c := range cases {
		if err := s.CreateCase(ctx, c); err != nil {
			t.Fatalf("create case: %v", err)
		}
	}
	for _, j := range []model.Judge{
		{ID: "j1", CourtID: "court-1", Name: "Judge One", Specializations: []model.Jurisdiction{model.JurisdictionCriminal}, IsAvailable: true},
		{ID: "j2", CourtID: "court-1", Name: "Judge Two", Specializations: []model.Jurisdiction{model.JurisdictionCivil}, IsAvailable: true},
	} {
		if err := s.CreateJudge(ctx, j); err != nil {
			t.Fatalf("create judge: %v", err)
		}
	}
	for _, r := range []model.Courtroom{
		{ID: "r1", CourtID: "court-1", Name: "Courtroom 1", IsAvailable: true},
		{ID: "r2", CourtID: "court-1", Name: "Courtroom 2", IsAvailable: true},
	} {
		if err := s.CreateCourtroom(ctx, r); err != nil {
			t.Fatalf("create courtroom: %v", err)
		}
	}
	return s
}

func mustCreateHearing(t *testing.T, s *store.MemoryStore, h model.Hearing) {
	t.Helper()
	if err := s.CreateHearing(context.Background(), h); err != nil {
		t.Fatalf("create hearing %s: %v", h.ID, err)
	}
}

func TestDetector_EmptyResultIsNonNil(t *testing.T) {
	s := testStore(t)
	d := NewDetector(s)
	conflicts, err := d.Check(context.Background(), "j1", "r1", time.Date(2025, 3, 3, 9, 0, 0, 0, time.UTC), 1, "")
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if conflicts == nil {
		t.Fatalf("conflicts must be an explicit empty list")
	}
	if len(conflicts) != 0 {
		t.Fatalf("expected no conflicts got %v", conflicts)
	}
}

func TestDetector_JudgeAndCourtroomUnion(t *testing.T) {
	s := testStore(t)
	d := NewDetector(s)
	base := time.Date(2025, 3, 3, 9, 0, 0, 0, time.UTC)
	// c1 occupies judge j1 in room r1; c2 occupies judge j2 in room r2.
	mustCreateHearing(t, s, model.Hearing{ID: "h1", CaseID: "c1", CourtroomID: "r1", ScheduledDate: base, ScheduledDurationHours: 2, Status: model.HearingScheduled})
	mustCreateHearing(t, s, model.Hearing{ID: "h2", CaseID: "c2", CourtroomID: "r2", ScheduledDate: base, ScheduledDurationHours: 2, Status: model.HearingScheduled})

	// Candidate for judge j1 in room r2 collides with h1 on the judge side
	// and h2 on the courtroom side.
	conflicts, err := d.Check(context.Background(), "j1", "r2", base.Add(time.Hour), 1, "")
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if len(conflicts) != 2 {
		t.Fatalf("expected 2 conflicts got %d: %v", len(conflicts), conflicts)
	}
	kinds := map[string]ResourceKind{}
	for _, c := range conflicts {
		kinds[c.HearingID] = c.Resource
	}
	if kinds["h1"] != ResourceJudge || kinds["h2"] != ResourceCourtroom {
		t.Fatalf("unexpected conflict sides: %v", kinds)
	}
}

func TestDetector_ReportsHearingOnce(t *testing.T) {
	s := testStore(t)
	d := NewDetector(s)
	base := time.Date(2025, 3, 3, 9, 0, 0, 0, time.UTC)
	// h1 matches on both the judge and the courtroom side.
	mustCreateHearing(t, s, model.Hearing{ID: "h1", CaseID: "c1", CourtroomID: "r1", ScheduledDate: base, ScheduledDurationHours: 2, Status: model.HearingScheduled})
	conflicts, err := d.Check(context.Background(), "j1", "r1", base, 1, "")
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if len(conflicts) != 1 || conflicts[0].HearingID != "h1" {
		t.Fatalf("expected single conflict for h1 got %v", conflicts)
	}
	if conflicts[0].CaseNumber != "CRM-001" {
		t.Fatalf("conflict should carry the case number, got %q", conflicts[0].CaseNumber)
	}
}

func TestDetector_IgnoresInactiveAndExcluded(t *testing.T) {
	s := testStore(t)
	d := NewDetector(s)
	base := time.Date(2025, 3, 3, 9, 0, 0, 0, time.UTC)
	mustCreateHearing(t, s, model.Hearing{ID: "h1", CaseID: "c1", CourtroomID: "r1", ScheduledDate: base, ScheduledDurationHours: 2, Status: model.HearingCancelled})
	mustCreateHearing(t, s, model.Hearing{ID: "h2", CaseID: "c1", CourtroomID: "r1", ScheduledDate: base.AddDate(0, 0, 1), ScheduledDurationHours: 2, Status: model.HearingScheduled})

	conflicts, err := d.Check(context.Background(), "j1", "r1", base, 1, "")
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if len(conflicts) != 0 {
		t.Fatalf("cancelled hearing must not conflict: %v", conflicts)
	}

	conflicts, err = d.Check(context.Background(), "j1", "r1", base.AddDate(0, 0, 1), 1, "h2")
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if len(conflicts) != 0 {
		t.Fatalf("excluded hearing must not conflict with itself: %v", conflicts)
	}
}

func TestDetector_Idempotent(t *testing.T) {
	s := testStore(t)
	d := NewDetector(s)
	base := time.Date(2025, 3, 3, 9, 0, 0, 0, time.UTC)
	mustCreateHearing(t, s, model.Hearing{ID: "h1", CaseID: "c1", CourtroomID: "r1", ScheduledDate: base, ScheduledDurationHours: 2, Status: model.HearingScheduled})

	first, err := d.Check(context.Background(), "j1", "r1", base, 1, "")
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	second, err := d.Check(context.Background(), "j1", "r1", base, 1, "")
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if len(first) != len(second) {
		t.Fatalf("idempotence violated: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("idempotence violated at %d: %v vs %v", i, first[i], second[i])
		}
	}
}

func TestDetector_RejectsNonPositiveDuration(t *testing.T) {
	s := testStore(t)
	d := NewDetector(s)
	if _, err := d.Check(context.Background(), "j1", "r1", time.Now(), 0, ""); !model.IsValidation(err) {
		t.Fatalf("expected validation error got %v", err)
	}
}
