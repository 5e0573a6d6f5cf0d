package workload

import (
	"context"
	"math"
	"testing"

	"github.com/courtflow/courtflow/core/model"
	"github.com/courtflow/courtflow/core/store"
)

func seedJudges(t *testing.T, loads []float64, available []bool) *store.MemoryStore {
	t.Helper()
	st := store.NewMemoryStore()
	ctx := context.Background()
	for i, w := range loads {
		j := model.Judge{
			ID:              string(rune('a' + i)),
			CourtID:         "court-1",
			Name:            "Judge " + string(rune('A'+i)),
			CurrentWorkload: w,
			IsAvailable:     available[i],
		}
		if err := st.CreateJudge(ctx, j); err != nil {
			t.Fatalf("CreateJudge: %v", err)
		}
	}
	return st
}

func TestAnalyze_DistributionStats(t *testing.T) {
	st := seedJudges(t, []float64{10, 50, 95, 20}, []bool{true, true, true, true})
	a := NewAnalyzer(st, nil)

	rep, err := a.Analyze(context.Background(), "court-1")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if rep.TotalJudges != 4 || rep.AvailableJudges != 4 {
		t.Fatalf("judge counts = %d/%d, want 4/4", rep.TotalJudges, rep.AvailableJudges)
	}
	if math.Abs(rep.Stats.Average-43.75) > 1e-9 {
		t.Errorf("average = %v, want 43.75", rep.Stats.Average)
	}
	if rep.Stats.Max != 95 || rep.Stats.Min != 10 {
		t.Errorf("max/min = %v/%v, want 95/10", rep.Stats.Max, rep.Stats.Min)
	}
	if len(rep.Overloaded) != 1 {
		t.Fatalf("overloaded = %d judges, want 1", len(rep.Overloaded))
	}
	if rep.Overloaded[0].Workload != 95 || rep.Overloaded[0].Severity != "critical" {
		t.Errorf("overloaded entry = %+v, want workload 95 severity critical", rep.Overloaded[0])
	}
	if math.Abs(rep.BalanceScore-15) > 1e-9 {
		t.Errorf("balance score = %v, want 15", rep.BalanceScore)
	}
	if !rep.NeedsRebalancing {
		t.Error("needs_rebalancing = false, want true")
	}
}

func TestAnalyze_PopulationStdDev(t *testing.T) {
	st := seedJudges(t, []float64{10, 50, 95, 20}, []bool{true, true, true, true})
	a := NewAnalyzer(st, nil)

	rep, err := a.Analyze(context.Background(), "")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	// sqrt(((10-43.75)^2+(50-43.75)^2+(95-43.75)^2+(20-43.75)^2)/4)
	want := math.Sqrt((33.75*33.75 + 6.25*6.25 + 51.25*51.25 + 23.75*23.75) / 4)
	if math.Abs(rep.Stats.StdDev-want) > 1e-9 {
		t.Errorf("std dev = %v, want %v", rep.Stats.StdDev, want)
	}
}

func TestAnalyze_BalanceScoreGoesNegative(t *testing.T) {
	// A spread wider than 100 points must push the score below zero,
	// not clamp at it.
	st := seedJudges(t, []float64{0, 150}, []bool{true, true})
	a := NewAnalyzer(st, nil)

	rep, err := a.Analyze(context.Background(), "court-1")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if math.Abs(rep.BalanceScore-(-50)) > 1e-9 {
		t.Errorf("balance score = %v, want -50", rep.BalanceScore)
	}
}

func TestAnalyze_UnderloadedRequiresAvailability(t *testing.T) {
	// Both low-load judges sit below avg*0.5 (avg = 43.75, half = 21.875),
	// but only the available one should be flagged.
	st := seedJudges(t, []float64{10, 50, 95, 20}, []bool{false, true, true, true})
	a := NewAnalyzer(st, nil)

	rep, err := a.Analyze(context.Background(), "court-1")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if len(rep.Underloaded) != 1 {
		t.Fatalf("underloaded = %d judges, want 1", len(rep.Underloaded))
	}
	if rep.Underloaded[0].Workload != 20 {
		t.Errorf("underloaded judge workload = %v, want 20", rep.Underloaded[0].Workload)
	}
	if rep.AvailableJudges != 3 {
		t.Errorf("available = %d, want 3", rep.AvailableJudges)
	}
}

func TestAnalyze_Suggestions(t *testing.T) {
	st := seedJudges(t, []float64{10, 50, 95, 20}, []bool{true, true, true, true})
	a := NewAnalyzer(st, nil)

	rep, err := a.Analyze(context.Background(), "court-1")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	// One overloaded judge (95, excess 51.25 -> capped at 3 cases) paired
	// with the two least-loaded available judges.
	if len(rep.Suggestions) != 2 {
		t.Fatalf("suggestions = %d, want 2", len(rep.Suggestions))
	}
	for _, s := range rep.Suggestions {
		if s.FromJudgeID != "c" {
			t.Errorf("suggestion source = %s, want c", s.FromJudgeID)
		}
		if s.CaseCount != 3 {
			t.Errorf("suggested case count = %d, want 3", s.CaseCount)
		}
		if s.Reason == "" {
			t.Error("suggestion reason is empty")
		}
	}
	// Emptiest recipient listed first.
	if rep.Suggestions[0].ToJudgeID != "a" || rep.Suggestions[1].ToJudgeID != "d" {
		t.Errorf("recipients = %s, %s, want a, d",
			rep.Suggestions[0].ToJudgeID, rep.Suggestions[1].ToJudgeID)
	}
}

func TestSuggest_SmallExcessOmitted(t *testing.T) {
	// An excess below 2 floors to a zero transfer count and the pairing is
	// dropped entirely.
	over := []JudgeLoad{{JudgeID: "x", Workload: 81, Excess: 1.5}}
	under := []JudgeLoad{{JudgeID: "y", Workload: 10, Capacity: 30}}

	if got := suggest(over, under); len(got) != 0 {
		t.Errorf("suggestions = %d, want 0", len(got))
	}
}

func TestSuggest_CrossProductCapped(t *testing.T) {
	over := []JudgeLoad{
		{JudgeID: "o1", Workload: 99, Excess: 50},
		{JudgeID: "o2", Workload: 95, Excess: 46},
		{JudgeID: "o3", Workload: 92, Excess: 43},
		{JudgeID: "o4", Workload: 90, Excess: 41},
	}
	under := []JudgeLoad{
		{JudgeID: "u1", Workload: 5},
		{JudgeID: "u2", Workload: 10},
		{JudgeID: "u3", Workload: 15},
	}

	got := suggest(over, under)
	if len(got) != 6 {
		t.Fatalf("suggestions = %d, want 6 (3 sources x 2 recipients)", len(got))
	}
	for _, s := range got {
		if s.FromJudgeID == "o4" || s.ToJudgeID == "u3" {
			t.Errorf("suggestion %s->%s exceeds the pairing cap", s.FromJudgeID, s.ToJudgeID)
		}
	}
}

func TestAnalyze_EmptyScope(t *testing.T) {
	a := NewAnalyzer(store.NewMemoryStore(), nil)

	rep, err := a.Analyze(context.Background(), "court-9")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if rep.TotalJudges != 0 || rep.NeedsRebalancing {
		t.Errorf("empty scope report = %+v, want zero report", rep)
	}
	if rep.Overloaded == nil || rep.Underloaded == nil || rep.Suggestions == nil {
		t.Error("empty scope slices should be non-nil")
	}
}
