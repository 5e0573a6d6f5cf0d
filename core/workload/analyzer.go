package workload

import (
	"context"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/courtflow/courtflow/core/logger"
	"github.com/courtflow/courtflow/core/store"
)

// Classification thresholds. Load figures are percentages carried on the
// judge record; they are aggregated here, never recomputed.
const (
	overloadAbsolute  = 80.0
	criticalThreshold = 90.0
	highThreshold     = 80.0

	maxSuggestedOverloaded  = 3
	maxSuggestedUnderloaded = 2
	maxCasesPerSuggestion   = 3

	// Each transferred case is assumed to relieve this many workload points
	// when projecting the post-transfer figure in a suggestion reason.
	workloadPointsPerCase = 5.0
)

// Stats summarizes the workload distribution across the judges in scope.
// StdDev is the population standard deviation.
type Stats struct {
	Average float64 `json:"average"`
	Max     float64 `json:"maximum"`
	Min     float64 `json:"minimum"`
	StdDev  float64 `json:"std_deviation"`
}

// JudgeLoad is one judge's classified workload entry.
type JudgeLoad struct {
	JudgeID  string  `json:"judge_id"`
	Name     string  `json:"judge_name"`
	Workload float64 `json:"current_workload"`
	// Excess is workload minus the scope average; set for overloaded judges.
	Excess float64 `json:"excess,omitempty"`
	// Capacity is the scope average minus workload; set for underloaded judges.
	Capacity float64 `json:"capacity,omitempty"`
	Severity string  `json:"severity,omitempty"`
}

// Suggestion proposes moving cases from an overloaded judge to an
// underloaded one. It is a heuristic hint only; eligibility and conflicts
// are checked by whoever acts on it through the scheduling path.
type Suggestion struct {
	FromJudgeID string `json:"from_judge_id"`
	FromJudge   string `json:"from_judge"`
	ToJudgeID   string `json:"to_judge_id"`
	ToJudge     string `json:"to_judge"`
	CaseCount   int    `json:"suggested_cases_count"`
	Reason      string `json:"reason"`
}

// Report is the full workload analysis for a court (or all courts).
type Report struct {
	TotalJudges      int          `json:"total_judges"`
	AvailableJudges  int          `json:"available_judges"`
	Stats            Stats        `json:"workload_stats"`
	Overloaded       []JudgeLoad  `json:"overloaded_judges"`
	Underloaded      []JudgeLoad  `json:"underloaded_judges"`
	Suggestions      []Suggestion `json:"suggestions"`
	BalanceScore     float64      `json:"balance_score"`
	NeedsRebalancing bool         `json:"needs_rebalancing"`
}

// Analyzer classifies judge workloads and proposes rebalancing moves.
type Analyzer struct {
	st  store.JudgeStore
	log logger.Logger
}

// NewAnalyzer builds an Analyzer over the given judge repository.
func NewAnalyzer(st store.JudgeStore, log logger.Logger) *Analyzer {
	return &Analyzer{st: st, log: log}
}

// Analyze aggregates workloads for the judges of courtID, or of every court
// when courtID is empty. An empty scope yields a zero report, not an error.
func (a *Analyzer) Analyze(ctx context.Context, courtID string) (Report, error) {
	judges, err := a.st.ListJudges(ctx, store.JudgeFilter{CourtID: courtID})
	if err != nil {
		return Report{}, fmt.Errorf("list judges: %w", err)
	}
	if len(judges) == 0 {
		return Report{
			Overloaded:  []JudgeLoad{},
			Underloaded: []JudgeLoad{},
			Suggestions: []Suggestion{},
		}, nil
	}

	loads := make([]float64, len(judges))
	available := 0
	for i, j := range judges {
		loads[i] = j.CurrentWorkload
		if j.IsAvailable {
			available++
		}
	}

	stats := Stats{
		Average: stat.Mean(loads, nil),
		Max:     floats.Max(loads),
		Min:     floats.Min(loads),
	}
	if len(loads) > 1 {
		// Population standard deviation: gonum's stat.StdDev divides by n-1,
		// so take the second central moment instead.
		stats.StdDev = math.Sqrt(stat.Moment(2, loads, nil))
	}

	rep := Report{
		TotalJudges:     len(judges),
		AvailableJudges: available,
		Stats:           stats,
		Overloaded:      []JudgeLoad{},
		Underloaded:     []JudgeLoad{},
		BalanceScore:    100 - (stats.Max - stats.Min),
	}

	for _, j := range judges {
		w := j.CurrentWorkload
		switch {
		case w > stats.Average*2 || w > overloadAbsolute:
			rep.Overloaded = append(rep.Overloaded, JudgeLoad{
				JudgeID:  j.ID,
				Name:     j.Name,
				Workload: w,
				Excess:   w - stats.Average,
				Severity: severity(w),
			})
		case w < stats.Average*0.5 && j.IsAvailable:
			rep.Underloaded = append(rep.Underloaded, JudgeLoad{
				JudgeID:  j.ID,
				Name:     j.Name,
				Workload: w,
				Capacity: stats.Average - w,
			})
		}
	}

	// Most loaded first so the suggestion cap picks the worst offenders;
	// least loaded first so it picks the emptiest recipients.
	sort.SliceStable(rep.Overloaded, func(i, k int) bool {
		return rep.Overloaded[i].Workload > rep.Overloaded[k].Workload
	})
	sort.SliceStable(rep.Underloaded, func(i, k int) bool {
		return rep.Underloaded[i].Workload < rep.Underloaded[k].Workload
	})

	rep.Suggestions = suggest(rep.Overloaded, rep.Underloaded)
	rep.NeedsRebalancing = len(rep.Overloaded) > 0

	if a.log != nil {
		a.log.Debugw("workload analysis complete", map[string]interface{}{
			"court_id":    courtID,
			"judges":      rep.TotalJudges,
			"overloaded":  len(rep.Overloaded),
			"underloaded": len(rep.Underloaded),
		})
	}
	return rep, nil
}

func severity(workload float64) string {
	switch {
	case workload > criticalThreshold:
		return "critical"
	case workload > highThreshold:
		return "high"
	default:
		return "moderate"
	}
}

func suggest(over, under []JudgeLoad) []Suggestion {
	out := []Suggestion{}
	if len(over) > maxSuggestedOverloaded {
		over = over[:maxSuggestedOverloaded]
	}
	if len(under) > maxSuggestedUnderloaded {
		under = under[:maxSuggestedUnderloaded]
	}
	for _, o := range over {
		count := int(o.Excess / 2)
		if count > maxCasesPerSuggestion {
			count = maxCasesPerSuggestion
		}
		if count <= 0 {
			continue
		}
		for _, u := range under {
			out = append(out, Suggestion{
				FromJudgeID: o.JudgeID,
				FromJudge:   o.Name,
				ToJudgeID:   u.JudgeID,
				ToJudge:     u.Name,
				CaseCount:   count,
				Reason: fmt.Sprintf("Reduce workload imbalance (%.0f%% -> %.0f%%)",
					o.Workload, o.Workload-float64(count)*workloadPointsPerCase),
			})
		}
	}
	return out
}
