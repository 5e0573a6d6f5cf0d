package scheduling

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	corelogger "github.com/courtflow/courtflow/core/logger"
	coremetrics "github.com/courtflow/courtflow/core/metrics"
	"github.com/courtflow/courtflow/core/model"
	"github.com/courtflow/courtflow/core/store"
)

// Constraints bound a slot search.
type Constraints struct {
	// MinAdvanceDays is the minimum notice before the first candidate day.
	// Zero means the configured default; negative values are rejected.
	MinAdvanceDays int `json:"min_advance_days"`
	// MaxDailyHours, when positive, skips slots that would push the judge's
	// scheduled hours for that day beyond the limit.
	MaxDailyHours float64 `json:"max_daily_hours"`
	// RequiredJurisdiction overrides the case's jurisdiction when selecting
	// eligible judges.
	RequiredJurisdiction model.Jurisdiction `json:"required_jurisdiction,omitempty"`
}

// SearchResult is a ranked slot list. TotalCandidates counts the
// conflict-free candidates found before the result cap, so callers can tell
// whether more existed than were returned.
type SearchResult struct {
	CaseID          string                `json:"case_id"`
	Slots           []model.CandidateSlot `json:"suggested_slots"`
	TotalCandidates int                   `json:"total_candidates"`
}

// Finder enumerates a bounded future horizon of candidate slots for a case,
// filters out conflicting ones and returns the top-ranked results. It has no
// side effects on the store.
type Finder struct {
	cfg      Config
	st       store.Store
	detector *Detector
	scorer   Scorer
	log      corelogger.Logger
	sink     coremetrics.SlotSearchRecorder
	now      func() time.Time
}

// NewFinder creates a Finder. A nil sink disables search metrics.
func NewFinder(cfg Config, st store.Store, log corelogger.Logger, sink coremetrics.SlotSearchRecorder) (*Finder, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("finder config: %w", err)
	}
	return &Finder{
		cfg:      cfg,
		st:       st,
		detector: NewDetector(st),
		log:      log,
		sink:     sink,
		now:      time.Now,
	}, nil
}

// SetClock overrides the time source. Intended for tests.
func (f *Finder) SetClock(now func() time.Time) { f.now = now }

// FindSlots resolves the case and returns up to MaxResults ranked candidate
// slots. Zero eligible judges or courtrooms yields a successful empty result,
// distinct from a missing case.
func (f *Finder) FindSlots(ctx context.Context, caseID string, cons Constraints) (SearchResult, error) {
	started := f.now()
	res := SearchResult{CaseID: caseID, Slots: []model.CandidateSlot{}}

	c, err := f.st.GetCase(ctx, caseID)
	if err != nil {
		return res, err
	}
	if cons.MinAdvanceDays < 0 {
		return res, &model.ValidationError{Field: "min_advance_days", Reason: "must not be negative"}
	}
	if cons.MinAdvanceDays == 0 {
		cons.MinAdvanceDays = f.cfg.DefaultMinAdvanceDays
	}
	jurisdiction := c.Jurisdiction
	if cons.RequiredJurisdiction != "" {
		jurisdiction = cons.RequiredJurisdiction
	}

	judges, err := f.st.ListJudges(ctx, store.JudgeFilter{
		CourtID:        c.CourtID,
		Specialization: jurisdiction,
		AvailableOnly:  true,
	})
	if err != nil {
		return res, err
	}
	rooms, err := f.st.ListCourtrooms(ctx, store.CourtroomFilter{CourtID: c.CourtID, AvailableOnly: true})
	if err != nil {
		return res, err
	}
	if len(judges) == 0 || len(rooms) == 0 {
		f.log.Infof("no capacity for case %s: %d judges, %d courtrooms", caseID, len(judges), len(rooms))
		f.record(res, started)
		return res, nil
	}

	// Conflict checks use whole-hour occupancy.
	checkHours := math.Ceil(c.EstimatedDurationHours)
	now := f.now()
	first := now.AddDate(0, 0, cons.MinAdvanceDays)

	for day := 0; day < f.cfg.HorizonDays; day++ {
		date := first.AddDate(0, 0, day)
		if wd := date.Weekday(); wd == time.Saturday || wd == time.Sunday {
			continue
		}
		for hour := f.cfg.DayStartHour; hour <= f.cfg.DayEndHour; hour++ {
			slotTime := time.Date(date.Year(), date.Month(), date.Day(), hour, 0, 0, 0, date.Location())
			for _, j := range judges {
				if cons.MaxDailyHours > 0 {
					over, err := f.exceedsDailyHours(ctx, j.ID, slotTime, checkHours, cons.MaxDailyHours)
					if err != nil {
						return res, err
					}
					if over {
						continue
					}
				}
				for _, r := range rooms {
					conflicts, err := f.detector.Check(ctx, j.ID, r.ID, slotTime, checkHours, "")
					if err != nil {
						return res, err
					}
					if len(conflicts) > 0 {
						continue
					}
					res.Slots = append(res.Slots, model.CandidateSlot{
						Time:          slotTime,
						JudgeID:       j.ID,
						JudgeName:     j.Name,
						CourtroomID:   r.ID,
						CourtroomName: r.Name,
						DurationHours: c.EstimatedDurationHours,
						PriorityScore: f.scorer.Score(c, j, slotTime, now),
					})
				}
			}
		}
	}

	res.TotalCandidates = len(res.Slots)
	// Stable: equal scores keep day-then-judge-then-courtroom generation order.
	sort.SliceStable(res.Slots, func(i, j int) bool {
		return res.Slots[i].PriorityScore > res.Slots[j].PriorityScore
	})
	if len(res.Slots) > f.cfg.MaxResults {
		res.Slots = res.Slots[:f.cfg.MaxResults]
	}
	f.record(res, started)
	return res, nil
}

// exceedsDailyHours reports whether adding durationHours to the judge's
// schedule on the slot's day would exceed the limit.
func (f *Finder) exceedsDailyHours(ctx context.Context, judgeID string, slotTime time.Time, durationHours, limit float64) (bool, error) {
	dayStart := time.Date(slotTime.Year(), slotTime.Month(), slotTime.Day(), 0, 0, 0, 0, slotTime.Location())
	hearings, err := f.st.ListHearings(ctx, store.HearingFilter{
		JudgeID:  judgeID,
		Statuses: model.ActiveHearingStatuses,
		From:     dayStart,
		To:       dayStart.AddDate(0, 0, 1),
	})
	if err != nil {
		return false, err
	}
	booked := 0.0
	for _, h := range hearings {
		booked += h.ScheduledDurationHours
	}
	return booked+durationHours > limit, nil
}

func (f *Finder) record(res SearchResult, started time.Time) {
	if f.sink == nil {
		return
	}
	ev := coremetrics.SlotSearchEvent{
		CaseID:     res.CaseID,
		Candidates: res.TotalCandidates,
		Returned:   len(res.Slots),
		Elapsed:    f.now().Sub(started),
		Time:       f.now(),
	}
	if err := f.sink.RecordSlotSearch(ev); err != nil {
		f.log.Warnf("slot search metrics: %v", err)
	}
}
