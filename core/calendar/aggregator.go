package calendar

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/courtflow/courtflow/core/logger"
	"github.com/courtflow/courtflow/core/model"
	"github.com/courtflow/courtflow/core/store"
)

const (
	// A courtroom sits 8 working hours per day; a judge carries a nominal
	// 40-hour week.
	roomHoursPerDay   = 8.0
	judgeHoursPerWeek = 40.0

	firstSlotHour = 9
	lastSlotHour  = 16
)

// Aggregator assembles calendar views from the hearing repository. All
// methods are read-only snapshots; they never mutate the store.
type Aggregator struct {
	st  store.Store
	log logger.Logger
	now func() time.Time
}

// NewAggregator builds an Aggregator over the given repositories.
func NewAggregator(st store.Store, log logger.Logger) *Aggregator {
	return &Aggregator{st: st, log: log, now: time.Now}
}

// SetClock overrides the time source. Intended for tests.
func (a *Aggregator) SetClock(now func() time.Time) { a.now = now }

// HeatmapRange renders daily occupancy for every working day in
// [start, end] (inclusive), scoped to courtID when non-empty.
func (a *Aggregator) HeatmapRange(ctx context.Context, start, end time.Time, courtID string) (Heatmap, error) {
	start = dayStart(start)
	end = dayStart(end)
	if end.Before(start) {
		return Heatmap{}, &model.ValidationError{Field: "end_date", Reason: "must not precede start_date"}
	}

	hearings, err := a.st.ListHearings(ctx, store.HearingFilter{
		CourtID: courtID,
		From:    start,
		To:      end.AddDate(0, 0, 1),
	})
	if err != nil {
		return Heatmap{}, fmt.Errorf("list hearings: %w", err)
	}
	rooms, err := a.st.ListCourtrooms(ctx, store.CourtroomFilter{CourtID: courtID})
	if err != nil {
		return Heatmap{}, fmt.Errorf("list courtrooms: %w", err)
	}

	hm := Heatmap{
		Range:                DateRange{Start: start, End: end},
		Days:                 []DayCell{},
		WorkloadDistribution: map[string]float64{},
	}

	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		if isWeekend(day) {
			continue
		}
		cell := DayCell{Date: day, Rooms: make([]RoomCell, 0, len(rooms))}
		for _, h := range hearings {
			if sameDay(h.ScheduledDate, day) {
				cell.HoursScheduled += h.ScheduledDurationHours
			}
		}
		if max := float64(len(rooms)) * roomHoursPerDay; max > 0 {
			cell.CapacityPercent = cell.HoursScheduled / max * 100
		}
		cell.Status = capacityStatus(cell.CapacityPercent)

		for _, r := range rooms {
			rc := RoomCell{CourtroomID: r.ID, CourtroomName: r.Name}
			for _, h := range hearings {
				if h.CourtroomID == r.ID && sameDay(h.ScheduledDate, day) {
					rc.HoursBooked += h.ScheduledDurationHours
				}
			}
			rc.CapacityPercent = rc.HoursBooked / roomHoursPerDay * 100
			if rc.CapacityPercent > 100 {
				rc.CapacityPercent = 100
			}
			cell.Rooms = append(cell.Rooms, rc)
		}
		hm.Days = append(hm.Days, cell)
	}

	if err := a.fillWorkloadDistribution(ctx, &hm, hearings, courtID); err != nil {
		return Heatmap{}, err
	}
	if a.log != nil {
		a.log.Debugf("heatmap built: %d working days, %d hearings", len(hm.Days), len(hearings))
	}
	return hm, nil
}

// fillWorkloadDistribution maps each judge in scope to the share of their
// nominal range capacity consumed by the given hearings, capped at 100.
func (a *Aggregator) fillWorkloadDistribution(ctx context.Context, hm *Heatmap, hearings []model.Hearing, courtID string) error {
	judges, err := a.st.ListJudges(ctx, store.JudgeFilter{CourtID: courtID})
	if err != nil {
		return fmt.Errorf("list judges: %w", err)
	}

	hoursByJudge := map[string]float64{}
	cases := map[string]model.Case{}
	for _, h := range hearings {
		c, err := a.caseFor(ctx, cases, h.CaseID)
		if err != nil {
			return err
		}
		if c.AssignedJudgeID != "" {
			hoursByJudge[c.AssignedJudgeID] += h.ScheduledDurationHours
		}
	}

	days := hm.Range.End.Sub(hm.Range.Start).Hours() / 24
	capacity := days / 7 * judgeHoursPerWeek
	for _, j := range judges {
		pct := 0.0
		if capacity > 0 {
			pct = hoursByJudge[j.ID] / capacity * 100
			if pct > 100 {
				pct = 100
			}
		}
		hm.WorkloadDistribution[j.ID] = pct
	}
	return nil
}

// DayViewFor lists every courtroom's hearings on the given date, ordered
// by start time, with case and judge details attached.
func (a *Aggregator) DayViewFor(ctx context.Context, date time.Time, courtID string) (DayView, error) {
	day := dayStart(date)
	hearings, err := a.st.ListHearings(ctx, store.HearingFilter{
		CourtID: courtID,
		From:    day,
		To:      day.AddDate(0, 0, 1),
	})
	if err != nil {
		return DayView{}, fmt.Errorf("list hearings: %w", err)
	}
	rooms, err := a.st.ListCourtrooms(ctx, store.CourtroomFilter{CourtID: courtID})
	if err != nil {
		return DayView{}, fmt.Errorf("list courtrooms: %w", err)
	}

	view := DayView{
		Date:          day,
		CourtID:       courtID,
		Rooms:         make([]RoomSchedule, 0, len(rooms)),
		TotalHearings: len(hearings),
		Summary:       DayViewSummary{TotalCourtrooms: len(rooms)},
	}

	res := a.newResolver()
	for _, r := range rooms {
		rs := RoomSchedule{CourtroomID: r.ID, CourtroomName: r.Name, Hearings: []HearingEntry{}}
		for _, h := range hearings {
			if h.CourtroomID != r.ID {
				continue
			}
			entry, err := res.entry(ctx, h)
			if err != nil {
				return DayView{}, err
			}
			rs.Hearings = append(rs.Hearings, entry)
			view.Summary.TotalHours += h.ScheduledDurationHours
		}
		sort.SliceStable(rs.Hearings, func(i, k int) bool {
			return rs.Hearings[i].ScheduledTime.Before(rs.Hearings[k].ScheduledTime)
		})
		if len(rs.Hearings) > 0 {
			view.Summary.ActiveCourtrooms++
		}
		view.Rooms = append(view.Rooms, rs)
	}
	return view, nil
}

// WeekViewFor renders a Monday-to-Sunday schedule for the week containing
// weekStart. Any weekday is accepted; it is snapped back to Monday.
func (a *Aggregator) WeekViewFor(ctx context.Context, weekStart time.Time, courtID string) (WeekView, error) {
	monday := dayStart(weekStart).AddDate(0, 0, -daysSinceMonday(weekStart))
	weekEnd := monday.AddDate(0, 0, 6)

	hearings, err := a.st.ListHearings(ctx, store.HearingFilter{
		CourtID: courtID,
		From:    monday,
		To:      monday.AddDate(0, 0, 7),
	})
	if err != nil {
		return WeekView{}, fmt.Errorf("list hearings: %w", err)
	}

	view := WeekView{
		WeekStart: monday,
		WeekEnd:   weekEnd,
		CourtID:   courtID,
		Days:      make([]DaySchedule, 0, 7),
		Summary:   WeekViewSummary{TotalHearings: len(hearings)},
	}

	res := a.newResolver()
	busiest := ""
	busiestCount := -1
	for offset := 0; offset < 7; offset++ {
		day := monday.AddDate(0, 0, offset)
		ds := DaySchedule{Date: day, DayName: day.Weekday().String()}
		if isWeekend(day) {
			view.Days = append(view.Days, ds)
			continue
		}
		ds.IsWorkingDay = true
		for hour := firstSlotHour; hour <= lastSlotHour; hour++ {
			slot := TimeSlot{
				Time:     day.Add(time.Duration(hour) * time.Hour),
				Hearings: []HearingEntry{},
			}
			for _, h := range hearings {
				if !sameDay(h.ScheduledDate, day) || h.ScheduledDate.Hour() != hour {
					continue
				}
				entry, err := res.entry(ctx, h)
				if err != nil {
					return WeekView{}, err
				}
				slot.Hearings = append(slot.Hearings, entry)
				ds.TotalHearings++
			}
			ds.Slots = append(ds.Slots, slot)
		}
		// Strict comparison keeps the earliest day on ties.
		if ds.TotalHearings > busiestCount {
			busiest = ds.DayName
			busiestCount = ds.TotalHearings
		}
		view.Days = append(view.Days, ds)
	}
	view.Summary.BusiestDay = busiest
	return view, nil
}

// Upcoming lists active hearings starting within daysAhead days of now,
// soonest first, optionally narrowed to a judge or a courtroom.
func (a *Aggregator) Upcoming(ctx context.Context, daysAhead int, judgeID, courtroomID string) (UpcomingList, error) {
	if daysAhead <= 0 {
		return UpcomingList{}, &model.ValidationError{Field: "days_ahead", Reason: "must be positive"}
	}
	now := a.now()
	end := now.AddDate(0, 0, daysAhead)

	hearings, err := a.st.ListHearings(ctx, store.HearingFilter{
		JudgeID:     judgeID,
		CourtroomID: courtroomID,
		Statuses:    model.ActiveHearingStatuses,
		From:        now,
		To:          end,
	})
	if err != nil {
		return UpcomingList{}, fmt.Errorf("list hearings: %w", err)
	}
	sort.SliceStable(hearings, func(i, k int) bool {
		return hearings[i].ScheduledDate.Before(hearings[k].ScheduledDate)
	})

	list := UpcomingList{
		Hearings: make([]UpcomingHearing, 0, len(hearings)),
		Range:    DateRange{Start: now, End: end},
	}
	res := a.newResolver()
	today := dayStart(now)
	for _, h := range hearings {
		entry, err := res.entry(ctx, h)
		if err != nil {
			return UpcomingList{}, err
		}
		days := int(dayStart(h.ScheduledDate).Sub(today).Hours() / 24)
		list.Hearings = append(list.Hearings, UpcomingHearing{HearingEntry: entry, DaysUntil: days})
	}
	list.TotalCount = len(list.Hearings)
	return list, nil
}

// resolver denormalizes hearings into entries, caching the case, judge and
// courtroom lookups within a single view build.
type resolver struct {
	st     store.Store
	cases  map[string]model.Case
	judges map[string]string
	rooms  map[string]string
}

func (a *Aggregator) newResolver() *resolver {
	return &resolver{
		st:     a.st,
		cases:  map[string]model.Case{},
		judges: map[string]string{},
		rooms:  map[string]string{},
	}
}

func (r *resolver) entry(ctx context.Context, h model.Hearing) (HearingEntry, error) {
	c, err := caseFor(ctx, r.st, r.cases, h.CaseID)
	if err != nil {
		return HearingEntry{}, err
	}
	judgeName := "Unassigned"
	if c.AssignedJudgeID != "" {
		name, ok := r.judges[c.AssignedJudgeID]
		if !ok {
			j, err := r.st.GetJudge(ctx, c.AssignedJudgeID)
			switch {
			case errors.Is(err, model.ErrNotFound):
				name = "Unassigned"
			case err != nil:
				return HearingEntry{}, fmt.Errorf("resolve judge %s: %w", c.AssignedJudgeID, err)
			default:
				name = j.Name
			}
			r.judges[c.AssignedJudgeID] = name
		}
		judgeName = name
	}
	roomName, ok := r.rooms[h.CourtroomID]
	if !ok {
		room, err := r.st.GetCourtroom(ctx, h.CourtroomID)
		if err != nil {
			return HearingEntry{}, fmt.Errorf("resolve courtroom %s: %w", h.CourtroomID, err)
		}
		roomName = room.Name
		r.rooms[h.CourtroomID] = roomName
	}

	return HearingEntry{
		HearingID:     h.ID,
		CaseNumber:    c.CaseNumber,
		CaseTitle:     c.Title,
		ScheduledTime: h.ScheduledDate,
		DurationHours: h.ScheduledDurationHours,
		CourtroomName: roomName,
		JudgeName:     judgeName,
		Status:        string(h.Status),
		UrgencyLevel:  string(c.UrgencyLevel),
		Jurisdiction:  string(c.Jurisdiction),
	}, nil
}

func (a *Aggregator) caseFor(ctx context.Context, cache map[string]model.Case, id string) (model.Case, error) {
	return caseFor(ctx, a.st, cache, id)
}

func caseFor(ctx context.Context, st store.CaseStore, cache map[string]model.Case, id string) (model.Case, error) {
	if c, ok := cache[id]; ok {
		return c, nil
	}
	c, err := st.GetCase(ctx, id)
	if err != nil {
		return model.Case{}, fmt.Errorf("resolve case %s: %w", id, err)
	}
	cache[id] = c
	return c, nil
}

func capacityStatus(pct float64) string {
	switch {
	case pct < 50:
		return StatusAvailable
	case pct < 80:
		return StatusModerate
	case pct < 100:
		return StatusBusy
	default:
		return StatusOverloaded
	}
}

func dayStart(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func isWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

func daysSinceMonday(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}
