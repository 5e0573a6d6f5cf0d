package calendar

import "time"

// DateRange is an inclusive day range.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Day occupancy status buckets derived from capacity utilization.
const (
	StatusAvailable  = "available"
	StatusModerate   = "moderate"
	StatusBusy       = "busy"
	StatusOverloaded = "overloaded"
)

// RoomCell is a courtroom's booking level on one day.
type RoomCell struct {
	CourtroomID     string  `json:"courtroom_id"`
	CourtroomName   string  `json:"courtroom_name"`
	HoursBooked     float64 `json:"hours_booked"`
	CapacityPercent float64 `json:"capacity_percentage"`
}

// DayCell aggregates one working day across all courtrooms in scope.
type DayCell struct {
	Date            time.Time  `json:"date"`
	Status          string     `json:"status"`
	HoursScheduled  float64    `json:"hours_scheduled"`
	CapacityPercent float64    `json:"capacity_percentage"`
	Rooms           []RoomCell `json:"rooms"`
}

// Heatmap is the occupancy overview for a date range.
type Heatmap struct {
	Range DateRange `json:"date_range"`
	Days  []DayCell `json:"days"`
	// WorkloadDistribution maps judge id to the percentage of the judge's
	// range capacity consumed by scheduled hearings, capped at 100.
	WorkloadDistribution map[string]float64 `json:"workload_distribution"`
}

// HearingEntry is a denormalized hearing listing for calendar views.
type HearingEntry struct {
	HearingID     string    `json:"hearing_id"`
	CaseNumber    string    `json:"case_number"`
	CaseTitle     string    `json:"case_title"`
	ScheduledTime time.Time `json:"scheduled_time"`
	DurationHours float64   `json:"duration_hours"`
	CourtroomName string    `json:"courtroom_name"`
	JudgeName     string    `json:"judge_name"`
	Status        string    `json:"status"`
	UrgencyLevel  string    `json:"urgency_level"`
	Jurisdiction  string    `json:"jurisdiction"`
}

// RoomSchedule lists one courtroom's hearings for a day, ordered by time.
type RoomSchedule struct {
	CourtroomID   string         `json:"courtroom_id"`
	CourtroomName string         `json:"courtroom_name"`
	Hearings      []HearingEntry `json:"hearings"`
}

// DayViewSummary totals a day view.
type DayViewSummary struct {
	TotalCourtrooms  int     `json:"total_courtrooms"`
	ActiveCourtrooms int     `json:"active_courtrooms"`
	TotalHours       float64 `json:"total_hours_scheduled"`
}

// DayView is the courtroom-by-courtroom schedule of a single day.
type DayView struct {
	Date          time.Time      `json:"date"`
	CourtID       string         `json:"court_id,omitempty"`
	Rooms         []RoomSchedule `json:"schedule"`
	TotalHearings int            `json:"total_hearings"`
	Summary       DayViewSummary `json:"summary"`
}

// TimeSlot groups a working day's hearings by starting hour.
type TimeSlot struct {
	Time     time.Time      `json:"time"`
	Hearings []HearingEntry `json:"hearings"`
}

// DaySchedule is one day of a week view. Weekend days carry
// IsWorkingDay=false and no slots.
type DaySchedule struct {
	Date          time.Time  `json:"date"`
	DayName       string     `json:"day_name"`
	IsWorkingDay  bool       `json:"is_working_day"`
	TotalHearings int        `json:"total_hearings"`
	Slots         []TimeSlot `json:"time_slots,omitempty"`
}

// WeekViewSummary totals a week view.
type WeekViewSummary struct {
	TotalHearings int    `json:"total_hearings"`
	BusiestDay    string `json:"busiest_day"`
}

// WeekView is a Monday-to-Sunday schedule with hourly slots.
type WeekView struct {
	WeekStart time.Time       `json:"week_start"`
	WeekEnd   time.Time       `json:"week_end"`
	CourtID   string          `json:"court_id,omitempty"`
	Days      []DaySchedule   `json:"schedule"`
	Summary   WeekViewSummary `json:"summary"`
}

// UpcomingHearing is a hearing in the near-term lookahead window.
type UpcomingHearing struct {
	HearingEntry
	DaysUntil int `json:"days_until"`
}

// UpcomingList is the result of an upcoming-hearings query.
type UpcomingList struct {
	Hearings   []UpcomingHearing `json:"upcoming_hearings"`
	TotalCount int               `json:"total_count"`
	Range      DateRange         `json:"date_range"`
}
