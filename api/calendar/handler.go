// Package calendar exposes the calendar aggregation views over HTTP.
package calendar

import (
	"net/http"
	"strconv"
	"time"

	"github.com/courtflow/courtflow/api"
	corecalendar "github.com/courtflow/courtflow/core/calendar"
)

const dateLayout = "2006-01-02"

// NewHeatmapHandler serves GET /api/calendar/heatmap. Query parameters:
// start_date, end_date (YYYY-MM-DD), court_id.
func NewHeatmapHandler(agg *corecalendar.Aggregator) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		q := r.URL.Query()
		start, err := time.Parse(dateLayout, q.Get("start_date"))
		if err != nil {
			http.Error(w, "start_date must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		end, err := time.Parse(dateLayout, q.Get("end_date"))
		if err != nil {
			http.Error(w, "end_date must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		hm, err := agg.HeatmapRange(r.Context(), start, end, q.Get("court_id"))
		if err != nil {
			api.WriteError(w, err)
			return
		}
		api.WriteJSON(w, http.StatusOK, hm)
	})
}

// NewDayViewHandler serves GET /api/calendar/day-view?date=YYYY-MM-DD.
func NewDayViewHandler(agg *corecalendar.Aggregator) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		q := r.URL.Query()
		date, err := time.Parse(dateLayout, q.Get("date"))
		if err != nil {
			http.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		view, err := agg.DayViewFor(r.Context(), date, q.Get("court_id"))
		if err != nil {
			api.WriteError(w, err)
			return
		}
		api.WriteJSON(w, http.StatusOK, view)
	})
}

// NewWeekViewHandler serves GET /api/calendar/week-view?week_start=YYYY-MM-DD.
// Any weekday is accepted and snapped back to Monday.
func NewWeekViewHandler(agg *corecalendar.Aggregator) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		q := r.URL.Query()
		weekStart, err := time.Parse(dateLayout, q.Get("week_start"))
		if err != nil {
			http.Error(w, "week_start must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		view, err := agg.WeekViewFor(r.Context(), weekStart, q.Get("court_id"))
		if err != nil {
			api.WriteError(w, err)
			return
		}
		api.WriteJSON(w, http.StatusOK, view)
	})
}

// NewUpcomingHandler serves GET /api/calendar/upcoming. Query parameters:
// days_ahead (default 7), judge_id, courtroom_id.
func NewUpcomingHandler(agg *corecalendar.Aggregator) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		q := r.URL.Query()
		days := 7
		if s := q.Get("days_ahead"); s != "" {
			v, err := strconv.Atoi(s)
			if err != nil {
				http.Error(w, "days_ahead must be an integer", http.StatusBadRequest)
				return
			}
			days = v
		}
		list, err := agg.Upcoming(r.Context(), days, q.Get("judge_id"), q.Get("courtroom_id"))
		if err != nil {
			api.WriteError(w, err)
			return
		}
		api.WriteJSON(w, http.StatusOK, list)
	})
}
