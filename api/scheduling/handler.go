// Package scheduling exposes the slot search, conflict check and hearing
// scheduling operations over HTTP.
package scheduling

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/courtflow/courtflow/api"
	corescheduling "github.com/courtflow/courtflow/core/scheduling"
)

type findSlotsRequest struct {
	CaseID      string                     `json:"case_id"`
	Constraints corescheduling.Constraints `json:"constraints"`
}

// NewFindSlotsHandler serves POST /api/scheduling/find-slots.
func NewFindSlotsHandler(f *corescheduling.Finder) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var req findSlotsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}
		if req.CaseID == "" {
			http.Error(w, "case_id is required", http.StatusBadRequest)
			return
		}
		res, err := f.FindSlots(r.Context(), req.CaseID, req.Constraints)
		if err != nil {
			api.WriteError(w, err)
			return
		}
		api.WriteJSON(w, http.StatusOK, res)
	})
}

// NewConflictsHandler serves GET /api/scheduling/conflicts. Query parameters:
// judge_id, courtroom_id, start (RFC3339), duration_hours, exclude_hearing_id.
func NewConflictsHandler(d *corescheduling.Detector) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		q := r.URL.Query()
		start, err := time.Parse(time.RFC3339, q.Get("start"))
		if err != nil {
			http.Error(w, "start must be RFC3339", http.StatusBadRequest)
			return
		}
		duration, err := strconv.ParseFloat(q.Get("duration_hours"), 64)
		if err != nil {
			http.Error(w, "duration_hours must be a number", http.StatusBadRequest)
			return
		}
		conflicts, err := d.Check(r.Context(), q.Get("judge_id"), q.Get("courtroom_id"),
			start, duration, q.Get("exclude_hearing_id"))
		if err != nil {
			api.WriteError(w, err)
			return
		}
		api.WriteJSON(w, http.StatusOK, map[string]any{
			"conflicts":     conflicts,
			"has_conflicts": len(conflicts) > 0,
		})
	})
}

// NewScheduleHandler serves POST /api/scheduling/hearings. A conflicting
// request is answered with 409 and the conflict list.
func NewScheduleHandler(co *corescheduling.Coordinator) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var req corescheduling.ScheduleRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}
		req.Actor = r.Header.Get(api.RoleHeader)
		out, err := co.Schedule(r.Context(), req)
		if err != nil {
			api.WriteError(w, err)
			return
		}
		status := http.StatusCreated
		if !out.Committed {
			status = http.StatusConflict
		}
		api.WriteJSON(w, status, out)
	})
}

// NewRescheduleHandler serves POST /api/scheduling/hearings/reschedule.
func NewRescheduleHandler(co *corescheduling.Coordinator) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var req corescheduling.RescheduleRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}
		req.Actor = r.Header.Get(api.RoleHeader)
		out, err := co.Reschedule(r.Context(), req)
		if err != nil {
			api.WriteError(w, err)
			return
		}
		status := http.StatusOK
		if !out.Committed {
			status = http.StatusConflict
		}
		api.WriteJSON(w, status, out)
	})
}
