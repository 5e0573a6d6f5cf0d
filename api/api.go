// Package api holds shared HTTP plumbing for the courtflow endpoints:
// JSON responses, error mapping and the role gate applied to mutating
// routes. Identity resolution happens upstream; handlers only read the
// already-resolved role header.
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/courtflow/courtflow/core/model"
)

// RoleHeader carries the caller's resolved role.
const RoleHeader = "X-User-Role"

// SchedulingRoles may create or move hearings.
var SchedulingRoles = []string{"chief_justice", "court_administrator", "scheduler"}

// RequireRole wraps next, rejecting requests whose role header is not in
// allowed.
func RequireRole(allowed []string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role := r.Header.Get(RoleHeader)
		for _, a := range allowed {
			if role == a {
				next.ServeHTTP(w, r)
				return
			}
		}
		http.Error(w, "insufficient permissions", http.StatusForbidden)
	})
}

// WriteJSON encodes v as the response body.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// WriteError maps domain errors onto HTTP status codes.
func WriteError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, model.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case model.IsValidation(err):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
