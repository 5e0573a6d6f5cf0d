// Package judges exposes the judge workload analysis over HTTP.
package judges

import (
	"net/http"

	"github.com/courtflow/courtflow/api"
	"github.com/courtflow/courtflow/core/workload"
)

// NewWorkloadHandler serves GET /api/judges/workload?court_id=....
func NewWorkloadHandler(an *workload.Analyzer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		rep, err := an.Analyze(r.Context(), r.URL.Query().Get("court_id"))
		if err != nil {
			api.WriteError(w, err)
			return
		}
		api.WriteJSON(w, http.StatusOK, rep)
	})
}
