// Package httputil holds the JSON helpers shared by the debug endpoints.
package httputil

import (
	"encoding/json"
	"net/http"

	"github.com/banshee-data/velocity.hud/internal/monitoring"
)

// WriteJSON writes data as JSON with the given status code.
func WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		monitoring.Logf("failed to encode json response: %v", err)
	}
}

// WriteJSONError writes {"error": msg} with the given status code.
func WriteJSONError(w http.ResponseWriter, status int, msg string) {
	WriteJSON(w, status, map[string]string{"error": msg})
}

// JSONHandler adapts a read-only lookup into a GET handler. Errors become
// a 500 with the error text; other methods get a 405.
func JSONHandler(get func(r *http.Request) (any, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			WriteJSONError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		v, err := get(r)
		if err != nil {
			WriteJSONError(w, http.StatusInternalServerError, err.Error())
			return
		}
		WriteJSON(w, http.StatusOK, v)
	}
}
