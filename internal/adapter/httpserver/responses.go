// Package httpserver contains HTTP handlers and middleware.
//
// The recommendation endpoints follow a "never fail" contract: they always
// answer 200 with a well-formed, minimum-cardinality payload, absorbing
// upstream failures into fallback data. Only unmatched routes (404) and
// genuinely unexpected errors (500) break that rule.
package httpserver

import (
	"encoding/json"
	"net/http"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
