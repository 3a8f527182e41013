// internal/adapters/in/http/handlers/helpers.go
package handlers

import (
	"encoding/json"
	"net/http"
)

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"message": msg})
}

func notFoundRoute(w http.ResponseWriter) {
	writeMessage(w, http.StatusNotFound, "Route not found")
}
