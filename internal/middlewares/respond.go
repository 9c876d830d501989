package middlewares

import (
	"encoding/json"
	"net/http"
)

// respondError writes an error response in the same JSON shape the API
// handlers use, so middleware rejections look identical to handler errors.
func respondError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
