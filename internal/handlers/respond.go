package handlers

import (
	"encoding/json"
	"net/http"
)

// JSON writes v as the response body with the given status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// JSONError writes the error envelope {message, error?}. The error detail is
// included only when expose is true (i.e. outside production mode); clients
// in production never see internal error shapes.
func JSONError(w http.ResponseWriter, status int, message string, err error, expose bool) {
	body := map[string]string{"message": message}
	if expose && err != nil {
		body["error"] = err.Error()
	}
	JSON(w, status, body)
}
