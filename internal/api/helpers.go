package api

import (
	"encoding/json"
	"net/http"

	"github.com/hashicorp/go-hclog"
)

// errorResponse is the JSON envelope for every 4xx/5xx response.
type errorResponse struct {
	Error string `json:"error"`
}

// decodeRequest parses the request body as JSON into v. Malformed or empty
// bodies are tolerated and leave v at its zero value; required-field
// validation is the caller's responsibility.
func decodeRequest(r *http.Request, v any) {
	_ = json.NewDecoder(r.Body).Decode(v)
}

func respondJSON(w http.ResponseWriter, log hclog.Logger, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("error encoding response", "error", err)
	}
}

func respondError(w http.ResponseWriter, log hclog.Logger, status int, msg string) {
	respondJSON(w, log, status, errorResponse{Error: msg})
}
