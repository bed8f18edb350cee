package api

import (
	"encoding/json"
	"net/http"
)

// writeJSON encodes v as JSON and writes it with the given status code.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// errorResponse is the standard error envelope. Code carries the stable
// numeric error code when the failure originated in the graph core.
type errorResponse struct {
	Error      string      `json:"error"`
	Code       int         `json:"code,omitempty"`
	Violations []violation `json:"violations,omitempty"`
}

// violation is one validation finding.
type violation struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func writeCodedError(w http.ResponseWriter, status, code int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg, Code: code})
}
