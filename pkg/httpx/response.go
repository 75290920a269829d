package httpx

import (
	"encoding/json"
	"net/http"
)

// DetailResponse is the structured error body returned for all 4xx/5xx
// responses: {"detail": "<message>"}.
type DetailResponse struct {
	Detail string `json:"detail"`
}

// ListResponse is the envelope returned by all list endpoints.
type ListResponse struct {
	Count   int `json:"count"`
	Results any `json:"results"`
}

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteDetail writes a structured error body with the given status code.
func WriteDetail(w http.ResponseWriter, code int, detail string) {
	WriteJSON(w, code, DetailResponse{Detail: detail})
}

// NoCache sets the Cache-Control and Pragma headers to prevent caching.
// Required for sensitive responses like session tokens.
func NoCache(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Pragma", "no-cache")
}
