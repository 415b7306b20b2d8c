package controller

import (
	"encoding/json"
	"log"
	"net/http"
)

// errorResponse is the JSON body of every failed request
type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"tipo,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any, op string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("❌ %s: Error encoding response: %v", op, err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message}, "writeError")
}
