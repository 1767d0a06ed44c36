package utils

import (
	"encoding/json"
	"net/http"
)

// Envelope is the single response shape every endpoint returns.
type Envelope struct {
	Error   bool   `json:"error"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func RespondWithJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

func RespondWithError(w http.ResponseWriter, code int, msg string) {
	RespondWithJSON(w, code, Envelope{Error: true, Message: msg})
}

func RespondWithData(w http.ResponseWriter, code int, data any) {
	RespondWithJSON(w, code, Envelope{Error: false, Data: data})
}

func RespondWithMessage(w http.ResponseWriter, code int, msg string, data any) {
	RespondWithJSON(w, code, Envelope{Error: false, Message: msg, Data: data})
}

type M map[string]interface{}
