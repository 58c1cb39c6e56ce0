package router

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

func writeJSON(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

// readJSON parses the request body into data.
func readJSON(w http.ResponseWriter, r *http.Request, data any) error {
	maxBytes := 1_048_576 // 1mb
	r.Body = http.MaxBytesReader(w, r.Body, int64(maxBytes))

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(data)
}

func writeJSONError(w http.ResponseWriter, status int, message string) error {
	type envelope struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
		Status  int    `json:"status"`
	}
	return writeJSON(w, status, &envelope{Success: false, Message: message, Status: status})
}

var secretMarkers = []string{"key", "secret", "password", "token", "signature"}

// maskSecrets hides values whose option name looks like a credential.
func maskSecrets(params map[string]any) map[string]any {
	out := make(map[string]any, len(params))
	for k, v := range params {
		out[k] = v
		s, ok := v.(string)
		if !ok || s == "" {
			continue
		}
		lower := strings.ToLower(k)
		for _, marker := range secretMarkers {
			if strings.Contains(lower, marker) {
				out[k] = "********"
				break
			}
		}
	}
	return out
}
