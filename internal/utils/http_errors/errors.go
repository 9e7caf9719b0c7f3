package utils

import (
	"encoding/json"
	"net/http"
)

func WriteJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	_ = json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]any{
			"code": status,
			"text": msg,
		},
	})
}

func WriteStatusError(w http.ResponseWriter, status int) {
	w.WriteHeader(status)
}
