package server

import (
	"encoding/json"
	"net/http"

	"github.com/jrsteele09/go-auth-gateway/auth"
	"github.com/rs/zerolog/log"
)

const contentTypeJSON = "application/json; charset=utf-8"

// ResponseBody is the uniform envelope every route answers with.
type ResponseBody struct {
	Status   string            `json:"status"`
	Message  string            `json:"message"`
	Data     any               `json:"data,omitempty"`
	ErrField map[string]string `json:"errField,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body ResponseBody) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error().Err(err).Msg("failed to encode response body")
	}
}

func writeSuccess(w http.ResponseWriter, status int, message string, data any) {
	writeJSON(w, status, ResponseBody{Status: "success", Message: message, Data: data})
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ResponseBody{Status: "error", Message: message})
}

func writeFieldErrors(w http.ResponseWriter, message string, fieldErrs auth.FieldErrors) {
	writeJSON(w, http.StatusBadRequest, ResponseBody{
		Status:   "error",
		Message:  message,
		ErrField: fieldErrs,
	})
}
