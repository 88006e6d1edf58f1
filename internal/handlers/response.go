package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"ecoleta/internal/services"

	"go.uber.org/zap"
)

// messageResponse is the error body the clients read.
type messageResponse struct {
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if data == nil {
		return
	}

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(true)
	_ = enc.Encode(data)
}

// writeError maps service errors onto status codes. Anything unrecognised is
// logged and reported as a generic failure.
func writeError(w http.ResponseWriter, logr *zap.Logger, msg string, err error) {
	var verr *services.ValidationError

	switch {
	case errors.As(err, &verr):
		logr.Warn("validation failed", zap.String("field", verr.Field), zap.String("reason", verr.Message))
		writeJSON(w, http.StatusBadRequest, messageResponse{Message: verr.Error(), Field: verr.Field})
	case errors.Is(err, services.ErrPointNotFound):
		writeJSON(w, http.StatusNotFound, messageResponse{Message: "there is no point with that ID"})
	default:
		logr.Error(msg, zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, messageResponse{Message: msg})
	}
}
