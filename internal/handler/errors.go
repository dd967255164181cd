package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"wanderlist/internal/domain"
)

// errorResponse is the envelope for every non-2xx JSON body.
type errorResponse struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeJSON writes v as the JSON response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encoding response failed", "error", err)
	}
}

// writeError maps a domain sentinel to its HTTP status and stable error code.
// Anything unrecognized is a 500 and gets logged; the caller is done either way.
func writeError(w http.ResponseWriter, err error) {
	var status int
	var code string
	switch {
	case errors.Is(err, domain.ErrValidation):
		status, code = http.StatusUnprocessableEntity, "validation_error"
	case errors.Is(err, domain.ErrIndex):
		status, code = http.StatusNotFound, "index_out_of_range"
	case errors.Is(err, domain.ErrNotFound):
		status, code = http.StatusNotFound, "not_found"
	case errors.Is(err, domain.ErrSelectionPending), errors.Is(err, domain.ErrNoSelection):
		status, code = http.StatusConflict, "selection_conflict"
	case errors.Is(err, domain.ErrGateway):
		status, code = http.StatusBadGateway, "gateway_error"
	default:
		status, code = http.StatusInternalServerError, "internal_error"
		slog.Error("unhandled error", "error", err)
	}
	writeJSON(w, status, errorResponse{Error: errorDetail{Code: code, Message: unwrapMessage(err)}})
}

// requestError writes a 422 for a request rejected before reaching the engine
// (e.g. a missing or malformed body).
func requestError(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusUnprocessableEntity,
		errorResponse{Error: errorDetail{Code: "validation_error", Message: message}})
}

// unwrapMessage extracts the human-readable part from a wrapped sentinel error.
// e.g. "engine.Engine.Add: validation error: place name is required" → "place name is required"
func unwrapMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	for _, prefix := range []string{
		"engine.Engine.Add: ",
		"engine.Engine.Select: ",
		"engine.Engine.Delete: ",
		"engine.Engine.Reorder: ",
		"engine.Engine.ToggleVisited: ",
		"engine.Engine.RefreshWeather: ",
		"gateway.Geocoder.Search: ",
		"gateway.Weather.Current: ",
	} {
		msg = strings.TrimPrefix(msg, prefix)
	}
	for _, prefix := range []string{
		"validation error: ",
		"not found: ",
		"index out of range: ",
		"gateway error: ",
		"selection pending: ",
		"no selection pending: ",
	} {
		msg = strings.TrimPrefix(msg, prefix)
	}
	return msg
}
