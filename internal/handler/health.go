package handler

import (
	"log/slog"
	"net/http"

	"wanderlist/spec"
)

// getHealth handles GET /healthz.
// It returns HTTP 200 with {"status":"ok"} when the server is running.
func (s *Server) getHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// getOpenAPI handles GET /openapi.yaml.
// It serves the embedded API specification so clients can always fetch the
// description matching the running binary.
func (s *Server) getOpenAPI(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(spec.OpenAPI); err != nil {
		slog.Error("failed to write openapi spec", "error", err)
	}
}
