package http

import (
	"net/http"

	"github.com/mekongworks/sitekit/internal/telemetry"
)

func (api *API) registerTelemetryRoutes(mux *http.ServeMux, base string) {
	root := joinPath(base, "performance")
	mux.HandleFunc("GET "+root, api.handleTelemetrySnapshot)
	mux.HandleFunc("POST "+root, api.handleTelemetryIngest)
}

func (api *API) handleTelemetrySnapshot(w http.ResponseWriter, r *http.Request) {
	if api.telemetry == nil {
		writeJSON(w, http.StatusOK, map[string]any{"metrics": []any{}})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"metrics": api.telemetry.Snapshot()})
}

// handleTelemetryIngest always acknowledges: telemetry is fire-and-forget
// from the browser's point of view and invalid samples are simply dropped.
func (api *API) handleTelemetryIngest(w http.ResponseWriter, r *http.Request) {
	var metric telemetry.Metric
	if err := decodeJSON(r, &metric); err == nil && api.telemetry != nil {
		api.telemetry.Record(metric)
	}
	writeJSON(w, http.StatusAccepted, map[string]any{"status": "accepted"})
}
