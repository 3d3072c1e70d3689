package handlers

import (
	"net/http"
)

// HealthHandler reports liveness along with the size of the loaded network.
type HealthHandler struct {
	Cities int
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	status := "ok"
	if h.Cities == 0 {
		status = "empty_network"
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"status": status, "cities": h.Cities})
}
