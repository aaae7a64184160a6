package web

import (
	"encoding/json"
	"net/http"

	"media-runtime/internal/logging"
	"media-runtime/internal/modules"
	"media-runtime/internal/playlist"
)

type handlers struct {
	host modules.Host
}

// statusResponse aggregates playlist state and the active interfaces.
type statusResponse struct {
	Playlist   playlist.Status `json:"playlist"`
	Interfaces []string        `json:"interfaces"`
}

func (h *handlers) status(w http.ResponseWriter, _ *http.Request) {
	writeJSONOK(w, statusResponse{
		Playlist:   h.host.MustPlaylist().Status(),
		Interfaces: h.host.ActiveInterfaces(),
	})
}

func (h *handlers) playlist(w http.ResponseWriter, _ *http.Request) {
	items := h.host.MustPlaylist().Items()
	if items == nil {
		items = []playlist.Item{}
	}
	writeJSONOK(w, items)
}

type addItemRequest struct {
	Path  string `json:"path"`
	Title string `json:"title"`
}

func (h *handlers) addItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Path == "" {
		writeJSONError(w, "path is required", http.StatusBadRequest)
		return
	}

	h.host.MustPlaylist().Add(req.Path, req.Title)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	writeJSON(w, map[string]string{"status": "added"})
}

func (h *handlers) interfaces(w http.ResponseWriter, _ *http.Request) {
	names := h.host.ActiveInterfaces()
	if names == nil {
		names = []string{}
	}
	writeJSONOK(w, names)
}

func (h *handlers) choices(w http.ResponseWriter, _ *http.Request) {
	choices := h.host.InterfaceChoices()
	if choices == nil {
		choices = []modules.SelectorChoice{}
	}
	writeJSONOK(w, choices)
}

type addInterfaceRequest struct {
	Selector string `json:"selector"`
}

// addInterface accepts the request unconditionally: creation is
// fire-and-forget and failures only show up in logs and metrics.
func (h *handlers) addInterface(w http.ResponseWriter, r *http.Request) {
	var req addInterfaceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Selector == "" {
		writeJSONError(w, "selector is required", http.StatusBadRequest)
		return
	}

	h.host.AddInterface(req.Selector)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	writeJSON(w, map[string]string{"status": "requested", "selector": req.Selector})
}

// writeJSON encodes v to the response writer; encoding errors are
// logged since there is nothing left to send the client.
func writeJSON(w http.ResponseWriter, v interface{}) {
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Error("Failed to encode JSON response: %v", err)
	}
}

func writeJSONOK(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, v)
}

func writeJSONError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	writeJSON(w, map[string]string{"error": message})
}
