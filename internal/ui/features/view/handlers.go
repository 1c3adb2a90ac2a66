package view

import (
	"log/slog"
	"net/http"

	"github.com/starfederation/datastar-go/datastar"

	"github.com/otelview-labs/otelview/internal/ui/session"
)

// Handlers provides HTTP handlers for the view feature.
type Handlers struct {
	sessions *session.Manager
	logger   *slog.Logger
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(sessions *session.Manager, logger *slog.Logger) *Handlers {
	return &Handlers{sessions: sessions, logger: logger}
}

type modeSignals struct {
	Mode string `json:"viewMode"`
}

// SetMode changes the panel mode and patches the derived code panel width.
func (h *Handlers) SetMode(w http.ResponseWriter, r *http.Request) {
	var signals modeSignals
	if err := datastar.ReadSignals(r, &signals); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	mode := ParseMode(signals.Mode)
	st := h.sessions.Load(w, r)
	st.SetViewMode(string(mode))

	sse := datastar.NewSSE(w, r)
	h.patchWidth(sse, mode, h.sessions.Width(r))
}

type widthSignals struct {
	Width int `json:"panelWidth"`
}

// SetWidth persists the split panel width from a drag-resize.
func (h *Handlers) SetWidth(w http.ResponseWriter, r *http.Request) {
	var signals widthSignals
	if err := datastar.ReadSignals(r, &signals); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if signals.Width <= 0 {
		http.Error(w, "width must be positive", http.StatusBadRequest)
		return
	}

	if err := h.sessions.SetWidth(w, r, signals.Width); err != nil {
		h.logger.Debug("persist width", "error", err)
	}

	st := h.sessions.Load(w, r)
	mode := ParseMode(st.ViewMode())

	sse := datastar.NewSSE(w, r)
	h.patchWidth(sse, mode, signals.Width)
}

func (h *Handlers) patchWidth(sse *datastar.ServerSentEventGenerator, mode Mode, width int) {
	if err := sse.MarshalAndPatchSignals(map[string]any{
		"viewMode":   string(mode),
		"codeWidth":  PanelWidth(mode, width),
		"panelWidth": width,
	}); err != nil {
		h.logger.Debug("patch width signals", "error", err)
	}
}
