package diagram

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/starfederation/datastar-go/datastar"

	"github.com/otelview-labs/otelview/internal/ui/session"
)

// Payload is what the diagram surface receives.
type Payload struct {
	Config string     `json:"config"`
	Locked bool       `json:"locked"`
	Graph  *GraphData `json:"graph,omitempty"`
}

// Handlers provides HTTP handlers for the diagram feature.
type Handlers struct {
	sessions *session.Manager
	logger   *slog.Logger
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(sessions *session.Manager, logger *slog.Logger) *Handlers {
	return &Handlers{sessions: sessions, logger: logger}
}

// DiagramData returns the gated diagram payload for the current session.
func (h *Handlers) DiagramData(w http.ResponseWriter, r *http.Request) {
	st := h.sessions.Load(w, r)

	text, graphData := Gate(st.Editor().Text(), st.Aggregator.Current())
	payload := Payload{
		Config: text,
		Locked: st.Locked(),
		Graph:  graphData,
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Debug("encode diagram payload", "error", err)
	}
}

type lockSignals struct {
	Locked bool `json:"locked"`
}

// SetLock flips the diagram lock flag, e.g. while a modal is open.
func (h *Handlers) SetLock(w http.ResponseWriter, r *http.Request) {
	var signals lockSignals
	if err := datastar.ReadSignals(r, &signals); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	st := h.sessions.Load(w, r)
	st.SetLocked(signals.Locked)
	w.WriteHeader(http.StatusNoContent)
}
