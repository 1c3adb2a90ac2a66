package shortlink

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/otelview-labs/otelview/internal/metrics"
	"github.com/otelview-labs/otelview/internal/state"
	"github.com/otelview-labs/otelview/internal/ui/pages"
	"github.com/otelview-labs/otelview/internal/ui/session"
	"github.com/otelview-labs/otelview/internal/urlstate"
)

// Handlers provides HTTP handlers for short links.
type Handlers struct {
	store    state.Store
	sessions *session.Manager
	metrics  *metrics.Metrics
	logger   *slog.Logger
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(store state.Store, sessions *session.Manager, m *metrics.Metrics, logger *slog.Logger) *Handlers {
	return &Handlers{store: store, sessions: sessions, metrics: m, logger: logger}
}

type createRequest struct {
	Config string `json:"config"`
}

type createResponse struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// Create stores the session's current configuration (or an explicit one
// from the request body) under a new short link.
func (h *Handlers) Create(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if r.Body != nil {
		// Body is optional; ignore decode errors and fall back to session.
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	text := req.Config
	if text == "" {
		st := h.sessions.Load(w, r)
		text = st.Editor().Text()
	}
	if text == "" {
		http.Error(w, "nothing to share", http.StatusBadRequest)
		return
	}

	link, err := h.store.CreateShortLink(r.Context(), urlstate.Encode(text))
	if err != nil {
		h.logger.Error("create short link", "error", err)
		http.Error(w, "could not create link", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(createResponse{
		ID:  link.ID,
		URL: fmt.Sprintf("/s/%s", link.ID),
	})
}

// Resolve redirects a short link to the editor seeded with its state.
func (h *Handlers) Resolve(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	link, err := h.store.GetShortLink(r.Context(), id)
	if errors.Is(err, state.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		h.logger.Error("resolve short link", "id", id, "error", err)
		http.Error(w, "could not resolve link", http.StatusInternalServerError)
		return
	}

	if err := h.store.TouchShortLink(r.Context(), id); err != nil {
		h.logger.Debug("touch short link", "id", id, "error", err)
	}
	if h.metrics != nil {
		h.metrics.ShortLinkHits.Inc()
	}

	http.Redirect(w, r, "/?c="+link.Payload, http.StatusFound)
}

// Preview renders the static crawler page for a short link.
func (h *Handlers) Preview(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	link, err := h.store.GetShortLink(r.Context(), id)
	if errors.Is(err, state.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		h.logger.Error("preview short link", "id", id, "error", err)
		http.Error(w, "could not resolve link", http.StatusInternalServerError)
		return
	}

	data := pages.PreviewData{
		Title:    fmt.Sprintf("Shared configuration %s", id),
		Config:   urlstate.Decode(link.Payload),
		ShareURL: fmt.Sprintf("/s/%s", id),
	}
	if err := pages.Preview(w, data); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
