// Package editor wires the text editing surface to the config state store,
// the validation aggregator, and the diagram gate.
package editor

import (
	"context"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strings"

	"github.com/starfederation/datastar-go/datastar"

	"github.com/otelview-labs/otelview/internal/analytics"
	"github.com/otelview-labs/otelview/internal/collector"
	editorstore "github.com/otelview-labs/otelview/internal/editor"
	"github.com/otelview-labs/otelview/internal/metrics"
	"github.com/otelview-labs/otelview/internal/ui/features/view"
	"github.com/otelview-labs/otelview/internal/ui/notifier"
	"github.com/otelview-labs/otelview/internal/ui/pages"
	"github.com/otelview-labs/otelview/internal/ui/session"
	"github.com/otelview-labs/otelview/internal/urlstate"
	"github.com/otelview-labs/otelview/internal/validate"
)

// Handlers provides HTTP handlers for the editor feature.
type Handlers struct {
	sessions *session.Manager
	notify   *notifier.Notifier
	tracker  *analytics.Tracker
	metrics  *metrics.Metrics
	logger   *slog.Logger
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(
	sessions *session.Manager,
	notify *notifier.Notifier,
	tracker *analytics.Tracker,
	m *metrics.Metrics,
	logger *slog.Logger,
) *Handlers {
	return &Handlers{
		sessions: sessions,
		notify:   notify,
		tracker:  tracker,
		metrics:  m,
		logger:   logger,
	}
}

// EditorPage renders the workbench. Initial text comes from the URL-encoded
// state, falling back to the cross-redirect restore mirror, falling back to
// the documented default.
func (h *Handlers) EditorPage(w http.ResponseWriter, r *http.Request) {
	st := h.sessions.Load(w, r)

	initial, fromURL := h.initialText(r, st)
	st.ReplaceEditor(editorstore.NewStore(initial, st))
	st.Aggregator.Run(context.WithoutCancel(r.Context()), st.Editor().Text())

	if !collector.IsDefault(initial) && st.MarkAnalyticsFired() {
		h.tracker.Track(analytics.EventNonDefaultConfig, map[string]string{
			"from_url": fmt.Sprintf("%t", fromURL),
		})
	}

	mode := view.ParseMode(st.ViewMode())
	st.SetViewMode(string(mode))
	width := h.sessions.Width(r)

	data := pages.EditorData{
		Title:       "Editor",
		Config:      st.Editor().Text(),
		ViewMode:    string(mode),
		CodeWidth:   view.PanelWidth(mode, width),
		PanelWidth:  width,
		WelcomeOpen: !h.sessions.WelcomeSeen(r),
		Locked:      st.Locked(),
	}
	if err := pages.Editor(w, data); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// initialText resolves the seed text for a page load and whether it came
// from the URL.
func (h *Handlers) initialText(r *http.Request, st *session.State) (string, bool) {
	if encoded := r.URL.Query().Get("c"); encoded != "" {
		if text := urlstate.Decode(encoded); text != "" {
			return text, true
		}
		// A broken link degrades to the default rather than erroring.
	}
	if restored := st.Restore(); restored != "" {
		return restored, false
	}
	return collector.DefaultConfig, false
}

type applySignals struct {
	Config string `json:"config"`
}

// Apply is the editor change handler. The sequencing is deliberate: state
// update first, validation and downstream patches second, the single URL
// replacement last. The URL step never runs inside the state update itself,
// so the editor widget is never re-rendered mid-keystroke.
func (h *Handlers) Apply(w http.ResponseWriter, r *http.Request) {
	var signals applySignals
	if err := datastar.ReadSignals(r, &signals); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	st := h.sessions.Load(w, r)
	sse := datastar.NewSSE(w, r)

	// Step 1: apply the external change.
	st.Editor().Apply(signals.Config)

	// Step 2: recompute validation and notify downstream surfaces.
	report := st.Aggregator.Run(context.WithoutCancel(r.Context()), st.Editor().Text())
	h.metrics.ObserveValidation(report.Valid())
	h.pushReport(sse, st, report)

	// Step 3: reflect the new state into the URL, exactly once.
	if upd, ok := st.Editor().Sync(); ok {
		h.replaceURL(sse, upd.Encoded)
	}
}

// Updates is the long-lived SSE endpoint. It pushes a fresh report when an
// asynchronous remote validation merges or the watched configs change.
func (h *Handlers) Updates(w http.ResponseWriter, r *http.Request) {
	st := h.sessions.Load(w, r)
	sse := datastar.NewSSE(w, r)

	updates := h.notify.Subscribe()
	defer h.notify.Unsubscribe(updates)

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case sig := <-updates:
			report := st.Aggregator.Current()
			if sig == notifier.SignalConfigs {
				report = st.Aggregator.Run(context.WithoutCancel(ctx), st.Editor().Text())
			}
			h.pushReport(sse, st, report)
		}
	}
}

// DismissWelcome records the one-time welcome flag.
func (h *Handlers) DismissWelcome(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.MarkWelcomeSeen(w, r); err != nil {
		h.logger.Debug("persist welcome flag", "error", err)
	}
	w.WriteHeader(http.StatusNoContent)
}

// pushReport patches the validation console, the editor markers, and pokes
// the diagram surface to refetch its gated payload.
func (h *Handlers) pushReport(sse *datastar.ServerSentEventGenerator, st *session.State, report validate.Report) {
	if err := sse.MarshalAndPatchSignals(map[string]any{
		"valid":   report.Valid(),
		"markers": report.Markers(),
	}); err != nil {
		h.logger.Debug("patch validation signals", "error", err)
	}
	if err := sse.PatchElements(renderReport(report)); err != nil {
		h.logger.Debug("patch validation report", "error", err)
	}
	if err := sse.ExecuteScript("window.dispatchEvent(new CustomEvent('otelview:diagram-refresh'))"); err != nil {
		h.logger.Debug("refresh diagram", "error", err)
	}
}

// replaceURL issues a history replacement so sharing keeps working without
// creating a navigation-stack entry per keystroke.
func (h *Handlers) replaceURL(sse *datastar.ServerSentEventGenerator, encoded string) {
	script := fmt.Sprintf("history.replaceState(null, '', '?c=%s')", template.JSEscapeString(encoded))
	if err := sse.ExecuteScript(script); err != nil {
		h.logger.Debug("replace url", "error", err)
	}
}

// renderReport builds the validation console element.
func renderReport(report validate.Report) string {
	var b strings.Builder
	b.WriteString(`<footer id="validation-report">`)
	switch {
	case report.ParseError != nil:
		fmt.Fprintf(&b, `<span class="error">%s</span>`,
			template.HTMLEscapeString(report.ParseError.Error()))
	case len(report.Issues) == 0:
		b.WriteString(`<span class="ok">No problems detected.</span>`)
	default:
		b.WriteString("<ul>")
		for _, iss := range report.Issues {
			fmt.Fprintf(&b, `<li class="%s">line %d: %s: %s</li>`,
				iss.Severity,
				iss.Line,
				template.HTMLEscapeString(iss.Path),
				template.HTMLEscapeString(iss.Message))
		}
		b.WriteString("</ul>")
	}
	b.WriteString(`</footer>`)
	return b.String()
}
