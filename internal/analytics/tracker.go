// Package analytics provides fire-and-forget event tracking. Events are
// logged, counted, and mirrored into the state store; a tracking failure
// never fails the request that triggered it.
package analytics

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/otelview-labs/otelview/internal/metrics"
	"github.com/otelview-labs/otelview/internal/state"
)

// EventNonDefaultConfig fires once per session when the editor opens with a
// configuration that differs from the documented default.
const EventNonDefaultConfig = "opened_non_default_config"

// Tracker records analytics events.
type Tracker struct {
	store   state.Store
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// New creates a tracker. store and metrics may be nil; tracking then only logs.
func New(store state.Store, m *metrics.Metrics, logger *slog.Logger) *Tracker {
	return &Tracker{store: store, metrics: m, logger: logger}
}

// Track records an event asynchronously and returns immediately.
func (t *Tracker) Track(name string, props map[string]string) {
	t.logger.Debug("analytics event", "name", name)
	if t.metrics != nil {
		t.metrics.EventsTotal.WithLabelValues(name).Inc()
	}
	if t.store == nil {
		return
	}

	encoded, err := json.Marshal(props)
	if err != nil {
		encoded = []byte("{}")
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := t.store.RecordEvent(ctx, name, string(encoded)); err != nil {
			t.logger.Debug("analytics mirror failed", "name", name, "error", err)
		}
	}()
}
