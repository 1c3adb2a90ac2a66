package validate

import (
	"context"
	"log/slog"
	"sync"

	"github.com/otelview-labs/otelview/internal/collector"
)

// Aggregator produces the unified validation report for the current
// configuration text. Local validation runs synchronously; remote validation
// (when configured) runs in the background and merges into the aggregate
// when its response arrives.
//
// Every run is stamped with a monotonic sequence number. A remote response
// is merged only when it belongs to the newest run; stale responses are
// discarded, so an in-flight check for an old configuration can never
// overwrite a fresher report.
type Aggregator struct {
	remote RemoteValidator
	logger *slog.Logger

	// onUpdate is invoked (outside the lock) whenever the aggregate report
	// changes from an asynchronous remote merge.
	onUpdate func(Report)

	mu      sync.Mutex
	ready   bool
	seq     uint64
	text    string
	current Report
}

// Option configures an Aggregator.
type Option func(*Aggregator)

// WithRemote enables server-side validation through the given hook.
func WithRemote(rv RemoteValidator) Option {
	return func(a *Aggregator) { a.remote = rv }
}

// WithOnUpdate registers a callback fired when an asynchronous remote merge
// changes the aggregate report.
func WithOnUpdate(fn func(Report)) Option {
	return func(a *Aggregator) { a.onUpdate = fn }
}

// NewAggregator creates an aggregator. The logger must not be nil.
func NewAggregator(logger *slog.Logger, opts ...Option) *Aggregator {
	a := &Aggregator{logger: logger}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// SetReady marks the editor session ready. Until then Run returns the empty
// report and schedules nothing.
func (a *Aggregator) SetReady(ready bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.ready = ready
}

// Run validates text and returns the new aggregate report. When a remote
// validator is configured the remote check is started in the background; its
// result, if still current on arrival, is merged via the update callback.
func (a *Aggregator) Run(ctx context.Context, text string) Report {
	a.mu.Lock()
	if !a.ready {
		a.mu.Unlock()
		return Empty
	}

	a.seq++
	seq := a.seq
	a.text = text
	report := Local(text)
	a.current = report
	remote := a.remote
	a.mu.Unlock()

	if remote != nil && report.ParseError == nil {
		go a.runRemote(ctx, remote, seq, text)
	}
	return report
}

// Current returns the latest aggregate report.
func (a *Aggregator) Current() Report {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.current
}

func (a *Aggregator) runRemote(ctx context.Context, remote RemoteValidator, seq uint64, text string) {
	issues, err := remote.Validate(ctx, text)
	if err != nil {
		// Remote validation is best effort; the local report stands.
		a.logger.Debug("remote validation failed", "seq", seq, "error", err)
		return
	}

	a.mu.Lock()
	if seq != a.seq {
		a.mu.Unlock()
		a.logger.Debug("discarding stale remote validation", "seq", seq, "current", a.seq)
		return
	}
	merged := Report{
		ParseError: a.current.ParseError,
		Issues:     append(append([]collector.Issue{}, a.current.Issues...), issues...),
	}
	a.current = merged
	notify := a.onUpdate
	a.mu.Unlock()

	if notify != nil {
		notify(merged)
	}
}
