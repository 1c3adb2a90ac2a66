package editor

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/otelview-labs/otelview/internal/analytics"
	"github.com/otelview-labs/otelview/internal/collector"
	"github.com/otelview-labs/otelview/internal/metrics"
	"github.com/otelview-labs/otelview/internal/state"
	"github.com/otelview-labs/otelview/internal/testutil"
	"github.com/otelview-labs/otelview/internal/ui/notifier"
	"github.com/otelview-labs/otelview/internal/ui/session"
	"github.com/otelview-labs/otelview/internal/urlstate"
	"github.com/otelview-labs/otelview/internal/validate"
)

// memoryStore is a state.Store capturing recorded events.
type memoryStore struct {
	mu     sync.Mutex
	events []string
}

func (s *memoryStore) CreateShortLink(context.Context, string) (*state.ShortLink, error) {
	return nil, nil
}
func (s *memoryStore) GetShortLink(context.Context, string) (*state.ShortLink, error) {
	return nil, state.ErrNotFound
}
func (s *memoryStore) TouchShortLink(context.Context, string) error { return nil }
func (s *memoryStore) Close() error                                 { return nil }

func (s *memoryStore) RecordEvent(_ context.Context, name, _ string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, name)
	return nil
}

func (s *memoryStore) CountEvents(_ context.Context, name string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for _, e := range s.events {
		if e == name {
			n++
		}
	}
	return n, nil
}

func (s *memoryStore) waitEvents(t *testing.T, name string, want int64) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if n, _ := s.CountEvents(context.Background(), name); n == want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	n, _ := s.CountEvents(context.Background(), name)
	t.Fatalf("event %s count = %d, want %d", name, n, want)
}

type testEnv struct {
	router *chi.Mux
	store  *memoryStore
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	logger := testutil.NewTestLogger(t)
	store := &memoryStore{}
	m := metrics.New()
	notify := notifier.New()
	sessions := session.NewManager("test-secret", func(_ *session.State) *validate.Aggregator {
		return validate.NewAggregator(logger)
	})
	tracker := analytics.New(store, m, logger)

	router := chi.NewRouter()
	require.NoError(t, SetupRoutes(router, sessions, notify, tracker, m, logger))
	return &testEnv{router: router, store: store}
}

func (e *testEnv) get(t *testing.T, path string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func TestEditorPage_DefaultSeed(t *testing.T) {
	env := newTestEnv(t)

	w := env.get(t, "/", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "health_check", "page should embed the starter config")

	// Opening with the starter config is not a trackable event.
	time.Sleep(50 * time.Millisecond)
	n, _ := env.store.CountEvents(context.Background(), analytics.EventNonDefaultConfig)
	assert.Zero(t, n)
}

func TestEditorPage_SharedStateFiresEventOnce(t *testing.T) {
	env := newTestEnv(t)

	custom := "receivers:\n  otlp:\nservice:\n  pipelines:\n"
	path := "/?c=" + urlstate.Encode(custom)

	w := env.get(t, path, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	env.store.waitEvents(t, analytics.EventNonDefaultConfig, 1)

	// A reload in the same session must not fire again.
	w2 := env.get(t, path, w.Result().Cookies())
	assert.Equal(t, http.StatusOK, w2.Code)

	time.Sleep(50 * time.Millisecond)
	n, _ := env.store.CountEvents(context.Background(), analytics.EventNonDefaultConfig)
	assert.EqualValues(t, 1, n, "the session event is one-shot")
}

func TestEditorPage_MalformedLinkDegradesToDefault(t *testing.T) {
	env := newTestEnv(t)

	w := env.get(t, "/?c=v1:garbage!!!", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "health_check")

	time.Sleep(50 * time.Millisecond)
	n, _ := env.store.CountEvents(context.Background(), analytics.EventNonDefaultConfig)
	assert.Zero(t, n, "the default fallback is not a non-default open")
}

func applyConfig(t *testing.T, env *testEnv, cookies []*http.Cookie, config string) *httptest.ResponseRecorder {
	t.Helper()
	body := `{"config":` + jsonString(config) + `}`
	req := httptest.NewRequest(http.MethodPost, "/editor/apply", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func jsonString(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

func TestApply_PushesReportAndSyncsURLOnce(t *testing.T) {
	env := newTestEnv(t)

	// Establish the session first.
	page := env.get(t, "/", nil)
	cookies := page.Result().Cookies()

	w := applyConfig(t, env, cookies, "service:\n  pipelines:\n")
	out := w.Body.String()

	assert.Contains(t, out, "validation-report", "apply must patch the validation console")
	assert.Contains(t, out, "history.replaceState", "divergence must sync the URL")
	assert.Equal(t, 1, strings.Count(out, "history.replaceState"),
		"exactly one URL replacement per apply")

	// Re-applying the same text: report again, but no second URL sync.
	w2 := applyConfig(t, env, cookies, "service:\n  pipelines:\n")
	out2 := w2.Body.String()
	assert.Contains(t, out2, "validation-report")
	assert.NotContains(t, out2, "history.replaceState",
		"no divergence means no URL update")
}

func TestApply_InvalidConfigStillResponds(t *testing.T) {
	env := newTestEnv(t)
	page := env.get(t, "/", nil)
	cookies := page.Result().Cookies()

	w := applyConfig(t, env, cookies, "receivers: [\n")
	out := w.Body.String()
	assert.Contains(t, out, "validation-report")
	assert.Contains(t, out, "false", "valid signal must flip to false")
}

func TestDismissWelcome(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodPost, "/welcome/dismiss", nil)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestRenderReport_EscapesHTML(t *testing.T) {
	report := validate.Report{Issues: []collector.Issue{{
		Path:     "receivers.<script>",
		Message:  `alert("xss")`,
		Severity: collector.SeverityError,
		Line:     3,
	}}}

	out := renderReport(report)
	assert.NotContains(t, out, "<script>")
	assert.Contains(t, out, "&lt;script&gt;")
}

func TestRenderReport_CleanAndParseError(t *testing.T) {
	clean := renderReport(validate.Report{})
	assert.Contains(t, clean, "No problems detected")

	withParse := renderReport(validate.Report{
		ParseError: &collector.ParseError{Message: "bad indent", Line: 7},
	})
	assert.Contains(t, withParse, "bad indent")
	assert.Contains(t, withParse, "line 7")
}
