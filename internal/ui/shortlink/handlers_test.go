package shortlink

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/otelview-labs/otelview/internal/editor"
	"github.com/otelview-labs/otelview/internal/metrics"
	"github.com/otelview-labs/otelview/internal/state"
	"github.com/otelview-labs/otelview/internal/testutil"
	"github.com/otelview-labs/otelview/internal/ui/session"
	"github.com/otelview-labs/otelview/internal/urlstate"
	"github.com/otelview-labs/otelview/internal/validate"
)

type testEnv struct {
	router   *chi.Mux
	store    state.Store
	sessions *session.Manager
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	logger := testutil.NewTestLogger(t)

	store := state.NewSQLiteStore()
	require.NoError(t, store.Open(filepath.Join(t.TempDir(), "state.db")))
	require.NoError(t, store.Migrate())
	t.Cleanup(func() { _ = store.Close() })

	sessions := session.NewManager("test-secret", func(_ *session.State) *validate.Aggregator {
		return validate.NewAggregator(logger)
	})

	router := chi.NewRouter()
	require.NoError(t, SetupRoutes(router, store, sessions, metrics.New(), logger))
	return &testEnv{router: router, store: store, sessions: sessions}
}

func (e *testEnv) create(t *testing.T, body string) createResponse {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/links", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp createResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	return resp
}

func TestCreate_ExplicitConfig(t *testing.T) {
	env := newTestEnv(t)

	resp := env.create(t, `{"config":"receivers:\n  otlp:\n"}`)
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, "/s/"+resp.ID, resp.URL)

	link, err := env.store.GetShortLink(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.Equal(t, "receivers:\n  otlp:\n", urlstate.Decode(link.Payload))
}

func TestCreate_FallsBackToSessionText(t *testing.T) {
	env := newTestEnv(t)

	// Establish a session holding some text.
	seed := httptest.NewRecorder()
	st := env.sessions.Load(seed, httptest.NewRequest(http.MethodGet, "/", nil))
	st.ReplaceEditor(editor.NewStore("exporters:\n  debug:\n", st))

	req := httptest.NewRequest(http.MethodPost, "/api/links", nil)
	for _, c := range seed.Result().Cookies() {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp createResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	link, err := env.store.GetShortLink(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.Equal(t, "exporters:\n  debug:\n", urlstate.Decode(link.Payload))
}

func TestCreate_NothingToShare(t *testing.T) {
	env := newTestEnv(t)

	seed := httptest.NewRecorder()
	st := env.sessions.Load(seed, httptest.NewRequest(http.MethodGet, "/", nil))
	st.ReplaceEditor(editor.NewStore("", st))

	req := httptest.NewRequest(http.MethodPost, "/api/links", strings.NewReader(`{"config":""}`))
	for _, c := range seed.Result().Cookies() {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "nothing to share")
}

func TestResolve_RedirectsAndCountsHits(t *testing.T) {
	env := newTestEnv(t)
	resp := env.create(t, `{"config":"a: 1\n"}`)

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodGet, "/s/"+resp.ID, nil)
		w := httptest.NewRecorder()
		env.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusFound, w.Code)
		loc := w.Header().Get("Location")
		require.True(t, strings.HasPrefix(loc, "/?c="), loc)
		assert.Equal(t, "a: 1\n", urlstate.Decode(strings.TrimPrefix(loc, "/?c=")))
	}

	link, err := env.store.GetShortLink(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, link.Hits)
}

func TestResolve_Missing(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/s/nope1234", nil)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPreview_RendersSharedConfig(t *testing.T) {
	env := newTestEnv(t)
	resp := env.create(t, `{"config":"receivers:\n  jaeger:\n"}`)

	req := httptest.NewRequest(http.MethodGet, "/s/"+resp.ID+"/preview", nil)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "jaeger")
	assert.Contains(t, body, "/s/"+resp.ID)
}

func TestPreview_Missing(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/s/nope1234/preview", nil)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPreview_DoesNotTouchHitCounter(t *testing.T) {
	env := newTestEnv(t)
	resp := env.create(t, `{"config":"a: 1\n"}`)

	req := httptest.NewRequest(http.MethodGet, "/s/"+resp.ID+"/preview", nil)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	link, err := env.store.GetShortLink(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.Zero(t, link.Hits)
}
