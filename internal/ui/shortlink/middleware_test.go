package shortlink

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/otelview-labs/otelview/internal/metrics"
	"github.com/otelview-labs/otelview/internal/testutil"
)

const browserUA = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 Chrome/120.0 Safari/537.36"

func servePath(t *testing.T, path, userAgent string) string {
	t.Helper()

	var seen string
	inner := http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen = r.URL.Path
	})

	mw := RewriteBots(metrics.New(), testutil.NewTestLogger(t))
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if userAgent != "" {
		req.Header.Set("User-Agent", userAgent)
	}
	mw(inner).ServeHTTP(httptest.NewRecorder(), req)
	return seen
}

func TestRewriteBots_BotGetsPreview(t *testing.T) {
	got := servePath(t, "/s/abc123", "Twitterbot/1.0")
	assert.Equal(t, "/s/abc123/preview", got)
}

func TestRewriteBots_EmptyUserAgentCountsAsBot(t *testing.T) {
	got := servePath(t, "/s/abc123", "")
	assert.Equal(t, "/s/abc123/preview", got)
}

func TestRewriteBots_BrowserPassesThrough(t *testing.T) {
	got := servePath(t, "/s/abc123", browserUA)
	assert.Equal(t, "/s/abc123", got)
}

func TestRewriteBots_OnlyExactShortLinkPath(t *testing.T) {
	for _, path := range []string{
		"/s/abc123/preview",
		"/s/abc123/extra",
		"/s/",
		"/other",
		"/",
	} {
		got := servePath(t, path, "Twitterbot/1.0")
		assert.Equal(t, path, got, "path %s must not be rewritten", path)
	}
}

func TestRewriteBots_OriginalRequestUntouched(t *testing.T) {
	inner := http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {})
	mw := RewriteBots(nil, testutil.NewTestLogger(t))

	req := httptest.NewRequest(http.MethodGet, "/s/abc123", nil)
	req.Header.Set("User-Agent", "curl/8.4.0")
	mw(inner).ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, "/s/abc123", req.URL.Path, "middleware must clone, not mutate")
}
