// Package shortlink implements compact URL aliases for shared editor
// states, including the crawler rewrite middleware.
package shortlink

import (
	"log/slog"
	"net/http"
	"regexp"

	"github.com/otelview-labs/otelview/internal/botdetect"
	"github.com/otelview-labs/otelview/internal/metrics"
)

// shortLinkPath matches exactly /s/<id>; nothing shorter or deeper.
var shortLinkPath = regexp.MustCompile(`^/s/([^/]+)$`)

// RewriteBots returns middleware that internally rewrites short-link
// requests from automated crawlers to the static preview route. All other
// requests pass through unmodified.
func RewriteBots(m *metrics.Metrics, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if shortLinkPath.MatchString(r.URL.Path) && botdetect.IsBot(r.UserAgent()) {
				rewritten := r.Clone(r.Context())
				rewritten.URL.Path = r.URL.Path + "/preview"
				if m != nil {
					m.ShortLinkRewrites.Inc()
				}
				logger.Debug("rewrote crawler request to preview",
					"path", r.URL.Path, "user_agent", r.UserAgent())
				next.ServeHTTP(w, rewritten)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
