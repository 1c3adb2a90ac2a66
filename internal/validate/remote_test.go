package validate

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/otelview-labs/otelview/internal/collector"
)

func TestHTTPValidator_DecodesIssues(t *testing.T) {
	var gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		assert.Equal(t, "application/yaml", r.Header.Get("Content-Type"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"issues":[
			{"path":"receivers.otlp","message":"unknown component","severity":"error","line":2,"column":3},
			{"path":"processors.batch","message":"deprecated","severity":"hint"}
		]}`))
	}))
	defer srv.Close()

	v := NewHTTPValidator(srv.URL)
	issues, err := v.Validate(context.Background(), "receivers:\n  otlp:\n")
	require.NoError(t, err)
	require.Len(t, issues, 2)

	assert.Equal(t, "receivers:\n  otlp:\n", gotBody)
	assert.Equal(t, collector.SeverityError, issues[0].Severity)
	assert.Equal(t, 2, issues[0].Line)
	assert.Equal(t, collector.SeverityWarning, issues[1].Severity,
		"unknown severities downgrade to warning")
}

func TestHTTPValidator_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	v := NewHTTPValidator(srv.URL)
	_, err := v.Validate(context.Background(), "x: 1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}

func TestHTTPValidator_BadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer srv.Close()

	v := NewHTTPValidator(srv.URL)
	_, err := v.Validate(context.Background(), "x: 1")
	require.Error(t, err)
}

func TestHTTPValidator_ContextCancel(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
		<-block
	}))
	defer srv.Close()
	defer close(block)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	v := NewHTTPValidator(srv.URL)
	_, err := v.Validate(ctx, "x: 1")
	require.Error(t, err)
}
