package pages

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/otelview-labs/otelview/internal/ui/resources"
)

func TestEditorPage(t *testing.T) {
	var b bytes.Buffer
	require.NoError(t, Editor(&b, EditorData{
		Title:       "Editor",
		Config:      "receivers:\n  otlp:\n",
		ViewMode:    "split",
		CodeWidth:   "480px",
		PanelWidth:  480,
		WelcomeOpen: true,
	}))

	out := b.String()
	assert.Contains(t, out, resources.StaticPath("app.js"))
	assert.Contains(t, out, resources.StaticPath("app.css"))
	assert.Contains(t, out, "receivers:")
	assert.Contains(t, out, "<dialog id=\"welcome\"")
}

func TestEditorPageWithoutWelcome(t *testing.T) {
	var b bytes.Buffer
	require.NoError(t, Editor(&b, EditorData{Title: "Editor"}))
	assert.NotContains(t, b.String(), "<dialog id=\"welcome\"")
}

func TestPreviewPage(t *testing.T) {
	var b bytes.Buffer
	require.NoError(t, Preview(&b, PreviewData{
		Title:    "Shared configuration abc123",
		Config:   "exporters:\n  debug:\n",
		ShareURL: "/s/abc123",
	}))

	out := b.String()
	assert.Contains(t, out, resources.StaticPath("app.css"))
	assert.Contains(t, out, "exporters:")
	assert.Contains(t, out, "/s/abc123")
}
