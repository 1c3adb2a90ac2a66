// Package pages renders the HTML shells of the workbench. The heavy widgets
// (text editor, diagram renderer) are external JS assets; these templates
// only lay out their mount points and initial state.
package pages

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/otelview-labs/otelview/internal/ui/resources"
)

//go:embed templates/*.html
var files embed.FS

var tmpl = template.Must(template.New("").Funcs(template.FuncMap{
	"static": resources.StaticPath,
}).ParseFS(files, "templates/*.html"))

// EditorData is the initial state of the editor page.
type EditorData struct {
	Title       string
	Config      string
	ViewMode    string
	CodeWidth   string
	PanelWidth  int
	WelcomeOpen bool
	Locked      bool
}

// Editor renders the main editor page.
func Editor(w io.Writer, data EditorData) error {
	if err := tmpl.ExecuteTemplate(w, "editor.html", data); err != nil {
		return fmt.Errorf("render editor page: %w", err)
	}
	return nil
}

// PreviewData is the static crawler preview of a shared link.
type PreviewData struct {
	Title    string
	Config   string
	ShareURL string
}

// Preview renders the short-link preview page served to crawlers.
func Preview(w io.Writer, data PreviewData) error {
	if err := tmpl.ExecuteTemplate(w, "preview.html", data); err != nil {
		return fmt.Errorf("render preview page: %w", err)
	}
	return nil
}
