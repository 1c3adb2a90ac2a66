// Package assets bundles the editor frontend with esbuild. The widgets
// (code editor, React Flow diagram) live in a TypeScript source tree; this
// build turns them into the static files the UI server serves.
package assets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/evanw/esbuild/pkg/api"
)

// Result contains the compiled JS and CSS of the frontend build.
type Result struct {
	JS  string
	CSS string
}

// Build compiles the frontend entry point into bundled JS and CSS. React
// is aliased to Preact so the React Flow diagram renderer keeps working
// without shipping React itself.
func Build(srcDir string, minify bool) (*Result, error) {
	entry := filepath.Join(srcDir, "main.tsx")
	if _, err := os.Stat(entry); err != nil {
		return nil, fmt.Errorf("frontend entry point not found: %s", entry)
	}
	nodeModules := filepath.Join(filepath.Dir(srcDir), "node_modules")

	opts := api.BuildOptions{
		EntryPoints: []string{entry},
		Bundle:      true,
		Write:       false,
		// Virtual output directory, required for CSS bundling with Write: false.
		Outdir: "out",

		JSX:             api.JSXAutomatic,
		JSXImportSource: "preact",
		Alias: map[string]string{
			"react":     "preact/compat",
			"react-dom": "preact/compat",
		},

		NodePaths: []string{nodeModules},
		Format:    api.FormatESModule,
		Target:    api.ES2020,
	}
	if minify {
		opts.MinifyWhitespace = true
		opts.MinifyIdentifiers = true
		opts.MinifySyntax = true
	}

	result := api.Build(opts)
	if len(result.Errors) > 0 {
		msgs := make([]string, 0, len(result.Errors))
		for _, e := range result.Errors {
			loc := ""
			if e.Location != nil {
				loc = fmt.Sprintf("%s:%d: ", e.Location.File, e.Location.Line)
			}
			msgs = append(msgs, loc+e.Text)
		}
		return nil, fmt.Errorf("esbuild errors:\n%s", strings.Join(msgs, "\n"))
	}

	out := &Result{}
	for _, file := range result.OutputFiles {
		switch filepath.Ext(file.Path) {
		case ".js":
			out.JS = string(file.Contents)
		case ".css":
			out.CSS = string(file.Contents)
		}
	}
	if out.JS == "" {
		return nil, fmt.Errorf("no JavaScript output generated")
	}
	return out, nil
}

// WriteTo writes the bundle into the static directory served by the UI,
// under the names the page templates reference.
func (r *Result) WriteTo(staticDir string) error {
	if err := os.MkdirAll(staticDir, 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(staticDir, "app.js"), []byte(r.JS), 0o644); err != nil {
		return err
	}
	if r.CSS != "" {
		return os.WriteFile(filepath.Join(staticDir, "app.css"), []byte(r.CSS), 0o644)
	}
	return nil
}
