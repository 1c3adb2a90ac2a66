// Package tui implements the terminal watch view: a live list of collector
// configuration files with their validation status, updating as files change
// on disk.
package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fsnotify/fsnotify"

	"github.com/otelview-labs/otelview/internal/validate"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	okStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	failStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	warnItemStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// fileStatus is one watched file and its latest validation result.
type fileStatus struct {
	Path   string
	Report validate.Report
	Err    error // read error, distinct from validation findings
}

// fileChangedMsg reports a filesystem event on a watched config file.
type fileChangedMsg struct {
	Path string
	Op   fsnotify.Op
}

// watchErrMsg reports a watcher failure.
type watchErrMsg struct{ Err error }

// Model is the bubbletea model for the watch view.
type Model struct {
	dir     string
	files   []fileStatus
	cursor  int
	vp      viewport.Model
	ready   bool
	watcher *fsnotify.Watcher
	err     error
}

// NewModel creates a watch model over dir. The directory must exist.
func NewModel(dir string) (*Model, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return nil, err
	}

	m := &Model{dir: dir, watcher: watcher}
	m.rescan()
	return m, nil
}

// Close releases the filesystem watcher.
func (m *Model) Close() error {
	return m.watcher.Close()
}

// Run starts the TUI and blocks until the user quits.
func Run(dir string) error {
	m, err := NewModel(dir)
	if err != nil {
		return err
	}
	defer func() { _ = m.Close() }()

	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()
	return err
}

func isConfigFile(path string) bool {
	ext := filepath.Ext(path)
	return ext == ".yaml" || ext == ".yml"
}

// rescan revalidates every config file in the directory.
func (m *Model) rescan() {
	entries, err := os.ReadDir(m.dir)
	if err != nil {
		m.err = err
		return
	}

	var files []fileStatus
	for _, e := range entries {
		if e.IsDir() || !isConfigFile(e.Name()) {
			continue
		}
		files = append(files, m.validateFile(filepath.Join(m.dir, e.Name())))
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })

	m.files = files
	if m.cursor >= len(m.files) {
		m.cursor = max(0, len(m.files)-1)
	}
}

func (m *Model) validateFile(path string) fileStatus {
	data, err := os.ReadFile(path)
	if err != nil {
		return fileStatus{Path: path, Err: err}
	}
	return fileStatus{Path: path, Report: validate.Local(string(data))}
}

// waitForEvent blocks on the watcher until the next relevant event.
func (m *Model) waitForEvent() tea.Cmd {
	return func() tea.Msg {
		for {
			select {
			case ev, ok := <-m.watcher.Events:
				if !ok {
					return nil
				}
				if !isConfigFile(ev.Name) {
					continue
				}
				return fileChangedMsg{Path: ev.Name, Op: ev.Op}
			case err, ok := <-m.watcher.Errors:
				if !ok {
					return nil
				}
				return watchErrMsg{Err: err}
			}
		}
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return m.waitForEvent()
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				m.refreshViewport()
			}
		case "down", "j":
			if m.cursor < len(m.files)-1 {
				m.cursor++
				m.refreshViewport()
			}
		case "r":
			m.rescan()
			m.refreshViewport()
		default:
			var cmd tea.Cmd
			m.vp, cmd = m.vp.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		// The list pane takes one line per file plus chrome.
		listHeight := len(m.files) + 4
		m.vp = viewport.New(msg.Width, max(3, msg.Height-listHeight))
		m.ready = true
		m.refreshViewport()

	case fileChangedMsg:
		m.rescan()
		m.refreshViewport()
		return m, m.waitForEvent()

	case watchErrMsg:
		m.err = msg.Err
		return m, m.waitForEvent()
	}

	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("otelview watch — %s", m.dir)))
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(failStyle.Render(fmt.Sprintf("watch error: %v", m.err)))
		b.WriteString("\n")
	}

	if len(m.files) == 0 {
		b.WriteString(helpStyle.Render("no .yaml files in directory"))
		b.WriteString("\n")
	}

	for i, f := range m.files {
		line := fmt.Sprintf("%s %s", statusBadge(f), filepath.Base(f.Path))
		if i == m.cursor {
			line = selectedStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if m.ready {
		b.WriteString("\n")
		b.WriteString(m.vp.View())
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("↑/↓ select · r rescan · q quit"))
	return b.String()
}

func statusBadge(f fileStatus) string {
	switch {
	case f.Err != nil:
		return failStyle.Render("✗ read")
	case !f.Report.Valid():
		return failStyle.Render(fmt.Sprintf("✗ %d", f.Report.ErrorCount()))
	case f.Report.WarningCount() > 0:
		return warnItemStyle.Render(fmt.Sprintf("! %d", f.Report.WarningCount()))
	default:
		return okStyle.Render("✓ ok")
	}
}

// refreshViewport renders the selected file's findings into the viewport.
func (m *Model) refreshViewport() {
	if !m.ready || m.cursor >= len(m.files) {
		return
	}
	m.vp.SetContent(renderFindings(m.files[m.cursor]))
}

func renderFindings(f fileStatus) string {
	if f.Err != nil {
		return failStyle.Render(fmt.Sprintf("cannot read file: %v", f.Err))
	}
	r := f.Report
	if r.ParseError != nil {
		loc := ""
		if r.ParseError.Line > 0 {
			loc = fmt.Sprintf(" (line %d)", r.ParseError.Line)
		}
		return failStyle.Render(fmt.Sprintf("parse error%s: %s", loc, r.ParseError.Message))
	}
	if len(r.Issues) == 0 {
		return okStyle.Render("configuration is valid")
	}

	var b strings.Builder
	for _, iss := range r.Issues {
		style := warnItemStyle
		if iss.Severity == "error" {
			style = failStyle
		}
		loc := ""
		if iss.Line > 0 {
			loc = fmt.Sprintf(":%d", iss.Line)
		}
		b.WriteString(style.Render(fmt.Sprintf("%s%s  %s — %s", iss.Path, loc, iss.Severity, iss.Message)))
		b.WriteString("\n")
	}
	return b.String()
}
