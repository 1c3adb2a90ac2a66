// Package session manages per-browser editor sessions: the cookie holding
// the session ID and UI preferences, and the server-side state (config
// store, validation aggregator, lock flag) tied to each session.
package session

import (
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"

	"github.com/otelview-labs/otelview/internal/editor"
	"github.com/otelview-labs/otelview/internal/validate"
)

// Cookie value keys. width and welcomeModal mirror the persistent keys of
// the browser editor; sid links the cookie to server-side state.
const (
	cookieName      = "otelview"
	keySessionID    = "sid"
	keyWidth        = "width"
	keyWelcomeModal = "welcomeModal"
)

// DefaultPanelWidth is the split-view width before the user ever resizes.
const DefaultPanelWidth = 480

// State is the server-side state of one editor session. Its lifecycle is
// owned by the Manager; handlers receive it as an explicit dependency
// rather than reading ambient context.
type State struct {
	ID         string
	Aggregator *validate.Aggregator

	mu             sync.Mutex
	editor         *editor.Store
	restore        string
	locked         bool
	analyticsFired bool
	viewMode       string
}

// SetViewMode stores the current panel mode. The mode is session-held UI
// context, not persisted like the width.
func (s *State) SetViewMode(mode string) {
	s.mu.Lock()
	s.viewMode = mode
	s.mu.Unlock()
}

// ViewMode returns the current panel mode; empty until first set.
func (s *State) ViewMode() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewMode
}

// SetRestore implements editor.RestoreMirror: every applied text is kept
// for cross-redirect recovery.
func (s *State) SetRestore(text string) {
	s.mu.Lock()
	s.restore = text
	s.mu.Unlock()
}

// Restore returns the mirrored text from the last apply.
func (s *State) Restore() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.restore
}

// SetLocked flips the diagram lock flag (e.g. while a modal is open).
func (s *State) SetLocked(locked bool) {
	s.mu.Lock()
	s.locked = locked
	s.mu.Unlock()
}

// Locked reports whether diagram interaction is currently disabled.
func (s *State) Locked() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.locked
}

// MarkAnalyticsFired records the one-shot analytics event and reports
// whether this call was the first.
func (s *State) MarkAnalyticsFired() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.analyticsFired {
		return false
	}
	s.analyticsFired = true
	return true
}

// ReplaceEditor swaps in a freshly seeded config store, e.g. when a new
// shared link overrides the session's previous text.
func (s *State) ReplaceEditor(store *editor.Store) {
	s.mu.Lock()
	s.editor = store
	s.mu.Unlock()
}

// Editor returns the session's config store. Handlers with long-lived
// streams must read it through here: a page reload can swap the store
// while the stream is running.
func (s *State) Editor() *editor.Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.editor
}

// Manager owns all session state and the cookie store.
type Manager struct {
	cookies *sessions.CookieStore

	// newAggregator builds the validation aggregator for a fresh session.
	newAggregator func(*State) *validate.Aggregator

	mu     sync.Mutex
	states map[string]*State
}

// NewManager creates a session manager. newAggregator must not be nil.
func NewManager(secret string, newAggregator func(*State) *validate.Aggregator) *Manager {
	cookies := sessions.NewCookieStore([]byte(secret))
	cookies.MaxAge(86400 * 30) // 30 days
	cookies.Options.Path = "/"
	cookies.Options.HttpOnly = true
	cookies.Options.SameSite = http.SameSiteLaxMode

	return &Manager{
		cookies:       cookies,
		newAggregator: newAggregator,
		states:        make(map[string]*State),
	}
}

// Load returns the session state for a request, creating cookie and state
// on first contact.
func (m *Manager) Load(w http.ResponseWriter, r *http.Request) *State {
	sess, _ := m.cookies.Get(r, cookieName)

	id, ok := sess.Values[keySessionID].(string)
	if !ok || id == "" {
		id = uuid.New().String()
		sess.Values[keySessionID] = id
		_ = sess.Save(r, w)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	st, ok := m.states[id]
	if !ok {
		st = &State{ID: id}
		st.editor = editor.NewStore("", st)
		st.Aggregator = m.newAggregator(st)
		// The aggregator has no server-side prerequisite: an apply that
		// races the first page load must still validate, or the diagram
		// gate would trust an empty report.
		st.Aggregator.SetReady(true)
		m.states[id] = st
	}
	return st
}

// Width reads the persisted panel width, falling back to the default.
func (m *Manager) Width(r *http.Request) int {
	sess, _ := m.cookies.Get(r, cookieName)
	if w, ok := sess.Values[keyWidth].(int); ok && w > 0 {
		return w
	}
	return DefaultPanelWidth
}

// SetWidth persists the panel width so a fresh load reads it back.
func (m *Manager) SetWidth(w http.ResponseWriter, r *http.Request, width int) error {
	sess, _ := m.cookies.Get(r, cookieName)
	sess.Values[keyWidth] = width
	return sess.Save(r, w)
}

// WelcomeSeen reports whether the one-time welcome dialog was shown.
func (m *Manager) WelcomeSeen(r *http.Request) bool {
	sess, _ := m.cookies.Get(r, cookieName)
	seen, ok := sess.Values[keyWelcomeModal].(bool)
	return ok && seen
}

// MarkWelcomeSeen sets the one-time welcome flag.
func (m *Manager) MarkWelcomeSeen(w http.ResponseWriter, r *http.Request) error {
	sess, _ := m.cookies.Get(r, cookieName)
	sess.Values[keyWelcomeModal] = true
	return sess.Save(r, w)
}
