// Package editor holds the configuration state for one editor session: the
// single source of truth for the current text, synchronized with the shared
// URL form and mirrored for cross-redirect recovery.
package editor

import (
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/otelview-labs/otelview/internal/urlstate"
)

// maxConfigSize bounds accepted editor input.
const maxConfigSize = 512 * 1024

// RestoreMirror receives every applied raw text for cross-page recovery,
// e.g. after an external authentication redirect. Implementations must not
// fail the apply; errors are swallowed by the caller.
type RestoreMirror interface {
	SetRestore(text string)
}

// Update is a pending URL synchronization produced by Sync.
type Update struct {
	// Encoded is the URL-safe form of the current text. The composer turns
	// this into a single history replacement, never a push per keystroke.
	Encoded string
}

// Store owns the configuration text of a session. Changing state is a
// two-step protocol: Apply mutates the text (and mirrors it for recovery),
// then Sync computes the URL update. Keeping the steps distinct and ordered
// means downstream notification can never race the state change.
type Store struct {
	mu     sync.Mutex
	text   string
	synced string // last text reflected into the URL
	mirror RestoreMirror
}

// NewStore creates a store seeded with the given text. The seed counts as
// already URL-synced, so a session opened from a shared link does not
// immediately rewrite its own URL.
func NewStore(initial string, mirror RestoreMirror) *Store {
	return &Store{
		text:   Select(initial),
		synced: Select(initial),
		mirror: mirror,
	}
}

// Select extracts canonical configuration text from raw editor input.
// Unusable input degrades to the empty string; Select never fails.
func Select(raw string) string {
	if len(raw) > maxConfigSize || !utf8.ValidString(raw) {
		return ""
	}
	raw = strings.ReplaceAll(raw, "\r\n", "\n")
	// Strip a UTF-8 BOM the clipboard sometimes smuggles in.
	raw = strings.TrimPrefix(raw, "\uFEFF")
	if strings.ContainsRune(raw, '\x00') {
		return ""
	}
	return raw
}

// Apply replaces the current text with the canonical form of raw and
// mirrors the result under the restore key.
func (s *Store) Apply(raw string) {
	text := Select(raw)

	s.mu.Lock()
	s.text = text
	mirror := s.mirror
	s.mu.Unlock()

	if mirror != nil {
		mirror.SetRestore(text)
	}
}

// Sync reports whether the current text diverges from the last URL-synced
// text. On divergence it returns exactly one update; calling Sync again
// without an intervening Apply returns false. This is the second step of
// the change protocol and runs strictly after Apply.
func (s *Store) Sync() (Update, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.text == s.synced {
		return Update{}, false
	}
	s.synced = s.text
	return Update{Encoded: urlstate.Encode(s.text)}, true
}

// Text returns the current configuration text.
func (s *Store) Text() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.text
}
