package theme

import (
	"context"
	"log"
	"sync"

	"github.com/chirag7gaming/my-code/internal/store"
)

// Mode is the theme preference, stored as its integer index.
type Mode int

const (
	ModeSystem Mode = iota
	ModeLight
	ModeDark
)

// String returns the configuration name of the mode.
func (m Mode) String() string {
	switch m {
	case ModeLight:
		return "light"
	case ModeDark:
		return "dark"
	default:
		return "system"
	}
}

// ParseMode maps a configuration name to a Mode. Unknown names fall
// back to ModeSystem.
func ParseMode(name string) Mode {
	switch name {
	case "light":
		return ModeLight
	case "dark":
		return ModeDark
	default:
		return ModeSystem
	}
}

// valid reports whether a stored integer maps to a defined mode.
func valid(n int) bool {
	return n >= int(ModeSystem) && n <= int(ModeDark)
}

// Manager caches the theme preference and persists it in the
// preference store. Load and save failures leave the cached mode at
// its last-known-good value; theming is never worth failing the app
// over.
type Manager struct {
	mu   sync.Mutex
	kv   store.KV
	mode Mode
}

// NewManager creates a Manager defaulting to ModeSystem.
func NewManager(kv store.KV) *Manager {
	return &Manager{kv: kv, mode: ModeSystem}
}

// Mode returns the cached theme preference.
func (m *Manager) Mode() Mode {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.mode
}

// Load reads the stored preference. An absent key, a read failure, or
// an out-of-range stored value all leave the cached mode unchanged.
// The resulting mode is returned either way.
func (m *Manager) Load(ctx context.Context) Mode {
	m.mu.Lock()
	defer m.mu.Unlock()

	n, ok, err := m.kv.GetInt(ctx, store.KeyThemePref)
	if err != nil {
		log.Printf("failed to load theme preference: %v", err)
		return m.mode
	}
	if ok && valid(n) {
		m.mode = Mode(n)
	}
	return m.mode
}

// Set persists the given mode and caches it. On a write failure the
// cached mode keeps its previous value and the error is returned.
func (m *Manager) Set(ctx context.Context, mode Mode) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.kv.SetInt(ctx, store.KeyThemePref, int(mode)); err != nil {
		return err
	}
	m.mode = mode
	return nil
}
