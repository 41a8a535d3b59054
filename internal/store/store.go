package store

import "context"

// Keys used in the preference store. The database layout is a flat
// key-value namespace; these four keys are the whole persisted state.
const (
	// KeyProjects holds the JSON-encoded array of projects.
	KeyProjects = "projects_db"

	// KeyFiles holds the JSON-encoded array of standalone files.
	KeyFiles = "files_db"

	// KeyLocalMode is true when the user opted into on-device-only
	// storage.
	KeyLocalMode = "is_local_mode"

	// KeyThemePref is the index into the theme-mode enum.
	KeyThemePref = "theme_pref"
)

// KV is a scoped key-value store mapping string keys to boolean,
// integer, or string values. Reads report absence separately from
// failure; a missing key is not an error. The store guarantees no
// atomicity across keys; callers group related writes themselves.
type KV interface {
	GetString(ctx context.Context, key string) (string, bool, error)
	SetString(ctx context.Context, key, value string) error

	GetBool(ctx context.Context, key string) (bool, bool, error)
	SetBool(ctx context.Context, key string, value bool) error

	GetInt(ctx context.Context, key string) (int, bool, error)
	SetInt(ctx context.Context, key string, value int) error

	// Clear removes every stored key.
	Clear(ctx context.Context) error
}
