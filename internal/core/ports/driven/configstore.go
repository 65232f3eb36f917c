package driven

// ConfigStore reads and writes composer preferences under dotted keys
// such as "composer.mode" or "directory.members".
type ConfigStore interface {
	// Get returns the raw value stored under key and whether it exists.
	Get(key string) (any, bool)

	// GetString returns the value as a string, or "" if absent or of
	// another type.
	GetString(key string) string

	// GetInt returns the value as an int, or 0 if absent or not numeric.
	GetInt(key string) int

	// GetBool returns the value as a bool, or false.
	GetBool(key string) bool

	// GetStringSlice returns the value as a list of strings. Non-string
	// elements are dropped; a missing key yields nil.
	GetStringSlice(key string) []string

	// Set stores a value and persists it.
	Set(key string, value any) error

	// Save writes the current values to the backing file.
	Save() error

	// Load replaces the current values with the backing file contents.
	Load() error

	// Path returns where the values are persisted.
	Path() string
}
