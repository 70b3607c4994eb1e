package driven

// ConfigStore provides persistent key/value configuration.
type ConfigStore interface {
	// Get retrieves a configuration value by key.
	Get(key string) (any, bool)

	// GetString retrieves a string value, "" when absent.
	GetString(key string) string

	// GetInt retrieves an integer value, 0 when absent.
	GetInt(key string) int

	// Set stores a value and persists immediately.
	Set(key string, value any) error
}
