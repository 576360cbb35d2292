package driven

// ConfigStore persists application settings. Keys use two-level
// "section.key" names matching the settings file layout, for example
// "embedding.api_key" or "storage.data_dir"; every value is a string.
type ConfigStore interface {
	// GetString returns the value stored under a "section.key" name,
	// or "" when it is absent.
	GetString(key string) string

	// Set stores a value under a "section.key" name and persists it
	// immediately. The section must be a known settings section.
	Set(key, value string) error
}
