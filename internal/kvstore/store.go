// Package kvstore abstracts the persistence the engine needs for quota
// records and similar small state behind a key-value interface, with
// in-memory, JSON-file and SQLite backends.
package kvstore

// Store is a minimal key-value persistence boundary. Implementations must be
// safe for concurrent use.
type Store interface {
	// Get returns the stored value and whether the key exists.
	Get(key string) ([]byte, bool, error)
	// Set stores or replaces the value for a key.
	Set(key string, value []byte) error
	// Delete removes a key; deleting a missing key is not an error.
	Delete(key string) error
	// Close releases backend resources.
	Close() error
}
