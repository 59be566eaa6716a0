package domain

// Storage is the persistent string key-value substrate shared by the TTL
// cache and the hero rotation tracking. Implementations are expected to
// survive restarts; callers namespace their keys by prefix and treat every
// read as possibly stale or absent.
type Storage interface {
	// Get returns the stored value and whether the key was present.
	Get(key string) (string, bool, error)

	// Set stores value under key, overwriting any prior value.
	Set(key, value string) error

	// Remove deletes key. Removing an absent key is not an error.
	Remove(key string) error

	// Close releases the underlying resources.
	Close() error
}
