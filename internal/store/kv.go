package store

// KV is the persistence boundary. Reads of an absent key report false;
// callers substitute their own default.
type KV interface {
	Get(key string) (string, bool)
	Set(key, value string) error
	Delete(key string) error
	Keys() []string
}
