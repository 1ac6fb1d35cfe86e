// Package kv provides the key/value storage capability the application
// services depend on. Two durability tiers exist: a persistent store
// that survives restarts (FileStore) and a tab-scoped store that lives
// only as long as its client context (MemStore). Services receive each
// tier by interface and never touch a concrete store directly, so tests
// can substitute an in-memory double for either tier.
package kv

// Store is a flat string key/value slot collection. All operations are
// synchronous; a missing key is reported through the bool, never an
// error. Individual operations are safe for concurrent use, but a
// read-modify-write sequence across calls is not atomic.
type Store interface {
	Get(key string) (string, bool)
	Set(key, value string)
	Delete(key string)
}
