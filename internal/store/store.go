// Package store provides the local persisted key-value string store.
package store

// KV is the abstract get/set string store the application persists its
// settings and timetable into. Missing keys are reported via the bool, not
// an error.
type KV interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Close() error
}
