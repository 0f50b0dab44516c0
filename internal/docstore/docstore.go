// Package docstore defines the abstract remote document service the sync
// layer talks to: named collections of JSON-like documents keyed by id.
package docstore

import "context"

// Doc is one stored document. Values survive a JSON round trip, so nested
// collections come back as map[string]any / []any.
type Doc map[string]any

// UpdateFunc receives the current document (nil, false when absent) and
// returns the document to write. Returning an error aborts the update and
// nothing is written.
type UpdateFunc func(current Doc, exists bool) (Doc, error)

// Collection is one named set of documents.
type Collection interface {
	// Get returns the document stored under id.
	Get(ctx context.Context, id string) (Doc, bool, error)

	// Set writes doc under id with merge semantics: fields present in doc
	// overwrite, fields absent in doc are kept.
	Set(ctx context.Context, id string, doc Doc) error

	// List returns every document in the collection, keyed by id.
	List(ctx context.Context) (map[string]Doc, error)

	// Update runs fn as a single indivisible read-check-write. Used for
	// first-claim-wins reservations.
	Update(ctx context.Context, id string, fn UpdateFunc) error
}

// Store is the document service: a handle to named collections.
type Store interface {
	Collection(name string) Collection
	Close() error
}

// merged returns base with overlay's fields written over it.
func merged(base, overlay Doc) Doc {
	out := make(Doc, len(base)+len(overlay))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range overlay {
		out[k] = v
	}
	return out
}
