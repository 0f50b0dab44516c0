package docstore

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// Memory is an in-memory Store for tests and offline runs. Collection
// operations are safe to call from command goroutines.
type Memory struct {
	mu          sync.Mutex
	collections map[string]map[string]Doc
}

// NewMemory returns an empty in-memory document store.
func NewMemory() *Memory {
	return &Memory{collections: make(map[string]map[string]Doc)}
}

// Collection returns a handle to the named collection, creating it lazily.
func (m *Memory) Collection(name string) Collection {
	return &memoryCollection{store: m, name: name}
}

// Close is a no-op.
func (m *Memory) Close() error { return nil }

func (m *Memory) docs(name string) map[string]Doc {
	c, ok := m.collections[name]
	if !ok {
		c = make(map[string]Doc)
		m.collections[name] = c
	}
	return c
}

type memoryCollection struct {
	store *Memory
	name  string
}

func (c *memoryCollection) Get(_ context.Context, id string) (Doc, bool, error) {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()
	doc, ok := c.store.docs(c.name)[id]
	if !ok {
		return nil, false, nil
	}
	return copyDoc(doc), true, nil
}

func (c *memoryCollection) Set(_ context.Context, id string, doc Doc) error {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()
	docs := c.store.docs(c.name)
	docs[id] = copyDoc(merged(docs[id], doc))
	return nil
}

func (c *memoryCollection) List(_ context.Context) (map[string]Doc, error) {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()
	out := make(map[string]Doc)
	for id, doc := range c.store.docs(c.name) {
		out[id] = copyDoc(doc)
	}
	return out, nil
}

func (c *memoryCollection) Update(_ context.Context, id string, fn UpdateFunc) error {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()
	docs := c.store.docs(c.name)
	current, exists := docs[id]
	next, err := fn(copyDoc(current), exists)
	if err != nil {
		return err
	}
	if next != nil {
		docs[id] = copyDoc(next)
	}
	return nil
}

// copyDoc deep-copies through a JSON round trip so callers can never alias
// stored state. It also normalizes values to JSON shapes, matching what the
// SQLite backend returns.
func copyDoc(doc Doc) Doc {
	if doc == nil {
		return nil
	}
	data, err := json.Marshal(doc)
	if err != nil {
		// Docs are built from JSON-compatible values; this is a programming
		// error worth failing loudly on.
		panic(fmt.Sprintf("docstore: unmarshalable document: %v", err))
	}
	var out Doc
	if err := json.Unmarshal(data, &out); err != nil {
		panic(fmt.Sprintf("docstore: copy round trip failed: %v", err))
	}
	return out
}
