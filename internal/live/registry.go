package live

import "sync"

// Registry tracks which files currently have a live document open. The write
// engine probes it on every call; liveness can change between calls, so
// lookups are never cached.
type Registry struct {
	mu   sync.RWMutex
	docs map[string]*Document
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{docs: make(map[string]*Document)}
}

// Open attaches a live document to a file id, replacing any previous one.
func (r *Registry) Open(fileID string, doc *Document) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.docs[fileID] = doc
}

// Lookup returns the live document for a file id, if one is open.
func (r *Registry) Lookup(fileID string) (*Document, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	doc, ok := r.docs[fileID]
	return doc, ok
}

// Close detaches the live document for a file id.
func (r *Registry) Close(fileID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.docs, fileID)
}
