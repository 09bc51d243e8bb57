package manager

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"

	"mercator-hq/facesconfig/pkg/facesconfig/model"
)

// Snapshot is the graph held by a registry along with where it came from.
// The graph is shared and must be treated as read-only.
type Snapshot struct {
	Graph     *model.FacesConfig
	Version   string
	Documents []string
	LoadedAt  time.Time
}

// Registry holds the current configuration graph. Replace swaps it
// atomically; readers never observe a partially built graph.
type Registry struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Replace installs a new graph.
func (r *Registry) Replace(graph *model.FacesConfig, version string, documents []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snapshot = Snapshot{
		Graph:     graph,
		Version:   version,
		Documents: append([]string(nil), documents...),
		LoadedAt:  time.Now(),
	}
}

// Current returns the installed snapshot and whether one exists.
func (r *Registry) Current() (Snapshot, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snapshot, r.snapshot.Graph != nil
}

// Version returns the version of the installed graph, or "".
func (r *Registry) Version() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snapshot.Version
}

// Version hashes the document paths and contents in order. Reordering
// documents changes the version, since order changes the merged result.
func Version(sources []Source) string {
	h := sha256.New()
	for _, s := range sources {
		h.Write([]byte(s.Path))
		h.Write([]byte{0})
		h.Write(s.Data)
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))[:16]
}
