package dataset

import (
	"errors"
	"runtime/debug"
	"sync"
)

// ErrNotFound names the missing-dataset condition; Pin reports a missing
// dataset through its ok result, and nothing in this package returns it.
var ErrNotFound = errors.New("dataset: not found")

// handle wraps a published Dataset with a pin/release lifetime so an
// Unload can wait out in-flight readers before the dataset's memory is
// reclaimed. This is a Go-native rendering of a shared_ptr reference
// count guarding a server-wide map of named graphs.
type handle struct {
	ds *Dataset
	wg sync.WaitGroup
}

// Registry is a process-wide, name-keyed map of dataset handles. It is
// safe for concurrent use: mutation (Publish/Unload) takes a short
// exclusive lock, while Pin only needs a read lock to hand out a
// reference-counted snapshot.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*handle
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]*handle)}
}

// Publish installs ds under ds.Name, atomically replacing any existing
// same-named dataset. The caller must have finished building every
// index on ds before calling Publish; nothing further may mutate it.
func (r *Registry) Publish(ds *Dataset) {
	h := &handle{ds: ds}

	r.mu.Lock()
	old := r.entries[ds.Name]
	r.entries[ds.Name] = h
	r.mu.Unlock()

	if old != nil {
		go reclaim(old)
	}
	debug.FreeOSMemory()
}

// Pin returns the named dataset and a release function the caller must
// invoke exactly once when finished reading it. An Unload racing with
// a Pin either completes before the Pin observes the entry (Pin then
// fails with ok=false) or after (Unload then waits for this pin's
// release before reclaiming).
func (r *Registry) Pin(name string) (ds *Dataset, release func(), ok bool) {
	r.mu.RLock()
	h, found := r.entries[name]
	if found {
		h.wg.Add(1)
	}
	r.mu.RUnlock()
	if !found {
		return nil, nil, false
	}
	return h.ds, h.wg.Done, true
}

// Unload removes name from the registry and reports whether it was
// present. Reclamation runs synchronously after the last pinned reader
// releases its handle.
func (r *Registry) Unload(name string) bool {
	r.mu.Lock()
	h, found := r.entries[name]
	if found {
		delete(r.entries, name)
	}
	r.mu.Unlock()
	if !found {
		return false
	}
	reclaim(h)
	return true
}

func reclaim(h *handle) {
	h.wg.Wait()
	debug.FreeOSMemory()
}

// List returns the names of all currently loaded datasets.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	return names
}
