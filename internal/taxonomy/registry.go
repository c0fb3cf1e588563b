package taxonomy

import (
	"sync"
	"sync/atomic"
)

// Registry holds the process-wide taxonomy. Readers never block; reloads are serialized
// and swap the whole index at once, so a request sees either the old or the new
// catalogue and never a mix.
type Registry struct {
	current atomic.Pointer[Taxonomy]
	mu      sync.Mutex
}

// NewRegistry returns a registry serving t. t may be nil, in which case Current
// reports ErrTaxonomyUnavailable until a successful Reload.
func NewRegistry(t *Taxonomy) *Registry {
	r := &Registry{}
	if t != nil {
		r.current.Store(t)
	}
	return r
}

// Current returns the active taxonomy.
func (r *Registry) Current() (*Taxonomy, error) {
	t := r.current.Load()
	if t == nil {
		return nil, ErrTaxonomyUnavailable
	}
	return t, nil
}

// Reload loads the taxonomy at path, or the embedded one when path is empty, and makes
// it current. On failure the previous taxonomy stays active.
func (r *Registry) Reload(path string) (*Taxonomy, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var (
		t   *Taxonomy
		err error
	)
	if path == "" {
		t, err = Default()
	} else {
		t, err = LoadFile(path)
	}
	if err != nil {
		return nil, err
	}

	r.current.Store(t)
	return t, nil
}

// Swap installs t and returns the previously active taxonomy, which may be nil.
func (r *Registry) Swap(t *Taxonomy) *Taxonomy {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current.Swap(t)
}
