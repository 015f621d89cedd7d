package watch

import "sync"

// Registry is a keyed observer list, decoupled from any UI toolkit.
// Handlers are invoked through the dispatch function the notifier
// supplies, never on the notifier's own goroutine.
type Registry[K comparable] struct {
	mu       sync.Mutex
	handlers map[K][]func()
}

// NewRegistry creates an empty registry.
func NewRegistry[K comparable]() *Registry[K] {
	return &Registry[K]{handlers: map[K][]func(){}}
}

// Subscribe registers fn for key. There is no unsubscribe; listeners
// live as long as the process, matching the one-watcher-per-process
// model.
func (r *Registry[K]) Subscribe(key K, fn func()) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[key] = append(r.handlers[key], fn)
}

// Notify hands every handler for key to dispatch.
func (r *Registry[K]) Notify(key K, dispatch func(func())) {
	r.mu.Lock()
	fns := append(make([]func(), 0, len(r.handlers[key])), r.handlers[key]...)
	r.mu.Unlock()
	for _, fn := range fns {
		dispatch(fn)
	}
}
