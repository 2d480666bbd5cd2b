package core

import "sync"

// Disposable is implemented by controllers whose resources are released
// when their owning state is disposed.
type Disposable interface {
	Dispose()
}

// UseController creates a controller and registers it for automatic disposal.
// The controller will be disposed when the state is disposed.
//
// Example:
//
//	func (s *imageState) InitState() {
//	    s.ctrl = core.UseController(s, func() *lifecycle.Controller {
//	        return lifecycle.NewController()
//	    })
//	}
func UseController[C Disposable](s stateBase, create func() C) C {
	base := s.state()
	controller := create()
	base.OnDispose(func() {
		controller.Dispose()
	})
	return controller
}

// Managed holds a value and triggers rebuilds when it changes.
// It is tied to a specific StateBase.
//
// Managed is NOT thread-safe. It must only be accessed from the UI thread.
type Managed[T any] struct {
	base  *StateBase
	value T
}

// NewManaged creates a new managed state value.
// Changes to this value will automatically trigger a rebuild.
func NewManaged[T any](s stateBase, initial T) *Managed[T] {
	return &Managed[T]{
		base:  s.state(),
		value: initial,
	}
}

// Value returns the current value.
func (m *Managed[T]) Value() T {
	return m.value
}

// Set updates the value and triggers a rebuild.
func (m *Managed[T]) Set(value T) {
	m.value = value
	m.base.SetState(nil)
}

// Ref is a single-slot mutable holder. Unlike Managed, writing a Ref never
// triggers a rebuild: it exists so that asynchronous continuations read the
// most recent value at call time instead of a value captured earlier.
//
// Ref is safe for concurrent use.
//
//	s.onLoad = core.NewRef(w.OnLoad)
//	// later, in DidUpdateWidget:
//	s.onLoad.Set(w.OnLoad)
//	// later still, from a continuation:
//	if fn := s.onLoad.Value(); fn != nil { fn(ev) }
type Ref[T any] struct {
	mu    sync.RWMutex
	value T
}

// NewRef creates a Ref holding initial.
func NewRef[T any](initial T) *Ref[T] {
	return &Ref[T]{value: initial}
}

// Value returns the current value.
func (r *Ref[T]) Value() T {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.value
}

// Set replaces the current value.
func (r *Ref[T]) Set(value T) {
	r.mu.Lock()
	r.value = value
	r.mu.Unlock()
}
