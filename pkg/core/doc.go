// Package core provides the per-instance state primitives used by driftimg
// widgets.
//
// A widget is an immutable description of an image; its mounted instance
// owns mutable state that lives from attach until dispose. The host
// framework drives the instance and supplies a rebuild hook.
//
// # Stateful Instances
//
// Embed StateBase in your state struct:
//
//	type imageState struct {
//	    core.StateBase
//	    failed *core.Managed[bool]
//	}
//
//	func (s *imageState) InitState() {
//	    s.failed = core.NewManaged(s, false)
//	}
//
// # State Management
//
// Managed provides automatic rebuild triggering:
//
//	s.failed.Set(true) // Automatically triggers rebuild
//
// Ref is a single-slot holder that never triggers rebuilds. Use it for
// values read later by asynchronous continuations, such as callbacks:
//
//	s.callbacks = core.NewRef(cb)
//
// # Hooks
//
// UseController registers a controller for automatic disposal when the
// state is disposed.
//
// # Constructor Conventions
//
// Controllers use NewX() constructors returning pointers:
//
//	ctrl := lifecycle.NewController()
//
// This distinguishes long-lived, mutable objects (controllers) from
// immutable configuration objects (widgets, which use struct literals).
package core
