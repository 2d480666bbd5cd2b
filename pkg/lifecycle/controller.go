package lifecycle

import (
	stderrors "errors"
	"sync"

	"github.com/google/uuid"

	"github.com/go-drift/driftimg/pkg/core"
	"github.com/go-drift/driftimg/pkg/errors"
	"github.com/go-drift/driftimg/pkg/placeholder"
)

var errLoadFailed = stderrors.New("image failed to load")

// Controller tracks the load lifecycle of one mounted image instance.
//
// Create with [NewController] and tie it to the owning state with
// [core.UseController]:
//
//	s.ctrl = core.UseController(s, func() *lifecycle.Controller {
//	    return lifecycle.NewController(
//	        lifecycle.WithPlaceholder(placeholder.ModeBlur),
//	        lifecycle.WithOnChange(func() { s.SetState(nil) }),
//	    )
//	})
//
// Then forward the element's signals:
//
//	s.ctrl.Attach(el)     // when the element is mounted or replaced
//	s.ctrl.HandleLoad()   // native load event
//	s.ctrl.HandleError(e) // native error event
//
// All methods are safe for concurrent use. Callbacks run outside the
// controller's lock.
type Controller struct {
	mu       sync.Mutex
	id       string
	dispatch func(func())
	onChange func()

	callbacks *core.Ref[Callbacks]

	mode       placeholder.Mode // guarded by mu
	el         ImageElement     // last bound element, kept across Detach; guarded by mu
	attached   bool             // guarded by mu
	state      LoadState        // guarded by mu
	complete   bool             // guarded by mu
	altVisible bool             // guarded by mu
}

// Option configures a Controller.
type Option func(*Controller)

// WithDispatch sets the function used to run decode continuations on the
// UI thread.
func WithDispatch(fn func(callback func())) Option {
	return func(c *Controller) {
		if fn != nil {
			c.dispatch = fn
		}
	}
}

// WithCallbacks sets the initial callbacks.
func WithCallbacks(cb Callbacks) Option {
	return func(c *Controller) { c.callbacks.Set(cb) }
}

// WithPlaceholder sets the placeholder mode whose completion the controller
// tracks.
func WithPlaceholder(mode placeholder.Mode) Option {
	return func(c *Controller) { c.mode = mode }
}

// WithOnChange registers fn to run whenever placeholder completion or
// alt-text visibility changes. Hosts use it to schedule a rebuild.
func WithOnChange(fn func()) Option {
	return func(c *Controller) { c.onChange = fn }
}

// WithID overrides the generated instance ID used in diagnostics.
func WithID(id string) Option {
	return func(c *Controller) {
		if id != "" {
			c.id = id
		}
	}
}

// NewController creates a controller for a freshly mounted image.
func NewController(opts ...Option) *Controller {
	c := &Controller{
		id:        uuid.NewString(),
		dispatch:  func(cb func()) { cb() },
		callbacks: core.NewRef(Callbacks{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ID returns the instance identifier used in diagnostics.
func (c *Controller) ID() string {
	return c.id
}

// SetCallbacks replaces the callbacks. Pending continuations observe the
// new value.
func (c *Controller) SetCallbacks(cb Callbacks) {
	c.callbacks.Set(cb)
}

// SetPlaceholderMode updates the tracked placeholder mode.
func (c *Controller) SetPlaceholderMode(mode placeholder.Mode) {
	c.mu.Lock()
	c.mode = mode
	c.mu.Unlock()
}

// LoadState returns a snapshot of the load record.
func (c *Controller) LoadState() LoadState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Phase returns the current phase.
func (c *Controller) Phase() Phase {
	return c.LoadState().Phase
}

// PlaceholderComplete reports whether the placeholder has been resolved for
// the current element. Empty mode is always complete.
func (c *Controller) PlaceholderComplete() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode == placeholder.ModeEmpty || c.complete
}

// AltTextVisible reports whether a load failure requires the alternate text
// to be shown in place of the image.
func (c *Controller) AltTextVisible() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.altVisible
}

// Element returns the attached element, or nil.
func (c *Controller) Element() ImageElement {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.attached {
		return nil
	}
	return c.el
}

// Attach binds el to the controller. Binding a different element than the
// last bound one starts a fresh lifecycle; binding the same element again,
// including after Detach, keeps its load record. If el already reports
// complete, the load path runs immediately.
func (c *Controller) Attach(el ImageElement) {
	if el == nil {
		c.Detach()
		return
	}

	c.mu.Lock()
	if c.el != el {
		c.state = Reset(c.state)
		c.complete = false
		c.altVisible = false
	}
	c.el = el
	c.attached = true
	c.mu.Unlock()

	Validate(el, el.Src(), c.id)

	if el.Complete() {
		c.startLoad(el)
	}
}

// Detach unbinds the current element. A decode that settles while detached
// is discarded.
func (c *Controller) Detach() {
	c.mu.Lock()
	c.attached = false
	c.mu.Unlock()
}

// Dispose detaches the element and drops the change hook.
func (c *Controller) Dispose() {
	c.mu.Lock()
	c.el = nil
	c.attached = false
	c.onChange = nil
	c.mu.Unlock()
}

// HandleLoad handles the native load signal of the attached element.
func (c *Controller) HandleLoad() {
	c.mu.Lock()
	el, attached := c.el, c.attached
	c.mu.Unlock()
	if !attached || el == nil {
		return
	}
	c.startLoad(el)
}

// HandleError handles the native failure signal of the attached element.
// It shows the alternate text, resolves a non-empty placeholder so that a
// broken image is not left blurred, and calls OnError. Without an OnError
// callback the failure is reported to the global error handler instead. It
// does not touch the load record.
func (c *Controller) HandleError(cause error) {
	c.mu.Lock()
	var el ImageElement
	if c.attached {
		el = c.el
	}
	changed := !c.altVisible
	c.altVisible = true
	if c.mode != placeholder.ModeEmpty && !c.complete {
		c.complete = true
		changed = true
	}
	onChange := c.onChange
	c.mu.Unlock()

	if changed && onChange != nil {
		onChange()
	}

	ev := ErrorEvent{Target: el, Err: cause}
	if el != nil {
		ev.Src = el.Src()
	}
	if fn := c.callbacks.Value().OnError; fn != nil {
		fn(ev)
		return
	}

	if cause == nil {
		cause = errLoadFailed
	}
	errors.Report(&errors.ImageError{
		Op:       "lifecycle.HandleError",
		Kind:     errors.KindLoad,
		Err:      cause,
		Src:      ev.Src,
		Instance: c.id,
	})
}

func (c *Controller) startLoad(el ImageElement) {
	src := el.Src()

	c.mu.Lock()
	next, ok := BeginLoad(c.state, src)
	if !ok {
		c.mu.Unlock()
		return
	}
	c.state = next
	cycle := next.Cycle
	c.mu.Unlock()

	ready := decodeReady(el)
	if ready == nil {
		c.dispatch(func() { c.settle(el, cycle) })
		return
	}
	go func() {
		defer errors.Recover("lifecycle.awaitDecode")
		<-ready
		c.dispatch(func() { c.settle(el, cycle) })
	}()
}

// settle runs on the UI thread once decode readiness for cycle resolved.
func (c *Controller) settle(el ImageElement, cycle int) {
	defer errors.Recover("lifecycle.settle")

	connected := el.IsConnected()

	c.mu.Lock()
	if !connected || !c.attached || c.el != el {
		c.mu.Unlock()
		return
	}
	next, ok := Settle(c.state, cycle)
	if !ok {
		c.mu.Unlock()
		return
	}
	c.state = next
	changed := false
	if c.mode != placeholder.ModeEmpty && !c.complete {
		c.complete = true
		changed = true
	}
	onChange := c.onChange
	c.mu.Unlock()

	if changed && onChange != nil {
		onChange()
	}

	if fn := c.callbacks.Value().OnLoad; fn != nil {
		fn(newLoadEvent(el))
	}
	if fn := c.callbacks.Value().OnLoadingComplete; fn != nil {
		fn(el)
	}
}
