package lifecycle

// LoadEvent is the synthetic event passed to OnLoad once an image settles.
type LoadEvent struct {
	target    ImageElement
	prevented bool
	stopped   bool
}

func newLoadEvent(el ImageElement) *LoadEvent {
	return &LoadEvent{target: el}
}

// Type returns "load".
func (e *LoadEvent) Type() string { return "load" }

// Target returns the element that loaded.
func (e *LoadEvent) Target() ImageElement { return e.target }

// CurrentTarget returns the element that loaded. It always equals Target.
func (e *LoadEvent) CurrentTarget() ImageElement { return e.target }

// PreventDefault marks the event as default-prevented.
func (e *LoadEvent) PreventDefault() { e.prevented = true }

// StopPropagation marks the event as propagation-stopped.
func (e *LoadEvent) StopPropagation() { e.stopped = true }

// IsDefaultPrevented reports whether PreventDefault was called.
func (e *LoadEvent) IsDefaultPrevented() bool { return e.prevented }

// IsPropagationStopped reports whether StopPropagation was called.
func (e *LoadEvent) IsPropagationStopped() bool { return e.stopped }

// ErrorEvent is the native failure passed through to OnError.
type ErrorEvent struct {
	// Target is the element that failed. Nil if no element was attached.
	Target ImageElement
	// Src is the source that failed to load.
	Src string
	// Err is the native failure, if the host supplied one.
	Err error
}

// Type returns "error".
func (e ErrorEvent) Type() string { return "error" }

// Callbacks are the user callbacks of a mounted image. The controller reads
// them at invocation time, so replacing them while a decode is pending takes
// effect for that decode.
type Callbacks struct {
	OnLoad            func(*LoadEvent)
	OnError           func(ErrorEvent)
	OnLoadingComplete func(ImageElement)
}
