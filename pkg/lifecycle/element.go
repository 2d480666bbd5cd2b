// Package lifecycle normalizes an image element's native load and error
// signals into a deterministic lifecycle.
//
// A [Controller] is owned by one mounted image instance. For each distinct
// resolved source it fires at most one completion (OnLoad followed by
// OnLoadingComplete), waits for decode readiness before doing so, and drops
// the completion if the element is no longer attached by then.
//
// # Threading
//
// Hosts drive the controller from their UI thread. Decode readiness is the
// only asynchronous step: the controller waits for it on a goroutine and
// hands the continuation back through the dispatch function installed with
// [WithDispatch]. Without one, continuations run on the waiting goroutine.
package lifecycle

// ImageElement is the underlying image primitive as seen by the controller.
type ImageElement interface {
	// Src returns the currently resolved source.
	Src() string
	// Complete reports whether the element had already finished loading
	// when it was read. Hosts read it synchronously at attach time.
	Complete() bool
	// IsConnected reports whether the element is still part of the
	// rendered output.
	IsConnected() bool
	// Attr returns the named attribute and whether it is present.
	Attr(name string) (string, bool)
}

// Decoder is implemented by elements that can report decode readiness.
//
// Decode returns a channel that receives (or is closed) once the image is
// paintable. A value received on the channel is a decode failure; failures
// are ignored and still count as ready. A nil channel means readiness is not
// observable and the element is treated as ready immediately. Implementations
// must eventually send on or close every channel they return.
type Decoder interface {
	Decode() <-chan error
}

// decodeReady requests decode readiness from el, or nil when el cannot
// report it.
func decodeReady(el ImageElement) <-chan error {
	if d, ok := el.(Decoder); ok {
		return d.Decode()
	}
	return nil
}
