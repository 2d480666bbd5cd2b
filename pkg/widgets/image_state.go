package widgets

import (
	"reflect"

	"github.com/go-drift/driftimg/pkg/core"
	"github.com/go-drift/driftimg/pkg/lifecycle"
	"github.com/go-drift/driftimg/pkg/placeholder"
)

// ImageState is a mounted [Image]. It owns the load lifecycle of one
// element and rebuilds its attributes when the placeholder resolves or a
// failure requires the alt text.
type ImageState struct {
	core.StateBase

	widget      Image
	ctrl        *lifecycle.Controller
	placeholder *core.Managed[placeholder.State]
	opts        []lifecycle.Option
}

// CreateState mounts the image. Options are forwarded to the underlying
// [lifecycle.Controller]; WithDispatch is the usual one, so that decode
// continuations run on the host's UI thread.
func (i Image) CreateState(opts ...lifecycle.Option) *ImageState {
	s := &ImageState{widget: i, opts: opts}
	s.InitState()
	return s
}

// InitState creates the controller. CreateState calls it.
func (s *ImageState) InitState() {
	s.placeholder = core.NewManaged(s, s.widget.resolvePlaceholder())
	opts := append([]lifecycle.Option{
		lifecycle.WithCallbacks(s.widget.callbacks()),
		lifecycle.WithPlaceholder(s.widget.Placeholder),
		lifecycle.WithOnChange(func() { s.SetState(nil) }),
	}, s.opts...)
	s.ctrl = core.UseController(s, func() *lifecycle.Controller {
		return lifecycle.NewController(opts...)
	})
}

// Widget returns the current configuration.
func (s *ImageState) Widget() Image {
	return s.widget
}

// Controller returns the lifecycle controller.
func (s *ImageState) Controller() *lifecycle.Controller {
	return s.ctrl
}

// UpdateWidget installs a new configuration. Callbacks take effect for
// continuations that are still pending. A change to any input of the
// placeholder re-resolves it and schedules a rebuild.
func (s *ImageState) UpdateWidget(next Image) {
	old := s.widget
	s.widget = next
	s.ctrl.SetCallbacks(next.callbacks())
	if placeholderChanged(old, next) {
		s.placeholder.Set(next.resolvePlaceholder())
		s.ctrl.SetPlaceholderMode(next.Placeholder)
	}
}

func placeholderChanged(old, next Image) bool {
	if old.Placeholder != next.Placeholder || old.BlurDataURL != next.BlurDataURL {
		return true
	}
	if next.Placeholder == placeholder.ModeEmpty || next.BlurDataURL != "" {
		return false
	}
	// generated payloads depend on the generator and the aspect ratio
	return old.Width != next.Width || old.Height != next.Height || old.Fill != next.Fill ||
		reflect.ValueOf(old.PlaceholderGenerator).Pointer() != reflect.ValueOf(next.PlaceholderGenerator).Pointer()
}

// Build renders the current attributes.
func (s *ImageState) Build() Attributes {
	ph := s.placeholder.Value().WithComplete(s.ctrl.PlaceholderComplete())
	return s.widget.build(ph, s.ctrl.AltTextVisible())
}

// Attach binds the rendered element.
func (s *ImageState) Attach(el lifecycle.ImageElement) {
	s.ctrl.Attach(el)
}

// Detach unbinds the element, e.g. when it leaves the document.
func (s *ImageState) Detach() {
	s.ctrl.Detach()
}

// HandleLoad forwards the element's native load signal.
func (s *ImageState) HandleLoad() {
	s.ctrl.HandleLoad()
}

// HandleError forwards the element's native error signal.
func (s *ImageState) HandleError(cause error) {
	s.ctrl.HandleError(cause)
}
