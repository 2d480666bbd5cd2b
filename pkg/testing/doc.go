// Package testing provides test doubles for driftimg hosts and widgets.
//
// # Quick Start
//
// Drive a lifecycle controller with a fake element and a manual UI queue:
//
//	func TestMyImage(t *testing.T) {
//	    ui := drifttest.NewManualDispatcher()
//	    img := drifttest.NewFakeImage("/a.jpg")
//	    img.HoldDecode()
//
//	    ctrl := lifecycle.NewController(lifecycle.WithDispatch(ui.Dispatch))
//	    ctrl.Attach(img)
//	    ctrl.HandleLoad()
//
//	    img.ResolveDecode(nil)
//	    ui.WaitFor(t, 1)
//	    ui.Flush()
//	}
//
// # Import Alias
//
// Since this package has the same name as the standard library testing
// package, import it with an alias:
//
//	import drifttest "github.com/go-drift/driftimg/pkg/testing"
package testing
