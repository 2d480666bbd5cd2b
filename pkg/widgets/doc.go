// Package widgets provides the optimized Image component.
//
// An [Image] is a plain configuration value. It renders to [Attributes]
// without any lifecycle, which is enough for server-side rendering:
//
//	attrs := widgets.Image{Src: "/a.jpg", Alt: "A", Width: 400, Height: 300}.Render()
//	fmt.Fprint(w, attrs.HTML())
//
// Interactive hosts mount it with CreateState and forward the element's
// native signals:
//
//	s := img.CreateState(lifecycle.WithDispatch(host.Dispatch))
//	s.SetRebuild(func() { host.Apply(s.Build()) })
//	s.Attach(el)
//	// on native load:  s.HandleLoad()
//	// on native error: s.HandleError(err)
//	// on unmount:      s.Dispose()
//
// # Callback Semantics
//
// OnLoad and OnLoadingComplete fire at most once per source per mounted
// element, after the browser reports the image decoded, and only if the
// element is still in the document. OnError fires on every failure signal.
// Callbacks always observe the most recent configuration passed to
// UpdateWidget.
package widgets
