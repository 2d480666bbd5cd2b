package testing

import "sync"

// FakeImage is a controllable image primitive. It satisfies
// lifecycle.ImageElement and lifecycle.Decoder.
//
// A new FakeImage is connected, not complete, has an alt attribute of "" and
// resolves decode requests immediately. All methods are safe for concurrent
// use.
type FakeImage struct {
	mu        sync.Mutex
	src       string
	complete  bool
	connected bool
	attrs     map[string]string

	hold        bool
	noDecode    bool
	pending     []chan error
	decodeCalls int
}

// NewFakeImage returns a connected element resolved to src.
func NewFakeImage(src string) *FakeImage {
	return &FakeImage{
		src:       src,
		connected: true,
		attrs:     map[string]string{"alt": ""},
	}
}

// Src returns the resolved source.
func (f *FakeImage) Src() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.src
}

// SetSrc changes the resolved source.
func (f *FakeImage) SetSrc(src string) {
	f.mu.Lock()
	f.src = src
	f.mu.Unlock()
}

// Complete reports the native complete status.
func (f *FakeImage) Complete() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.complete
}

// SetComplete sets the native complete status.
func (f *FakeImage) SetComplete(complete bool) {
	f.mu.Lock()
	f.complete = complete
	f.mu.Unlock()
}

// IsConnected reports whether the element is attached to the output.
func (f *FakeImage) IsConnected() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.connected
}

// SetConnected attaches or detaches the element.
func (f *FakeImage) SetConnected(connected bool) {
	f.mu.Lock()
	f.connected = connected
	f.mu.Unlock()
}

// Attr returns the named attribute.
func (f *FakeImage) Attr(name string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.attrs[name]
	return v, ok
}

// SetAttr sets an attribute.
func (f *FakeImage) SetAttr(name, value string) {
	f.mu.Lock()
	f.attrs[name] = value
	f.mu.Unlock()
}

// RemoveAttr removes an attribute.
func (f *FakeImage) RemoveAttr(name string) {
	f.mu.Lock()
	delete(f.attrs, name)
	f.mu.Unlock()
}

// HoldDecode makes later Decode calls wait for ResolveDecode.
func (f *FakeImage) HoldDecode() {
	f.mu.Lock()
	f.hold = true
	f.mu.Unlock()
}

// DisableDecode makes Decode report that readiness is not observable.
func (f *FakeImage) DisableDecode() {
	f.mu.Lock()
	f.noDecode = true
	f.mu.Unlock()
}

// Decode implements lifecycle.Decoder.
func (f *FakeImage) Decode() <-chan error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.decodeCalls++
	if f.noDecode {
		return nil
	}
	ch := make(chan error, 1)
	if f.hold {
		f.pending = append(f.pending, ch)
		return ch
	}
	close(ch)
	return ch
}

// ResolveDecode settles every held decode request with err (nil for
// success) and returns how many were settled.
func (f *FakeImage) ResolveDecode(err error) int {
	f.mu.Lock()
	pending := f.pending
	f.pending = nil
	f.mu.Unlock()

	for _, ch := range pending {
		if err != nil {
			ch <- err
		}
		close(ch)
	}
	return len(pending)
}

// DecodeCalls returns how many times Decode was called.
func (f *FakeImage) DecodeCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.decodeCalls
}
