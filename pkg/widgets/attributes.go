package widgets

import (
	"html"
	"sort"
	"strconv"
	"strings"
	"sync"
	"unicode"

	"github.com/go-drift/driftimg/pkg/placeholder"
)

// Attributes is the rendered form of an [Image]: the attribute set of the
// underlying img element plus the render-time flags a host needs.
type Attributes struct {
	Src            string
	SrcSet         string
	Sizes          string
	Width          int // zero means omitted
	Height         int // zero means omitted
	Alt            string
	Class          string
	Style          Style
	Loading        LoadingMode
	Decoding       Decoding
	FetchPriority  FetchPriority
	CrossOrigin    CrossOrigin
	ReferrerPolicy string
	// DataNimg is "fill" in fill mode, "1" otherwise.
	DataNimg string
	// Extra holds passthrough attributes. Derived attributes win on conflict.
	Extra map[string]string

	// ShowAltText is set once a load failure occurred. Hosts that cannot
	// rely on the browser's broken-image rendering display Alt instead.
	ShowAltText bool
	// Placeholder is the placeholder state this render was derived from.
	Placeholder placeholder.State
}

// Attr is one name/value pair.
type Attr struct {
	Name  string
	Value string
}

// Pairs returns the element attributes in a stable order: derived
// attributes first in a fixed order, then passthrough attributes sorted by
// name. Empty optional attributes are omitted; alt is always present.
// Passthrough names that are not valid attribute names are dropped.
func (a Attributes) Pairs() []Attr {
	var out []Attr
	known := make(map[string]bool, 16)
	add := func(name, value string, always bool) {
		known[name] = true
		if value == "" && !always {
			return
		}
		out = append(out, Attr{Name: name, Value: value})
	}

	add("alt", a.Alt, true)
	add("src", a.Src, true)
	add("srcset", a.SrcSet, false)
	add("sizes", a.Sizes, false)
	add("width", itoa(a.Width), false)
	add("height", itoa(a.Height), false)
	add("loading", string(a.Loading), false)
	add("decoding", string(a.Decoding), false)
	add("fetchpriority", string(a.FetchPriority), false)
	add("crossorigin", string(a.CrossOrigin), false)
	add("referrerpolicy", a.ReferrerPolicy, false)
	add("class", a.Class, false)
	add("style", a.Style.CSS(), false)
	add("data-nimg", a.DataNimg, false)

	extra := make([]string, 0, len(a.Extra))
	for name := range a.Extra {
		if validAttrName(name) && !known[strings.ToLower(name)] {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	for _, name := range extra {
		out = append(out, Attr{Name: name, Value: a.Extra[name]})
	}
	return out
}

// Get returns the value of the named attribute as it would be rendered.
func (a Attributes) Get(name string) (string, bool) {
	for _, p := range a.Pairs() {
		if p.Name == name {
			return p.Value, true
		}
	}
	return "", false
}

// HTML renders a self-closing img tag with escaped attribute values.
func (a Attributes) HTML() string {
	var b strings.Builder
	b.WriteString("<img")
	for _, p := range a.Pairs() {
		b.WriteByte(' ')
		b.WriteString(p.Name)
		b.WriteString(`="`)
		b.WriteString(html.EscapeString(p.Value))
		b.WriteByte('"')
	}
	b.WriteString("/>")
	return b.String()
}

// validAttrName reports whether name can be written as an HTML attribute
// name without quoting.
func validAttrName(name string) bool {
	if name == "" {
		return false
	}
	for _, r := range name {
		switch {
		case r <= ' ', r == 0x7f, unicode.IsSpace(r):
			return false
		case strings.ContainsRune(`"'<>/=`+"`", r):
			return false
		}
	}
	return true
}

func itoa(n int) string {
	if n <= 0 {
		return ""
	}
	return strconv.Itoa(n)
}

// StaticElement is an element backed by rendered attributes rather than a
// live document. It satisfies lifecycle.ImageElement and serves server-side
// rendering, offline validation and tests.
type StaticElement struct {
	mu        sync.RWMutex
	attrs     map[string]string
	complete  bool
	connected bool
}

// NewStaticElement creates a connected, not yet complete element holding
// the attributes of a.
func NewStaticElement(a Attributes) *StaticElement {
	e := &StaticElement{attrs: make(map[string]string), connected: true}
	for _, p := range a.Pairs() {
		e.attrs[p.Name] = p.Value
	}
	return e
}

// NewStaticElementFromMap creates a connected element with the given raw
// attributes. Attributes absent from attrs are reported as absent.
func NewStaticElementFromMap(attrs map[string]string) *StaticElement {
	e := &StaticElement{attrs: make(map[string]string, len(attrs)), connected: true}
	for k, v := range attrs {
		e.attrs[k] = v
	}
	return e
}

// Src returns the src attribute.
func (e *StaticElement) Src() string {
	v, _ := e.Attr("src")
	return v
}

// Complete reports whether the element has been marked complete.
func (e *StaticElement) Complete() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.complete
}

// SetComplete marks the element complete.
func (e *StaticElement) SetComplete(complete bool) {
	e.mu.Lock()
	e.complete = complete
	e.mu.Unlock()
}

// IsConnected reports whether the element is part of a document.
func (e *StaticElement) IsConnected() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.connected
}

// SetConnected sets the connection state.
func (e *StaticElement) SetConnected(connected bool) {
	e.mu.Lock()
	e.connected = connected
	e.mu.Unlock()
}

// Attr returns an attribute value and whether it is present.
func (e *StaticElement) Attr(name string) (string, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	v, ok := e.attrs[name]
	return v, ok
}

// SetAttr sets an attribute.
func (e *StaticElement) SetAttr(name, value string) {
	e.mu.Lock()
	e.attrs[name] = value
	e.mu.Unlock()
}

// RemoveAttr removes an attribute.
func (e *StaticElement) RemoveAttr(name string) {
	e.mu.Lock()
	delete(e.attrs, name)
	e.mu.Unlock()
}
