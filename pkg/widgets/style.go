package widgets

import (
	"sort"
	"strings"
)

// Style is an inline CSS declaration block keyed by property name
// (e.g. "object-fit"). Rendering sorts properties for stable output.
type Style map[string]string

// Clone returns a copy of s that is safe to modify. A nil Style clones to an
// empty, non-nil Style.
func (s Style) Clone() Style {
	out := make(Style, len(s)+8)
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Set sets a property.
func (s Style) Set(property, value string) {
	s[property] = value
}

// Has reports whether property is set to a non-empty value.
func (s Style) Has(property string) bool {
	return s[property] != ""
}

// CSS renders the declaration block ("a:b;c:d"), or "" when empty.
func (s Style) CSS() string {
	if len(s) == 0 {
		return ""
	}
	keys := make([]string, 0, len(s))
	for k, v := range s {
		if v != "" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + ":" + s[k]
	}
	return strings.Join(parts, ";")
}
