// Package loader derives the URLs an image element requests: a primary URL
// and a width-tagged candidate set for responsive selection.
//
// A [Loader] is a pure string transform. Nothing in this package fetches,
// caches, or retries; a loader that returns a bad URL is passed through as is.
package loader

import (
	"net/url"
	"strconv"
	"strings"
)

// DefaultQuality is used when a request does not specify a quality.
const DefaultQuality = 75

// DefaultWidth is the width requested for the primary URL when the request
// has no width.
const DefaultWidth = 640

// DefaultBreakpoints are the candidate widths, ascending.
var DefaultBreakpoints = []int{640, 750, 828, 1080, 1200, 1920, 2048, 3840}

// LoaderProps are the inputs to a Loader.
type LoaderProps struct {
	Src     string
	Width   int
	Quality int
}

// Loader maps a source, width and quality to a URL. It must be deterministic
// and free of side effects.
type Loader func(p LoaderProps) string

// DefaultLoader appends w and q query parameters, in that order, to Src.
// A zero width or quality omits its parameter; with neither, Src is returned
// unchanged.
func DefaultLoader(p LoaderProps) string {
	params := make([]string, 0, 2)
	if p.Width != 0 {
		params = append(params, "w="+strconv.Itoa(p.Width))
	}
	if p.Quality != 0 {
		params = append(params, "q="+strconv.Itoa(p.Quality))
	}
	if len(params) == 0 {
		return p.Src
	}
	sep := "?"
	if strings.Contains(p.Src, "?") {
		sep = "&"
	}
	return p.Src + sep + strings.Join(params, "&")
}

// BaseURLLoader resolves relative sources against base before handing them
// to next. Absolute sources are passed through. A nil next uses DefaultLoader.
//
//	fn := loader.BaseURLLoader("https://cdn.example.com/assets/", nil)
//	fn(loader.LoaderProps{Src: "/a.jpg", Width: 640})
//	// https://cdn.example.com/assets/a.jpg?w=640
func BaseURLLoader(base string, next Loader) Loader {
	if next == nil {
		next = DefaultLoader
	}
	baseURL, err := url.Parse(base)
	if err != nil || base == "" {
		return next
	}
	return func(p LoaderProps) string {
		if u, err := url.Parse(p.Src); err == nil && !u.IsAbs() && !strings.HasPrefix(p.Src, "//") {
			joined := baseURL.JoinPath(strings.TrimPrefix(u.Path, "/"))
			joined.RawQuery = u.RawQuery
			p.Src = joined.String()
		}
		return next(p)
	}
}
