package loader

import (
	"strconv"
	"strings"
)

// Request identifies the image to derive URLs for. It is immutable for the
// duration of a render.
type Request struct {
	// Src is the source identity.
	Src string
	// Width is the target width. Zero means undefined: the primary URL uses
	// DefaultWidth and no candidates are generated.
	Width int
	// Quality is passed to the loader. Zero means DefaultQuality.
	Quality int
	// Unoptimized bypasses the loader entirely.
	Unoptimized bool
}

// Candidate is one entry of a responsive candidate set.
type Candidate struct {
	URL   string
	Width int
}

// Descriptor returns the candidate in srcset descriptor syntax ("url 640w").
func (c Candidate) Descriptor() string {
	return c.URL + " " + strconv.Itoa(c.Width) + "w"
}

// VariantSet is the derived output of Generate.
type VariantSet struct {
	PrimaryURL string
	// Candidates is ascending by Width.
	Candidates []Candidate
}

// SrcSet joins the candidates into a srcset attribute value, or "" when
// there are none.
func (v VariantSet) SrcSet() string {
	if len(v.Candidates) == 0 {
		return ""
	}
	parts := make([]string, len(v.Candidates))
	for i, c := range v.Candidates {
		parts[i] = c.Descriptor()
	}
	return strings.Join(parts, ", ")
}

// Generate derives the variant set for req using DefaultBreakpoints.
func Generate(req Request, fn Loader) VariantSet {
	return GenerateWith(req, fn, DefaultBreakpoints)
}

// GenerateWith derives the variant set for req against breakpoints, which
// must be ascending. Breakpoints wider than twice the requested width are
// dropped.
func GenerateWith(req Request, fn Loader, breakpoints []int) VariantSet {
	if req.Unoptimized || fn == nil {
		return VariantSet{PrimaryURL: req.Src}
	}

	quality := req.Quality
	if quality == 0 {
		quality = DefaultQuality
	}
	width := req.Width
	if width == 0 {
		width = DefaultWidth
	}

	set := VariantSet{
		PrimaryURL: fn(LoaderProps{Src: req.Src, Width: width, Quality: quality}),
	}
	if req.Width == 0 {
		return set
	}

	limit := req.Width * 2
	for _, bp := range breakpoints {
		if bp > limit {
			continue
		}
		set.Candidates = append(set.Candidates, Candidate{
			URL:   fn(LoaderProps{Src: req.Src, Width: bp, Quality: quality}),
			Width: bp,
		})
	}
	return set
}
