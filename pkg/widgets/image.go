package widgets

import (
	"fmt"

	"github.com/go-drift/driftimg/pkg/lifecycle"
	"github.com/go-drift/driftimg/pkg/loader"
	"github.com/go-drift/driftimg/pkg/placeholder"
)

// Image describes an optimized image element: responsive candidates, lazy
// loading, an optional blur-up placeholder and load/error callbacks.
//
// # Creation Pattern
//
// Use struct literal:
//
//	widgets.Image{
//	    Src:         "/photos/hero.jpg",
//	    Alt:         "Harbor at dusk",
//	    Width:       800,
//	    Height:      450,
//	    Placeholder: placeholder.ModeBlur,
//	    Priority:    true,
//	}
//
// Render derives the element attributes without any lifecycle, which is all
// a server-side renderer needs. Interactive hosts mount the image with
// CreateState and forward the element's native signals to the returned
// [ImageState].
//
// Alt is required. An empty Alt marks the image as decorative and is still
// emitted as alt="".
type Image struct {
	// Src is the source identity handed to Loader.
	Src string
	// Alt is the alternate text.
	Alt string
	// Width is the intrinsic width. It also bounds the candidate set.
	Width int
	// Height is the intrinsic height.
	Height int
	// Fill replaces intrinsic sizing with absolute positioning that fills
	// the container. Width and Height are not emitted in fill mode.
	Fill bool
	// Fit sets object-fit. In fill mode the default is cover.
	Fit ImageFit
	// Loader overrides the URL transform. Nil means loader.DefaultLoader.
	Loader loader.Loader
	// Quality is 1-100. Zero means 75.
	Quality int
	// Priority forces eager loading regardless of Loading.
	Priority bool
	// Loading is lazy by default.
	Loading LoadingMode
	// Placeholder selects the placeholder shown while loading.
	Placeholder placeholder.Mode
	// BlurDataURL is an explicit placeholder payload for blur mode.
	BlurDataURL string
	// PlaceholderGenerator overrides placeholder.DefaultGenerator when blur
	// mode has no BlurDataURL.
	PlaceholderGenerator placeholder.Generator
	// Unoptimized bypasses Loader: Src is used as is, with no candidates.
	Unoptimized bool

	OnLoad            func(*lifecycle.LoadEvent)
	OnError           func(lifecycle.ErrorEvent)
	OnLoadingComplete func(lifecycle.ImageElement)

	ClassName      string
	Style          Style
	Sizes          string
	CrossOrigin    CrossOrigin
	ReferrerPolicy string
	// Decoding is async by default.
	Decoding      Decoding
	FetchPriority FetchPriority

	// Attrs are forwarded untouched to the element. Attributes the image
	// derives itself take precedence.
	Attrs map[string]string
}

// LoadingMode is the element's loading attribute.
type LoadingMode string

const (
	LoadingLazy  LoadingMode = "lazy"
	LoadingEager LoadingMode = "eager"
)

// Decoding is the element's decoding attribute.
type Decoding string

const (
	DecodingAsync Decoding = "async"
	DecodingSync  Decoding = "sync"
	DecodingAuto  Decoding = "auto"
)

// FetchPriority is the element's fetchpriority attribute.
type FetchPriority string

const (
	FetchPriorityHigh FetchPriority = "high"
	FetchPriorityLow  FetchPriority = "low"
	FetchPriorityAuto FetchPriority = "auto"
)

// CrossOrigin is the element's crossorigin attribute.
type CrossOrigin string

const (
	CrossOriginAnonymous      CrossOrigin = "anonymous"
	CrossOriginUseCredentials CrossOrigin = "use-credentials"
)

// ImageFit controls how an image is scaled within its box (CSS object-fit).
type ImageFit int

const (
	// ImageFitDefault leaves object-fit unset. This is the zero value.
	ImageFitDefault ImageFit = iota
	// ImageFitContain scales the image to fit within its bounds.
	ImageFitContain
	// ImageFitFill stretches the image to fill its bounds.
	ImageFitFill
	// ImageFitCover scales the image to cover its bounds.
	ImageFitCover
	// ImageFitNone leaves the image at its intrinsic size.
	ImageFitNone
	// ImageFitScaleDown fits the image if needed, otherwise keeps intrinsic size.
	ImageFitScaleDown
)

// String returns the CSS object-fit keyword.
func (f ImageFit) String() string {
	switch f {
	case ImageFitDefault:
		return ""
	case ImageFitFill:
		return "fill"
	case ImageFitContain:
		return "contain"
	case ImageFitCover:
		return "cover"
	case ImageFitNone:
		return "none"
	case ImageFitScaleDown:
		return "scale-down"
	default:
		return fmt.Sprintf("ImageFit(%d)", int(f))
	}
}

// WithFit returns a copy of the image with the specified fit mode.
func (i Image) WithFit(fit ImageFit) Image {
	i.Fit = fit
	return i
}

// WithSize returns a copy of the image with the specified width and height.
func (i Image) WithSize(width, height int) Image {
	i.Width = width
	i.Height = height
	return i
}

// WithPlaceholder returns a copy of the image with a blur placeholder using
// the given payload, or a generated one when blurDataURL is empty.
func (i Image) WithPlaceholder(blurDataURL string) Image {
	i.Placeholder = placeholder.ModeBlur
	i.BlurDataURL = blurDataURL
	return i
}

func (i Image) callbacks() lifecycle.Callbacks {
	return lifecycle.Callbacks{
		OnLoad:            i.OnLoad,
		OnError:           i.OnError,
		OnLoadingComplete: i.OnLoadingComplete,
	}
}

func (i Image) loader() loader.Loader {
	if i.Loader != nil {
		return i.Loader
	}
	return loader.DefaultLoader
}

func (i Image) generator() placeholder.Generator {
	if i.PlaceholderGenerator != nil {
		return i.PlaceholderGenerator
	}
	return placeholder.DefaultGenerator
}

// Variants returns the URLs this image requests. An empty Src requests
// nothing and is not passed to Loader.
func (i Image) Variants() loader.VariantSet {
	if i.Src == "" {
		return loader.VariantSet{}
	}
	return loader.Generate(loader.Request{
		Src:         i.Src,
		Width:       i.Width,
		Quality:     i.Quality,
		Unoptimized: i.Unoptimized,
	}, i.loader())
}

// Render derives the element attributes for a freshly mounted image, with
// the placeholder still pending.
func (i Image) Render() Attributes {
	return i.build(i.resolvePlaceholder(), false)
}

func (i Image) resolvePlaceholder() placeholder.State {
	w, h := i.Width, i.Height
	if w <= 0 || h <= 0 || i.Fill {
		return placeholder.Resolve(i.Placeholder, i.BlurDataURL, i.generator())
	}
	// keep aspect ratio, DefaultSize on the long edge
	pw, ph := placeholder.DefaultSize, placeholder.DefaultSize
	if w > h {
		ph = max(1, h*placeholder.DefaultSize/w)
	} else if h > w {
		pw = max(1, w*placeholder.DefaultSize/h)
	}
	return placeholder.ResolveSized(i.Placeholder, i.BlurDataURL, pw, ph, i.generator())
}

func (i Image) build(ph placeholder.State, showAlt bool) Attributes {
	variants := i.Variants()

	style := i.Style.Clone()
	if i.Fill {
		style.Set("position", "absolute")
		style.Set("height", "100%")
		style.Set("width", "100%")
		style.Set("left", "0")
		style.Set("top", "0")
		style.Set("right", "0")
		style.Set("bottom", "0")
		if !style.Has("object-fit") {
			fit := i.Fit.String()
			if fit == "" {
				fit = ImageFitCover.String()
			}
			style.Set("object-fit", fit)
		}
	} else if i.Fit != ImageFitDefault && !style.Has("object-fit") {
		style.Set("object-fit", i.Fit.String())
	}

	if ph.Overlay() {
		style.Set("background-image", fmt.Sprintf("url(%q)", ph.Data))
		style.Set("background-size", "cover")
		style.Set("background-position", "center")
		style.Set("filter", "blur(20px)")
		style.Set("transition", "filter 0.2s ease-in-out")
	}

	loading := i.Loading
	if loading == "" {
		loading = LoadingLazy
	}
	if i.Priority {
		loading = LoadingEager
	}
	decoding := i.Decoding
	if decoding == "" {
		decoding = DecodingAsync
	}

	attrs := Attributes{
		Src:            variants.PrimaryURL,
		SrcSet:         variants.SrcSet(),
		Sizes:          i.Sizes,
		Alt:            i.Alt,
		Class:          i.ClassName,
		Style:          style,
		Loading:        loading,
		Decoding:       decoding,
		FetchPriority:  i.FetchPriority,
		CrossOrigin:    i.CrossOrigin,
		ReferrerPolicy: i.ReferrerPolicy,
		DataNimg:       "1",
		Extra:          i.Attrs,
		ShowAltText:    showAlt,
		Placeholder:    ph,
	}
	if i.Fill {
		attrs.DataNimg = "fill"
	} else {
		attrs.Width = i.Width
		attrs.Height = i.Height
	}
	return attrs
}
