package lifecycle

import (
	"github.com/go-drift/driftimg/pkg/config"
	"github.com/go-drift/driftimg/pkg/errors"
)

// Validate reports developer diagnostics for el when warnings are enabled in
// the global configuration: an empty src, or an absent alt attribute. An
// empty alt is valid. Validate never panics and never changes control flow.
func Validate(el ImageElement, src, instance string) {
	if !config.Get().EnableWarnings {
		return
	}
	defer errors.Recover("lifecycle.Validate")

	if src == "" {
		errors.ReportDiagnostic(&errors.Diagnostic{
			Instance:  instance,
			Attribute: "src",
			Message:   `Image is missing required "src" property`,
		})
	}
	if el == nil {
		return
	}
	if _, ok := el.Attr("alt"); !ok {
		errors.ReportDiagnostic(&errors.Diagnostic{
			Instance:  instance,
			Src:       src,
			Attribute: "alt",
			Message:   `Image is missing required "alt" property. Please add Alternative Text to describe the image for screen readers and search engines.`,
		})
	}
}
