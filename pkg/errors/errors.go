// Package errors provides structured error reporting for driftimg.
//
// Image loading never fails loudly: native load failures go to the widget's
// OnError callback, decode failures are swallowed, and developer diagnostics
// are advisory. Everything that is worth surfacing outside those paths flows
// through a single global [ErrorHandler], which defaults to [LogHandler].
package errors

import (
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindLoad indicates a native image load failure that no OnError
	// callback handled.
	KindLoad
	// KindPlaceholder indicates a failure to synthesize a placeholder payload.
	KindPlaceholder
	// KindConfig indicates an invalid project or configuration file.
	KindConfig
)

func (k ErrorKind) String() string {
	switch k {
	case KindLoad:
		return "load"
	case KindPlaceholder:
		return "placeholder"
	case KindConfig:
		return "config"
	default:
		return "unknown"
	}
}

// ImageError represents a structured error raised while loading an image.
type ImageError struct {
	// Op is the operation that failed (e.g., "placeholder.DefaultGenerator").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Err is the underlying error.
	Err error
	// Src is the image source involved, if any.
	Src string
	// Instance identifies the mounted image instance, if any.
	Instance string
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *ImageError) Error() string {
	if e.Src != "" {
		return fmt.Sprintf("%s [%s] src=%s: %v", e.Op, e.Kind, e.Src, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *ImageError) Unwrap() error {
	return e.Err
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "lifecycle.settle").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// Diagnostic is a non-fatal developer warning about a misconfigured image,
// such as a missing src or alt attribute.
type Diagnostic struct {
	// Instance identifies the offending mounted image.
	Instance string
	// Src is the resolved source of the offending image (may be empty).
	Src string
	// Attribute names the missing or invalid attribute.
	Attribute string
	// Message is the human-readable warning.
	Message string
	// Timestamp is when the diagnostic was raised.
	Timestamp time.Time
}

func (d *Diagnostic) Error() string {
	if d.Instance != "" {
		return fmt.Sprintf("image %s: %s", d.Instance, d.Message)
	}
	return d.Message
}

// ErrorHandler receives errors reported by driftimg.
type ErrorHandler interface {
	// HandleError is called when an error occurs.
	HandleError(err *ImageError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
	// HandleDiagnostic is called when a developer diagnostic is raised.
	HandleDiagnostic(d *Diagnostic)
}
