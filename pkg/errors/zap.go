package errors

import (
	"go.uber.org/zap"
)

// ZapHandler is an ErrorHandler that forwards to a structured zap logger.
//
//	errors.SetHandler(errors.NewZapHandler(logger))
type ZapHandler struct {
	logger *zap.Logger
}

// NewZapHandler wraps logger. A nil logger discards everything.
func NewZapHandler(logger *zap.Logger) *ZapHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ZapHandler{logger: logger.Named("driftimg")}
}

// HandleError logs err at error level.
func (h *ZapHandler) HandleError(err *ImageError) {
	if err == nil {
		return
	}
	fields := []zap.Field{
		zap.String("op", err.Op),
		zap.String("kind", err.Kind.String()),
		zap.Error(err.Err),
		zap.Time("timestamp", err.Timestamp),
	}
	if err.Src != "" {
		fields = append(fields, zap.String("src", err.Src))
	}
	if err.Instance != "" {
		fields = append(fields, zap.String("instance", err.Instance))
	}
	if err.StackTrace != "" {
		fields = append(fields, zap.String("stack", err.StackTrace))
	}
	h.logger.Error("image error", fields...)
}

// HandlePanic logs a recovered panic at error level.
func (h *ZapHandler) HandlePanic(err *PanicError) {
	if err == nil {
		return
	}
	h.logger.Error("recovered panic",
		zap.String("op", err.Op),
		zap.Any("value", err.Value),
		zap.String("stack", err.StackTrace),
	)
}

// HandleDiagnostic logs a diagnostic at warn level.
func (h *ZapHandler) HandleDiagnostic(d *Diagnostic) {
	if d == nil {
		return
	}
	h.logger.Warn(d.Message,
		zap.String("instance", d.Instance),
		zap.String("src", d.Src),
		zap.String("attribute", d.Attribute),
	)
}
