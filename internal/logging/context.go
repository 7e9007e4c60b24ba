package logging

import (
	"context"
	"log/slog"
)

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldEventType classifies a log line for filtering.
	FieldEventType = "event_type"
	// FieldErrorHint tells the operator what to do next.
	FieldErrorHint = "error_hint"
	// FieldCatalog is the catalog name or configured source label.
	FieldCatalog = "catalog"
	// FieldSource is the path of a catalog source file.
	FieldSource = "source"
	// FieldMaterial is a material name.
	FieldMaterial = "material"
	// FieldLine is a 1-based line number within a catalog source.
	FieldLine = "line"
	// FieldCommand is a catalog record code such as NM or CD.
	FieldCommand = "command"
	// FieldLoadID correlates every line emitted by one library load.
	FieldLoadID = "load_id"
	// FieldImpact is the user-facing consequence of a warning.
	FieldImpact = "impact"
)

type loadIDKey struct{}

// WithLoadID returns a context carrying the load correlation identifier.
func WithLoadID(ctx context.Context, id string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, loadIDKey{}, id)
}

// LoadIDFromContext returns the load correlation identifier, if any.
func LoadIDFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	id, ok := ctx.Value(loadIDKey{}).(string)
	return id, ok && id != ""
}

// ContextFields extracts standardized slog attributes from the provided context.
func ContextFields(ctx context.Context) []slog.Attr {
	if ctx == nil {
		return nil
	}
	var fields []slog.Attr
	if id, ok := LoadIDFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldLoadID, id))
	}
	return fields
}

// WithContext returns a logger augmented with structured fields derived from the supplied context.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	fields := ContextFields(ctx)
	if len(fields) == 0 {
		return logger
	}
	return logger.With(Args(fields...)...)
}
