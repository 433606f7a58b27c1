package log

import (
	"context"

	"github.com/SyedFrazAli/geoscope/internal/tracing"
)

// Hook derives extra fields from the context for every log entry.
type Hook interface {
	Apply(ctx context.Context, message string) []Field
}

// HookFunc adapts a function to the Hook interface.
type HookFunc func(ctx context.Context, message string) []Field

func (f HookFunc) Apply(ctx context.Context, message string) []Field {
	return f(ctx, message)
}

// traceFields attaches the trace id and operation name from the context, when present.
func traceFields(ctx context.Context, _ string) []Field {
	var fields []Field

	if traceID, ok := tracing.GetTraceID(ctx); ok {
		fields = append(fields, String("trace_id", traceID))
	}

	if name, ok := tracing.GetOperationName(ctx); ok {
		fields = append(fields, String("operation_name", name))
	}

	return fields
}

var defaultHooks = []Hook{HookFunc(traceFields)}
