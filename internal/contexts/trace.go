package contexts

import (
	"context"
)

// WithTraceID stores the trace id in the context.
func WithTraceID(ctx context.Context, traceID string) context.Context {
	container := getContainer(ctx)
	container.mu.Lock()
	container.TraceID = &traceID
	container.mu.Unlock()

	return withContainer(ctx, container)
}

// GetTraceID retrieves the trace id from the context.
func GetTraceID(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}

	container := getContainer(ctx)
	container.mu.RLock()
	defer container.mu.RUnlock()

	if container.TraceID == nil {
		return "", false
	}

	return *container.TraceID, true
}

// WithOperationName stores the logical operation name in the context.
func WithOperationName(ctx context.Context, name string) context.Context {
	container := getContainer(ctx)
	container.mu.Lock()
	container.OperationName = &name
	container.mu.Unlock()

	return withContainer(ctx, container)
}

// GetOperationName retrieves the logical operation name from the context.
func GetOperationName(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}

	container := getContainer(ctx)
	container.mu.RLock()
	defer container.mu.RUnlock()

	if container.OperationName == nil {
		return "", false
	}

	return *container.OperationName, true
}

// AddError records an error in the context for access logging.
func AddError(ctx context.Context, err error) context.Context {
	container := getContainer(ctx)
	container.mu.Lock()
	container.Errors = append(container.Errors, err)
	container.mu.Unlock()

	return withContainer(ctx, container)
}

// GetErrors returns all errors recorded in the context.
func GetErrors(ctx context.Context) []error {
	if ctx == nil {
		return nil
	}

	container := getContainer(ctx)
	container.mu.RLock()
	defer container.mu.RUnlock()

	return container.Errors
}
