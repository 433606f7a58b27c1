package contexts

import (
	"context"
)

// WithUserID stores the authenticated caller identity in the context.
func WithUserID(ctx context.Context, userID string) context.Context {
	container := getContainer(ctx)
	container.mu.Lock()
	container.UserID = &userID
	container.mu.Unlock()

	return withContainer(ctx, container)
}

// GetUserID retrieves the authenticated caller identity from the context.
func GetUserID(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}

	container := getContainer(ctx)
	container.mu.RLock()
	defer container.mu.RUnlock()

	if container.UserID == nil {
		return "", false
	}

	return *container.UserID, true
}
