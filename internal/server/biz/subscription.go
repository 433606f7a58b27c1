package biz

import (
	"context"
	"fmt"

	"go.uber.org/fx"

	"github.com/SyedFrazAli/geoscope/internal/objects"
	"github.com/SyedFrazAli/geoscope/internal/server/db"
)

type SubscriptionServiceParams struct {
	fx.In

	Subscriptions *db.SubscriptionStore
}

func NewSubscriptionService(params SubscriptionServiceParams) *SubscriptionService {
	return &SubscriptionService{
		subscriptions: params.Subscriptions,
	}
}

// SubscriptionService manages entitlement grants.
type SubscriptionService struct {
	subscriptions *db.SubscriptionStore
}

// Grant adds a (user, product) entitlement. Duplicate grants are harmless
// no-ops in effect, so no uniqueness is enforced.
func (s *SubscriptionService) Grant(ctx context.Context, userID string, productID int) (*objects.Subscription, error) {
	if userID == "" {
		return nil, fmt.Errorf("user_id is required: %w", ErrValidation)
	}

	if productID < 1 {
		return nil, fmt.Errorf("product_id must be a positive integer: %w", ErrValidation)
	}

	return s.subscriptions.Grant(ctx, userID, productID)
}

// Revoke removes a grant matching both user and product exactly. Returns
// db.ErrNotFound when no such grant exists.
func (s *SubscriptionService) Revoke(ctx context.Context, userID string, productID int) error {
	if userID == "" {
		return fmt.Errorf("user_id is required: %w", ErrValidation)
	}

	if productID < 1 {
		return fmt.Errorf("product_id must be a positive integer: %w", ErrValidation)
	}

	return s.subscriptions.Revoke(ctx, userID, productID)
}

// List returns every grant, or only the given user's when userID is
// non-empty.
func (s *SubscriptionService) List(ctx context.Context, userID string) ([]*objects.Subscription, error) {
	if userID != "" {
		return s.subscriptions.ListForUser(ctx, userID)
	}

	return s.subscriptions.List(ctx)
}
