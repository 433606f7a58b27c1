package biz

import (
	"context"

	"github.com/samber/lo"

	"github.com/SyedFrazAli/geoscope/internal/server/db"
)

// DefaultUniversalProductID is the catalog id of the "Pro Plan (All Access)"
// product. Holding a grant to it unlocks every product's observations.
const DefaultUniversalProductID = 5

type AccessConfig struct {
	// UniversalProductID overrides the all-access sentinel product id.
	UniversalProductID int `conf:"universal_product_id" yaml:"universal_product_id" json:"universal_product_id"`
}

// ProductFilter describes which products' observations a caller may list.
type ProductFilter struct {
	// All short-circuits the subset check; holders of the universal grant
	// see everything.
	All bool

	// IDs is the visible subset when All is false. Empty means no access,
	// which listings must render as an empty result, not an error.
	IDs []int
}

// Empty reports whether the caller may see no products at all.
func (f ProductFilter) Empty() bool {
	return !f.All && len(f.IDs) == 0
}

// AccessPolicy decides observation visibility from subscription grants. The
// rule set is fixed; the only parameter is the universal product id.
type AccessPolicy struct {
	universalProductID int
	subscriptions      *db.SubscriptionStore
}

func NewAccessPolicy(cfg AccessConfig, subscriptions *db.SubscriptionStore) *AccessPolicy {
	universal := cfg.UniversalProductID
	if universal == 0 {
		universal = DefaultUniversalProductID
	}

	return &AccessPolicy{
		universalProductID: universal,
		subscriptions:      subscriptions,
	}
}

// UniversalProductID returns the all-access sentinel product id.
func (p *AccessPolicy) UniversalProductID() int {
	return p.universalProductID
}

// CanView reports whether the user may read an observation owned by the given
// product. A nil product id means the observation is unowned and visible to
// everyone.
func (p *AccessPolicy) CanView(ctx context.Context, userID string, productID *int) (bool, error) {
	if productID == nil {
		return true, nil
	}

	grants, err := p.subscriptions.ProductIDsForUser(ctx, userID)
	if err != nil {
		return false, err
	}

	return lo.Contains(grants, *productID) || lo.Contains(grants, p.universalProductID), nil
}

// VisibleProducts computes the caller's bulk visibility filter once per
// request, so listings never do a per-record entitlement lookup.
func (p *AccessPolicy) VisibleProducts(ctx context.Context, userID string) (ProductFilter, error) {
	grants, err := p.subscriptions.ProductIDsForUser(ctx, userID)
	if err != nil {
		return ProductFilter{}, err
	}

	if lo.Contains(grants, p.universalProductID) {
		return ProductFilter{All: true}, nil
	}

	return ProductFilter{IDs: grants}, nil
}
