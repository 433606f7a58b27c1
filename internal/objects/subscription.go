package objects

import (
	"time"
)

// Subscription is a (user, product) entitlement grant. Existence means
// active; there is no expiry.
type Subscription struct {
	ID        int        `json:"id"`
	UserID    string     `json:"user_id"`
	ProductID int        `json:"product_id"`
	CreatedAt *time.Time `json:"created_at"`
}
