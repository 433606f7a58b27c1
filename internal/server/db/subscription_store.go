package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/SyedFrazAli/geoscope/internal/objects"
)

// SubscriptionStore persists (user, product) entitlement grants. Grants are
// independent, commutative rows; duplicates are allowed and harmless.
type SubscriptionStore struct {
	client *Client
}

func NewSubscriptionStore(client *Client) *SubscriptionStore {
	return &SubscriptionStore{client: client}
}

// Grant inserts a new subscription row. It always succeeds.
func (s *SubscriptionStore) Grant(ctx context.Context, userID string, productID int) (*objects.Subscription, error) {
	createdAt := time.Now().UTC()

	res, err := s.client.db.ExecContext(ctx,
		`INSERT INTO subscriptions (user_id, product_id, created_at) VALUES (?, ?, ?)`,
		userID, productID, formatTime(createdAt))
	if err != nil {
		return nil, fmt.Errorf("failed to insert subscription: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read inserted subscription id: %w", err)
	}

	return &objects.Subscription{
		ID:        int(id),
		UserID:    userID,
		ProductID: productID,
		CreatedAt: &createdAt,
	}, nil
}

// Revoke removes one grant matching both user and product exactly. Returns
// ErrNotFound if no such grant exists.
func (s *SubscriptionStore) Revoke(ctx context.Context, userID string, productID int) error {
	res, err := s.client.db.ExecContext(ctx,
		`DELETE FROM subscriptions WHERE id IN (
			SELECT id FROM subscriptions WHERE user_id = ? AND product_id = ? LIMIT 1
		)`, userID, productID)
	if err != nil {
		return fmt.Errorf("failed to delete subscription: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result for subscription: %w", err)
	}

	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

// List returns every grant.
func (s *SubscriptionStore) List(ctx context.Context) ([]*objects.Subscription, error) {
	rows, err := s.client.db.QueryContext(ctx,
		`SELECT id, user_id, product_id, created_at FROM subscriptions ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}

	return collectSubscriptions(rows)
}

// ListForUser returns the user's direct grants. The all-access rule is not
// expanded here; that is the access policy's job.
func (s *SubscriptionStore) ListForUser(ctx context.Context, userID string) ([]*objects.Subscription, error) {
	rows, err := s.client.db.QueryContext(ctx,
		`SELECT id, user_id, product_id, created_at FROM subscriptions WHERE user_id = ? ORDER BY id ASC`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list subscriptions for user: %w", err)
	}

	return collectSubscriptions(rows)
}

// ProductIDsForUser returns the distinct product ids the user is directly
// entitled to.
func (s *SubscriptionStore) ProductIDsForUser(ctx context.Context, userID string) ([]int, error) {
	rows, err := s.client.db.QueryContext(ctx,
		`SELECT DISTINCT product_id FROM subscriptions WHERE user_id = ?`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list product ids for user: %w", err)
	}
	defer rows.Close()

	var ids []int

	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan product id: %w", err)
		}

		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate product ids: %w", err)
	}

	return ids, nil
}

func collectSubscriptions(rows *sql.Rows) ([]*objects.Subscription, error) {
	defer rows.Close()

	var subs []*objects.Subscription

	for rows.Next() {
		var (
			sub       objects.Subscription
			createdAt sql.NullString
		)

		if err := rows.Scan(&sub.ID, &sub.UserID, &sub.ProductID, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan subscription: %w", err)
		}

		if createdAt.Valid {
			t, err := parseTime(createdAt.String)
			if err != nil {
				return nil, fmt.Errorf("failed to parse subscription created_at %q: %w", createdAt.String, err)
			}

			sub.CreatedAt = &t
		}

		subs = append(subs, &sub)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate subscriptions: %w", err)
	}

	return subs, nil
}
