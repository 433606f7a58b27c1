package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/SyedFrazAli/geoscope/internal/objects"
)

// ProductStore reads the immutable product catalog.
type ProductStore struct {
	client *Client
}

func NewProductStore(client *Client) *ProductStore {
	return &ProductStore{client: client}
}

// List returns the full catalog.
func (s *ProductStore) List(ctx context.Context) ([]*objects.Product, error) {
	rows, err := s.client.db.QueryContext(ctx,
		`SELECT id, name, description, price FROM products ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	var products []*objects.Product

	for rows.Next() {
		var p objects.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Price); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}

		products = append(products, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate products: %w", err)
	}

	return products, nil
}

// NamesByIDs returns the display names for the given product ids in one
// query. Unknown ids are simply absent from the result.
func (s *ProductStore) NamesByIDs(ctx context.Context, ids []int) (map[int]string, error) {
	if len(ids) == 0 {
		return map[int]string{}, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(ids)), ", ")
	args := lo.Map(ids, func(id int, _ int) any { return id })

	rows, err := s.client.db.QueryContext(ctx,
		`SELECT id, name FROM products WHERE id IN (`+placeholders+`)`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query product names: %w", err)
	}
	defer rows.Close()

	names := make(map[int]string, len(ids))

	for rows.Next() {
		var (
			id   int
			name string
		)

		if err := rows.Scan(&id, &name); err != nil {
			return nil, fmt.Errorf("failed to scan product name: %w", err)
		}

		names[id] = name
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate product names: %w", err)
	}

	return names, nil
}
