package biz

import (
	"context"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/fx"

	"github.com/SyedFrazAli/geoscope/internal/objects"
	"github.com/SyedFrazAli/geoscope/internal/server/db"
)

type ProductServiceParams struct {
	fx.In

	Products *db.ProductStore
}

func NewProductService(params ProductServiceParams) *ProductService {
	return &ProductService{
		products: params.Products,
		names:    gocache.New(5*time.Minute, 10*time.Minute),
	}
}

// ProductService reads the catalog. Display names are cached in-process
// since the catalog is immutable reference data.
type ProductService struct {
	products *db.ProductStore
	names    *gocache.Cache
}

// List returns the full catalog.
func (s *ProductService) List(ctx context.Context) ([]*objects.Product, error) {
	return s.products.List(ctx)
}

// NamesByIDs resolves display names for the given product ids, hitting the
// store once for whatever the cache is missing. Unknown ids stay absent.
func (s *ProductService) NamesByIDs(ctx context.Context, ids []int) (map[int]string, error) {
	names := make(map[int]string, len(ids))

	var missing []int

	for _, id := range ids {
		if cached, ok := s.names.Get(nameCacheKey(id)); ok {
			names[id] = cached.(string)
		} else {
			missing = append(missing, id)
		}
	}

	if len(missing) == 0 {
		return names, nil
	}

	resolved, err := s.products.NamesByIDs(ctx, missing)
	if err != nil {
		return nil, err
	}

	for id, name := range resolved {
		names[id] = name
		s.names.Set(nameCacheKey(id), name, gocache.DefaultExpiration)
	}

	return names, nil
}

func nameCacheKey(id int) string {
	return fmt.Sprintf("product-name:%d", id)
}
