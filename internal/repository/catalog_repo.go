package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tamilselvan8428/rajasnacksBilling/internal/infra"
	"github.com/tamilselvan8428/rajasnacksBilling/internal/model"
)

// Document keys.
const (
	CatalogKey = "catalog"
	BillsKey   = "bills"
)

// CatalogRepository loads and replaces the product catalog as one document.
type CatalogRepository interface {
	Load(ctx context.Context) ([]model.Product, error)
	Save(ctx context.Context, products []model.Product) error
}

type catalogRepository struct{ store infra.DocumentStore }

func NewCatalogRepository(store infra.DocumentStore) CatalogRepository {
	return &catalogRepository{store: store}
}

// Load returns an empty, non-nil slice when nothing has been saved yet.
func (r *catalogRepository) Load(ctx context.Context) ([]model.Product, error) {
	products := []model.Product{}
	if err := readDocument(ctx, r.store, CatalogKey, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *catalogRepository) Save(ctx context.Context, products []model.Product) error {
	if products == nil {
		products = []model.Product{}
	}
	return writeDocument(ctx, r.store, CatalogKey, products)
}

func readDocument(ctx context.Context, store infra.DocumentStore, key string, dest any) error {
	raw, err := store.Read(ctx, key)
	if errors.Is(err, infra.ErrDocumentNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("%s: read: %w", key, err)
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("%s: decode: %w", key, err)
	}
	return nil
}

func writeDocument(ctx context.Context, store infra.DocumentStore, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("%s: encode: %w", key, err)
	}
	if err := store.Write(ctx, key, raw); err != nil {
		return fmt.Errorf("%s: write: %w", key, err)
	}
	return nil
}
