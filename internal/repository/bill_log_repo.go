package repository

import (
	"context"

	"github.com/tamilselvan8428/rajasnacksBilling/internal/infra"
	"github.com/tamilselvan8428/rajasnacksBilling/internal/model"

	"github.com/google/uuid"
)

// BillLogRepository is the append-only log of saved bills.
type BillLogRepository interface {
	List(ctx context.Context) ([]model.BillSnapshot, error)
	Append(ctx context.Context, s model.BillSnapshot) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.BillSnapshot, error)
}

type billLogRepository struct{ store infra.DocumentStore }

func NewBillLogRepository(store infra.DocumentStore) BillLogRepository {
	return &billLogRepository{store: store}
}

// List returns snapshots oldest first.
func (r *billLogRepository) List(ctx context.Context) ([]model.BillSnapshot, error) {
	list := []model.BillSnapshot{}
	if err := readDocument(ctx, r.store, BillsKey, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (r *billLogRepository) Append(ctx context.Context, s model.BillSnapshot) error {
	list, err := r.List(ctx)
	if err != nil {
		return err
	}
	return writeDocument(ctx, r.store, BillsKey, append(list, s))
}

func (r *billLogRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.BillSnapshot, error) {
	list, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range list {
		if list[i].ID == id {
			return &list[i], nil
		}
	}
	return nil, model.NewNotFoundError("bill", id)
}
