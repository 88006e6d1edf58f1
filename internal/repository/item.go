package repository

import (
	"context"
	"fmt"

	"ecoleta/internal/models"

	"github.com/uptrace/bun"
)

type ItemRepository struct {
	db *bun.DB
}

func NewItemRepository(db *bun.DB) *ItemRepository {
	return &ItemRepository{db: db}
}

// List returns every item ordered by id.
func (r *ItemRepository) List(ctx context.Context) ([]models.Item, error) {
	items := make([]models.Item, 0)
	err := r.db.NewSelect().
		Model(&items).
		OrderExpr("i.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}

	return items, nil
}
