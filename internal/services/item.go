package services

import (
	"context"

	"ecoleta/internal/models"
	"ecoleta/internal/repository"
	"ecoleta/internal/serializer"

	"github.com/uptrace/bun"
)

type ItemService struct {
	items      *repository.ItemRepository
	serializer *serializer.Serializer
}

func NewItemService(db *bun.DB, ser *serializer.Serializer) *ItemService {
	return &ItemService{items: repository.NewItemRepository(db), serializer: ser}
}

// ListItems returns the item catalogue with image URLs.
func (s *ItemService) ListItems(ctx context.Context) ([]models.ItemView, error) {
	items, err := s.items.List(ctx)
	if err != nil {
		return nil, err
	}
	return s.serializer.Items(items), nil
}
