package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"ecoleta/internal/models"

	"github.com/uptrace/bun"
)

// ErrPointNotFound is returned when no point has the requested id.
var ErrPointNotFound = errors.New("point not found")

// PointRepository reads and writes points and their item associations.
type PointRepository struct {
	db *bun.DB
}

func NewPointRepository(db *bun.DB) *PointRepository {
	return &PointRepository{db: db}
}

// List returns the distinct points in the given city and state that accept
// at least one of the filter's items. An empty item set matches nothing.
func (r *PointRepository) List(ctx context.Context, filter models.PointFilter) ([]models.Point, error) {
	points := make([]models.Point, 0)
	if len(filter.ItemIDs) == 0 {
		return points, nil
	}

	err := r.db.NewSelect().
		Model(&points).
		Distinct().
		Join("JOIN point_items AS pi ON pi.point_id = p.id").
		Where("pi.item_id IN (?)", bun.In(filter.ItemIDs)).
		Where("p.city = ?", filter.City).
		Where("p.state = ?", filter.State).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("list points: %w", err)
	}

	return points, nil
}

// Get fetches a single point by id.
func (r *PointRepository) Get(ctx context.Context, id int64) (*models.Point, error) {
	point := new(models.Point)
	err := r.db.NewSelect().
		Model(point).
		Where("p.id = ?", id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPointNotFound
		}
		return nil, fmt.Errorf("get point %d: %w", id, err)
	}

	return point, nil
}

// ItemTitles returns the titles of all items the point accepts.
func (r *PointRepository) ItemTitles(ctx context.Context, pointID int64) ([]models.ItemTitle, error) {
	titles := make([]models.ItemTitle, 0)
	err := r.db.NewSelect().
		ColumnExpr("i.title").
		TableExpr("items AS i").
		Join("JOIN point_items AS pi ON i.id = pi.item_id").
		Where("pi.point_id = ?", pointID).
		Scan(ctx, &titles)
	if err != nil {
		return nil, fmt.Errorf("item titles for point %d: %w", pointID, err)
	}

	return titles, nil
}

// Create inserts the point and one association per item id through tx.
// The caller owns the transaction; on error nothing here is committed.
func (r *PointRepository) Create(ctx context.Context, tx bun.IDB, point *models.Point, itemIDs []int64) error {
	if _, err := tx.NewInsert().
		Model(point).
		Returning("id").
		Exec(ctx); err != nil {
		return fmt.Errorf("insert point: %w", err)
	}

	if len(itemIDs) == 0 {
		return nil
	}

	links := make([]models.PointItem, len(itemIDs))
	for i, itemID := range itemIDs {
		links[i] = models.PointItem{PointID: point.ID, ItemID: itemID}
	}

	if _, err := tx.NewInsert().Model(&links).Exec(ctx); err != nil {
		return fmt.Errorf("insert point items: %w", err)
	}

	return nil
}
