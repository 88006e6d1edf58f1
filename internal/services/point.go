package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"ecoleta/internal/models"
	"ecoleta/internal/repository"
	"ecoleta/internal/serializer"
	"ecoleta/internal/storage"

	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// ImageStore keeps uploaded point photos.
type ImageStore interface {
	Put(ctx context.Context, up storage.Upload) (string, error)
	Remove(ctx context.Context, filename string) error
}

// PointService handles point registration and lookup.
type PointService struct {
	db         *bun.DB
	points     *repository.PointRepository
	images     ImageStore
	serializer *serializer.Serializer
	logr       *zap.Logger
}

func NewPointService(db *bun.DB, images ImageStore, ser *serializer.Serializer, logr *zap.Logger) *PointService {
	return &PointService{
		db:         db,
		points:     repository.NewPointRepository(db),
		images:     images,
		serializer: ser,
		logr:       logr,
	}
}

// ListPoints returns the points in city/state accepting any of the items in
// itemsCSV. Unparseable item tokens are ignored.
func (s *PointService) ListPoints(ctx context.Context, city, state, itemsCSV string) ([]models.PointView, error) {
	filter := models.PointFilter{
		City:    city,
		State:   state,
		ItemIDs: ParseItemFilter(itemsCSV),
	}

	points, err := s.points.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	return s.serializer.Points(points), nil
}

// GetPoint returns the point with its item titles, or ErrPointNotFound.
func (s *PointService) GetPoint(ctx context.Context, id int64) (*models.PointDetail, error) {
	point, err := s.points.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	titles, err := s.points.ItemTitles(ctx, id)
	if err != nil {
		return nil, err
	}

	return &models.PointDetail{
		Point: s.serializer.Point(*point),
		Items: titles,
	}, nil
}

// CreatePoint registers a point whose image is already stored as imageFilename.
// The point and its item links are written in one transaction.
func (s *PointService) CreatePoint(ctx context.Context, in CreatePointInput, imageFilename string) (*models.Point, error) {
	if strings.TrimSpace(imageFilename) == "" {
		return nil, invalid("image", "is required")
	}

	point, itemIDs, err := in.parse()
	if err != nil {
		return nil, err
	}
	point.Image = imageFilename

	if err := s.insert(ctx, point, itemIDs); err != nil {
		return nil, err
	}
	return point, nil
}

// RegisterPoint validates the request, stores the uploaded image and creates
// the point. The image is removed again if the insert fails.
func (s *PointService) RegisterPoint(ctx context.Context, in CreatePointInput, img *storage.Upload) (*models.Point, error) {
	if img == nil {
		return nil, invalid("image", "is required")
	}

	point, itemIDs, err := in.parse()
	if err != nil {
		return nil, err
	}

	filename, err := s.images.Put(ctx, *img)
	if err != nil {
		if errors.Is(err, storage.ErrUnsupportedType) ||
			errors.Is(err, storage.ErrFileTooLarge) ||
			errors.Is(err, storage.ErrEmptyFile) {
			return nil, invalid("image", "%v", err)
		}
		return nil, fmt.Errorf("%w: store image: %w", ErrPersistence, err)
	}
	point.Image = filename

	if err := s.insert(ctx, point, itemIDs); err != nil {
		if rmErr := s.images.Remove(context.WithoutCancel(ctx), filename); rmErr != nil {
			s.logr.Warn("failed to remove orphaned image", zap.String("image", filename), zap.Error(rmErr))
		}
		return nil, err
	}
	return point, nil
}

func (s *PointService) insert(ctx context.Context, point *models.Point, itemIDs []int64) error {
	err := s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		return s.points.Create(ctx, tx, point, itemIDs)
	})
	if err != nil {
		point.ID = 0
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	s.logr.Info("point created",
		zap.Int64("id", point.ID),
		zap.String("city", point.City),
		zap.String("state", point.State),
		zap.Int64s("items", itemIDs))
	return nil
}
