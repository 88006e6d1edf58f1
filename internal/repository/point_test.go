package repository_test

import (
	"context"
	"testing"

	"ecoleta/internal/models"
	"ecoleta/internal/repository"
	"ecoleta/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
)

func newPoint(name, city, state string) *models.Point {
	return &models.Point{
		Image:     name + ".jpg",
		Name:      name,
		Email:     name + "@example.org",
		Whatsapp:  "351910000000",
		Latitude:  38.7223,
		Longitude: -9.1393,
		City:      city,
		State:     state,
	}
}

func seedPoint(t *testing.T, db *bun.DB, repo *repository.PointRepository, p *models.Point, itemIDs ...int64) *models.Point {
	t.Helper()

	err := db.RunInTx(context.Background(), nil, func(ctx context.Context, tx bun.Tx) error {
		return repo.Create(ctx, tx, p, itemIDs)
	})
	require.NoError(t, err)
	require.NotZero(t, p.ID)
	return p
}

func ids(points []models.Point) []int64 {
	out := make([]int64, len(points))
	for i, p := range points {
		out[i] = p.ID
	}
	return out
}

func TestPointRepositoryCreateAssignsID(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repository.NewPointRepository(db)

	first := seedPoint(t, db, repo, newPoint("first", "Lisbon", "Lisbon"), 1, 2)
	second := seedPoint(t, db, repo, newPoint("second", "Lisbon", "Lisbon"), 3)

	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, 2, testutil.CountRows(t, db, "points"))
	assert.Equal(t, 3, testutil.CountRows(t, db, "point_items"))
}

func TestPointRepositoryCreateRollsBackOnBadItem(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repository.NewPointRepository(db)

	err := db.RunInTx(context.Background(), nil, func(ctx context.Context, tx bun.Tx) error {
		return repo.Create(ctx, tx, newPoint("orphan", "Lisbon", "Lisbon"), []int64{1, 999})
	})
	require.Error(t, err)

	assert.Zero(t, testutil.CountRows(t, db, "points"))
	assert.Zero(t, testutil.CountRows(t, db, "point_items"))
}

func TestPointRepositoryCreateRejectsDuplicateItems(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repository.NewPointRepository(db)

	err := db.RunInTx(context.Background(), nil, func(ctx context.Context, tx bun.Tx) error {
		return repo.Create(ctx, tx, newPoint("dup", "Lisbon", "Lisbon"), []int64{1, 1})
	})
	require.Error(t, err, "the composite key forbids the same item twice")
	assert.Zero(t, testutil.CountRows(t, db, "points"))
}

func TestPointRepositoryListIsDistinct(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repository.NewPointRepository(db)
	p := seedPoint(t, db, repo, newPoint("multi", "Lisbon", "Lisbon"), 1, 2)

	points, err := repo.List(context.Background(), models.PointFilter{
		City: "Lisbon", State: "Lisbon", ItemIDs: []int64{1, 2},
	})
	require.NoError(t, err)
	assert.Equal(t, []int64{p.ID}, ids(points))
}

func TestPointRepositoryListFilterConjunction(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repository.NewPointRepository(db)

	lisbon := seedPoint(t, db, repo, newPoint("lisbon", "Lisbon", "Lisbon"), 1)
	seedPoint(t, db, repo, newPoint("porto", "Porto", "Lisbon"), 1)
	seedPoint(t, db, repo, newPoint("other-state", "Lisbon", "Setubal"), 1)
	seedPoint(t, db, repo, newPoint("other-item", "Lisbon", "Lisbon"), 4)

	tests := []struct {
		name   string
		filter models.PointFilter
		want   []int64
	}{
		{"all conditions", models.PointFilter{City: "Lisbon", State: "Lisbon", ItemIDs: []int64{1}}, []int64{lisbon.ID}},
		{"case sensitive city", models.PointFilter{City: "lisbon", State: "Lisbon", ItemIDs: []int64{1}}, []int64{}},
		{"no matching item", models.PointFilter{City: "Porto", State: "Lisbon", ItemIDs: []int64{2}}, []int64{}},
		{"empty item set", models.PointFilter{City: "Lisbon", State: "Lisbon"}, []int64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			points, err := repo.List(context.Background(), tt.filter)
			require.NoError(t, err)
			require.NotNil(t, points)
			assert.ElementsMatch(t, tt.want, ids(points))
		})
	}
}

func TestPointRepositoryGet(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repository.NewPointRepository(db)
	want := seedPoint(t, db, repo, newPoint("get", "Lisbon", "Lisbon"), 1, 3)

	got, err := repo.Get(context.Background(), want.ID)
	require.NoError(t, err)
	assert.Equal(t, want.Name, got.Name)
	assert.Equal(t, want.Image, got.Image)
	assert.InDelta(t, want.Latitude, got.Latitude, 1e-9)

	_, err = repo.Get(context.Background(), want.ID+100)
	assert.ErrorIs(t, err, repository.ErrPointNotFound)
}

func TestPointRepositoryItemTitles(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repository.NewPointRepository(db)
	p := seedPoint(t, db, repo, newPoint("titles", "Lisbon", "Lisbon"), 1, 3)

	titles, err := repo.ItemTitles(context.Background(), p.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []models.ItemTitle{{Title: "Lâmpadas"}, {Title: "Papéis e Papelão"}}, titles)

	none, err := repo.ItemTitles(context.Background(), p.ID+1)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestItemRepositoryList(t *testing.T) {
	db := testutil.NewDB(t)

	items, err := repository.NewItemRepository(db).List(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 6)
	assert.Equal(t, "Lâmpadas", items[0].Title)
	assert.Equal(t, "oleo.svg", items[5].Image)
}
