//go:build integration

package services

import (
	"context"
	"testing"

	"ecoleta/internal/config"
	"ecoleta/internal/database"
	"ecoleta/internal/migrations"
	"ecoleta/internal/serializer"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

func newPostgres(t *testing.T) *bun.DB {
	t.Helper()
	ctx := context.Background()

	ctr, err := postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase("ecoleta"),
		postgres.WithUsername("ecoleta"),
		postgres.WithPassword("ecoleta"),
		postgres.BasicWaitStrategies(),
	)
	testcontainers.CleanupContainer(t, ctr)
	require.NoError(t, err)

	dsn, err := ctr.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := database.New(dsn, &config.Config{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = migrations.Up(ctx, db)
	require.NoError(t, err)
	return db
}

func TestPostgresPointLifecycle(t *testing.T) {
	db := newPostgres(t)
	s := NewPointService(db, newMemImages(), serializer.New(baseURL), zap.NewNop())
	ctx := context.Background()

	in := validInput()
	in.Items = "1,999"
	_, err := s.CreatePoint(ctx, in, "orphan.jpg")
	require.ErrorIs(t, err, ErrPersistence)

	n, err := db.NewSelect().TableExpr("points").Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	p := create(t, s, "e2e", "Lisbon", "Lisbon", "1,3")

	views, err := s.ListPoints(ctx, "Lisbon", "Lisbon", "1,3")
	require.NoError(t, err)
	assert.Equal(t, []int64{p.ID}, pointIDs(views))

	views, err = s.ListPoints(ctx, "Lisbon", "Lisbon", "2")
	require.NoError(t, err)
	assert.Empty(t, views)

	detail, err := s.GetPoint(ctx, p.ID)
	require.NoError(t, err)
	assert.Len(t, detail.Items, 2)
	assert.Equal(t, baseURL+"/uploads/e2e.jpg", detail.Point.ImageURL)
}
