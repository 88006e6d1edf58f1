package migrations

import (
	"context"

	"ecoleta/internal/models"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.NewCreateTable().
				Model((*models.Point)(nil)).
				IfNotExists().
				Exec(ctx); err != nil {
				return err
			}

			if _, err := tx.NewCreateTable().
				Model((*models.Item)(nil)).
				IfNotExists().
				Exec(ctx); err != nil {
				return err
			}

			if _, err := tx.NewCreateTable().
				Model((*models.PointItem)(nil)).
				IfNotExists().
				ForeignKey(`("point_id") REFERENCES "points" ("id") ON DELETE CASCADE`).
				ForeignKey(`("item_id") REFERENCES "items" ("id") ON DELETE CASCADE`).
				Exec(ctx); err != nil {
				return err
			}

			_, err := tx.ExecContext(ctx,
				"CREATE INDEX IF NOT EXISTS points_city_state_idx ON points (city, state)")
			return err
		})
	}, func(ctx context.Context, db *bun.DB) error {
		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			for _, model := range []interface{}{
				(*models.PointItem)(nil),
				(*models.Item)(nil),
				(*models.Point)(nil),
			} {
				if _, err := tx.NewDropTable().Model(model).IfExists().Exec(ctx); err != nil {
					return err
				}
			}
			return nil
		})
	})
}
