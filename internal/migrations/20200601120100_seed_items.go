package migrations

import (
	"context"
	"fmt"

	"ecoleta/internal/models"

	"github.com/uptrace/bun"
)

// SeedItems is the reference catalogue of recyclable categories.
var SeedItems = []models.Item{
	{Title: "Lâmpadas", Image: "lampadas.svg"},
	{Title: "Pilhas e Baterias", Image: "baterias.svg"},
	{Title: "Papéis e Papelão", Image: "papeis-papelao.svg"},
	{Title: "Resíduos Eletrônicos", Image: "eletronicos.svg"},
	{Title: "Resíduos Orgânicos", Image: "organicos.svg"},
	{Title: "Óleo de Cozinha", Image: "oleo.svg"},
}

// SeedCatalogue inserts the SeedItems whose title is not present yet and
// reports how many it added. Running it again is a no-op.
func SeedCatalogue(ctx context.Context, db *bun.DB) (int, error) {
	var added int
	err := db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		var existing []string
		if err := tx.NewSelect().
			Model((*models.Item)(nil)).
			Column("title").
			Scan(ctx, &existing); err != nil {
			return fmt.Errorf("load item titles: %w", err)
		}

		have := make(map[string]struct{}, len(existing))
		for _, title := range existing {
			have[title] = struct{}{}
		}

		var missing []models.Item
		for _, item := range SeedItems {
			if _, ok := have[item.Title]; !ok {
				missing = append(missing, item)
			}
		}
		if len(missing) == 0 {
			return nil
		}

		if _, err := tx.NewInsert().Model(&missing).Exec(ctx); err != nil {
			return fmt.Errorf("insert items: %w", err)
		}
		added = len(missing)
		return nil
	})
	return added, err
}

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		_, err := SeedCatalogue(ctx, db)
		return err
	}, func(ctx context.Context, db *bun.DB) error {
		titles := make([]string, len(SeedItems))
		for i, item := range SeedItems {
			titles[i] = item.Title
		}

		_, err := db.NewDelete().
			Model((*models.Item)(nil)).
			Where("title IN (?)", bun.In(titles)).
			Exec(ctx)
		return err
	})
}
