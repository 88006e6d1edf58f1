package main

import (
	"testing"

	"ecoleta/internal/migrations"

	"github.com/stretchr/testify/assert"
	"github.com/uptrace/bun/migrate"
)

func TestRootCommandHasSubcommands(t *testing.T) {
	cmd := newRootCmd()

	var names []string
	for _, c := range cmd.Commands() {
		names = append(names, c.Name())
	}
	assert.Subset(t, names, []string{"up", "down", "status", "seed"})
	assert.NotNil(t, cmd.PersistentFlags().Lookup("dsn"))
}

func TestFormatStatus(t *testing.T) {
	all := migrations.Migrations.Sorted()
	assert.Len(t, all, 2)

	out := formatStatus(migrate.MigrationSlice{}, all)
	assert.Contains(t, out, "applied: empty")
	assert.Contains(t, out, "20200601120000_create_points")
}
