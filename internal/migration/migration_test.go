package migration

import (
	"io/fs"
	"testing"

	"github.com/smallbiznis/landedcost/pkg/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedMigrationsArePaired(t *testing.T) {
	entries, err := fs.ReadDir(embeddedMigrations, migrationsDir)
	require.NoError(t, err)

	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.Contains(t, names, "000001_init.up.sql")
	assert.Contains(t, names, "000001_init.down.sql")
}

func TestRunAutoMigratesSQLite(t *testing.T) {
	conn, err := db.NewTest()
	require.NoError(t, err)

	require.NoError(t, Run(conn))
	// idempotent
	require.NoError(t, Run(conn))

	for _, table := range []string{"users", "sessions", "duty_categories", "products"} {
		assert.True(t, conn.Migrator().HasTable(table), table)
	}
}

func TestRunRejectsNilHandle(t *testing.T) {
	assert.Error(t, Run(nil))
	assert.Error(t, RunMigrations(nil))
}
