package migrations

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMigrations(t *testing.T) {
	migrations, err := LoadMigrations()
	require.NoError(t, err)
	require.Len(t, migrations, 3)

	for i, m := range migrations {
		assert.Equal(t, i+1, m.Version)
		assert.NotEmpty(t, m.Up, "migration %d missing up script", m.Version)
		assert.NotEmpty(t, m.Down, "migration %d missing down script", m.Version)
	}
}

func TestRunMigrationsIsIdempotent(t *testing.T) {
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	defer db.Close()

	migrations, err := LoadMigrations()
	require.NoError(t, err)

	require.NoError(t, RunMigrations(db, migrations))
	require.NoError(t, RunMigrations(db, migrations))

	var applied int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM migrations").Scan(&applied))
	assert.Equal(t, len(migrations), applied)

	var categories int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM categories").Scan(&categories))
	assert.Equal(t, 10, categories)
}

func TestRollbackMigrations(t *testing.T) {
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	defer db.Close()

	migrations, err := LoadMigrations()
	require.NoError(t, err)
	require.NoError(t, RunMigrations(db, migrations))

	require.NoError(t, RollbackMigrations(db, migrations, 2))

	var categories int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM categories").Scan(&categories))
	assert.Zero(t, categories, "rolling back the category migration empties the table")

	var applied int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM migrations").Scan(&applied))
	assert.Equal(t, 1, applied)
}
