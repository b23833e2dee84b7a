package database

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeleteDB(t *testing.T) {
	path := filepath.Join(t.TempDir(), "platform.db")

	db, err := NewDB(NewConfig(path))
	require.NoError(t, err)
	require.NoError(t, db.Close())

	require.NoError(t, DeleteDB(path))
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err), "database file must be removed")

	// A second delete of a missing file is a no-op.
	assert.NoError(t, DeleteDB(path))
}
