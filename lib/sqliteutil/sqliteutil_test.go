package sqliteutil

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDriverSelection(t *testing.T) {
	require.Equal(t, "sqlite", driverFor("results.db"))
	require.Equal(t, "sqlite", driverFor(":memory:"))
	require.Equal(t, "sqlite", driverFor(filepath.Join("data", "results.db")))
	require.Equal(t, "libsql", driverFor("libsql://analytics-myorg.turso.io"))
	require.Equal(t, "libsql", driverFor("https://analytics-myorg.turso.io"))
	require.Equal(t, "libsql", driverFor("wss://analytics-myorg.turso.io"))
}

func TestOpenDBAppliesSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	database, err := OpenDB("CREATE TABLE things (id INTEGER);", path)
	require.NoError(t, err)
	_, err = database.Exec("INSERT INTO things (id) VALUES (1)")
	require.NoError(t, err)
	require.NoError(t, database.Close())

	// reopening against an already applied schema must not fail
	database, err = OpenDB("CREATE TABLE things (id INTEGER);", path)
	require.NoError(t, err)

	var count int
	err = database.QueryRow("SELECT COUNT(*) FROM things").Scan(&count)
	require.NoError(t, err)
	require.Equal(t, 1, count)
	require.NoError(t, database.Close())
}
