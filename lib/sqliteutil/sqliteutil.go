package sqliteutil

import (
	"database/sql"
	"strings"

	_ "github.com/tursodatabase/libsql-client-go/libsql"
	_ "modernc.org/sqlite"
)

// OpenDB opens the database at path and applies the given schema to it.
// URL-shaped paths (libsql://, https://, wss://) go through the remote
// libsql driver, anything else is a local sqlite file.
func OpenDB(schema, path string) (*sql.DB, error) {
	database, err := sql.Open(driverFor(path), path)
	if err != nil {
		return nil, err
	}
	_, err = database.Exec(schema)
	if err != nil && !strings.Contains(err.Error(), "already exists") {
		database.Close()
		return nil, err
	}
	return database, nil
}

func driverFor(path string) string {
	if strings.Contains(path, "://") {
		return "libsql"
	}
	return "sqlite"
}
