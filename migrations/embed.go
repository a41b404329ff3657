// Package migrations embeds SQL migration files into the binary.
//
// Shipping the schema inside the executable means a hearthd deployment is a
// single file; no loose SQL needs to be present at runtime.
package migrations

import (
	"embed"

	"github.com/rgeddes/hearth-core/internal/infrastructure/database"
)

//go:embed *.sql
var migrationsFS embed.FS

func init() {
	// Register embedded migrations with the database package.
	// The embed directive above captures all .sql files in this directory.
	database.MigrationsFS = migrationsFS
	database.MigrationsDir = "." // Files are at root of embedded FS
}
