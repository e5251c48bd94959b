// Package migrations holds the schema of the PostgreSQL archive.
package migrations

import "github.com/uptrace/bun/migrate"

// Migrations is the registry of archive schema migrations.
var Migrations = migrate.NewMigrations()
