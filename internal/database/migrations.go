package database

import "embed"

// MigrationsFS holds the SQL schema migrations.
//
//go:embed migrations/*.sql
var MigrationsFS embed.FS

// MigrationsPath is the directory of MigrationsFS containing the migrations.
const MigrationsPath = "migrations"
