package postgres_adapter

import "embed"

// Migrations - SQL-миграции схемы, применяются через pkg/postgres.Migrate.
//
//go:embed migrations/*.sql
var Migrations embed.FS

const MigrationsDir = "migrations"
