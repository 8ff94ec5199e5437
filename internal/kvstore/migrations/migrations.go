// Package migrations embeds the goose schema files for the SQL-backed
// key/value repositories, one directory per dialect.
package migrations

import "embed"

//go:embed sqlite/*.sql
var SQLite embed.FS

//go:embed postgres/*.sql
var Postgres embed.FS
