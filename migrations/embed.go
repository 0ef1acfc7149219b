// Package migrations embeds the SQL migration files so they can be applied
// by the goose programmatic API at startup, from the migrate command, and in
// tests. The statements are portable between SQLite and Postgres.
package migrations

import "embed"

// FS holds all *.sql migration files embedded at compile time.
//
//go:embed *.sql
var FS embed.FS
