// Package migrations embeds the goose SQL migrations for the database schema.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
