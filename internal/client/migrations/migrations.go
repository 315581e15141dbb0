// Package migrations embeds the goose migrations of the wallet journal.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
