// Package migrations embeds the SQLite migrations for the client's local
// preferences database.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
