// Package migrations embeds the user-service schema.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
