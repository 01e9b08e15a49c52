// Package migrations embeds the SQL migration files so goose can apply them
// at bootstrap without relying on a filesystem path at runtime.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
