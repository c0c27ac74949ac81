// Package migrations embeds the schema migrations for every supported store.
package migrations

import "embed"

//go:embed sqlite/*.sql postgres/*.sql
var FS embed.FS
