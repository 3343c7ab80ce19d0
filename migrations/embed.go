// Package migrations holds the versioned SQL for the key/value table.
package migrations

import "embed"

//go:embed sqlite/*.sql postgres/*.sql
var FS embed.FS
