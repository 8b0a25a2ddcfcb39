package migrations

import "embed"

// FS holds goose migrations, one directory per dialect.
//
//go:embed sqlite/*.sql postgres/*.sql
var FS embed.FS
