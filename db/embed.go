// Package db holds the schema migrations for the tracking store and the
// runner that applies them.
package db

import "embed"

//go:embed migrations/*.sql
var MigrationFS embed.FS
