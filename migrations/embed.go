// Package migrations carries the schema files so the binary can apply them
// without a checkout on disk.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
