package migrations

import "embed"

// PostgresFS holds the crate schema, applied in lexical file order.
//
//go:embed postgres/*.sql
var PostgresFS embed.FS
