package migrations

import (
	"embed"
	"fmt"
	"io/fs"
)

// Files stores forward-only SQL migrations embedded into the binary, one
// directory per SQL dialect.
//
//go:embed sqlite/*.sql postgres/*.sql
var Files embed.FS

const (
	DialectSQLite   = "sqlite"
	DialectPostgres = "postgres"
)

// ForDialect returns the migration files of a single dialect rooted at ".".
func ForDialect(dialect string) (fs.FS, error) {
	switch dialect {
	case DialectSQLite, DialectPostgres:
		return fs.Sub(Files, dialect)
	default:
		return nil, fmt.Errorf("unsupported migration dialect %q", dialect)
	}
}
