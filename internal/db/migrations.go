package db

import (
	"cmp"
	"fmt"
	"io/fs"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"

	embeddedmigrations "github.com/terraincognita07/cradle/migrations"
	"gorm.io/gorm"
)

var (
	migrationNamePattern = regexp.MustCompile(`^(\d+)_[^/]*\.sql$`)
	addColumnPattern     = regexp.MustCompile(`(?i)^ALTER\s+TABLE\s+(\S+)\s+ADD\s+COLUMN\s+(\S+)`)
)

// schemaMigration is one row of the ledger of applied migration files.
type schemaMigration struct {
	Version   string    `gorm:"primaryKey"`
	Name      string    `gorm:"not null"`
	AppliedAt time.Time `gorm:"not null"`
}

func (schemaMigration) TableName() string {
	return "schema_migrations"
}

type migrationFile struct {
	version string
	order   int
	name    string
	body    string
}

type migrator struct {
	database *gorm.DB
	dialect  string
}

// applyEmbeddedMigrations runs every embedded migration of dialect that is
// not yet recorded in schema_migrations, each inside its own transaction.
func applyEmbeddedMigrations(database *gorm.DB, dialect string) error {
	files, err := embeddedmigrations.ForDialect(dialect)
	if err != nil {
		return err
	}
	return migrator{database: database, dialect: dialect}.run(files)
}

func (m migrator) run(files fs.FS) error {
	if err := m.database.AutoMigrate(&schemaMigration{}); err != nil {
		return fmt.Errorf("create schema_migrations table: %w", err)
	}

	available, err := readMigrationFiles(files)
	if err != nil {
		return err
	}

	var applied []string
	if err := m.database.Model(&schemaMigration{}).Pluck("version", &applied).Error; err != nil {
		return fmt.Errorf("load applied migration versions: %w", err)
	}

	for _, file := range available {
		if slices.Contains(applied, file.version) {
			continue
		}
		if err := m.apply(file); err != nil {
			return err
		}
	}
	return nil
}

func (m migrator) apply(file migrationFile) error {
	statements := splitSQLStatements(file.body)
	if len(statements) == 0 {
		return fmt.Errorf("migration %s has no SQL statements", file.name)
	}

	return m.database.Transaction(func(tx *gorm.DB) error {
		for _, statement := range statements {
			redundant, err := m.columnAlreadyAdded(tx, statement)
			if err != nil {
				return fmt.Errorf("inspect migration %s: %w", file.name, err)
			}
			if redundant {
				continue
			}
			if err := tx.Exec(statement).Error; err != nil {
				return fmt.Errorf("execute migration %s statement %q: %w", file.name, statement, err)
			}
		}

		record := schemaMigration{Version: file.version, Name: file.name, AppliedAt: time.Now().UTC()}
		if err := tx.Create(&record).Error; err != nil {
			return fmt.Errorf("record migration %s: %w", file.name, err)
		}
		return nil
	})
}

// columnAlreadyAdded lets ADD COLUMN statements run against databases that
// were created before the migration ledger existed.
func (m migrator) columnAlreadyAdded(tx *gorm.DB, statement string) (bool, error) {
	matches := addColumnPattern.FindStringSubmatch(statement)
	if matches == nil {
		return false, nil
	}
	return tableColumnExists(tx, m.dialect, unquoteIdentifier(matches[1]), unquoteIdentifier(matches[2]))
}

func readMigrationFiles(files fs.FS) ([]migrationFile, error) {
	names, err := fs.Glob(files, "*.sql")
	if err != nil {
		return nil, fmt.Errorf("list embedded migrations: %w", err)
	}

	migrations := make([]migrationFile, 0, len(names))
	byVersion := make(map[string]string, len(names))
	for _, name := range names {
		matches := migrationNamePattern.FindStringSubmatch(name)
		if matches == nil {
			continue
		}
		version := matches[1]
		if previous, duplicate := byVersion[version]; duplicate {
			return nil, fmt.Errorf("duplicate migration version %s in %s and %s", version, previous, name)
		}
		byVersion[version] = name

		order, err := strconv.Atoi(version)
		if err != nil {
			return nil, fmt.Errorf("parse migration version from %s: %w", name, err)
		}
		body, err := fs.ReadFile(files, name)
		if err != nil {
			return nil, fmt.Errorf("read migration %s: %w", name, err)
		}
		migrations = append(migrations, migrationFile{version: version, order: order, name: name, body: string(body)})
	}

	slices.SortFunc(migrations, func(a, b migrationFile) int {
		return cmp.Or(cmp.Compare(a.order, b.order), strings.Compare(a.name, b.name))
	})
	return migrations, nil
}

func splitSQLStatements(sqlText string) []string {
	var statements []string
	for _, part := range strings.Split(sqlText, ";") {
		if statement := strings.TrimSpace(part); statement != "" {
			statements = append(statements, statement)
		}
	}
	return statements
}

func tableColumnExists(database *gorm.DB, dialect string, table string, column string) (bool, error) {
	if dialect == embeddedmigrations.DialectPostgres {
		var count int64
		err := database.Raw(
			`SELECT count(*) FROM information_schema.columns WHERE table_schema = current_schema() AND table_name = ? AND column_name = ?`,
			strings.ToLower(table), strings.ToLower(column),
		).Scan(&count).Error
		if err != nil {
			return false, fmt.Errorf("inspect columns of %s: %w", table, err)
		}
		return count > 0, nil
	}

	var names []string
	if err := database.Raw(`SELECT name FROM pragma_table_info(?)`, table).Scan(&names).Error; err != nil {
		return false, fmt.Errorf("inspect columns of %s: %w", table, err)
	}
	return slices.ContainsFunc(names, func(name string) bool {
		return strings.EqualFold(strings.TrimSpace(name), column)
	}), nil
}

func unquoteIdentifier(identifier string) string {
	return strings.TrimSpace(strings.Trim(strings.TrimSpace(identifier), "\"`[]"))
}
