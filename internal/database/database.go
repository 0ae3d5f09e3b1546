package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/charmbracelet/log"
	_ "github.com/mattn/go-sqlite3"
	"github.com/mauv0809/slackelo/migrations"
	"github.com/pressly/goose/v3"
	goosedb "github.com/pressly/goose/v3/database"
	_ "github.com/tursodatabase/libsql-client-go/libsql"
)

// InitDB opens the ratings database and migrates it to the latest schema.
// An empty primaryUrl opens dbPath as a local SQLite file (or ":memory:").
// Otherwise the remote libSQL database at primaryUrl is used and dbPath is ignored.
// The returned teardown closes the connection.
func InitDB(dbPath string, primaryUrl string, authToken string) (*sql.DB, func(), error) {
	var (
		db      *sql.DB
		dialect goose.Dialect
		err     error
	)

	if primaryUrl == "" {
		log.Info("Initializing local-only SQLite database", "path", dbPath)
		db, err = sql.Open("sqlite3", dbPath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open local database: %w", err)
		}
		// SQLite allows a single writer, and every connection to ":memory:" is
		// a separate database.
		db.SetMaxOpenConns(1)
	} else {
		log.Info("Initializing Turso database", "url", primaryUrl)
		db, err = sql.Open("libsql", primaryUrl+"?authToken="+authToken)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open db %s: %w", primaryUrl, err)
		}
	}
	dialect = DialectFor(primaryUrl)

	teardown := func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close database", "error", err)
		}
	}

	if err = db.Ping(); err != nil {
		teardown()
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Foreign key support is not enabled by default in SQLite
	if _, err = db.Exec("PRAGMA foreign_keys = ON;"); err != nil {
		teardown()
		return nil, nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if err = Migrate(context.Background(), db, dialect); err != nil {
		teardown()
		return nil, nil, err
	}

	log.Info("Database initialized successfully")
	return db, teardown, nil
}

// DialectFor returns the migration dialect of the database InitDB opens for primaryUrl.
func DialectFor(primaryUrl string) goose.Dialect {
	if primaryUrl == "" {
		return goose.DialectSQLite3
	}
	return goose.Dialect(goosedb.DialectTurso)
}

// Migrate applies every pending migration in version order.
func Migrate(ctx context.Context, db *sql.DB, dialect goose.Dialect) error {
	provider, err := goose.NewProvider(dialect, db, migrations.FS)
	if err != nil {
		return fmt.Errorf("failed to create migration provider: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	for _, result := range results {
		log.Info("Applied migration", "version", result.Source.Version, "file", result.Source.Path, "duration", result.Duration)
	}

	version, err := provider.GetDBVersion(ctx)
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	log.Info("Database schema is up to date", "version", version)
	return nil
}

// MigrationStatus describes one known migration and whether it has been applied.
type MigrationStatus struct {
	Version int64
	File    string
	Applied bool
}

// Status lists all migrations in version order with their applied state.
func Status(ctx context.Context, db *sql.DB, dialect goose.Dialect) ([]MigrationStatus, error) {
	provider, err := goose.NewProvider(dialect, db, migrations.FS)
	if err != nil {
		return nil, fmt.Errorf("failed to create migration provider: %w", err)
	}

	statuses, err := provider.Status(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read migration status: %w", err)
	}

	var out []MigrationStatus
	for _, s := range statuses {
		out = append(out, MigrationStatus{
			Version: s.Source.Version,
			File:    s.Source.Path,
			Applied: s.State == goose.StateApplied,
		})
	}
	return out, nil
}
