package database

import (
	"database/sql"
	"fmt"

	"github.com/charmbracelet/log"
	_ "github.com/mattn/go-sqlite3"
	_ "github.com/tursodatabase/libsql-client-go/libsql"
)

// InitDB initializes the database and ensures the schema is up to date.
// For local-only databases, dbPath is the filename. With a primaryUrl the
// database is a remote libsql primary instead.
func InitDB(dbPath string, primaryUrl string, authToken string) (*sql.DB, error) {
	dsn := "file:" + dbPath
	if primaryUrl != "" {
		log.Info("Initializing Turso database", "url", primaryUrl)
		dsn = primaryUrl + "?authToken=" + authToken
	} else {
		log.Info("Initializing local-only SQLite database", "path", dbPath)
	}

	db, err := sql.Open("libsql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err = createTables(db); err != nil {
		db.Close() // Close on error
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}
	return db, nil
}

func createTables(db *sql.DB) error {
	// The entire state tree is persisted as one versioned snapshot row;
	// constants and cosmetic assets travel inside the payload.
	createSnapshotsTable := `
	CREATE TABLE IF NOT EXISTS snapshots (
		key TEXT PRIMARY KEY,
		version INTEGER NOT NULL,
		saved_at INTEGER NOT NULL,
		payload BLOB NOT NULL
	);`

	if _, err := db.Exec(createSnapshotsTable); err != nil {
		return err
	}
	log.Info("Database initialized successfully")
	return nil
}
