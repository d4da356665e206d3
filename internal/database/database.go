package database

import (
	"database/sql"

	_ "modernc.org/sqlite" // SQLite driver
)

// New creates a new database connection pool.
func New(dataSourceName string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dataSourceName+"?_pragma=foreign_keys(1)")
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate runs the SQL statements to set up the database schema.
func Migrate(db *sql.DB) error {
	const sqlStmt = `
	CREATE TABLE IF NOT EXISTS users (
		id TEXT NOT NULL PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		is_active INTEGER NOT NULL DEFAULT 1,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS cameras (
		id TEXT NOT NULL PRIMARY KEY,
		brand TEXT NOT NULL,
		model TEXT NOT NULL,
		year_manufactured INTEGER NOT NULL,
		type TEXT NOT NULL,
		film_format TEXT NOT NULL,
		condition TEXT NOT NULL,
		notes TEXT,
		acquisition_date TEXT,
		acquisition_price REAL,
		estimated_value REAL,
		-- Store list fields as JSON text
		special_features_json TEXT NOT NULL DEFAULT '[]',
		images_json TEXT NOT NULL DEFAULT '[]',
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS valuation_history (
		id TEXT NOT NULL PRIMARY KEY,
		recorded_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		total_value REAL NOT NULL,
		camera_count INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_cameras_brand ON cameras(brand);
	CREATE INDEX IF NOT EXISTS idx_cameras_type ON cameras(type);
	CREATE INDEX IF NOT EXISTS idx_cameras_year ON cameras(year_manufactured);
	`
	_, err := db.Exec(sqlStmt)
	return err
}
