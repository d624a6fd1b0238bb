package database

import (
	"database/sql"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/Chandima0406/NovaScript/config"
)

// Open connects to the SQLite store, applies the pragmas the application
// relies on (foreign keys for cascade deletes, a busy timeout so concurrent
// writers back off instead of failing) and brings the schema up to date.
// Readiness is established here, before any traffic is accepted.
//
// The pragmas ride on the DSN so they hold on every pooled connection.
func Open(cfg config.Config) (db *sql.DB, err error) {
	db, err = sql.Open("sqlite3", cfg.DBUrl+"?_foreign_keys=on&_busy_timeout=5000")
	if err != nil {
		return
	}

	// db tuning options
	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(10)
	db.SetConnMaxIdleTime(5 * time.Minute)
	db.SetConnMaxLifetime(2 * time.Hour)

	err = migrateDB(db)
	if err != nil {
		db.Close()
		return
	}

	return
}
