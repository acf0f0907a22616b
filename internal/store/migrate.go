package store

import (
	"database/sql"
	"fmt"

	_ "github.com/tursodatabase/go-libsql"
)

func Migrate(db *sql.DB) error {
	schema := []string{
		// predictions: every successful estimate, newest read first
		`CREATE TABLE IF NOT EXISTS predictions (
			id          TEXT PRIMARY KEY,
			session_id  TEXT NOT NULL DEFAULT '',
			recipe_hash TEXT NOT NULL,
			ingredients TEXT NOT NULL,
			method      TEXT NOT NULL,
			minutes     INTEGER NOT NULL,
			created_at  INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_predictions_created_at ON predictions(created_at);`,
		`CREATE INDEX IF NOT EXISTS idx_predictions_recipe_hash ON predictions(recipe_hash);`,
	}

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to run migration statement: %w", err)
		}
	}

	return nil
}
