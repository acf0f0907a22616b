package internal

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/tursodatabase/go-libsql"

	"github.com/trknhr/cooktime/internal/logger"
)

// DefaultDBPath is cooktime/cooktime.db under the user cache directory.
func DefaultDBPath() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user cache dir: %w", err)
	}
	return filepath.Join(cacheDir, "cooktime", "cooktime.db"), nil
}

// OpenDB opens the libsql database at path, or at DefaultDBPath when path
// is empty. ":memory:" is passed through unchanged.
func OpenDB(path string) (*sql.DB, error) {
	if path == "" {
		p, err := DefaultDBPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	dsn := path
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create db dir: %w", err)
		}
		dsn = "file:" + path
	}
	logger.Debug("dbPath: %s", path)

	db, err := sql.Open("libsql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}
