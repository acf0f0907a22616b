package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/trknhr/cooktime/internal/logger"
	"github.com/trknhr/cooktime/internal/utils"
)

// Entry is one journaled estimate.
type Entry struct {
	ID          string
	SessionID   string
	Ingredients map[string]int
	Method      string
	Minutes     int
	CreatedAt   time.Time
}

// RecipeCount is how often one recipe was estimated.
type RecipeCount struct {
	Ingredients map[string]int
	Method      string
	Minutes     int
	Count       int
}

//go:generate mockgen -source=journal.go -destination=mock_journal.go -package=store

type JournalStore interface {
	Save(entries []Entry) error
	Recent(limit int) ([]Entry, error)
	TopRecipes(limit int) ([]RecipeCount, error)
}

type SQLJournalStore struct {
	db *sql.DB
}

func NewSQLJournalStore(db *sql.DB) JournalStore {
	return &SQLJournalStore{db: db}
}

func (s *SQLJournalStore) Save(entries []Entry) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
        INSERT INTO predictions(id, session_id, recipe_hash, ingredients, method, minutes, created_at)
        VALUES (?, ?, ?, ?, ?, ?, ?)
    `)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, e := range entries {
		if len(e.Ingredients) == 0 {
			continue
		}
		if e.ID == "" {
			e.ID = uuid.NewString()
		}
		if e.CreatedAt.IsZero() {
			e.CreatedAt = time.Now()
		}
		ingredients, err := json.Marshal(e.Ingredients)
		if err != nil {
			return fmt.Errorf("encode ingredients: %w", err)
		}
		key := utils.RecipeKey(e.Ingredients, e.Method)
		if _, err := stmt.Exec(e.ID, e.SessionID, key, string(ingredients), e.Method, e.Minutes, e.CreatedAt.UnixMilli()); err != nil {
			logger.Error("failed to insert prediction %s: %v", e.ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		logger.Error("failed to commit journal tx: %v", err)
		return err
	}
	return nil
}

func (s *SQLJournalStore) Recent(limit int) ([]Entry, error) {
	rows, err := s.db.Query(`
        SELECT id, session_id, ingredients, method, minutes, created_at
        FROM predictions
        ORDER BY created_at DESC, id
        LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var (
			e           Entry
			ingredients string
			createdAt   int64
		)
		if err := rows.Scan(&e.ID, &e.SessionID, &ingredients, &e.Method, &e.Minutes, &createdAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(ingredients), &e.Ingredients); err != nil {
			return nil, fmt.Errorf("decode ingredients of %s: %w", e.ID, err)
		}
		e.CreatedAt = time.UnixMilli(createdAt)
		out = append(out, e)
	}
	return out, rows.Err()
}

// TopRecipes groups the journal by recipe, most frequent first. Minutes is
// the latest estimate for that recipe.
func (s *SQLJournalStore) TopRecipes(limit int) ([]RecipeCount, error) {
	rows, err := s.db.Query(`
        SELECT p.ingredients, p.method, p.minutes, g.n
        FROM (
            SELECT recipe_hash, COUNT(*) AS n, MAX(created_at) AS last
            FROM predictions
            GROUP BY recipe_hash
        ) g
        JOIN predictions p ON p.recipe_hash = g.recipe_hash AND p.created_at = g.last
        GROUP BY g.recipe_hash
        ORDER BY g.n DESC, g.last DESC
        LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RecipeCount
	for rows.Next() {
		var (
			rc          RecipeCount
			ingredients string
		)
		if err := rows.Scan(&ingredients, &rc.Method, &rc.Minutes, &rc.Count); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(ingredients), &rc.Ingredients); err != nil {
			return nil, fmt.Errorf("decode ingredients: %w", err)
		}
		out = append(out, rc)
	}
	return out, rows.Err()
}
