package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"cloud.google.com/go/civil"

	"github.com/Veraticus/piggy/internal/common"
	"github.com/Veraticus/piggy/internal/model"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

const memoryDSN = ":memory:"

// SQLiteStorage implements the Storage interface using SQLite.
type SQLiteStorage struct {
	db     *sql.DB
	dbPath string
}

// NewSQLiteStorage creates a new SQLite storage instance. Use ":memory:" for
// a throwaway database.
func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	if err := validateString(dbPath, "dbPath"); err != nil {
		return nil, err
	}

	dsn := memoryDSN
	if dbPath != memoryDSN {
		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
		dsn = dbPath + "?_journal_mode=WAL&_busy_timeout=5000"
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// One connection: SQLite gains nothing from more, and ":memory:" is per connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &SQLiteStorage{
		db:     db,
		dbPath: dbPath,
	}, nil
}

// Location returns the database path.
func (s *SQLiteStorage) Location() string {
	return s.dbPath
}

// Close closes the database connection.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// Load reads the stored snapshot, or nil if Save has never run.
func (s *SQLiteStorage) Load(ctx context.Context) (*model.Snapshot, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	var hasCategories bool
	err := s.db.QueryRowContext(ctx,
		`SELECT has_categories FROM store_meta WHERE id = 1`).Scan(&hasCategories)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read store metadata: %w", err)
	}

	snapshot := &model.Snapshot{}
	if hasCategories {
		categories, err := s.loadCategories(ctx)
		if err != nil {
			return nil, err
		}
		snapshot.Categories = categories
	}

	goals, err := s.loadGoals(ctx)
	if errors.Is(err, common.ErrStorageDecode) {
		return &model.Snapshot{Categories: snapshot.Categories}, err
	}
	if err != nil {
		return nil, err
	}
	snapshot.Goals = goals

	common.LogDebug("loaded goal database", common.Fields{
		"path":  s.dbPath,
		"goals": len(goals),
	})
	return snapshot, nil
}

func (s *SQLiteStorage) loadCategories(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name FROM categories ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	categories := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("%w: failed to scan category: %v", common.ErrStorageDecode, err)
		}
		categories = append(categories, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}
	return categories, nil
}

func (s *SQLiteStorage) loadGoals(ctx context.Context) ([]model.Goal, error) {
	query := `
		SELECT name, target_amount, current_balance, category, status, start_date, completion_date
		FROM goals
		ORDER BY position`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query goals: %w", err)
	}
	defer rows.Close()

	goals := []model.Goal{}
	for rows.Next() {
		var (
			rec            model.GoalRecord
			status         string
			startDate      string
			completionDate sql.NullString
		)
		if err := rows.Scan(&rec.Name, &rec.TargetAmount, &rec.CurrentBalance, &rec.Category,
			&status, &startDate, &completionDate); err != nil {
			return nil, fmt.Errorf("%w: failed to scan goal: %v", common.ErrStorageDecode, err)
		}
		rec.Status = model.GoalStatus(status)

		rec.StartDate, err = civil.ParseDate(startDate)
		if err != nil {
			return nil, fmt.Errorf("%w: goal %q start date: %v", common.ErrStorageDecode, rec.Name, err)
		}
		if completionDate.Valid {
			completed, err := civil.ParseDate(completionDate.String)
			if err != nil {
				return nil, fmt.Errorf("%w: goal %q completion date: %v", common.ErrStorageDecode, rec.Name, err)
			}
			rec.CompletionDate = &completed
		}

		goal, err := model.GoalFromRecord(rec)
		if err != nil {
			return nil, err
		}
		goals = append(goals, goal)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating goals: %w", err)
	}
	return goals, nil
}

// Save replaces the stored snapshot inside one transaction.
func (s *SQLiteStorage) Save(ctx context.Context, snapshot *model.Snapshot) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateSnapshot(snapshot); err != nil {
		return err
	}

	if err := s.saveTx(ctx, snapshot); err != nil {
		return fmt.Errorf("%w: %s: %v", common.ErrStorageWrite, s.dbPath, err)
	}

	common.LogDebug("saved goal database", common.Fields{
		"path":  s.dbPath,
		"goals": len(snapshot.Goals),
	})
	return nil
}

func (s *SQLiteStorage) saveTx(ctx context.Context, snapshot *model.Snapshot) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		// Rollback after a successful commit returns ErrTxDone, which is fine.
		_ = tx.Rollback()
	}()

	for _, query := range []string{`DELETE FROM categories`, `DELETE FROM goals`} {
		if _, err := tx.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to clear table: %w", err)
		}
	}

	for i, name := range snapshot.Categories {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO categories (position, name) VALUES (?, ?)`, i, name); err != nil {
			return fmt.Errorf("failed to insert category %q: %w", name, err)
		}
	}

	insertGoal := `
		INSERT INTO goals (position, name, target_amount, current_balance, category, status, start_date, completion_date)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	for i, goal := range snapshot.Goals {
		rec := goal.Record()
		var completionDate sql.NullString
		if rec.CompletionDate != nil {
			completionDate = sql.NullString{String: rec.CompletionDate.String(), Valid: true}
		}
		if _, err := tx.ExecContext(ctx, insertGoal, i, rec.Name, rec.TargetAmount, rec.CurrentBalance,
			rec.Category, string(rec.Status), rec.StartDate.String(), completionDate); err != nil {
			return fmt.Errorf("failed to insert goal %q: %w", rec.Name, err)
		}
	}

	upsertMeta := `
		INSERT INTO store_meta (id, has_categories, saved_at) VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET has_categories = excluded.has_categories, saved_at = excluded.saved_at`
	if _, err := tx.ExecContext(ctx, upsertMeta, snapshot.Categories != nil, time.Now()); err != nil {
		return fmt.Errorf("failed to update store metadata: %w", err)
	}

	return tx.Commit()
}
