package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/verte-zerg/keydrill/internal/lesson"
	"github.com/verte-zerg/keydrill/internal/lessonlist"
	"github.com/verte-zerg/keydrill/internal/session"

	_ "modernc.org/sqlite" // SQLite driver.
)

const metaSelectedIndex = "selected_index"

// SQLiteStore keeps lessons, selection and history in SQLite tables.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens or creates the database at path and applies migrations.
func OpenSQLite(path string) (*SQLiteStore, error) {
	if path == "" {
		return nil, fmt.Errorf("state path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	st := &SQLiteStore{db: db}
	if err := st.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return st, nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS lessons (
			idx INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			definition TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS records (
			id INTEGER PRIMARY KEY,
			lesson_idx INTEGER NOT NULL,
			started_at TEXT NOT NULL,
			errors INTEGER NOT NULL,
			speed_unit TEXT NOT NULL,
			speed_value INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_records_lesson ON records(lesson_idx, id);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// Save replaces the stored state with snap in one transaction.
func (s *SQLiteStore) Save(ctx context.Context, snap lessonlist.Snapshot) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	for _, stmt := range []string{`DELETE FROM lessons`, `DELETE FROM records`, `DELETE FROM meta`} {
		if _, err = tx.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}

	for i, l := range snap.Lessons {
		var def []byte
		def, err = json.Marshal(l)
		if err != nil {
			return fmt.Errorf("failed to encode lesson %q: %w", l.Name, err)
		}
		if _, err = tx.ExecContext(ctx, `INSERT INTO lessons (idx, name, definition) VALUES (?, ?, ?)`, i, l.Name, string(def)); err != nil {
			return err
		}
	}

	if len(snap.History) > 0 {
		var stmt *sql.Stmt
		stmt, err = tx.PrepareContext(ctx,
			`INSERT INTO records (lesson_idx, started_at, errors, speed_unit, speed_value)
			 VALUES (?, ?, ?, ?, ?)`)
		if err != nil {
			return err
		}
		defer func() {
			if cerr := stmt.Close(); cerr != nil {
				// Best-effort statement close.
				_ = cerr
			}
		}()
		for idx := 0; idx < len(snap.Lessons); idx++ {
			for _, rec := range snap.History[idx] {
				if _, err = stmt.ExecContext(ctx,
					idx,
					rec.Timestamp.UTC().Format(time.RFC3339Nano),
					rec.Stats.Errors,
					string(rec.Stats.Speed.Unit),
					rec.Stats.Speed.Value,
				); err != nil {
					return err
				}
			}
		}
	}

	if snap.Selected != nil {
		if _, err = tx.ExecContext(ctx, `INSERT INTO meta (key, value) VALUES (?, ?)`, metaSelectedIndex, strconv.Itoa(*snap.Selected)); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// Load reads the stored state. It returns ErrNotFound when nothing was saved.
func (s *SQLiteStore) Load(ctx context.Context) (lessonlist.Snapshot, error) {
	lessons, err := s.loadLessons(ctx)
	if err != nil {
		return lessonlist.Snapshot{}, err
	}
	if len(lessons) == 0 {
		return lessonlist.Snapshot{}, ErrNotFound
	}
	history, err := s.loadHistory(ctx)
	if err != nil {
		return lessonlist.Snapshot{}, err
	}
	selected, err := s.loadSelected(ctx)
	if err != nil {
		return lessonlist.Snapshot{}, err
	}
	return lessonlist.Snapshot{Lessons: lessons, Selected: selected, History: history}, nil
}

func (s *SQLiteStore) loadLessons(ctx context.Context) ([]lesson.Lesson, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT definition FROM lessons ORDER BY idx ASC`)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var lessons []lesson.Lesson
	for rows.Next() {
		var def string
		if err := rows.Scan(&def); err != nil {
			return nil, err
		}
		var l lesson.Lesson
		if err := json.Unmarshal([]byte(def), &l); err != nil {
			return nil, fmt.Errorf("failed to decode lesson: %w", err)
		}
		lessons = append(lessons, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return lessons, nil
}

func (s *SQLiteStore) loadHistory(ctx context.Context) (map[int][]session.Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT lesson_idx, started_at, errors, speed_unit, speed_value
		 FROM records
		 ORDER BY lesson_idx ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	history := map[int][]session.Record{}
	for rows.Next() {
		var (
			idx       int
			startedAt string
			rec       session.Record
			unit      string
		)
		if err := rows.Scan(&idx, &startedAt, &rec.Stats.Errors, &unit, &rec.Stats.Speed.Value); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(time.RFC3339Nano, startedAt)
		if err != nil {
			return nil, err
		}
		rec.Timestamp = parsed
		rec.Stats.Speed.Unit = session.SpeedUnit(unit)
		history[idx] = append(history[idx], rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return history, nil
}

func (s *SQLiteStore) loadSelected(ctx context.Context) (*int, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM meta WHERE key = ?`, metaSelectedIndex).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	idx, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("failed to parse selected index %q: %w", value, err)
	}
	return &idx, nil
}
