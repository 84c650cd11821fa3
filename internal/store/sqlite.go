package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/JonMunkholm/runsheet/internal/timetable"
	"github.com/mattn/go-sqlite3"
)

// SQLiteFileName is the database file created inside the data directory.
const SQLiteFileName = "runsheet.db"

// sqliteTime is a fixed-width UTC layout so timestamps sort as text.
const sqliteTime = "2006-01-02T15:04:05.000000000Z"

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS projects (
	id          TEXT PRIMARY KEY,
	title       TEXT NOT NULL DEFAULT '',
	day_count   INTEGER NOT NULL DEFAULT 0,
	act_count   INTEGER NOT NULL DEFAULT 0,
	doc         TEXT NOT NULL,
	created_at  TEXT NOT NULL,
	updated_at  TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_projects_updated_at ON projects(updated_at);
`

// SQLiteStore stores projects in a single SQLite file, for desktop use.
type SQLiteStore struct {
	conn *sql.DB
	now  func() time.Time
}

// NewSQLiteStore opens (creating if needed) dataDir/runsheet.db.
func NewSQLiteStore(dataDir string) (*SQLiteStore, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, SQLiteFileName)
	conn, err := sql.Open("sqlite3", dbPath+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	if _, err := conn.Exec(sqliteSchema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to initialize database tables: %w", err)
	}

	return &SQLiteStore{
		conn: conn,
		now:  func() time.Time { return time.Now().UTC() },
	}, nil
}

func (s *SQLiteStore) Create(ctx context.Context, id string, p timetable.Project) error {
	doc, err := encode(p)
	if err != nil {
		return err
	}

	now := s.now().Format(sqliteTime)
	_, err = s.conn.ExecContext(ctx, `
		INSERT INTO projects (id, title, day_count, act_count, doc, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, p.Meta.Title, len(p.Days), len(p.Acts), string(doc), now, now,
	)
	if err != nil {
		var sqlErr sqlite3.Error
		if errors.As(err, &sqlErr) && sqlErr.Code == sqlite3.ErrConstraint {
			return ErrExists
		}
		return fmt.Errorf("insert project: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Get(ctx context.Context, id string) (timetable.Project, error) {
	var doc string
	err := s.conn.QueryRowContext(ctx, `SELECT doc FROM projects WHERE id = ?`, id).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return timetable.Project{}, ErrNotFound
	}
	if err != nil {
		return timetable.Project{}, fmt.Errorf("select project: %w", err)
	}
	return decode([]byte(doc))
}

func (s *SQLiteStore) Put(ctx context.Context, id string, p timetable.Project) error {
	doc, err := encode(p)
	if err != nil {
		return err
	}

	res, err := s.conn.ExecContext(ctx, `
		UPDATE projects
		SET title = ?, day_count = ?, act_count = ?, doc = ?, updated_at = ?
		WHERE id = ?`,
		p.Meta.Title, len(p.Days), len(p.Acts), string(doc), s.now().Format(sqliteTime), id,
	)
	if err != nil {
		return fmt.Errorf("update project: %w", err)
	}
	return expectOne(res)
}

func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	res, err := s.conn.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	return expectOne(res)
}

func (s *SQLiteStore) List(ctx context.Context) ([]Summary, error) {
	rows, err := s.conn.QueryContext(ctx, `
		SELECT id, title, day_count, act_count, created_at, updated_at
		FROM projects
		ORDER BY updated_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	out := []Summary{}
	for rows.Next() {
		var sum Summary
		var created, updated string
		if err := rows.Scan(&sum.ID, &sum.Title, &sum.Days, &sum.Acts, &created, &updated); err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		if sum.CreatedAt, err = time.Parse(sqliteTime, created); err != nil {
			return nil, fmt.Errorf("parse created_at: %w", err)
		}
		if sum.UpdatedAt, err = time.Parse(sqliteTime, updated); err != nil {
			return nil, fmt.Errorf("parse updated_at: %w", err)
		}
		out = append(out, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate projects: %w", err)
	}
	return out, nil
}

func (s *SQLiteStore) Close() error {
	return s.conn.Close()
}

func expectOne(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
