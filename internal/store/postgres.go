package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/JonMunkholm/runsheet/internal/timetable"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// pgUniqueViolation is the SQLSTATE for duplicate keys.
const pgUniqueViolation = "23505"

const pgSchema = `
CREATE TABLE IF NOT EXISTS runsheet_projects (
	id          TEXT PRIMARY KEY,
	title       TEXT NOT NULL DEFAULT '',
	day_count   INTEGER NOT NULL DEFAULT 0,
	act_count   INTEGER NOT NULL DEFAULT 0,
	doc         JSONB NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_runsheet_projects_updated_at ON runsheet_projects (updated_at DESC);
`

// PoolOptions tunes the pgx connection pool.
type PoolOptions struct {
	MaxConns        int
	MinConns        int
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
}

// PostgresStore stores projects as JSONB documents in PostgreSQL.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore connects to url, verifies the connection and creates the
// projects table if needed.
func NewPostgresStore(ctx context.Context, url string, opts PoolOptions) (*PostgresStore, error) {
	poolConfig, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}
	if opts.MaxConns > 0 {
		poolConfig.MaxConns = int32(opts.MaxConns)
	}
	if opts.MinConns > 0 {
		poolConfig.MinConns = int32(opts.MinConns)
	}
	if opts.MaxConnLifetime > 0 {
		poolConfig.MaxConnLifetime = opts.MaxConnLifetime
	}
	if opts.MaxConnIdleTime > 0 {
		poolConfig.MaxConnIdleTime = opts.MaxConnIdleTime
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	s, err := NewPostgresStoreFromPool(ctx, pool)
	if err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

// NewPostgresStoreFromPool wraps an existing pool and creates the projects
// table if needed. Close closes the pool.
func NewPostgresStoreFromPool(ctx context.Context, pool *pgxpool.Pool) (*PostgresStore, error) {
	if _, err := pool.Exec(ctx, pgSchema); err != nil {
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) Create(ctx context.Context, id string, p timetable.Project) error {
	doc, err := encode(p)
	if err != nil {
		return err
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO runsheet_projects (id, title, day_count, act_count, doc)
		VALUES ($1, $2, $3, $4, $5)`,
		id, p.Meta.Title, len(p.Days), len(p.Acts), doc,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return ErrExists
		}
		return fmt.Errorf("insert project: %w", err)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, id string) (timetable.Project, error) {
	var doc []byte
	err := s.pool.QueryRow(ctx, `SELECT doc FROM runsheet_projects WHERE id = $1`, id).Scan(&doc)
	if errors.Is(err, pgx.ErrNoRows) {
		return timetable.Project{}, ErrNotFound
	}
	if err != nil {
		return timetable.Project{}, fmt.Errorf("select project: %w", err)
	}
	return decode(doc)
}

func (s *PostgresStore) Put(ctx context.Context, id string, p timetable.Project) error {
	doc, err := encode(p)
	if err != nil {
		return err
	}

	tag, err := s.pool.Exec(ctx, `
		UPDATE runsheet_projects
		SET title = $2, day_count = $3, act_count = $4, doc = $5, updated_at = now()
		WHERE id = $1`,
		id, p.Meta.Title, len(p.Days), len(p.Acts), doc,
	)
	if err != nil {
		return fmt.Errorf("update project: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM runsheet_projects WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) List(ctx context.Context) ([]Summary, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, title, day_count, act_count, created_at, updated_at
		FROM runsheet_projects
		ORDER BY updated_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}

	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Summary, error) {
		var sum Summary
		err := row.Scan(&sum.ID, &sum.Title, &sum.Days, &sum.Acts, &sum.CreatedAt, &sum.UpdatedAt)
		return sum, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan projects: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}
