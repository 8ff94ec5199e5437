package kvstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/dmitrijs2005/deliciousbites/internal/kvstore/migrations"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

// DBTX is the subset of database/sql used by SQLRepository.
// Both *sql.DB and *sql.Tx satisfy this interface.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Dialect describes a SQL backend: driver name, goose dialect, embedded
// migration directory and the placeholder style of its queries.
type Dialect struct {
	Driver     string
	Goose      string
	Migrations fs.FS
	Dir        string
	numbered   bool
}

var (
	SQLite = Dialect{
		Driver:     "sqlite",
		Goose:      "sqlite3",
		Migrations: migrations.SQLite,
		Dir:        "sqlite",
	}
	Postgres = Dialect{
		Driver:     "pgx",
		Goose:      "pgx",
		Migrations: migrations.Postgres,
		Dir:        "postgres",
		numbered:   true,
	}
)

// bind rewrites '?' placeholders into $1..$n for numbered dialects.
func (d Dialect) bind(q string) string {
	if !d.numbered {
		return q
	}
	var b strings.Builder
	n := 0
	for _, r := range q {
		if r == '?' {
			n++
			fmt.Fprintf(&b, "$%d", n)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// SQLRepository stores records in the "records" table.
type SQLRepository struct {
	db DBTX
	d  Dialect
}

func NewSQLiteRepository(db DBTX) *SQLRepository {
	return &SQLRepository{db: db, d: SQLite}
}

func NewPostgresRepository(db DBTX) *SQLRepository {
	return &SQLRepository{db: db, d: Postgres}
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations applies the embedded migrations of dialect d to db.
// goose keeps its settings in package state, so concurrent calls for
// different dialects must not overlap.
func RunMigrations(ctx context.Context, db *sql.DB, d Dialect) error {
	goose.SetBaseFS(d.Migrations)
	if err := goose.SetDialect(d.Goose); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	if err := gooseUpContext(ctx, db, d.Dir); err != nil {
		return fmt.Errorf("failed to run %s migrations: %w", d.Dir, err)
	}
	return nil
}

// OpenSQL opens a database for dialect d, migrates it and returns the
// repository together with the *sql.DB the caller must close.
func OpenSQL(ctx context.Context, d Dialect, dsn string) (*SQLRepository, *sql.DB, error) {
	db, err := sql.Open(d.Driver, dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open %s database: %w", d.Dir, err)
	}
	if d.Driver == SQLite.Driver {
		// single writer
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("failed to reach %s database: %w", d.Dir, err)
	}
	if err := RunMigrations(ctx, db, d); err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	return &SQLRepository{db: db, d: d}, db, nil
}

func (r *SQLRepository) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := r.db.QueryRowContext(ctx, r.d.bind(`SELECT value FROM records WHERE key = ?`), key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get record[%s]: %w", key, err)
	}
	return value, nil
}

func (r *SQLRepository) Set(ctx context.Context, key string, value []byte) error {
	if value == nil {
		value = []byte{}
	}
	_, err := r.db.ExecContext(ctx, r.d.bind(`
		INSERT INTO records (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`), key, value)
	if err != nil {
		return fmt.Errorf("failed to set record[%s]: %w", key, err)
	}
	return nil
}

func (r *SQLRepository) Delete(ctx context.Context, key string) error {
	_, err := r.db.ExecContext(ctx, r.d.bind(`DELETE FROM records WHERE key = ?`), key)
	if err != nil {
		return fmt.Errorf("failed to delete record[%s]: %w", key, err)
	}
	return nil
}

func (r *SQLRepository) Clear(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM records`)
	if err != nil {
		return fmt.Errorf("failed to clear records: %w", err)
	}
	return nil
}

func (r *SQLRepository) List(ctx context.Context) (map[string][]byte, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT key, value FROM records`)
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}
	defer rows.Close()

	result := make(map[string][]byte)
	for rows.Next() {
		var key string
		var value []byte
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("failed to scan record row: %w", err)
		}
		result[key] = value
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate record rows: %w", err)
	}

	return result, nil
}
