// Package sqlite implements the repository interfaces using SQLite as the storage backend.
//
// modernc.org/sqlite is a pure Go translation of SQLite, so the binary needs
// no C toolchain. The schema is owned by goose migrations embedded in the
// binary (migrations/*.sql), and every statement is built with squirrel.
//
// DATABASE/SQL OVERVIEW:
//   - sql.DB:   a connection pool (NOT a single connection!)
//   - sql.Row:  a single result row
//   - sql.Rows: multiple result rows (must be closed!)
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"log/slog"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/pressly/goose/v3"

	// Registers the "sqlite" driver with database/sql.
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrations embed.FS

// MemoryPath opens a private in-memory database. Tests use it.
const MemoryPath = ":memory:"

// DB wraps a sql.DB connection pool and provides repository methods.
// It implements both repository.UserRepository and repository.CourseRepository.
type DB struct {
	conn   *sql.DB
	sql    sq.StatementBuilderType
	logger *slog.Logger
}

// New opens the SQLite database at dbPath and runs migrations.
//
// dbPath examples:
//   - "data/fsjstd-restapi.db": file-based database (persistent)
//   - ":memory:": in-memory database (lost on close)
//
// Foreign keys are OFF by default in SQLite. They are switched on through
// the DSN so every pooled connection gets them, not just the first one.
func New(ctx context.Context, dbPath string, logger *slog.Logger) (*DB, error) {
	conn, err := sql.Open("sqlite", dsn(dbPath))
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}

	// Each connection to ":memory:" is its own empty database. Pin the pool
	// to one connection so every request sees the same data.
	if dbPath == MemoryPath {
		conn.SetMaxOpenConns(1)
	}

	db := newDB(conn, logger)

	// sql.Open doesn't connect; Ping surfaces a bad path right away.
	if err := db.Ping(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	if err := db.migrate(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: running migrations: %w", err)
	}

	logger.Info("connection to the database has been established successfully",
		slog.String("path", dbPath),
	)

	return db, nil
}

// newDB wraps an already-open pool. Tests hand it a sqlmock connection.
func newDB(conn *sql.DB, logger *slog.Logger) *DB {
	return &DB{
		conn:   conn,
		sql:    sq.StatementBuilder.PlaceholderFormat(sq.Question),
		logger: logger,
	}
}

// Close closes the database connection pool.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Ping checks the database is reachable.
func (db *DB) Ping(ctx context.Context) error {
	return db.conn.PingContext(ctx)
}

func (db *DB) migrate(ctx context.Context) error {
	goose.SetBaseFS(migrations)
	goose.SetLogger(gooseLogger{db.logger})

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("setting goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db.conn, "migrations"); err != nil {
		return fmt.Errorf("applying migrations: %w", err)
	}
	return nil
}

// dsn appends driver pragmas to dbPath. File databases also get WAL mode so
// reads don't block behind a write.
func dsn(dbPath string) string {
	sep := "?"
	if strings.Contains(dbPath, "?") {
		sep = "&"
	}
	pragmas := "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	if dbPath != MemoryPath {
		pragmas += "&_pragma=journal_mode(WAL)"
	}
	return dbPath + sep + pragmas
}

// gooseLogger routes goose's progress lines through slog.
type gooseLogger struct {
	logger *slog.Logger
}

func (l gooseLogger) Printf(format string, v ...interface{}) {
	l.logger.Debug(strings.TrimSpace(fmt.Sprintf(format, v...)), slog.String("component", "goose"))
}

func (l gooseLogger) Fatalf(format string, v ...interface{}) {
	l.logger.Error(strings.TrimSpace(fmt.Sprintf(format, v...)), slog.String("component", "goose"))
}
