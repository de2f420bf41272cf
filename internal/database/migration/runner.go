package migration

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/pressly/goose/v3"
)

//go:embed sql/*.sql
var migrationsFS embed.FS

const (
	migrationsDir  = "sql"
	versionTable   = "schema_migrations"
	advisoryLockID = 746295114
)

// goose keeps its configuration in package globals.
var gooseMu sync.Mutex

type Runner struct {
	Logger *slog.Logger
}

// Up applies every pending migration.
func (r Runner) Up(ctx context.Context, db *sql.DB) error {
	return r.run(ctx, db, "up", func(ctx context.Context, db *sql.DB) error {
		return goose.UpContext(ctx, db, migrationsDir)
	})
}

// Down rolls back the most recent migration.
func (r Runner) Down(ctx context.Context, db *sql.DB) error {
	return r.run(ctx, db, "down", func(ctx context.Context, db *sql.DB) error {
		return goose.DownContext(ctx, db, migrationsDir)
	})
}

// Status logs the applied state of every migration.
func (r Runner) Status(ctx context.Context, db *sql.DB) error {
	return r.run(ctx, db, "status", func(ctx context.Context, db *sql.DB) error {
		return goose.StatusContext(ctx, db, migrationsDir)
	})
}

// Version returns the current schema version.
func (r Runner) Version(ctx context.Context, db *sql.DB) (int64, error) {
	var v int64
	err := r.run(ctx, db, "version", func(ctx context.Context, db *sql.DB) error {
		var err error
		v, err = goose.GetDBVersionContext(ctx, db)
		return err
	})
	return v, err
}

func (r Runner) run(ctx context.Context, db *sql.DB, command string, fn func(context.Context, *sql.DB) error) error {
	if db == nil {
		return errors.New("nil db")
	}

	gooseMu.Lock()
	defer gooseMu.Unlock()

	log := r.logger().With("component", "migrations", "command", command)
	goose.SetLogger(gooseLogger{log: log})
	goose.SetBaseFS(migrationsFS)
	goose.SetTableName(versionTable)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}

	if err := advisoryLock(ctx, db, advisoryLockID); err != nil {
		return err
	}
	defer func() {
		_ = advisoryUnlock(context.Background(), db, advisoryLockID)
	}()

	log.Info("[Migrate] Running")
	if err := fn(ctx, db); err != nil {
		return fmt.Errorf("migrate %s: %w", command, err)
	}
	return nil
}

func (r Runner) logger() *slog.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return slog.Default()
}

func advisoryLock(ctx context.Context, db *sql.DB, key int64) error {
	_, err := db.ExecContext(ctx, `SELECT pg_advisory_lock($1)`, key)
	return err
}

func advisoryUnlock(ctx context.Context, db *sql.DB, key int64) error {
	_, err := db.ExecContext(ctx, `SELECT pg_advisory_unlock($1)`, key)
	return err
}

// gooseLogger routes goose output through slog. Fatalf logs at error level
// and does not exit.
type gooseLogger struct {
	log *slog.Logger
}

func (l gooseLogger) Printf(format string, v ...interface{}) {
	l.log.Info("[Migrate] " + strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (l gooseLogger) Fatalf(format string, v ...interface{}) {
	l.log.Error("[Migrate] " + strings.TrimSpace(fmt.Sprintf(format, v...)))
}
