package db

import (
	"context"
	"fmt"
	"sync"

	"github.com/pressly/goose/v3"

	"github.com/udisondev/dinomarathon/internal/config"
	"github.com/udisondev/dinomarathon/internal/db/migrations"
)

// goose keeps base FS and dialect in package globals.
var gooseMu sync.Mutex

// migrate runs goose migrations for the store's dialect.
func (d *DB) migrate(ctx context.Context) error {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	dialect := "postgres"
	if d.dialect == config.DialectSQLite {
		dialect = "sqlite3"
	}

	goose.SetBaseFS(migrations.FS)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("setting goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, d.db, d.dialect); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	return nil
}
