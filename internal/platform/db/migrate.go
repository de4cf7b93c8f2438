package db

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	migratemysql "github.com/golang-migrate/migrate/v4/database/mysql"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// newMigrator はプールから1接続だけ借りる。m.Close() で閉じるのはその接続のみで、
// プール自体はサーバがそのまま使い続ける。
func newMigrator(ctx context.Context, pool *sql.DB) (*migrate.Migrate, error) {
	src, err := iofs.New(migrationFiles, "migrations")
	if err != nil {
		return nil, fmt.Errorf("マイグレーションソースの読み込み失敗: %w", err)
	}
	conn, err := pool.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("マイグレーション用接続の取得失敗: %w", err)
	}
	drv, err := migratemysql.WithConnection(ctx, conn, &migratemysql.Config{})
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("マイグレーションドライバ初期化失敗: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "mysql", drv)
	if err != nil {
		drv.Close()
		return nil, err
	}
	return m, nil
}

// MigrateUp applies every pending migration. Already up to date is not an error.
// pool stays open for the caller.
func MigrateUp(ctx context.Context, pool *sql.DB) error {
	m, err := newMigrator(ctx, pool)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate up: %w", err)
	}
	return nil
}

// MigrateDown rolls back steps migrations.
func MigrateDown(ctx context.Context, pool *sql.DB, steps int) error {
	if steps <= 0 {
		return errors.New("steps must be > 0")
	}
	m, err := newMigrator(ctx, pool)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Steps(-steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate down: %w", err)
	}
	return nil
}

// MigrationNames lists the embedded up migrations in apply order.
func MigrationNames() ([]string, error) {
	entries, err := migrationFiles.ReadDir("migrations")
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if n := e.Name(); strings.HasSuffix(n, ".up.sql") {
			names = append(names, n)
		}
	}
	return names, nil
}
