package db

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"strconv"
	"time"

	mysql "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
)

const DriverName = "mysql"

// DSN builds the driver DSN. parseTime and UTC are required by the stores.
func DSN(c DatabaseConfig) string {
	mc := mysql.NewConfig()
	mc.User = c.Username
	mc.Passwd = c.Password
	mc.Net = "tcp"
	mc.Addr = net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
	mc.DBName = c.DBName
	mc.ParseTime = true
	mc.Loc = time.UTC
	mc.Timeout = 3 * time.Second
	mc.ReadTimeout = 5 * time.Second
	mc.WriteTimeout = 5 * time.Second
	// マイグレーションファイルの複数ステートメント用
	mc.MultiStatements = true
	return mc.FormatDSN()
}

func Connect(ctx context.Context, c DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open(DriverName, DSN(c))
	if err != nil {
		return nil, fmt.Errorf("接続準備に失敗: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("DB接続に失敗: %w", err)
	}

	// 接続プール（合算がMySQLの max_connections を超えないよう配分する）
	db.SetMaxOpenConns(80)
	db.SetMaxIdleConns(20)
	db.SetConnMaxLifetime(30 * time.Minute)
	db.SetConnMaxIdleTime(5 * time.Minute)

	return db, nil
}

// Wrap gives the stores a sqlx handle over an existing pool (or a sqlmock DB in tests).
func Wrap(db *sql.DB) *sqlx.DB {
	return sqlx.NewDb(db, DriverName)
}
