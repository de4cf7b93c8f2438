package db

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ドライバ初期化時に流れるクエリ（バージョンテーブルは既存）
func expectDriverInit(mock sqlmock.Sqlmock) {
	mock.ExpectQuery(regexp.QuoteMeta("SELECT DATABASE()")).
		WillReturnRows(sqlmock.NewRows([]string{"DATABASE()"}).AddRow("library"))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT GET_LOCK(?, 10)")).
		WillReturnRows(sqlmock.NewRows([]string{"lock"}).AddRow(true))
	mock.ExpectQuery(regexp.QuoteMeta("SHOW TABLES LIKE 'schema_migrations'")).
		WillReturnRows(sqlmock.NewRows([]string{"table"}).AddRow("schema_migrations"))
	mock.ExpectExec(regexp.QuoteMeta("SELECT RELEASE_LOCK(?)")).
		WillReturnResult(sqlmock.NewResult(0, 0))
}

func TestMigratorCloseKeepsPoolOpen(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()

	expectDriverInit(mock)

	m, err := newMigrator(context.Background(), conn)
	require.NoError(t, err)
	srcErr, dbErr := m.Close()
	require.NoError(t, srcErr)
	require.NoError(t, dbErr)

	// サーバは同じプールを使い続ける
	require.NoError(t, conn.Ping())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrateUp_NoChangeKeepsPoolOpen(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()

	expectDriverInit(mock)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT GET_LOCK(?, 10)")).
		WillReturnRows(sqlmock.NewRows([]string{"lock"}).AddRow(true))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT version, dirty FROM `schema_migrations` LIMIT 1")).
		WillReturnRows(sqlmock.NewRows([]string{"version", "dirty"}).AddRow(5, false))
	mock.ExpectExec(regexp.QuoteMeta("SELECT RELEASE_LOCK(?)")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, MigrateUp(context.Background(), conn))

	require.NoError(t, conn.Ping())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrateDown_RejectsNonPositiveSteps(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()

	require.Error(t, MigrateDown(context.Background(), conn, 0))
	assert.NoError(t, mock.ExpectationsWereMet())
}
