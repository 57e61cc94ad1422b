package database

import (
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func mockGormDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func TestGetReadDB(t *testing.T) {
	prevRead := readDB
	t.Cleanup(func() { readDB = prevRead })

	readDB = nil
	assert.Nil(t, GetReadDB(), "no replica means callers use the primary")

	replica, _ := mockGormDB(t)
	readDB = replica
	assert.Same(t, replica, GetReadDB())
}

func TestReadReplicaServesQueries(t *testing.T) {
	replica, mock := mockGormDB(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "likes"`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	var count int64
	require.NoError(t, replica.Table("likes").Count(&count).Error)
	assert.Equal(t, int64(3), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}
