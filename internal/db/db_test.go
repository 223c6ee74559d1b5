package db

import (
	"errors"
	"fmt"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestUniqueViolation(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantOK     bool
		wantDetail string
	}{
		{"nil", nil, false, ""},
		{"postgres", fmt.Errorf("create: %w", &pgconn.PgError{Code: "23505", ConstraintName: "uq_users_email"}), true, "uq_users_email"},
		{"postgres other code", &pgconn.PgError{Code: "23503"}, false, ""},
		{"mysql", &mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'a@b.c' for key 'users.uq_users_email'"}, true, "users.uq_users_email"},
		{"mysql other", &mysql.MySQLError{Number: 1452}, false, ""},
		{"sqlite", errors.New("UNIQUE constraint failed: users.username"), true, "users.username"},
		{"gorm translated", gorm.ErrDuplicatedKey, true, ""},
		{"unrelated", errors.New("connection refused"), false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			detail, ok := UniqueViolation(tt.err)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantDetail, detail)
		})
	}
}

func TestDialect(t *testing.T) {
	assert.Equal(t, "name ILIKE ?", Postgres.ILike("name"))
	assert.Equal(t, "LOWER(name) LIKE LOWER(?)", MySQL.ILike("name"))
	assert.Equal(t, "CAST(id AS CHAR)", MySQL.Text("id"))
	assert.Equal(t, "CAST(id AS TEXT)", SQLite.Text("id"))
	assert.Equal(t, "CAST(strftime('%m', date) AS INTEGER)", SQLite.Month("date"))
	assert.Equal(t, "EXTRACT(YEAR FROM date)", MySQL.Year("date"))
	assert.Equal(t, "%rent%", Contains("rent"))
}

func TestMySQLDSN(t *testing.T) {
	dsn, err := mysqlDSN("famledger:pw@tcp(localhost:3306)/famledger?charset=utf8mb4")
	require.NoError(t, err)
	assert.Contains(t, dsn, "parseTime=true")
	assert.Contains(t, dsn, "charset=utf8mb4")

	cfg, err := mysql.ParseDSN(dsn)
	require.NoError(t, err)
	assert.True(t, cfg.ParseTime)
	assert.Equal(t, "famledger", cfg.DBName)

	_, err = mysqlDSN("not a dsn")
	assert.Error(t, err)
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := Open("oracle", "", Options{})
	assert.ErrorContains(t, err, "unsupported driver")
}
