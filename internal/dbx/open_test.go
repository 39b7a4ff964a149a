package dbx

import (
	"errors"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun/dialect"
)

func TestParseDSN(t *testing.T) {
	tests := []struct {
		name       string
		dsn        string
		wantDriver Driver
		wantDSN    string
		wantErr    bool
	}{
		{
			name:       "postgres url",
			dsn:        "postgres://u:p@localhost:5432/app?sslmode=disable",
			wantDriver: DriverPostgres,
			wantDSN:    "postgres://u:p@localhost:5432/app?sslmode=disable",
		},
		{
			name:       "postgresql with async driver suffix",
			dsn:        "postgresql+asyncpg://u:p@db:5432/app",
			wantDriver: DriverPostgres,
			wantDSN:    "postgres://u:p@db:5432/app",
		},
		{
			name:       "sqlite relative",
			dsn:        "sqlite://vitrum.db",
			wantDriver: DriverSQLite,
			wantDSN:    "vitrum.db?_pragma=foreign_keys(1)",
		},
		{
			name:       "sqlite with driver suffix and dot path",
			dsn:        "sqlite+aiosqlite:///./app.db",
			wantDriver: DriverSQLite,
			wantDSN:    "./app.db?_pragma=foreign_keys(1)",
		},
		{
			name:       "sqlite absolute",
			dsn:        "sqlite:///var/lib/vitrum.db",
			wantDriver: DriverSQLite,
			wantDSN:    "/var/lib/vitrum.db?_pragma=foreign_keys(1)",
		},
		{
			name:       "file uri keeps query",
			dsn:        "file:x?mode=memory&cache=shared",
			wantDriver: DriverSQLite,
			wantDSN:    "file:x?mode=memory&cache=shared&_pragma=foreign_keys(1)",
		},
		{
			name:       "mysql forces parseTime",
			dsn:        "mysql://u:p@tcp(localhost:3306)/app",
			wantDriver: DriverMySQL,
		},
		{name: "unknown scheme", dsn: "redis://localhost", wantErr: true},
		{name: "garbage", dsn: "not a dsn", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			driver, dsn, err := ParseDSN(tt.dsn)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantDriver, driver)
			if tt.wantDSN != "" {
				assert.Equal(t, tt.wantDSN, dsn)
			}
			if driver == DriverMySQL {
				assert.Contains(t, dsn, "parseTime=true")
			}
		})
	}
}

func TestOpen_SelectsDialect(t *testing.T) {
	db, err := Open("file:open_dialect?mode=memory&cache=shared")
	require.NoError(t, err)
	defer db.Close()

	assert.Equal(t, dialect.SQLite, db.Dialect().Name())
	assert.Equal(t, 1, db.Stats().MaxOpenConnections)
}

func TestOpen_InvalidDSN(t *testing.T) {
	_, err := Open("ftp://nowhere")
	require.Error(t, err)
}

func TestNewBunDB_Dialects(t *testing.T) {
	db, err := Open("file:open_bun?mode=memory&cache=shared")
	require.NoError(t, err)
	defer db.Close()

	assert.Equal(t, dialect.PG, NewBunDB(db.DB, DriverPostgres).Dialect().Name())
	assert.Equal(t, dialect.MySQL, NewBunDB(db.DB, DriverMySQL).Dialect().Name())
	assert.Equal(t, dialect.SQLite, NewBunDB(db.DB, DriverSQLite).Dialect().Name())
}

func TestIsUniqueViolation_DriverErrors(t *testing.T) {
	assert.True(t, IsUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.True(t, IsUniqueViolation(&mysql.MySQLError{Number: 1062}))
	assert.False(t, IsUniqueViolation(&mysql.MySQLError{Number: 1452}))
	assert.False(t, IsUniqueViolation(errors.New("connection refused")))
	assert.False(t, IsUniqueViolation(nil))
}
