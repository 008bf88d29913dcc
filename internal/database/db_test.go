package database

import (
	"testing"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDSN(t *testing.T) {
	cfg, err := mysql.ParseDSN(DSN("stagex", "s3cret", "db", "3306", "stagex"))
	require.NoError(t, err)
	assert.Equal(t, "tcp", cfg.Net)
	assert.Equal(t, "db:3306", cfg.Addr)
	assert.Equal(t, "stagex", cfg.User)
	assert.Equal(t, "s3cret", cfg.Passwd)
	assert.Equal(t, "stagex", cfg.DBName)
	assert.True(t, cfg.ParseTime)
	assert.Equal(t, time.UTC, cfg.Loc)
	assert.Equal(t, "utf8mb4_unicode_ci", cfg.Collation)
	assert.Equal(t, "'+00:00'", cfg.Params["time_zone"])
}

func TestDSN_NoPassword(t *testing.T) {
	dsn := DSN("root", "", "localhost", "3306", "stagex")
	assert.Contains(t, dsn, "root@tcp(localhost:3306)/stagex?")

	cfg, err := mysql.ParseDSN(dsn)
	require.NoError(t, err)
	assert.Empty(t, cfg.Passwd)
}
