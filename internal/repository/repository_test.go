package repository

import (
	"database/sql"
	"io"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"

	"github.com/Ordones18/Ponte-Once-Store/internal/database"
	"github.com/Ordones18/Ponte-Once-Store/pkg/logger"
)

func newTestDB(t *testing.T) (*sql.DB, logger.Logger) {
	t.Helper()

	db, err := sql.Open("sqlite3", "file::memory:?_busy_timeout=5000")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	log := logger.New(logger.ErrorLevel, io.Discard)

	require.NoError(t, database.NewMigrationService(db, log).RunMigrations())

	return db, log
}
