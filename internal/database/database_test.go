package database

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenPreparesCacheDatabase(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "cache.db"), zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	var journal string
	require.NoError(t, db.QueryRow("PRAGMA journal_mode").Scan(&journal))
	assert.Equal(t, "wal", strings.ToLower(journal))

	var autoVacuum int
	require.NoError(t, db.QueryRow("PRAGMA auto_vacuum").Scan(&autoVacuum))
	assert.Equal(t, 2, autoVacuum, "incremental")

	var table string
	require.NoError(t, db.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = 'cache_entries'`).Scan(&table))
	assert.Equal(t, "cache_entries", table)
}

func TestOpenTwiceKeepsSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.db")

	first, err := Open(path, zerolog.Nop())
	require.NoError(t, err)
	_, err = first.Exec(`INSERT INTO cache_entries (cache_key, value, expires_at, created_at) VALUES ('k', x'7b7d', 1, 1)`)
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := Open(path, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { second.Close() })

	var n int
	require.NoError(t, second.QueryRow(`SELECT COUNT(*) FROM cache_entries`).Scan(&n))
	assert.Equal(t, 1, n)
}

func TestOpenUnreachablePath(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing", "cache.db"), zerolog.Nop())
	assert.Error(t, err)
}

func TestDSN(t *testing.T) {
	got := dsn("/var/lib/archery/cache.db")
	assert.True(t, strings.HasPrefix(got, "file:/var/lib/archery/cache.db?"))
	assert.Contains(t, got, "_journal_mode=WAL")
	assert.Contains(t, got, "_auto_vacuum=incremental")
}
