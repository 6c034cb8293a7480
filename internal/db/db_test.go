package db

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_InMemory(t *testing.T) {
	conn, err := Open(":memory:")
	require.NoError(t, err)
	defer conn.Close()

	// Migrations ran: the kv table accepts writes.
	_, err = conn.Exec(`INSERT INTO kv (key, value) VALUES ('k', 'v')`)
	require.NoError(t, err)

	var value string
	require.NoError(t, conn.QueryRow(`SELECT value FROM kv WHERE key = 'k'`).Scan(&value))
	assert.Equal(t, "v", value)
}

func TestOpen_CreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "portal.db")

	conn, err := Open(path)
	require.NoError(t, err)
	defer conn.Close()

	assert.FileExists(t, path)
}

func TestOpen_ReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "portal.db")

	conn, err := Open(path)
	require.NoError(t, err)
	_, err = conn.Exec(`INSERT INTO kv (key, value) VALUES ('k', 'v')`)
	require.NoError(t, err)
	require.NoError(t, conn.Close())

	// Migrations are idempotent across opens.
	conn, err = Open(path)
	require.NoError(t, err)
	defer conn.Close()

	var value string
	require.NoError(t, conn.QueryRow(`SELECT value FROM kv WHERE key = 'k'`).Scan(&value))
	assert.Equal(t, "v", value)
}
