package migration

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateMigration(t *testing.T) {
	dir := t.TempDir()

	mf, err := CreateMigration(dir, "Create Sync Tables")
	require.NoError(t, err)

	assert.NotEmpty(t, mf.Version)
	assert.FileExists(t, mf.UpPath)
	assert.FileExists(t, mf.DownPath)
	assert.Contains(t, mf.UpPath, "create_sync_tables.up.sql")
	assert.Contains(t, mf.DownPath, "create_sync_tables.down.sql")

	up, err := os.ReadFile(mf.UpPath)
	require.NoError(t, err)
	assert.Contains(t, string(up), "Create Sync Tables")
}

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Create Sync Tables", "create_sync_tables"},
		{"add-index--twice", "add_index_twice"},
		{"trailing ", "trailing"},
		{"MiXeD123", "mixed123"},
		{"weird!@#chars", "weirdchars"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, sanitizeName(tt.input))
		})
	}
}

func TestListMigrations(t *testing.T) {
	dir := t.TempDir()

	migrations, err := ListMigrations(dir)
	require.NoError(t, err)
	assert.Empty(t, migrations)

	_, err = CreateMigration(dir, "first")
	require.NoError(t, err)

	migrations, err = ListMigrations(dir)
	require.NoError(t, err)
	require.Len(t, migrations, 1)
	assert.Contains(t, migrations[0], "first")
}

func TestListMigrations_MissingDirectory(t *testing.T) {
	migrations, err := ListMigrations("/nonexistent/path")
	require.NoError(t, err)
	assert.Empty(t, migrations)
}
