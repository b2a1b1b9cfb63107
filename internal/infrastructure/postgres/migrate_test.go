package postgres

import (
	"io/fs"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var migrationName = regexp.MustCompile(`^(\d{3})_[a-z_]+\.sql$`)

func TestMigrations_VersionedAndAnnotated(t *testing.T) {
	fsys, err := migrationsFS()
	require.NoError(t, err)
	names, err := fs.Glob(fsys, "*.sql")
	require.NoError(t, err)
	require.NotEmpty(t, names)

	seen := map[string]bool{}
	for _, name := range names {
		m := migrationName.FindStringSubmatch(name)
		require.NotNil(t, m, name)
		assert.False(t, seen[m[1]], "versión repetida %s", m[1])
		seen[m[1]] = true

		raw, err := fs.ReadFile(fsys, name)
		require.NoError(t, err)
		body := string(raw)
		up := strings.Index(body, "-- +goose Up")
		down := strings.Index(body, "-- +goose Down")
		assert.GreaterOrEqual(t, up, 0, name)
		assert.Greater(t, down, up, name)
	}
}
