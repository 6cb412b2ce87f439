package migrations

import (
	"io/fs"
	"testing"

	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedMigrationsParse(t *testing.T) {
	files, err := fs.Glob(Migrations, "*.sql")
	require.NoError(t, err)
	require.NotEmpty(t, files)

	goose.SetBaseFS(Migrations)
	t.Cleanup(func() { goose.SetBaseFS(nil) })

	found, err := goose.CollectMigrations(".", 0, goose.MaxVersion)
	require.NoError(t, err)
	assert.Len(t, found, len(files))
	assert.Equal(t, int64(1), found[0].Version)
}
