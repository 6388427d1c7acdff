package migrations

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedMigrationsArePaired(t *testing.T) {
	names, err := fs.Glob(files, "sql/*.sql")
	require.NoError(t, err)
	require.NotEmpty(t, names)

	ups, downs := 0, 0
	for _, name := range names {
		switch {
		case strings.HasSuffix(name, ".up.sql"):
			ups++
		case strings.HasSuffix(name, ".down.sql"):
			downs++
		}
	}
	assert.Equal(t, ups, downs)

	src, err := iofs.New(files, "sql")
	require.NoError(t, err)
	first, err := src.First()
	require.NoError(t, err)
	assert.Equal(t, uint(1), first)
}

func TestSchemaRestrictsDependentDeletes(t *testing.T) {
	schema, err := fs.ReadFile(files, "sql/000001_schema.up.sql")
	require.NoError(t, err)

	for _, ref := range []string{
		"airline_id     BIGINT NOT NULL REFERENCES airlines (id) ON DELETE RESTRICT",
		"destination_id BIGINT NOT NULL REFERENCES destinations (id) ON DELETE RESTRICT",
		"pilot_id       BIGINT NOT NULL REFERENCES pilots (id) ON DELETE RESTRICT",
		"passenger_id    BIGINT NOT NULL REFERENCES passengers (id) ON DELETE RESTRICT",
		"flight_id       BIGINT NOT NULL REFERENCES flights (id) ON DELETE RESTRICT",
	} {
		assert.Contains(t, string(schema), ref)
	}
	assert.NotContains(t, string(schema), "CASCADE")
}
