package migration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/claimex/backend/pkg/testutil"
	"github.com/claimex/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func TestMigrationsTempDir(t *testing.T) {
	dir, err := MigrationsTempDir()
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	for _, name := range []string{"000001_init.up.sql", "000001_init.down.sql"} {
		_, err := os.Stat(filepath.Join(dir, name))
		require.NoError(t, err)
	}
}

func TestMigrate_NonMySQLFallsBackToAuto(t *testing.T) {
	ctx := testutil.MockContext()
	cfg := xcontext.Configs(ctx)
	cfg.Database.Driver = "sqlite"
	ctx = xcontext.WithConfigs(ctx, cfg)

	require.NoError(t, Migrators["sql"](ctx))
	require.True(t, xcontext.DB(ctx).Migrator().HasTable("clicks"))
	require.True(t, xcontext.DB(ctx).Migrator().HasTable("news"))
}
