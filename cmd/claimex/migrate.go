package main

import (
	"fmt"

	"github.com/claimex/backend/migration"
	"github.com/claimex/backend/pkg/xcontext"
	"github.com/urfave/cli/v2"
)

func (s *srv) startMigrate(cctx *cli.Context) error {
	version := cctx.String("version")
	migrator, ok := migration.Migrators[version]
	if !ok {
		return fmt.Errorf("not found version %s", version)
	}

	s.ctx = xcontext.WithDB(s.ctx, s.newDatabase())
	return migrator(s.ctx)
}
