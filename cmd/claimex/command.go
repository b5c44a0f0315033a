package main

import "github.com/urfave/cli/v2"

func (s *srv) loadApp() {
	configFlag := &cli.StringFlag{
		Name:    "config",
		Usage:   "Path to a toml file overriding the environment",
		EnvVars: []string{"CLAIMEX_CONFIG"},
	}

	s.app = cli.NewApp()
	s.app.Action = cli.ShowAppHelp
	s.app.Name = "Claimex"
	s.app.Usage = "Airdrop discovery backend"
	s.app.Flags = []cli.Flag{configFlag}
	s.app.Before = s.loadConfig
	s.app.Commands = []*cli.Command{
		{
			Action:      s.startApi,
			Name:        "api",
			Usage:       "Start service api",
			Category:    "Api",
			Description: `Used for start service api, it main service included all apis.`,
		},
		{
			Action:      s.startSubscriber,
			Name:        "subscriber",
			Usage:       "Start click subscriber",
			Category:    "Worker",
			Description: `Consumes click events from the message queue and stores them.`,
		},
		{
			Action:      s.startPoller,
			Name:        "poller",
			Usage:       "Start market poller",
			Category:    "Worker",
			Description: `Refreshes the market snapshot cached in redis.`,
		},
		{
			Action: s.startMigrate,
			Name:   "migrate",
			Usage:  "Migrate database schema",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "version",
					Usage: "Migrator to run (auto or sql)",
					Value: "auto",
				},
			},
			Category: "Database",
		},
	}
}
