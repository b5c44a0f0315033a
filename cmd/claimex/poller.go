package main

import (
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/claimex/backend/internal/domain/cron"
	"github.com/claimex/backend/internal/domain/feed"
	"github.com/claimex/backend/internal/domain/listing"
	"github.com/claimex/backend/pkg/xcontext"
	"github.com/urfave/cli/v2"
)

func (s *srv) startPoller(*cli.Context) error {
	s.loadRedisClient()
	if s.redisClient == nil {
		return errors.New("redis address is required")
	}
	s.loadFeeds()

	ctx, stop := signal.NotifyContext(s.ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := xcontext.Configs(s.ctx).MarketData
	cronJobManager := cron.NewCronJobManager()
	cronJobManager.Register(cron.NewMarketPollerJob(
		s.marketData,
		s.redisClient,
		&listing.Collection[feed.Asset]{},
		cfg.PollInterval,
		cfg.CacheTTL,
	))
	cronJobManager.Start(ctx)

	return nil
}
