package main

import (
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/claimex/backend/internal/domain"
	"github.com/claimex/backend/pkg/kafka"
	"github.com/claimex/backend/pkg/xcontext"
	"github.com/urfave/cli/v2"
)

func (s *srv) startSubscriber(*cli.Context) error {
	cfg := xcontext.Configs(s.ctx)
	if cfg.Kafka.Addr == "" {
		return errors.New("kafka address is required")
	}

	s.ctx = xcontext.WithDB(s.ctx, s.newDatabase())
	s.migrateDB()
	s.loadRepos()
	s.loadDomains()

	subscriber, err := kafka.NewSubscriber(
		cfg.Kafka.GroupID,
		[]string{cfg.Kafka.Addr},
		[]string{domain.ClickTopic},
		s.clickDomain.Subscribe,
	)
	if err != nil {
		return err
	}
	defer subscriber.Stop(s.ctx)

	ctx, stop := signal.NotifyContext(s.ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	xcontext.Logger(s.ctx).Infof("Subscribing to topic %s", domain.ClickTopic)
	subscriber.Subscribe(ctx)
	return nil
}
