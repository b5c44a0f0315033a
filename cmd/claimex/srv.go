package main

import (
	"context"
	"strconv"

	"github.com/bwmarrin/snowflake"
	"github.com/claimex/backend/internal/common"
	"github.com/claimex/backend/internal/domain"
	"github.com/claimex/backend/internal/domain/feed"
	"github.com/claimex/backend/internal/domain/session"
	"github.com/claimex/backend/internal/repository"
	"github.com/claimex/backend/migration"
	"github.com/claimex/backend/pkg/api"
	"github.com/claimex/backend/pkg/authenticator"
	"github.com/claimex/backend/pkg/kafka"
	"github.com/claimex/backend/pkg/pubsub"
	"github.com/claimex/backend/pkg/router"
	"github.com/claimex/backend/pkg/storage"
	"github.com/claimex/backend/pkg/xcontext"
	"github.com/claimex/backend/pkg/xredis"
	"github.com/urfave/cli/v2"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type srv struct {
	app *cli.App
	ctx context.Context

	storage     storage.Storage
	redisClient xredis.Client
	publisher   pubsub.Publisher
	oidc        authenticator.IDTokenVerifier
	hub         *session.Hub

	marketData feed.MarketData
	liveNews   feed.News

	userRepo    repository.UserRepository
	airdropRepo repository.AirdropRepository
	postRepo    repository.CommunityPostRepository
	voteRepo    repository.VoteRepository
	pollRepo    repository.PollRepository
	newsRepo    repository.NewsRepository
	clickRepo   repository.ClickRepository

	airdropDomain   domain.AirdropDomain
	communityDomain domain.CommunityDomain
	pollDomain      domain.PollDomain
	newsDomain      domain.NewsDomain
	clickDomain     domain.ClickDomain
	marketDomain    domain.MarketDomain
	authDomain      domain.AuthDomain
	gateDomain      domain.GateDomain

	router *router.Router
}

func (s *srv) newDatabase() *gorm.DB {
	cfg := xcontext.Configs(s.ctx).Database

	var dialector gorm.Dialector
	switch cfg.Driver {
	case "mysql":
		dialector = mysql.Open(cfg.ConnectionString())
	case "postgres":
		dialector = postgres.Open(cfg.ConnectionString())
	case "sqlite":
		dialector = sqlite.Open(cfg.ConnectionString())
	default:
		panic("invalid database driver " + cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormLogLevel(cfg.LogLevel)),
	})
	if err != nil {
		panic(err)
	}

	if cfg.Driver == "sqlite" {
		// sqlite allows a single writer.
		sqlDB, err := db.DB()
		if err != nil {
			panic(err)
		}
		sqlDB.SetMaxOpenConns(1)
	}

	return db
}

func gormLogLevel(level string) gormlogger.LogLevel {
	switch level {
	case "silent":
		return gormlogger.Silent
	case "warn":
		return gormlogger.Warn
	case "info":
		return gormlogger.Info
	default:
		return gormlogger.Error
	}
}

func (s *srv) migrateDB() {
	if err := migration.AutoMigrate(s.ctx); err != nil {
		panic(err)
	}
}

func (s *srv) loadStorage() {
	var err error
	s.storage, err = storage.NewS3Storage(xcontext.Configs(s.ctx).Storage)
	if err != nil {
		panic(err)
	}
}

// loadRedisClient leaves the client nil when redis is not configured, the
// market endpoints then fetch on every request.
func (s *srv) loadRedisClient() {
	if xcontext.Configs(s.ctx).Redis.Addr == "" {
		xcontext.Logger(s.ctx).Warnf("Redis is not configured, market snapshot is not cached")
		return
	}

	redisClient, err := xredis.NewClient(s.ctx)
	if err != nil {
		panic(err)
	}
	s.redisClient = redisClient
}

// loadPublisher leaves the publisher nil when kafka is not configured, clicks
// are then inserted directly.
func (s *srv) loadPublisher() {
	cfg := xcontext.Configs(s.ctx).Kafka
	if cfg.Addr == "" {
		xcontext.Logger(s.ctx).Warnf("Kafka is not configured, clicks are stored directly")
		return
	}

	publisher, err := kafka.NewPublisher("claimex", []string{cfg.Addr})
	if err != nil {
		panic(err)
	}
	s.publisher = publisher
}

func (s *srv) loadOIDC() {
	cfg := xcontext.Configs(s.ctx).Auth.OIDC
	if cfg.Issuer == "" {
		return
	}

	verifier, err := authenticator.NewOIDCVerifier(s.ctx, cfg.Issuer, cfg.ClientID)
	if err != nil {
		panic(err)
	}
	s.oidc = verifier
}

func (s *srv) loadFeeds() {
	cfg := xcontext.Configs(s.ctx)
	metric := api.Metric(observeFeed)

	s.marketData = feed.NewMarketData(
		api.NewGenerator(cfg.MarketData.Endpoint, cfg.MarketData.Timeout, metric),
		cfg.MarketData.APIKey,
	)
	s.liveNews = feed.NewNews(
		api.NewGenerator(cfg.News.Endpoint, cfg.News.Timeout, metric),
		cfg.News,
	)
}

func observeFeed(method, path string, code int, seconds float64) {
	common.PromHistograms[common.FeedRequestDurationSeconds].
		WithLabelValues(method, path, strconv.Itoa(code)).
		Observe(seconds)
}

func (s *srv) loadRepos() {
	s.userRepo = repository.NewUserRepository()
	s.airdropRepo = repository.NewAirdropRepository()
	s.postRepo = repository.NewCommunityPostRepository()
	s.voteRepo = repository.NewVoteRepository()
	s.pollRepo = repository.NewPollRepository()
	s.newsRepo = repository.NewNewsRepository()
	s.clickRepo = repository.NewClickRepository()
}

func (s *srv) loadDomains() {
	cfg := xcontext.Configs(s.ctx)

	node, err := snowflake.NewNode(cfg.ApiServer.NodeID)
	if err != nil {
		panic(err)
	}

	s.hub = session.NewHub()
	s.airdropDomain = domain.NewAirdropDomain(s.airdropRepo, s.userRepo, s.storage)
	s.communityDomain = domain.NewCommunityDomain(s.postRepo, s.voteRepo, s.userRepo, s.storage)
	s.pollDomain = domain.NewPollDomain(s.pollRepo, s.voteRepo, s.userRepo)
	s.newsDomain = domain.NewNewsDomain(s.newsRepo, s.userRepo, s.liveNews)
	s.clickDomain = domain.NewClickDomain(
		s.clickRepo, s.airdropRepo, s.postRepo, s.userRepo, s.publisher, node)
	s.marketDomain = domain.NewMarketDomain(s.marketData, s.redisClient)
	s.authDomain = domain.NewAuthDomain(s.userRepo, s.hub, s.oidc, cfg.ApiServer.AllowedOrigins)
	s.gateDomain = domain.NewGateDomain(s.userRepo)
}
