package testutil

import (
	"context"
	"time"

	"github.com/claimex/backend/config"
	"github.com/claimex/backend/internal/entity"
	"github.com/claimex/backend/pkg/authenticator"
	"github.com/claimex/backend/pkg/logger"
	"github.com/claimex/backend/pkg/xcontext"
	"github.com/gorilla/sessions"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func MockConfigs() config.Configs {
	return config.Configs{
		Env: "test",
		ApiServer: config.APIServerConfigs{
			MaxLimit:     50,
			DefaultLimit: 0,
		},
		Auth: config.AuthConfigs{
			TokenSecret: "secret",
			AccessToken: config.TokenConfigs{
				Name:       "access_token",
				Expiration: time.Minute,
			},
			AdminEmail: "admin@claimex.com",
		},
		Session: config.SessionConfigs{
			Secret: "session-secret",
			Name:   "claimex",
		},
		Storage: config.S3Configs{
			AirdropBucket:   "airdrop-images",
			CommunityBucket: "community-images",
		},
		File: config.FileConfigs{
			MaxSize:      2 * 1024 * 1024,
			MaxImageSide: 256,
		},
	}
}

// MockContext returns a context holding a fresh in-memory database with all
// tables migrated.
func MockContext() context.Context {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		panic(err)
	}

	// Every connection of sqlite :memory: is a different database.
	sqlDB, err := db.DB()
	if err != nil {
		panic(err)
	}
	sqlDB.SetMaxOpenConns(1)

	cfg := MockConfigs()

	ctx := context.Background()
	ctx = xcontext.WithConfigs(ctx, cfg)
	ctx = xcontext.WithLogger(ctx, logger.NewNopLogger())
	ctx = xcontext.WithTokenEngine(ctx, authenticator.NewTokenEngine(cfg.Auth.TokenSecret))
	ctx = xcontext.WithSessionStore(ctx, sessions.NewCookieStore([]byte(cfg.Session.Secret)))
	ctx = xcontext.WithDB(ctx, db)

	if err := entity.MigrateTable(ctx); err != nil {
		panic(err)
	}

	return ctx
}

func MockContextWithUserID(userID string) context.Context {
	return xcontext.WithRequestUserID(MockContext(), userID)
}
