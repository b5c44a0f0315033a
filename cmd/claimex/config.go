package main

import (
	"context"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/claimex/backend/config"
	"github.com/claimex/backend/pkg/logger"
	"github.com/claimex/backend/pkg/xcontext"
	"github.com/urfave/cli/v2"
)

func (s *srv) loadConfig(cctx *cli.Context) error {
	cfg := config.Configs{
		Env:      getEnv("ENV", "local"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		Database: config.DatabaseConfigs{
			Driver:   getEnv("DB_DRIVER", "sqlite"),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "3306"),
			Database: getEnv("DB_NAME", "claimex.db"),
			User:     getEnv("DB_USER", "claimex"),
			Password: getEnv("DB_PASSWORD", ""),
			LogLevel: getEnv("DB_LOG_LEVEL", "error"),
		},
		ApiServer: config.APIServerConfigs{
			ServerConfigs: config.ServerConfigs{
				Host: getEnv("API_HOST", ""),
				Port: getEnv("API_PORT", "8080"),
				Cert: getEnv("API_CERT", ""),
				Key:  getEnv("API_KEY", ""),
			},
			MaxLimit:       parseInt(getEnv("API_MAX_LIMIT", "100")),
			DefaultLimit:   parseInt(getEnv("API_DEFAULT_LIMIT", "0")),
			AllowedOrigins: parseList(getEnv("API_ALLOWED_ORIGINS", "*")),
			NodeID:         int64(parseInt(getEnv("NODE_ID", "1"))),
			TrustedProxies: parseList(getEnv("API_TRUSTED_PROXIES", "")),
		},
		Auth: config.AuthConfigs{
			TokenSecret: getEnv("TOKEN_SECRET", "token_secret"),
			AccessToken: config.TokenConfigs{
				Name:       "access_token",
				Expiration: parseDuration(getEnv("ACCESS_TOKEN_DURATION", "168h")),
			},
			AdminEmail:    getEnv("ADMIN_EMAIL", "admin@claimex.com"),
			AdminPassword: getEnv("ADMIN_PASSWORD", ""),
			OIDC: config.OIDCConfigs{
				Issuer:   getEnv("OIDC_ISSUER", ""),
				ClientID: getEnv("OIDC_CLIENT_ID", ""),
			},
		},
		Session: config.SessionConfigs{
			Secret: getEnv("SESSION_SECRET", "session_secret"),
			Name:   getEnv("SESSION_NAME", "claimex_session"),
		},
		Storage: config.S3Configs{
			Region:          getEnv("STORAGE_REGION", "us-east-1"),
			Endpoint:        getEnv("STORAGE_ENDPOINT", "localhost:9000"),
			PublicEndpoint:  getEnv("STORAGE_PUBLIC_ENDPOINT", "http://localhost:9000"),
			AccessKey:       getEnv("STORAGE_ACCESS_KEY", ""),
			SecretKey:       getEnv("STORAGE_SECRET_KEY", ""),
			SSLDisabled:     parseBool(getEnv("STORAGE_SSL_DISABLED", "true")),
			AirdropBucket:   getEnv("STORAGE_AIRDROP_BUCKET", "airdrop-images"),
			CommunityBucket: getEnv("STORAGE_COMMUNITY_BUCKET", "community-images"),
		},
		File: config.FileConfigs{
			MaxSize:      int64(parseInt(getEnv("FILE_MAX_SIZE", "2097152"))),
			MaxImageSide: parseInt(getEnv("FILE_MAX_IMAGE_SIDE", "1024")),
		},
		Redis: config.RedisConfigs{
			Addr: getEnv("REDIS_ADDRESS", ""),
		},
		Kafka: config.KafkaConfigs{
			Addr:    getEnv("KAFKA_ADDRESS", ""),
			GroupID: getEnv("KAFKA_GROUP_ID", "claimex"),
		},
		MarketData: config.MarketDataConfigs{
			Endpoint:     getEnv("COINAPI_ENDPOINT", "https://rest.coinapi.io"),
			APIKey:       getEnv("COINAPI_KEY", ""),
			PollInterval: parseDuration(getEnv("COINAPI_POLL_INTERVAL", "10s")),
			CacheTTL:     parseDuration(getEnv("COINAPI_CACHE_TTL", "1m")),
			Timeout:      parseDuration(getEnv("COINAPI_TIMEOUT", "10s")),
		},
		News: config.NewsConfigs{
			Endpoint: getEnv("NEWSDATA_ENDPOINT", "https://newsdata.io"),
			APIKey:   getEnv("NEWSDATA_KEY", ""),
			Query:    getEnv("NEWSDATA_QUERY", "crypto"),
			Language: getEnv("NEWSDATA_LANGUAGE", "en"),
			Category: getEnv("NEWSDATA_CATEGORY", "business,technology"),
			Timeout:  parseDuration(getEnv("NEWSDATA_TIMEOUT", "10s")),
		},
	}

	if path := cctx.String("config"); path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return err
		}
	}

	s.ctx = context.Background()
	s.ctx = xcontext.WithConfigs(s.ctx, cfg)
	s.ctx = xcontext.WithLogger(s.ctx, logger.NewLogger(logger.ParseLevel(cfg.LogLevel)))
	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}

	return fallback
}

func parseDuration(s string) time.Duration {
	duration, err := time.ParseDuration(s)
	if err != nil {
		panic(err)
	}

	return duration
}

func parseInt(s string) int {
	i, err := strconv.Atoi(s)
	if err != nil {
		panic(err)
	}

	return i
}

func parseBool(s string) bool {
	b, err := strconv.ParseBool(s)
	if err != nil {
		panic(err)
	}

	return b
}

func parseList(s string) []string {
	result := []string{}
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			result = append(result, item)
		}
	}

	return result
}
