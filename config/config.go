package config

import (
	"fmt"
	"time"
)

type Configs struct {
	Env      string `toml:"env"`
	LogLevel string `toml:"log_level"`

	Database   DatabaseConfigs   `toml:"database"`
	ApiServer  APIServerConfigs  `toml:"api_server"`
	Auth       AuthConfigs       `toml:"auth"`
	Session    SessionConfigs    `toml:"session"`
	Storage    S3Configs         `toml:"storage"`
	File       FileConfigs       `toml:"file"`
	Redis      RedisConfigs      `toml:"redis"`
	Kafka      KafkaConfigs      `toml:"kafka"`
	MarketData MarketDataConfigs `toml:"market_data"`
	News       NewsConfigs       `toml:"news"`
}

type DatabaseConfigs struct {
	Driver   string `toml:"driver"`
	Host     string `toml:"host"`
	Port     string `toml:"port"`
	Database string `toml:"database"`
	User     string `toml:"user"`
	Password string `toml:"password"`
	LogLevel string `toml:"log_level"`
}

func (d *DatabaseConfigs) ConnectionString() string {
	switch d.Driver {
	case "postgres":
		return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			d.Host,
			d.Port,
			d.User,
			d.Password,
			d.Database,
		)
	case "sqlite":
		return d.Database
	default:
		return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			d.User,
			d.Password,
			d.Host,
			d.Port,
			d.Database,
		)
	}
}

type ServerConfigs struct {
	Host string `toml:"host"`
	Port string `toml:"port"`
	Cert string `toml:"cert"`
	Key  string `toml:"key"`
}

type APIServerConfigs struct {
	ServerConfigs `toml:"server"`

	MaxLimit       int      `toml:"max_limit"`
	DefaultLimit   int      `toml:"default_limit"`
	AllowedOrigins []string `toml:"allowed_origins"`

	// NodeID seeds the snowflake generator of click ids, unique per instance.
	NodeID int64 `toml:"node_id"`

	// TrustedProxies lists the addresses or CIDRs of reverse proxies whose
	// X-Forwarded-For header is honored.
	TrustedProxies []string `toml:"trusted_proxies"`
}

type SessionConfigs struct {
	Secret string `toml:"secret"`
	Name   string `toml:"name"`
}

type AuthConfigs struct {
	TokenSecret string       `toml:"token_secret"`
	AccessToken TokenConfigs `toml:"access_token"`

	// AdminEmail is compared case-sensitively against the signed-in user's
	// email to grant the admin role. The address cannot be self-registered;
	// its account is provisioned at startup with AdminPassword.
	AdminEmail    string `toml:"admin_email"`
	AdminPassword string `toml:"admin_password"`

	OIDC OIDCConfigs `toml:"oidc"`
}

type TokenConfigs struct {
	Name       string        `toml:"name"`
	Expiration time.Duration `toml:"expiration"`
}

type OIDCConfigs struct {
	Issuer   string `toml:"issuer"`
	ClientID string `toml:"client_id"`
}

type S3Configs struct {
	Region         string `toml:"region"`
	Endpoint       string `toml:"endpoint"`
	PublicEndpoint string `toml:"public_endpoint"`
	AccessKey      string `toml:"access_key"`
	SecretKey      string `toml:"secret_key"`
	SSLDisabled    bool   `toml:"ssl_disabled"`

	AirdropBucket   string `toml:"airdrop_bucket"`
	CommunityBucket string `toml:"community_bucket"`
}

type FileConfigs struct {
	MaxSize      int64 `toml:"max_size"`
	MaxImageSide int   `toml:"max_image_side"`
}

type RedisConfigs struct {
	Addr string `toml:"addr"`
}

type KafkaConfigs struct {
	Addr    string `toml:"addr"`
	GroupID string `toml:"group_id"`
}

type MarketDataConfigs struct {
	Endpoint     string        `toml:"endpoint"`
	APIKey       string        `toml:"api_key"`
	PollInterval time.Duration `toml:"poll_interval"`
	CacheTTL     time.Duration `toml:"cache_ttl"`
	Timeout      time.Duration `toml:"timeout"`
}

type NewsConfigs struct {
	Endpoint string        `toml:"endpoint"`
	APIKey   string        `toml:"api_key"`
	Query    string        `toml:"query"`
	Language string        `toml:"language"`
	Category string        `toml:"category"`
	Timeout  time.Duration `toml:"timeout"`
}
