package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	HTTP     HTTP
	ESPNAPI  ESPNAPI
	Cache    Cache
	Fallback Fallback
	Backend  Backend
	Telegram TelegramBot
	Log      Log
}

type HTTP struct {
	Port        string   `envconfig:"PORT" default:"8080"`
	CORSOrigins []string `envconfig:"CORS_ORIGINS" default:"*"`
}

type ESPNAPI struct {
	SiteURL      string        `envconfig:"ESPN_SITE_URL" default:"https://site.api.espn.com/apis/site/v2/sports"`
	CoreURL      string        `envconfig:"ESPN_CORE_URL" default:"https://sports.core.api.espn.com/v2/sports/football/leagues"`
	Timeout      time.Duration `envconfig:"ESPN_TIMEOUT" default:"10s"`
	UserAgent    string        `envconfig:"ESPN_USER_AGENT" default:"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"`
	WeekInterval time.Duration `envconfig:"ESPN_WEEK_INTERVAL" default:"100ms"`
	Timezone     string        `envconfig:"ESPN_TIMEZONE" default:"America/New_York"`
	MaxWeek      int           `envconfig:"ESPN_MAX_WEEK" default:"18"`
}

type Cache struct {
	Backend       string        `envconfig:"CACHE_BACKEND" default:"memory"`
	TTL           time.Duration `envconfig:"CACHE_TTL" default:"5m"`
	RedisURL      string        `envconfig:"REDIS_URL" default:"redis://localhost:6379/0"`
	PruneInterval time.Duration `envconfig:"CACHE_PRUNE_INTERVAL" default:"10m"`
}

type Fallback struct {
	RosterSize int `envconfig:"ROSTER_SIZE" default:"53"`
}

type Backend struct {
	URL     string        `envconfig:"BACKEND_URL" default:"http://localhost:8000"`
	Timeout time.Duration `envconfig:"BACKEND_TIMEOUT" default:"30s"`
}

// TelegramBot is optional; the bot only starts when Token is set.
type TelegramBot struct {
	Token          string `envconfig:"TELEGRAM_TOKEN"`
	ChatID         int64  `envconfig:"CHAT_ID"`
	FavoriteTeam   string `envconfig:"FAVORITE_TEAM"`
	FavoriteLeague string `envconfig:"FAVORITE_LEAGUE" default:"nfl"`
}

type Log struct {
	Level string `envconfig:"LOG_LEVEL" default:"info"`
	File  string `envconfig:"LOG_FILE"`
}

const (
	CacheMemory = "memory"
	CacheRedis  = "redis"
	CacheNone   = "none"
)

func New() (*Config, error) {
	var c Config
	err := envconfig.Process("", &c)
	if err != nil {
		return nil, err
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) validate() error {
	c.Cache.Backend = strings.ToLower(strings.TrimSpace(c.Cache.Backend))
	switch c.Cache.Backend {
	case CacheMemory, CacheRedis, CacheNone:
	default:
		return fmt.Errorf("unsupported cache backend %q", c.Cache.Backend)
	}
	if c.ESPNAPI.MaxWeek <= 0 {
		return fmt.Errorf("ESPN_MAX_WEEK must be positive, got %d", c.ESPNAPI.MaxWeek)
	}
	if c.Fallback.RosterSize <= 0 {
		return fmt.Errorf("ROSTER_SIZE must be positive, got %d", c.Fallback.RosterSize)
	}
	return nil
}
