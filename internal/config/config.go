package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Cache     CacheConfig
	Log       LogConfig
	Map       MapConfig
	Search    SearchConfig
	Refresher RefresherConfig
	Ingest    IngestConfig
	Admin     AdminConfig
}

type ServerConfig struct {
	Host string
	Port int
	Env  string
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxConns        int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type CacheConfig struct {
	MapCacheTTL time.Duration
}

type LogConfig struct {
	Level string
}

// MapConfig drives the zoom-adaptive map query split.
type MapConfig struct {
	AggregateZoomThreshold float64 // below this, areas aggregate; at or above, shop points
	MaxShopPoints          int
}

type SearchConfig struct {
	DefaultRadiusM float64
	DefaultLimit   int
}

type RefresherConfig struct {
	Enabled     bool
	Interval    time.Duration
	RunTimeout  time.Duration
	CountryCode string
}

type IngestConfig struct {
	RegionsFile      string
	SubRegionsFile   string
	PlansFile        string
	ShopsFile        string
	CountryCode      string
	ForceReplace     bool
	FallbackCentroid string // "lat,lon" used when a source geometry has no centroid
}

type AdminConfig struct {
	SharedSecret string
	AllowedIPs   []string
}

func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: viper.GetString("API_HOST"),
			Port: viper.GetInt("API_PORT"),
			Env:  viper.GetString("API_ENV"),
		},
		Database: DatabaseConfig{
			Host:            viper.GetString("DB_HOST"),
			Port:            viper.GetInt("DB_PORT"),
			User:            viper.GetString("DB_USER"),
			Password:        viper.GetString("DB_PASSWORD"),
			DBName:          viper.GetString("DB_NAME"),
			SSLMode:         viper.GetString("DB_SSLMODE"),
			MaxConns:        viper.GetInt("DB_MAX_CONNS"),
			MaxIdleConns:    viper.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: time.Duration(viper.GetInt("DB_CONN_MAX_LIFETIME")) * time.Second,
			ConnMaxIdleTime: time.Duration(viper.GetInt("DB_CONN_MAX_IDLE_TIME")) * time.Second,
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetInt("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Cache: CacheConfig{
			MapCacheTTL: time.Duration(viper.GetInt("MAP_CACHE_TTL")) * time.Second,
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
		Map: MapConfig{
			AggregateZoomThreshold: viper.GetFloat64("MAP_ZOOM_AGGREGATE_THRESHOLD"),
			MaxShopPoints:          viper.GetInt("MAP_MAX_SHOP_POINTS"),
		},
		Search: SearchConfig{
			DefaultRadiusM: viper.GetFloat64("SEARCH_DEFAULT_RADIUS_M"),
			DefaultLimit:   viper.GetInt("SEARCH_DEFAULT_LIMIT"),
		},
		Refresher: RefresherConfig{
			Enabled:     viper.GetBool("REFRESHER_ENABLED"),
			Interval:    time.Duration(viper.GetInt("REFRESHER_INTERVAL")) * time.Second,
			RunTimeout:  time.Duration(viper.GetInt("REFRESHER_RUN_TIMEOUT")) * time.Second,
			CountryCode: viper.GetString("REFRESHER_COUNTRY_CODE"),
		},
		Ingest: IngestConfig{
			RegionsFile:      viper.GetString("INGEST_REGIONS_FILE"),
			SubRegionsFile:   viper.GetString("INGEST_SUBREGIONS_FILE"),
			PlansFile:        viper.GetString("INGEST_PLANS_FILE"),
			ShopsFile:        viper.GetString("INGEST_SHOPS_FILE"),
			CountryCode:      viper.GetString("INGEST_COUNTRY_CODE"),
			ForceReplace:     viper.GetBool("INGEST_FORCE_REPLACE"),
			FallbackCentroid: viper.GetString("INGEST_FALLBACK_CENTROID"),
		},
		Admin: AdminConfig{
			SharedSecret: viper.GetString("ADMIN_SHARED_SECRET"),
			AllowedIPs:   parseList(viper.GetString("ADMIN_ALLOWED_IPS")),
		},
	}

	// Set default values if not provided
	if cfg.Cache.MapCacheTTL == 0 {
		cfg.Cache.MapCacheTTL = 60 * time.Second
	}
	if cfg.Map.AggregateZoomThreshold == 0 {
		cfg.Map.AggregateZoomThreshold = 10
	}
	if cfg.Map.MaxShopPoints == 0 {
		cfg.Map.MaxShopPoints = 500
	}
	if cfg.Search.DefaultRadiusM == 0 {
		cfg.Search.DefaultRadiusM = 5000
	}
	if cfg.Search.DefaultLimit == 0 {
		cfg.Search.DefaultLimit = 50
	}
	if cfg.Refresher.Interval == 0 {
		cfg.Refresher.Interval = 15 * time.Minute
	}
	if cfg.Refresher.RunTimeout == 0 {
		cfg.Refresher.RunTimeout = 5 * time.Minute
	}
	if cfg.Ingest.CountryCode == "" {
		cfg.Ingest.CountryCode = "EG"
	}

	return cfg, nil
}

func parseList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
		c.Database.SSLMode,
	)
}

func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}
