// internal/config/config.go
package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Listen  string `mapstructure:"listen"`
	Storage struct {
		Backend  string `mapstructure:"backend"` // memory | postgres | redis
		Postgres struct {
			URL string `mapstructure:"url"`
		} `mapstructure:"postgres"`
		Redis struct {
			Addr     string `mapstructure:"addr"`
			Password string `mapstructure:"password"`
			DB       int    `mapstructure:"db"`
		} `mapstructure:"redis"`
	} `mapstructure:"storage"`
	Logging struct {
		Level  string `mapstructure:"level"`
		Format string `mapstructure:"format"`
	} `mapstructure:"logging"`
	Security struct {
		RequestID struct {
			TrustHeader bool `mapstructure:"trust_header"`
		} `mapstructure:"request_id"`
		Session struct {
			SweeperInterval time.Duration `mapstructure:"sweeper_interval"`
			TTL             time.Duration `mapstructure:"ttl"`
			CookieSecure    bool          `mapstructure:"cookie_secure"`
			SameSite        string        `mapstructure:"same_site"`
		} `mapstructure:"session"`
		RateLimit struct {
			Enabled           bool `mapstructure:"enabled"`
			RequestsPerMinute int  `mapstructure:"rpm"`
			Burst             int  `mapstructure:"burst"`
		} `mapstructure:"rate_limit"`
	} `mapstructure:"security"`
	Sync struct {
		Timeout time.Duration `mapstructure:"timeout"`
	} `mapstructure:"sync"`
	Advisor struct {
		Endpoint string        `mapstructure:"endpoint"`
		APIKey   string        `mapstructure:"api_key"`
		Timeout  time.Duration `mapstructure:"timeout"`
	} `mapstructure:"advisor"`
	CORS struct {
		AllowedOrigins []string `mapstructure:"allowed_origins"`
	} `mapstructure:"cors"`
}

func Load() Config {
	viper.SetDefault("listen", "127.0.0.1:8080")
	viper.SetDefault("storage.backend", "memory")
	viper.SetDefault("storage.redis.addr", "localhost:6379")
	// Sensible logging defaults
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "text")
	// Security defaults
	viper.SetDefault("security.request_id.trust_header", false)
	viper.SetDefault("security.session.sweeper_interval", "5m")
	viper.SetDefault("security.session.ttl", "8h")
	viper.SetDefault("security.session.cookie_secure", false)
	viper.SetDefault("security.session.same_site", "lax")
	viper.SetDefault("security.rate_limit.enabled", true)
	viper.SetDefault("security.rate_limit.rpm", 240)
	viper.SetDefault("security.rate_limit.burst", 60)
	viper.SetDefault("sync.timeout", "30s")
	viper.SetDefault("advisor.timeout", "60s")
	viper.SetDefault("cors.allowed_origins", []string{
		"http://localhost:5500", "http://localhost:3000",
		"http://127.0.0.1:5500", "http://127.0.0.1:3000",
	})

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	_ = viper.ReadInConfig()

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// explicit bindings
	_ = viper.BindEnv("listen", "LISTEN_ADDR")
	_ = viper.BindEnv("storage.backend", "STORAGE_BACKEND")
	_ = viper.BindEnv("storage.postgres.url", "DATABASE_URL")
	_ = viper.BindEnv("storage.redis.addr", "REDIS_ADDR")
	_ = viper.BindEnv("storage.redis.password", "REDIS_PASSWORD")
	_ = viper.BindEnv("logging.level", "LOG_LEVEL")
	_ = viper.BindEnv("logging.format", "LOG_FORMAT")
	_ = viper.BindEnv("security.request_id.trust_header", "REQUEST_ID_TRUST_HEADER")
	_ = viper.BindEnv("security.session.sweeper_interval", "SESSION_SWEEPER_INTERVAL")
	_ = viper.BindEnv("security.session.ttl", "SESSION_TTL")
	_ = viper.BindEnv("security.session.cookie_secure", "SESSION_COOKIE_SECURE")
	_ = viper.BindEnv("security.session.same_site", "SESSION_SAME_SITE")
	_ = viper.BindEnv("security.rate_limit.enabled", "RATE_LIMIT_ENABLED")
	_ = viper.BindEnv("security.rate_limit.rpm", "RATE_LIMIT_RPM")
	_ = viper.BindEnv("security.rate_limit.burst", "RATE_LIMIT_BURST")
	_ = viper.BindEnv("sync.timeout", "SYNC_TIMEOUT")
	_ = viper.BindEnv("advisor.endpoint", "ADVISOR_ENDPOINT")
	_ = viper.BindEnv("advisor.api_key", "ADVISOR_API_KEY")
	_ = viper.BindEnv("advisor.timeout", "ADVISOR_TIMEOUT")

	var c Config
	if err := viper.Unmarshal(&c); err != nil {
		panic("config error: " + err.Error())
	}
	return c
}
