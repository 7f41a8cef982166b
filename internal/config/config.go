package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	JWT       JWTConfig
	Cookies   CookieConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // e.g., "debug", "release"
}

type DatabaseConfig struct {
	DSN string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type JWTConfig struct {
	// PEM-encoded RSA private key for the access purpose. When empty a
	// throwaway pair is generated at startup, which invalidates access
	// tokens across restarts.
	PrivateKey    string        `mapstructure:"private_key"`
	KeyID         string        `mapstructure:"key_id"`
	RefreshSecret string        `mapstructure:"refresh_secret"`
	ForgotSecret  string        `mapstructure:"forgot_secret"`
	Issuer        string        `mapstructure:"issuer"`
	AccessTTL     time.Duration `mapstructure:"access_ttl"`
	RefreshTTL    time.Duration `mapstructure:"refresh_ttl"`
	ForgotTTL     time.Duration `mapstructure:"forgot_ttl"`
}

type CookieConfig struct {
	Domain string
	Secure bool
	// Cookie lifetimes are independent of the token's own expiry, which is
	// the real authority.
	AccessMaxAge  time.Duration `mapstructure:"access_max_age"`
	RefreshMaxAge time.Duration `mapstructure:"refresh_max_age"`
}

type CORSConfig struct {
	Origins []string
}

type RateLimitConfig struct {
	Requests int           `mapstructure:"requests"`
	Window   time.Duration `mapstructure:"window"`
}

func LoadConfig() (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.mode", "debug")
	v.SetDefault("redis.db", 0)
	v.SetDefault("jwt.key_id", "access-1")
	v.SetDefault("jwt.issuer", "shop_authentication_service")
	v.SetDefault("jwt.access_ttl", time.Hour)
	v.SetDefault("jwt.refresh_ttl", 7*24*time.Hour)
	v.SetDefault("jwt.forgot_ttl", 10*time.Minute)
	v.SetDefault("cookies.access_max_age", time.Hour)
	v.SetDefault("cookies.refresh_max_age", 365*24*time.Hour)
	v.SetDefault("ratelimit.requests", 10)
	v.SetDefault("ratelimit.window", time.Minute)
	v.SetDefault("cors.origins", []string{"http://localhost:5173"})

	// Environment variable settings
	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Config file settings (optional)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		// Config file not found is fine, we rely on env vars or defaults
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
