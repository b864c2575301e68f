package config

import (
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Server       Server
	Database     Database
	Auth         Auth
	RAG          RAG
	Cache        Cache
	RateLimit    RateLimit
	Log          Log
	Admin        Admin
	GeminiApiKey string
	GeminiModel  string
}

type Server struct {
	Port string
	Mode string // gin mode: debug, release, test
}

type Database struct {
	Driver   string // "postgres" or "sqlite"
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
	Path     string // sqlite file path or DSN
}

type Auth struct {
	JWTSecret string
	TokenTTL  time.Duration
}

// RAG holds the external study-assistant service endpoint and per-call timeouts.
type RAG struct {
	Enabled       bool
	BaseURL       string
	ChatTimeout   time.Duration
	SyncTimeout   time.Duration
	HealthTimeout time.Duration
}

type Cache struct {
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	ContextTTL    time.Duration
}

type RateLimit struct {
	ChatPerMinute int
	ChatBurst     int
}

// Admin is the bootstrap administrator created at startup when both email and password are set.
type Admin struct {
	Name     string
	Email    string
	Password string
}

type Log struct {
	Level  string
	Pretty bool
}

func NewConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()
	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		log.Warn().Err(err).Msg("Error reading config file")
	}

	var config Config

	config.Server.Port = viper.GetString("SERVER_PORT")
	config.Server.Mode = viper.GetString("SERVER_MODE")

	config.Database.Driver = viper.GetString("DATABASE_DRIVER")
	config.Database.Host = viper.GetString("DATABASE_HOST")
	config.Database.Port = viper.GetString("DATABASE_PORT")
	config.Database.User = viper.GetString("DATABASE_USER")
	config.Database.Password = viper.GetString("DATABASE_PASSWORD")
	config.Database.Name = viper.GetString("DATABASE_NAME")
	config.Database.SSLMode = viper.GetString("DATABASE_SSLMODE")
	config.Database.Path = viper.GetString("DATABASE_PATH")

	config.Auth.JWTSecret = viper.GetString("JWT_SECRET")
	config.Auth.TokenTTL = viper.GetDuration("JWT_TTL")

	config.RAG.Enabled = viper.GetBool("RAG_ENABLED")
	config.RAG.BaseURL = viper.GetString("RAG_SERVICE_URL")
	config.RAG.ChatTimeout = viper.GetDuration("RAG_CHAT_TIMEOUT")
	config.RAG.SyncTimeout = viper.GetDuration("RAG_SYNC_TIMEOUT")
	config.RAG.HealthTimeout = viper.GetDuration("RAG_HEALTH_TIMEOUT")

	config.Cache.RedisAddr = viper.GetString("REDIS_ADDR")
	config.Cache.RedisPassword = viper.GetString("REDIS_PASSWORD")
	config.Cache.RedisDB = viper.GetInt("REDIS_DB")
	config.Cache.ContextTTL = viper.GetDuration("CHAT_CONTEXT_TTL")

	config.RateLimit.ChatPerMinute = viper.GetInt("CHAT_RATE_PER_MINUTE")
	config.RateLimit.ChatBurst = viper.GetInt("CHAT_RATE_BURST")

	config.Log.Level = viper.GetString("LOG_LEVEL")
	config.Log.Pretty = viper.GetBool("LOG_PRETTY")

	config.Admin.Name = viper.GetString("ADMIN_NAME")
	config.Admin.Email = viper.GetString("ADMIN_EMAIL")
	config.Admin.Password = viper.GetString("ADMIN_PASSWORD")

	config.GeminiApiKey = viper.GetString("GEMINI_API_KEY")
	config.GeminiModel = viper.GetString("GEMINI_MODEL")

	log.Info().
		Str("port", config.Server.Port).
		Str("dbDriver", config.Database.Driver).
		Str("ragURL", config.RAG.BaseURL).
		Bool("ragEnabled", config.RAG.Enabled).
		Bool("redis", config.Cache.RedisAddr != "").
		Bool("gemini", config.GeminiApiKey != "").
		Msg("Config loaded")
	return &config, nil
}

func setDefaults() {
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("SERVER_MODE", "debug")
	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_PORT", "5432")
	viper.SetDefault("DATABASE_SSLMODE", "disable")
	viper.SetDefault("DATABASE_PATH", "portal.db")
	viper.SetDefault("JWT_TTL", 24*time.Hour)
	viper.SetDefault("RAG_ENABLED", true)
	viper.SetDefault("RAG_SERVICE_URL", "http://localhost:8001")
	viper.SetDefault("RAG_CHAT_TIMEOUT", 10*time.Second)
	viper.SetDefault("RAG_SYNC_TIMEOUT", 60*time.Second)
	viper.SetDefault("RAG_HEALTH_TIMEOUT", 5*time.Second)
	viper.SetDefault("CHAT_CONTEXT_TTL", 5*time.Minute)
	viper.SetDefault("CHAT_RATE_PER_MINUTE", 20)
	viper.SetDefault("CHAT_RATE_BURST", 5)
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("ADMIN_NAME", "Administrator")
	viper.SetDefault("GEMINI_MODEL", "gemini-1.5-flash")
}
