package config

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"

	defaultRunAddress  = ":8000"
	defaultDatabaseURI = "sqlite://records.db"
	defaultMigrations  = "migrations"
)

type Config struct {
	Env       string
	DB        DB
	Server    Server
	Logger    Logger
	RateLimit RateLimit
}

type DB struct {
	DatabaseURI string `env:"DATABASE_URI"`
	Migrations  string `env:"MIGRATIONS_PATH"`
}

type Server struct {
	RunAddress string `env:"RUN_ADDRESS"`
}

type Logger struct {
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// RateLimit configures the per-client limiter; RPS 0 disables it.
type RateLimit struct {
	RPS   float64 `env:"RATE_LIMIT_RPS"`
	Burst int     `env:"RATE_LIMIT_BURST"`
}

func MustLoad() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	viper.AutomaticEnv()

	config := Config{
		Env: viper.GetString("app_env"),
		DB: DB{
			DatabaseURI: viper.GetString("database_uri"),
			Migrations:  viper.GetString("migrations_path"),
		},
		Server: Server{RunAddress: viper.GetString("run_address")},
		Logger: Logger{LogLevel: viper.GetString("log_level")},
		RateLimit: RateLimit{
			RPS:   viper.GetFloat64("rate_limit_rps"),
			Burst: viper.GetInt("rate_limit_burst"),
		},
	}

	if config.Env == "" {
		config.Env = EnvLocal
	}
	if config.Server.RunAddress == "" {
		config.Server.RunAddress = defaultRunAddress
	}
	if config.DB.DatabaseURI == "" {
		config.DB.DatabaseURI = defaultDatabaseURI
	}
	if config.DB.Migrations == "" {
		config.DB.Migrations = defaultMigrations
	}
	if config.RateLimit.Burst == 0 {
		config.RateLimit.Burst = int(config.RateLimit.RPS)
	}

	return &config
}
