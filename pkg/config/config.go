package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	SourceCSV      = "csv"
	SourcePostgres = "postgres"
	SourceSQLite   = "sqlite"
)

var Empty = new(Config)

type Config struct {
	AppEnv    string `envconfig:"APP_ENV" default:"local"`
	SentryDSN string `envconfig:"SENTRY_DSN"`

	DataSource  string `envconfig:"DATA_SOURCE" default:"csv"`
	MoviesFile  string `envconfig:"MOVIES_FILE" default:"ml-latest-small/movies.csv"`
	RatingsFile string `envconfig:"RATINGS_FILE" default:"ml-latest-small/ratings.csv"`
	SQLitePath  string `envconfig:"SQLITE_PATH" default:"movierec.db"`

	Recommend struct {
		Limit        int    `envconfig:"RECOMMEND_LIMIT" default:"10"`
		DisplayLimit int    `envconfig:"DISPLAY_LIMIT" default:"20"`
		SimilarDepth int    `envconfig:"SIMILAR_DEPTH" default:"2"`
		RateMode     string `envconfig:"RATE_MODE" default:"append"`
	}

	DB struct {
		Name      string `envconfig:"DB_NAME"`
		Host      string `envconfig:"DB_HOST"`
		Port      int    `envconfig:"DB_PORT" default:"5432"`
		User      string `envconfig:"DB_USER"`
		Pass      string `envconfig:"DB_PASS"`
		EnableSSL bool   `envconfig:"ENABLE_SSL"`
	}
}

func LoadConfig() (*Config, error) {
	// load default .env file, ignore the error
	_ = godotenv.Load()

	cfg := new(Config)
	err := envconfig.Process("", cfg)
	if err != nil {
		return nil, fmt.Errorf("load config error: %v", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("load config error: %v", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.DataSource {
	case SourceCSV, SourcePostgres, SourceSQLite:
	default:
		return fmt.Errorf("unknown DATA_SOURCE %q", c.DataSource)
	}

	switch c.Recommend.RateMode {
	case "append", "replace":
	default:
		return fmt.Errorf("unknown RATE_MODE %q", c.Recommend.RateMode)
	}

	if c.Recommend.Limit <= 0 || c.Recommend.DisplayLimit <= 0 || c.Recommend.SimilarDepth <= 0 {
		return fmt.Errorf("RECOMMEND_LIMIT, DISPLAY_LIMIT and SIMILAR_DEPTH must be positive")
	}

	return nil
}
