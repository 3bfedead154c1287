package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	sentrygo "github.com/getsentry/sentry-go"
	_ "github.com/lib/pq"

	"movierec/csvfile"
	"movierec/dataset"
	"movierec/errs"
	"movierec/pkg/config"
	"movierec/pkg/sentry"
	"movierec/postgres"
	"movierec/rating"
	"movierec/shell"
)

func main() {
	var moviesPath, ratingsPath string
	flag.StringVar(&moviesPath, "movies", "", "Path to movies.csv (overrides MOVIES_FILE)")
	flag.StringVar(&ratingsPath, "ratings", "", "Path to ratings.csv (overrides RATINGS_FILE)")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Cannot load config", "error", err)
		os.Exit(1)
	}
	if moviesPath != "" {
		cfg.MoviesFile = moviesPath
	}
	if ratingsPath != "" {
		cfg.RatingsFile = ratingsPath
	}

	err = sentrygo.Init(sentrygo.ClientOptions{
		Dsn:              cfg.SentryDSN,
		Environment:      cfg.AppEnv,
		AttachStacktrace: true,
	})
	if err != nil {
		slog.Error("Cannot init sentry", "error", err)
		os.Exit(1)
	}
	defer sentrygo.Flush(sentry.FlushTime)

	ctx := context.Background()

	src, err := newSource(cfg)
	if err != nil {
		sentry.WithTags(map[string]string{"source": cfg.DataSource}).Fatal(err)
		slog.Error("Cannot open data source", "source", cfg.DataSource, "error", err)
		os.Exit(1)
	}

	fmt.Println("Starting Movie Recommendation System...")

	ds, err := dataset.Load(ctx, src, rating.WithMode(rating.Mode(cfg.Recommend.RateMode)))
	if err != nil {
		sentry.WithTags(map[string]string{"source": cfg.DataSource}).Fatal(err)
		slog.Error("Cannot load dataset", "code", errs.ErrorCode(err), "error", errs.ErrorMessage(err))
		os.Exit(1)
	}

	sh := shell.New(os.Stdin, os.Stdout, ds,
		shell.WithDisplayLimit(cfg.Recommend.DisplayLimit),
		shell.WithRecommendLimit(cfg.Recommend.Limit),
		shell.WithSimilarDepth(cfg.Recommend.SimilarDepth),
	)
	if err := sh.Run(ctx); err != nil {
		sentry.Error(err)
		slog.Error("Session stopped with error", "error", err)
		os.Exit(1)
	}
}

func newSource(cfg *config.Config) (dataset.Source, error) {
	switch cfg.DataSource {
	case config.SourcePostgres:
		db, err := postgres.NewConnection(postgres.Options{
			DBName:   cfg.DB.Name,
			DBUser:   cfg.DB.User,
			Password: cfg.DB.Pass,
			Host:     cfg.DB.Host,
			Port:     strconv.Itoa(cfg.DB.Port),
			SSLMode:  cfg.DB.EnableSSL,
		})
		if err != nil {
			return nil, errs.Unavailable("postgres", err)
		}
		return postgres.NewSource(db), nil
	case config.SourceSQLite:
		db, err := postgres.NewSQLiteConnection(cfg.SQLitePath)
		if err != nil {
			return nil, errs.Unavailable(cfg.SQLitePath, err)
		}
		return postgres.NewSource(db), nil
	default:
		return csvfile.Source{MoviesPath: cfg.MoviesFile, RatingsPath: cfg.RatingsFile}, nil
	}
}
