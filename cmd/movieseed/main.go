package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	_ "github.com/lib/pq"
	"gorm.io/gorm"

	"movierec/csvfile"
	"movierec/movielens"
	"movierec/pkg/config"
	"movierec/postgres"
)

func main() {
	var (
		moviesPath  string
		ratingsPath string
		zipURL      string
		limit       int
	)

	flag.StringVar(&moviesPath, "movies", "", "Path to movies.csv (skip download)")
	flag.StringVar(&ratingsPath, "ratings", "", "Path to ratings.csv (skip download)")
	flag.StringVar(&zipURL, "url", movielens.DefaultURL, "MovieLens zip URL")
	flag.IntVar(&limit, "limit", 0, "Limit number of rows to import per file (0 = all)")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("load config failed", "error", err)
		os.Exit(1)
	}

	db, err := openDatabase(cfg)
	if err != nil {
		slog.Error("cannot open database connection", "source", cfg.DataSource, "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	if moviesPath == "" || ratingsPath == "" {
		tmpDir, err := os.MkdirTemp("", "movielens-")
		if err != nil {
			slog.Error("cannot create temp dir", "error", err)
			os.Exit(1)
		}
		defer os.RemoveAll(tmpDir)

		files, err := movielens.Download(ctx, zipURL, tmpDir)
		if err != nil {
			slog.Error("failed to download dataset", "error", err)
			os.Exit(1)
		}
		if moviesPath == "" {
			moviesPath = files.Movies
		}
		if ratingsPath == "" {
			ratingsPath = files.Ratings
		}
	}

	movies, ratings, err := importDataset(ctx, db, csvfile.Source{MoviesPath: moviesPath, RatingsPath: ratingsPath}, limit)
	if err != nil {
		slog.Error("import failed", "error", err)
		os.Exit(1)
	}

	slog.Info("import completed", "movies", movies, "ratings", ratings)
}

func openDatabase(cfg *config.Config) (*gorm.DB, error) {
	if cfg.DataSource == config.SourceSQLite {
		return postgres.NewSQLiteConnection(cfg.SQLitePath)
	}

	return postgres.NewConnection(postgres.Options{
		DBName:   cfg.DB.Name,
		DBUser:   cfg.DB.User,
		Password: cfg.DB.Pass,
		Host:     cfg.DB.Host,
		Port:     fmt.Sprintf("%d", cfg.DB.Port),
		SSLMode:  cfg.DB.EnableSSL,
	})
}

func importDataset(ctx context.Context, db *gorm.DB, src csvfile.Source, limit int) (int, int, error) {
	movieRecords, err := src.MovieRecords(ctx)
	if err != nil {
		return 0, 0, err
	}
	if limit > 0 && len(movieRecords) > limit {
		movieRecords = movieRecords[:limit]
	}

	movies, err := postgres.NewMovieRepository(db).Import(ctx, movieRecords)
	if err != nil {
		return 0, 0, fmt.Errorf("import movies: %w", err)
	}

	ratingRecords, err := src.RatingRecords(ctx)
	if err != nil {
		return movies, 0, err
	}
	if limit > 0 && len(ratingRecords) > limit {
		ratingRecords = ratingRecords[:limit]
	}

	ratings, err := postgres.NewRatingRepository(db).Import(ctx, ratingRecords)
	if err != nil {
		return movies, 0, fmt.Errorf("import ratings: %w", err)
	}

	return movies, ratings, nil
}
