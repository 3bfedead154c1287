// Package dataset owns the in-memory indexes the recommenders read from.
package dataset

import (
	"context"
	"log/slog"

	"movierec/movie"
	"movierec/rating"
)

// Source supplies the raw movie and rating rows. Implementations return an
// errs.EUNAVAILABLE error naming the resource they failed to read.
type Source interface {
	MovieRecords(ctx context.Context) ([]movie.Record, error)
	RatingRecords(ctx context.Context) ([]rating.Record, error)
}

// Dataset holds the catalog (movies and genre index) and the rating store.
type Dataset struct {
	Catalog *movie.Catalog
	Ratings *rating.Store
}

// New builds a Dataset from rows already in memory.
func New(movies []movie.Record, ratings []rating.Record, opts ...rating.Option) *Dataset {
	return &Dataset{
		Catalog: movie.NewCatalog(movies, ratings),
		Ratings: rating.NewStore(ratings, opts...),
	}
}

// Load reads both tables from src. On failure no partial Dataset is returned.
func Load(ctx context.Context, src Source, opts ...rating.Option) (*Dataset, error) {
	movies, err := src.MovieRecords(ctx)
	if err != nil {
		return nil, err
	}
	ratings, err := src.RatingRecords(ctx)
	if err != nil {
		return nil, err
	}

	ds := New(movies, ratings, opts...)
	slog.Info("dataset loaded",
		"movies", ds.Catalog.Len(),
		"ratings", len(ratings),
		"users", len(ds.Ratings.Users()),
	)
	return ds, nil
}
