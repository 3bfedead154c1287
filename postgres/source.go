package postgres

import (
	"context"

	"gorm.io/gorm"

	"movierec/errs"
	"movierec/movie"
	"movierec/rating"
)

// Source loads the dataset from the movies and ratings tables.
type Source struct {
	movies  *MovieRepository
	ratings *RatingRepository
}

func NewSource(db *gorm.DB) *Source {
	return &Source{
		movies:  NewMovieRepository(db),
		ratings: NewRatingRepository(db),
	}
}

func (s *Source) MovieRecords(ctx context.Context) ([]movie.Record, error) {
	records, err := s.movies.All(ctx)
	if err != nil {
		return nil, errs.Unavailable("table "+MovieModel{}.TableName(), err)
	}
	return records, nil
}

func (s *Source) RatingRecords(ctx context.Context) ([]rating.Record, error) {
	records, err := s.ratings.All(ctx)
	if err != nil {
		return nil, errs.Unavailable("table "+RatingModel{}.TableName(), err)
	}
	return records, nil
}
