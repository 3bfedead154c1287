package postgres_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"movierec/errs"
	"movierec/movie"
	"movierec/postgres"
	"movierec/rating"
)

var sampleMovies = []movie.Record{
	{MovieID: 2, Title: "Jumanji (1995)", Genres: "Adventure|Children|Fantasy"},
	{MovieID: 1, Title: "Toy Story (1995)", Genres: "Adventure|Animation|Children|Comedy|Fantasy"},
}

func TestMovieRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("should import and list movies by id", func(t *testing.T) {
		repo := postgres.NewMovieRepository(CreateSQLiteConnection(t))

		n, err := repo.Import(ctx, sampleMovies)
		require.NoError(t, err)
		assert.Equal(t, 2, n)

		got, err := repo.All(ctx)
		require.NoError(t, err)
		assert.Equal(t, []movie.Record{sampleMovies[1], sampleMovies[0]}, got)
	})

	t.Run("should update existing movies on re-import", func(t *testing.T) {
		repo := postgres.NewMovieRepository(CreateSQLiteConnection(t))
		_, err := repo.Import(ctx, sampleMovies)
		require.NoError(t, err)

		_, err = repo.Import(ctx, []movie.Record{{MovieID: 1, Title: "Toy Story", Genres: "Animation"}})
		require.NoError(t, err)

		got, err := repo.All(ctx)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, movie.Record{MovieID: 1, Title: "Toy Story", Genres: "Animation"}, got[0])
	})

	t.Run("should do nothing for empty import", func(t *testing.T) {
		repo := postgres.NewMovieRepository(CreateSQLiteConnection(t))

		n, err := repo.Import(ctx, nil)
		require.NoError(t, err)
		assert.Zero(t, n)
	})
}

func TestRatingRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("should import and list ratings by user then movie", func(t *testing.T) {
		repo := postgres.NewRatingRepository(CreateSQLiteConnection(t))

		n, err := repo.Import(ctx, []rating.Record{
			{UserID: 2, MovieID: 1, Value: 3.5},
			{UserID: 1, MovieID: 2, Value: 4.0},
			{UserID: 1, MovieID: 1, Value: 5.0},
		})
		require.NoError(t, err)
		assert.Equal(t, 3, n)

		got, err := repo.All(ctx)
		require.NoError(t, err)
		assert.Equal(t, []rating.Record{
			{UserID: 1, MovieID: 1, Value: 5.0},
			{UserID: 1, MovieID: 2, Value: 4.0},
			{UserID: 2, MovieID: 1, Value: 3.5},
		}, got)
	})

	t.Run("should keep the last value for a repeated pair", func(t *testing.T) {
		repo := postgres.NewRatingRepository(CreateSQLiteConnection(t))

		n, err := repo.Import(ctx, []rating.Record{
			{UserID: 1, MovieID: 1, Value: 2.0},
			{UserID: 1, MovieID: 1, Value: 4.5},
		})
		require.NoError(t, err)
		assert.Equal(t, 1, n)

		_, err = repo.Import(ctx, []rating.Record{{UserID: 1, MovieID: 1, Value: 1.0}})
		require.NoError(t, err)

		got, err := repo.All(ctx)
		require.NoError(t, err)
		assert.Equal(t, []rating.Record{{UserID: 1, MovieID: 1, Value: 1.0}}, got)
	})
}

func TestSource(t *testing.T) {
	ctx := context.Background()

	t.Run("should load records", func(t *testing.T) {
		db := CreateSQLiteConnection(t)
		_, err := postgres.NewMovieRepository(db).Import(ctx, sampleMovies)
		require.NoError(t, err)
		_, err = postgres.NewRatingRepository(db).Import(ctx, []rating.Record{{UserID: 1, MovieID: 1, Value: 4.0}})
		require.NoError(t, err)

		src := postgres.NewSource(db)

		movies, err := src.MovieRecords(ctx)
		require.NoError(t, err)
		assert.Len(t, movies, 2)

		ratings, err := src.RatingRecords(ctx)
		require.NoError(t, err)
		assert.Equal(t, []rating.Record{{UserID: 1, MovieID: 1, Value: 4.0}}, ratings)
	})

	t.Run("should report missing tables as unavailable", func(t *testing.T) {
		db := CreateSQLiteConnection(t)
		require.NoError(t, db.Exec("DROP TABLE ratings").Error)

		_, err := postgres.NewSource(db).RatingRecords(ctx)

		require.Error(t, err)
		assert.Equal(t, errs.EUNAVAILABLE, errs.ErrorCode(err))
		assert.Equal(t, "data unavailable: table ratings", errs.ErrorMessage(err))
	})
}
