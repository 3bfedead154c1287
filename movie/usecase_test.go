package movie_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"movierec/movie"
)

type MockMovieRepository struct {
	mock.Mock
}

func (m *MockMovieRepository) SearchTitle(ctx context.Context, query string) ([]movie.Movie, error) {
	args := m.Called(ctx, query)
	return args.Get(0).([]movie.Movie), args.Error(1)
}

func (m *MockMovieRepository) TopInGenre(ctx context.Context, genre string) ([]movie.Movie, error) {
	args := m.Called(ctx, genre)
	return args.Get(0).([]movie.Movie), args.Error(1)
}

func (m *MockMovieRepository) FindTitle(ctx context.Context, title string) (movie.Movie, error) {
	args := m.Called(ctx, title)
	return args.Get(0).(movie.Movie), args.Error(1)
}

func TestSearch(t *testing.T) {
	r := new(MockMovieRepository)
	uc := movie.NewUsecase(r)

	movies := []movie.Movie{
		{MovieID: 1, Title: "Star Wars (1977)"},
		{MovieID: 2, Title: "Star Trek (2009)"},
		{MovieID: 3, Title: "Stardust (2007)"},
	}

	t.Run("should trim the query and apply the limit", func(t *testing.T) {
		r.On("SearchTitle", mock.Anything, "star").Return(movies, nil).Once()

		result, err := uc.Search(context.Background(), "  star ", 2)

		assert.NoError(t, err)
		assert.Equal(t, movies[:2], result)
		r.AssertExpectations(t)
	})

	t.Run("should return every match without a limit", func(t *testing.T) {
		r.On("SearchTitle", mock.Anything, "star").Return(movies, nil).Once()

		result, err := uc.Search(context.Background(), "star", 0)

		assert.NoError(t, err)
		assert.Equal(t, movies, result)
		r.AssertExpectations(t)
	})

	t.Run("should fail on blank query", func(t *testing.T) {
		result, err := uc.Search(context.Background(), "   ", 10)

		assert.Equal(t, movie.ErrInvalidQuery, err)
		assert.Nil(t, result)
		r.AssertExpectations(t)
	})

	t.Run("should propagate repository errors", func(t *testing.T) {
		repoErr := errors.New("boom")
		r.On("SearchTitle", mock.Anything, "x").Return([]movie.Movie(nil), repoErr).Once()

		_, err := uc.Search(context.Background(), "x", 10)

		assert.Equal(t, repoErr, err)
		r.AssertExpectations(t)
	})
}

func TestTopInGenre(t *testing.T) {
	r := new(MockMovieRepository)
	uc := movie.NewUsecase(r)

	t.Run("should return top movies of the genre", func(t *testing.T) {
		movies := []movie.Movie{{MovieID: 5, AverageRating: 4.8}, {MovieID: 2, AverageRating: 3.1}}
		r.On("TopInGenre", mock.Anything, "Comedy").Return(movies, nil).Once()

		result, err := uc.TopInGenre(context.Background(), "Comedy", 20)

		assert.NoError(t, err)
		assert.Equal(t, movies, result)
		r.AssertExpectations(t)
	})

	t.Run("should fail on empty genre", func(t *testing.T) {
		_, err := uc.TopInGenre(context.Background(), "", 20)

		assert.Equal(t, movie.ErrInvalidQuery, err)
		r.AssertNotCalled(t, "TopInGenre", mock.Anything, "")
	})
}

func TestFindByTitle(t *testing.T) {
	r := new(MockMovieRepository)
	uc := movie.NewUsecase(r)

	t.Run("should find the movie", func(t *testing.T) {
		want := movie.Movie{MovieID: 7, Title: "Sabrina (1995)"}
		r.On("FindTitle", mock.Anything, "Sabrina (1995)").Return(want, nil).Once()

		got, err := uc.FindByTitle(context.Background(), " Sabrina (1995) ")

		assert.NoError(t, err)
		assert.Equal(t, want, got)
		r.AssertExpectations(t)
	})

	t.Run("should report missing movie", func(t *testing.T) {
		r.On("FindTitle", mock.Anything, "Nope").Return(movie.Movie{}, movie.ErrMovieNotFound).Once()

		_, err := uc.FindByTitle(context.Background(), "Nope")

		assert.Equal(t, movie.ErrMovieNotFound, err)
		r.AssertExpectations(t)
	})
}
