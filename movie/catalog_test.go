package movie_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"movierec/movie"
	"movierec/rating"
)

func testCatalog() *movie.Catalog {
	return movie.NewCatalog(
		[]movie.Record{
			{MovieID: 3, Title: "Heat (1995)", Genres: "Action|Crime|Thriller"},
			{MovieID: 1, Title: "Toy Story (1995)", Genres: "Adventure|Animation|Children|Comedy|Fantasy"},
			{MovieID: 2, Title: "Jumanji (1995)", Genres: "Adventure|Children|Fantasy"},
			{MovieID: 4, Title: "Blade Runner (1982)", Genres: "Action|Sci-Fi|Thriller"},
			{MovieID: 5, Title: "Unrated Movie (2001)", Genres: ""},
		},
		[]rating.Record{
			{UserID: 1, MovieID: 1, Value: 4.0},
			{UserID: 2, MovieID: 1, Value: 5.0},
			{UserID: 1, MovieID: 3, Value: 3.0},
			{UserID: 1, MovieID: 4, Value: 4.5},
			{UserID: 3, MovieID: 2, Value: 2.0},
			{UserID: 3, MovieID: 999, Value: 5.0},
		},
	)
}

func TestNewCatalog(t *testing.T) {
	c := testCatalog()

	t.Run("indexes movies by id", func(t *testing.T) {
		assert.Equal(t, 5, c.Len())
		m, ok := c.ByID(1)
		require.True(t, ok)
		assert.Equal(t, "Toy Story (1995)", m.Title)
		assert.Equal(t, []string{"Adventure", "Animation", "Children", "Comedy", "Fantasy"}, m.Genres)

		_, ok = c.ByID(999)
		assert.False(t, ok)
	})

	t.Run("computes mean rating per movie", func(t *testing.T) {
		m, _ := c.ByID(1)
		assert.InDelta(t, 4.5, m.AverageRating, 1e-9)
		m, _ = c.ByID(2)
		assert.InDelta(t, 2.0, m.AverageRating, 1e-9)
	})

	t.Run("movie without ratings keeps zero average", func(t *testing.T) {
		m, _ := c.ByID(5)
		assert.Equal(t, 0.0, m.AverageRating)
		assert.Empty(t, m.Genres)
	})

	t.Run("builds genre index", func(t *testing.T) {
		assert.Equal(t, []int{3, 4}, c.MovieIDsByGenre("Action"))
		assert.Equal(t, []int{1, 2}, c.MovieIDsByGenre("Children"))
		assert.Empty(t, c.MovieIDsByGenre("Western"))
		assert.Equal(t, []string{
			"Action", "Adventure", "Animation", "Children", "Comedy",
			"Crime", "Fantasy", "Sci-Fi", "Thriller",
		}, c.Genres())
	})

	t.Run("every indexed id exists in the catalog", func(t *testing.T) {
		for _, g := range c.Genres() {
			for _, id := range c.MovieIDsByGenre(g) {
				_, ok := c.ByID(id)
				assert.True(t, ok, "genre %s references unknown movie %d", g, id)
			}
		}
	})

	t.Run("all is ordered by id", func(t *testing.T) {
		all := c.All()
		require.Len(t, all, 5)
		for i, m := range all {
			assert.Equal(t, i+1, m.MovieID)
		}
	})
}

func TestNewCatalog_DuplicateIDs(t *testing.T) {
	c := movie.NewCatalog([]movie.Record{
		{MovieID: 1, Title: "Old Title", Genres: "Drama"},
		{MovieID: 1, Title: "New Title", Genres: "Comedy|Comedy"},
	}, nil)

	m, ok := c.ByID(1)
	require.True(t, ok)
	assert.Equal(t, "New Title", m.Title)
	assert.Equal(t, []int{1}, c.MovieIDsByGenre("Comedy"))
	assert.Empty(t, c.MovieIDsByGenre("Drama"))
}

func TestCatalog_SearchTitle(t *testing.T) {
	c := testCatalog()

	got, err := c.SearchTitle(context.Background(), "(1995")
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, 1, got[0].MovieID)
	assert.Equal(t, 2, got[1].MovieID)
	assert.Equal(t, 3, got[2].MovieID)

	got, err = c.SearchTitle(context.Background(), "blade")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Blade Runner (1982)", got[0].Title)

	got, err = c.SearchTitle(context.Background(), "nothing like this")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestCatalog_FindTitle(t *testing.T) {
	c := testCatalog()

	m, err := c.FindTitle(context.Background(), "heat (1995)")
	require.NoError(t, err)
	assert.Equal(t, 3, m.MovieID)

	_, err = c.FindTitle(context.Background(), "Heat")
	assert.Equal(t, movie.ErrMovieNotFound, err)
}

func TestCatalog_TopInGenre(t *testing.T) {
	c := testCatalog()

	got, err := c.TopInGenre(context.Background(), "thriller")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 4, got[0].MovieID)
	assert.Equal(t, 3, got[1].MovieID)

	got, err = c.TopInGenre(context.Background(), "sci-fi")
	require.NoError(t, err)
	require.Len(t, got, 1)

	got, err = c.TopInGenre(context.Background(), "Western")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestMovie_String(t *testing.T) {
	m := movie.Movie{
		MovieID:       1,
		Title:         "Toy Story (1995)",
		Genres:        []string{"Animation", "Comedy"},
		AverageRating: 3.92093,
	}

	assert.Equal(t, "Animation|Comedy", m.GenresString())
	assert.Equal(t, "Toy Story (1995) (Animation|Comedy) - Avg Rating: 3.92", m.String())
}

func TestSplitGenres(t *testing.T) {
	assert.Equal(t, []string{"Action", "Drama"}, movie.SplitGenres("Action|Drama"))
	assert.Equal(t, []string{"(no genres listed)"}, movie.SplitGenres("(no genres listed)"))
	assert.Empty(t, movie.SplitGenres(""))
	assert.Equal(t, []string{"Action"}, movie.SplitGenres("Action||"))
}
