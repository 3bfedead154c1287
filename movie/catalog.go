package movie

import (
	"context"
	"sort"
	"strings"

	"movierec/rating"
)

// Catalog is the read-only movie index: movies by id and movie ids by genre.
// It is built once at load time and never mutated afterwards.
type Catalog struct {
	movies map[int]Movie
	ids    []int
	genres map[string][]int
	// lower-cased genre name -> canonical name
	genreNames map[string]string
}

// NewCatalog builds the index from raw movie rows and sets every movie's
// average rating to the mean of its rating rows. Movies without ratings keep 0.
// A repeated movie id replaces the earlier row.
func NewCatalog(records []Record, ratings []rating.Record) *Catalog {
	c := &Catalog{
		movies:     make(map[int]Movie, len(records)),
		genres:     make(map[string][]int),
		genreNames: make(map[string]string),
	}

	for _, r := range records {
		c.movies[r.MovieID] = Movie{
			MovieID: r.MovieID,
			Title:   r.Title,
			Genres:  SplitGenres(r.Genres),
		}
	}

	type sum struct {
		total float64
		count int
	}
	sums := make(map[int]*sum)
	for _, r := range ratings {
		if _, ok := c.movies[r.MovieID]; !ok {
			continue
		}
		s, ok := sums[r.MovieID]
		if !ok {
			s = &sum{}
			sums[r.MovieID] = s
		}
		s.total += r.Value
		s.count++
	}
	for id, s := range sums {
		m := c.movies[id]
		m.AverageRating = s.total / float64(s.count)
		c.movies[id] = m
	}

	c.ids = make([]int, 0, len(c.movies))
	for id := range c.movies {
		c.ids = append(c.ids, id)
	}
	sort.Ints(c.ids)

	for _, id := range c.ids {
		for _, g := range c.movies[id].Genres {
			ids := c.genres[g]
			if n := len(ids); n > 0 && ids[n-1] == id {
				continue
			}
			c.genres[g] = append(ids, id)
			c.genreNames[strings.ToLower(g)] = g
		}
	}

	return c
}

func (c *Catalog) Len() int {
	return len(c.ids)
}

func (c *Catalog) ByID(id int) (Movie, bool) {
	m, ok := c.movies[id]
	return m, ok
}

// All returns every movie ordered by id.
func (c *Catalog) All() []Movie {
	out := make([]Movie, 0, len(c.ids))
	for _, id := range c.ids {
		out = append(out, c.movies[id])
	}
	return out
}

// Genres returns the known genre names, sorted.
func (c *Catalog) Genres() []string {
	out := make([]string, 0, len(c.genres))
	for g := range c.genres {
		out = append(out, g)
	}
	sort.Strings(out)
	return out
}

// MovieIDsByGenre returns the ids of the genre's movies in ascending order.
// The genre name must match exactly.
func (c *Catalog) MovieIDsByGenre(genre string) []int {
	return append([]int(nil), c.genres[genre]...)
}

// SearchTitle returns movies whose title contains query, ignoring case.
func (c *Catalog) SearchTitle(_ context.Context, query string) ([]Movie, error) {
	query = strings.ToLower(query)
	var out []Movie
	for _, id := range c.ids {
		m := c.movies[id]
		if strings.Contains(strings.ToLower(m.Title), query) {
			out = append(out, m)
		}
	}
	return out, nil
}

// FindTitle returns the first movie, by id, whose title equals title ignoring case.
func (c *Catalog) FindTitle(_ context.Context, title string) (Movie, error) {
	for _, id := range c.ids {
		m := c.movies[id]
		if strings.EqualFold(m.Title, title) {
			return m, nil
		}
	}
	return Movie{}, ErrMovieNotFound
}

// TopInGenre returns the genre's movies by average rating, best first.
// Genre names are matched ignoring case; an unknown genre yields no movies.
func (c *Catalog) TopInGenre(_ context.Context, genre string) ([]Movie, error) {
	name, ok := c.genreNames[strings.ToLower(genre)]
	if !ok {
		return nil, nil
	}

	ids := c.genres[name]
	out := make([]Movie, 0, len(ids))
	for _, id := range ids {
		out = append(out, c.movies[id])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].AverageRating > out[j].AverageRating
	})
	return out, nil
}
